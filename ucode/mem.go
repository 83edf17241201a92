// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ucode

import "math/bits"

// MemWriter appends bits to a growing byte slice.
type MemWriter struct {
	buf   []byte
	nbits uint64
	order BitOrder
}

// NewMemWriter returns an empty writer for the given bit order.
func NewMemWriter(order BitOrder) *MemWriter {
	return &MemWriter{order: order}
}

// BitOrder implements BitWriter.
func (w *MemWriter) BitOrder() BitOrder { return w.order }

// WriteBits implements BitWriter. Bits of value above n are ignored.
func (w *MemWriter) WriteBits(value uint64, n int) (int, error) {
	if n < 0 || n > 64 {
		return 0, ErrInvalidParameter
	}
	value &= lowMask(n)

	remaining := n
	for remaining > 0 {
		off := int(w.nbits & 7)
		if off == 0 {
			w.buf = append(w.buf, 0)
		}
		room := 8 - off
		take := min(room, remaining)
		last := len(w.buf) - 1

		if w.order == MsbFirst {
			chunk := (value >> uint(remaining-take)) & lowMask(take)
			w.buf[last] |= byte(chunk << uint(room-take))
		} else {
			chunk := value & lowMask(take)
			value >>= uint(take)
			w.buf[last] |= byte(chunk << uint(off))
		}

		remaining -= take
		w.nbits += uint64(take)
	}
	return n, nil
}

// Bytes returns the written bytes. The unused bits of the last byte are zero.
// The slice aliases the writer's buffer until the next write.
func (w *MemWriter) Bytes() []byte { return w.buf }

// BitLen returns the number of bits written so far.
func (w *MemWriter) BitLen() uint64 { return w.nbits }

// Reset discards everything written, keeping the allocated buffer.
func (w *MemWriter) Reset() {
	clear(w.buf)
	w.buf = w.buf[:0]
	w.nbits = 0
}

// Reader returns a MemReader over the bits written so far.
func (w *MemWriter) Reader() *MemReader {
	return NewMemReaderBits(w.buf, w.nbits, w.order)
}

// MemReader reads bits from a byte slice. It implements BitPeeker.
type MemReader struct {
	buf   []byte
	pos   uint64
	limit uint64
	order BitOrder
}

// NewMemReader returns a reader over all the bits of buf.
func NewMemReader(buf []byte, order BitOrder) *MemReader {
	return NewMemReaderBits(buf, uint64(len(buf))*8, order)
}

// NewMemReaderBits returns a reader over the first nbits bits of buf.
// nbits is clamped to the size of buf.
func NewMemReaderBits(buf []byte, nbits uint64, order BitOrder) *MemReader {
	nbits = min(nbits, uint64(len(buf))*8)
	return &MemReader{buf: buf, limit: nbits, order: order}
}

// BitOrder implements BitReader.
func (r *MemReader) BitOrder() BitOrder { return r.order }

// BitPosition returns the number of bits consumed so far.
func (r *MemReader) BitPosition() uint64 { return r.pos }

// SetBitPosition moves the cursor to an absolute bit offset.
func (r *MemReader) SetBitPosition(pos uint64) error {
	if pos > r.limit {
		return ErrInsufficientBits
	}
	r.pos = pos
	return nil
}

// BitsRemaining returns how many bits are left to read.
func (r *MemReader) BitsRemaining() uint64 { return r.limit - r.pos }

// PeekBits implements BitPeeker.
func (r *MemReader) PeekBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, ErrInvalidParameter
	}
	if uint64(n) > r.limit-r.pos {
		return 0, ErrInsufficientBits
	}
	return r.peek(n), nil
}

// SkipBits implements BitPeeker.
func (r *MemReader) SkipBits(n int) error {
	if n < 0 {
		return ErrInvalidParameter
	}
	if uint64(n) > r.limit-r.pos {
		return ErrInsufficientBits
	}
	r.pos += uint64(n)
	return nil
}

// ReadBits implements BitReader.
func (r *MemReader) ReadBits(n int) (uint64, error) {
	v, err := r.PeekBits(n)
	if err != nil {
		return 0, err
	}
	r.pos += uint64(n)
	return v, nil
}

// ReadUnary implements BitReader. It scans up to 64 bits at a time.
func (r *MemReader) ReadUnary() (uint64, error) {
	start := r.pos
	var zeros uint64
	for {
		avail := r.limit - r.pos
		if avail == 0 {
			r.pos = start
			return 0, ErrInsufficientBits
		}
		n := int(min(avail, 64))
		word := r.peek(n)
		if word == 0 {
			zeros += uint64(n)
			r.pos += uint64(n)
			if zeros > MaxUnaryRun {
				r.pos = start
				return 0, ErrMalformedCode
			}
			continue
		}

		var z int
		if r.order == MsbFirst {
			z = bits.LeadingZeros64(word) - (64 - n)
		} else {
			z = bits.TrailingZeros64(word)
		}
		zeros += uint64(z)
		if zeros > MaxUnaryRun {
			r.pos = start
			return 0, ErrMalformedCode
		}
		r.pos += uint64(z) + 1
		return zeros, nil
	}
}

// peek assembles the next n bits byte by byte. The caller checks bounds.
func (r *MemReader) peek(n int) uint64 {
	var v uint64
	pos := r.pos
	got := 0
	for got < n {
		b := uint64(r.buf[pos>>3])
		off := int(pos & 7)
		avail := 8 - off
		take := min(avail, n-got)

		if r.order == MsbFirst {
			v = v<<uint(take) | (b>>uint(avail-take))&lowMask(take)
		} else {
			v |= ((b >> uint(off)) & lowMask(take)) << uint(got)
		}

		got += take
		pos += uint64(take)
	}
	return v
}
