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

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// StreamReader reads an MsbFirst bit stream from an io.Reader.
//
// It implements BitReader but not BitPeeker, so table-accelerated codecs
// always take the reference path on it. Unlike MemReader, a read that hits
// the end of the input may already have consumed the bits it saw.
type StreamReader struct {
	br *bitio.Reader
}

// NewStreamReader wraps in. Wrap in a bufio.Reader first if in is unbuffered.
func NewStreamReader(in io.Reader) *StreamReader {
	return &StreamReader{br: bitio.NewReader(in)}
}

// BitOrder implements BitReader.
func (r *StreamReader) BitOrder() BitOrder { return MsbFirst }

// ReadBits implements BitReader.
func (r *StreamReader) ReadBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, ErrInvalidParameter
	}
	if n == 0 {
		return 0, nil
	}
	v, err := r.br.ReadBits(uint8(n))
	if err != nil {
		return 0, streamErr(err)
	}
	return v, nil
}

// ReadUnary implements BitReader.
func (r *StreamReader) ReadUnary() (uint64, error) {
	var zeros uint64
	for {
		b, err := r.br.ReadBool()
		if err != nil {
			return 0, streamErr(err)
		}
		if b {
			return zeros, nil
		}
		zeros++
		if zeros > MaxUnaryRun {
			return 0, ErrMalformedCode
		}
	}
}

// StreamWriter writes an MsbFirst bit stream to an io.Writer.
// Close must be called to flush the last partial byte.
type StreamWriter struct {
	bw    *bitio.Writer
	nbits uint64
}

// NewStreamWriter wraps out.
func NewStreamWriter(out io.Writer) *StreamWriter {
	return &StreamWriter{bw: bitio.NewWriter(out)}
}

// BitOrder implements BitWriter.
func (w *StreamWriter) BitOrder() BitOrder { return MsbFirst }

// WriteBits implements BitWriter.
func (w *StreamWriter) WriteBits(value uint64, n int) (int, error) {
	if n < 0 || n > 64 {
		return 0, ErrInvalidParameter
	}
	if n == 0 {
		return 0, nil
	}
	if err := w.bw.WriteBits(value&lowMask(n), uint8(n)); err != nil {
		return 0, errors.WithStack(err)
	}
	w.nbits += uint64(n)
	return n, nil
}

// BitLen returns the number of bits written so far.
func (w *StreamWriter) BitLen() uint64 { return w.nbits }

// Close pads the last byte with zero bits and flushes it. It does not close
// the underlying writer.
func (w *StreamWriter) Close() error {
	return errors.WithStack(w.bw.Close())
}

func streamErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrInsufficientBits
	}
	return errors.WithStack(err)
}
