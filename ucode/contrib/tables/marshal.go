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

package tables

import (
	"bytes"
	"encoding/binary"
	"runtime"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/ajroetker/go-ucodes/ucode/contrib/codes"
	"github.com/dchest/siphash"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Artifact layout, before zstd compression. Integers are little-endian.
//
//	magic "UCTB" | version u8
//	order u8 | layout u8 | prefixBits u8 | missingLen u8 | writeMax u64
//	read value bytes u8 | read len bytes u8 | write code bytes u8 | write len bytes u8
//	code name length u16 | code name
//	2^prefixBits read records | writeMax+1 write records
//	siphash-2-4 of everything above, u64
const (
	artifactVersion = 1
	headerSize      = 4 + 1 + 4 + 8 + 4 + 2
	checksumSize    = 8

	sipK0 = 0x7563_6f64_6573_2d74 // "ucodes-t"
	sipK1 = 0x6162_6c65_732d_7631 // "ables-v1"
)

// maxArtifactSize bounds the decompressed size of any valid artifact: the
// widest records (two 8-byte fields) on both sides at the largest Config.
const maxArtifactSize = headerSize + 1<<16 + (1<<MaxPrefixBits)*16 + (MaxWriteMax+1)*16 + checksumSize

var artifactMagic = [4]byte{'U', 'C', 'T', 'B'}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1))
	if err != nil {
		panic(err)
	}
	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)),
		zstd.WithDecoderMaxMemory(maxArtifactSize))
	if err != nil {
		panic(err)
	}
}

// Marshal serializes t into a compressed, checksummed artifact that
// Unmarshal turns back into an identical Table.
func Marshal(t *Table) ([]byte, error) {
	name := t.code.String()
	if len(name) > 0xffff {
		return nil, errors.Wrapf(ErrInvalidConfig, "code name of %d bytes", len(name))
	}

	buf := make([]byte, 0, headerSize+len(name)+t.read.len()*8+t.write.len()*9+checksumSize)
	buf = append(buf, artifactMagic[:]...)
	buf = append(buf, artifactVersion, byte(t.order), byte(t.layout), byte(t.prefixBits), byte(t.missingLen))
	buf = binary.LittleEndian.AppendUint64(buf, t.writeMax)
	buf = append(buf,
		byte(t.readValueWidth/8), byte(t.readLenWidth/8),
		byte(t.writeCodeWidth/8), byte(t.writeLenWidth/8))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(name)))
	buf = append(buf, name...)
	buf = appendRecords(buf, t.read, t.readValueWidth/8, t.readLenWidth/8)
	buf = appendRecords(buf, t.write, t.writeCodeWidth/8, t.writeLenWidth/8)
	buf = binary.LittleEndian.AppendUint64(buf, siphash.Hash(sipK0, sipK1, buf))

	return zstdEncoder.EncodeAll(buf, nil), nil
}

func appendRecords(buf []byte, s store, valueBytes, lenBytes int) []byte {
	p := newPackedStore(false, valueBytes, lenBytes, s.len())
	for i := range s.len() {
		v, l := s.get(i)
		p.set(i, v, l)
	}
	return append(buf, p.buf...)
}

// Unmarshal decodes an artifact written by Marshal, rebuilds the table in
// its recorded layout and verifies it against the reference algorithm.
func Unmarshal(data []byte) (*Table, error) {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(ErrCorruptTable, err.Error())
	}
	if len(raw) < headerSize+checksumSize {
		return nil, errors.Wrapf(ErrCorruptTable, "artifact of %d bytes", len(raw))
	}
	body, sum := raw[:len(raw)-checksumSize], raw[len(raw)-checksumSize:]
	if siphash.Hash(sipK0, sipK1, body) != binary.LittleEndian.Uint64(sum) {
		return nil, errors.Wrap(ErrCorruptTable, "checksum mismatch")
	}
	if !bytes.Equal(body[:4], artifactMagic[:]) {
		return nil, errors.Wrap(ErrCorruptTable, "bad magic")
	}
	if body[4] != artifactVersion {
		return nil, errors.Wrapf(ErrCorruptTable, "version %d", body[4])
	}

	order := ucode.BitOrder(body[5])
	layout := Layout(body[6])
	prefixBits := int(body[7])
	missingLen := int(body[8])
	writeMax := binary.LittleEndian.Uint64(body[9:17])
	rv, rl, wc, wl := int(body[17]), int(body[18]), int(body[19]), int(body[20])
	nameLen := int(binary.LittleEndian.Uint16(body[21:23]))

	if !order.Valid() || layout == LayoutDefault || !layout.Valid() {
		return nil, errors.Wrapf(ErrCorruptTable, "order %d layout %d", body[5], body[6])
	}
	if err := (Config{PrefixBits: prefixBits, WriteMax: writeMax}).Validate(); err != nil {
		return nil, errors.Wrap(ErrCorruptTable, err.Error())
	}
	for _, w := range []int{rv, rl, wc, wl} {
		if w != 1 && w != 2 && w != 4 && w != 8 {
			return nil, errors.Wrapf(ErrCorruptTable, "field of %d bytes", w)
		}
	}

	rest := body[headerSize:]
	nreads, nwrites := 1<<prefixBits, int(writeMax)+1
	readBytes := packedSize(nreads, rv*8, rl*8)
	writeBytes := packedSize(nwrites, wc*8, wl*8)
	if len(rest) != nameLen+readBytes+writeBytes {
		return nil, errors.Wrapf(ErrCorruptTable, "payload of %d bytes, want %d",
			len(rest), nameLen+readBytes+writeBytes)
	}
	code, err := codes.Parse(string(rest[:nameLen]))
	if err != nil {
		return nil, errors.Wrap(ErrCorruptTable, err.Error())
	}
	rest = rest[nameLen:]

	reads := readRecords(rest[:readBytes], rv, rl, nreads, missingLen)
	writes := readRecords(rest[readBytes:], wc, wl, nwrites, -1)

	t, err := build(code, order, layout, prefixBits, reads, writes)
	if err != nil {
		return nil, errors.Wrap(ErrCorruptTable, err.Error())
	}
	if t.missingLen != missingLen {
		return nil, errors.Wrapf(ErrCorruptTable, "sentinel %d, entries imply %d", missingLen, t.missingLen)
	}
	if err := Verify(t); err != nil {
		return nil, err
	}
	return t, nil
}

func readRecords(b []byte, valueBytes, lenBytes, n, missingLen int) []entry {
	p := &packedStore{buf: b, valueBytes: valueBytes, lenBytes: lenBytes, stride: valueBytes + lenBytes}
	out := make([]entry, n)
	for i := range out {
		v, l := p.get(i)
		if l == missingLen {
			out[i] = missing
		} else {
			out[i] = entry{value: v, length: l}
		}
	}
	return out
}
