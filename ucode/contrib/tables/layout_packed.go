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

// packedStore keeps fixed-stride records of a value field followed by a
// length field, each valueBytes / lenBytes wide in the chosen byte order.
type packedStore struct {
	buf        []byte
	bigEndian  bool
	valueBytes int
	lenBytes   int
	stride     int
}

func newPackedStore(bigEndian bool, valueBytes, lenBytes, n int) *packedStore {
	stride := valueBytes + lenBytes
	return &packedStore{
		buf:        make([]byte, n*stride),
		bigEndian:  bigEndian,
		valueBytes: valueBytes,
		lenBytes:   lenBytes,
		stride:     stride,
	}
}

func (s *packedStore) get(i int) (uint64, int) {
	base := i * s.stride
	rec := s.buf[base : base+s.stride : base+s.stride]
	return s.field(rec[:s.valueBytes]), int(s.field(rec[s.valueBytes:]))
}

func (s *packedStore) set(i int, value uint64, length int) {
	base := i * s.stride
	rec := s.buf[base : base+s.stride]
	s.putField(rec[:s.valueBytes], value)
	s.putField(rec[s.valueBytes:], uint64(length))
}

func (s *packedStore) len() int { return len(s.buf) / s.stride }

func (s *packedStore) size() int { return len(s.buf) }

func (s *packedStore) field(b []byte) uint64 {
	var v uint64
	if s.bigEndian {
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		return v
	}
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func (s *packedStore) putField(b []byte, v uint64) {
	if s.bigEndian {
		for i := len(b) - 1; i >= 0; i-- {
			b[i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := range b {
		b[i] = byte(v)
		v >>= 8
	}
}
