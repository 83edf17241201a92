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

package codes

import (
	"math"

	"github.com/ajroetker/go-ucodes/ucode"
)

// ReadDelta reads an Elias delta codeword.
func ReadDelta(r ucode.BitReader) (uint64, int, error) {
	l, gl, err := ReadGamma(r)
	if err != nil {
		return 0, 0, err
	}
	if l > 63 {
		return 0, 0, ucode.ErrMalformedCode
	}
	rem, err := r.ReadBits(int(l))
	if err != nil {
		return 0, 0, err
	}
	return (uint64(1)<<l | rem) - 1, gl + int(l), nil
}

// WriteDelta writes the bit length of v+1 in gamma, then its bits below
// the leading one.
func WriteDelta(w ucode.BitWriter, v uint64) (int, error) {
	if v == math.MaxUint64 {
		return 0, ucode.ErrValueOutOfRange
	}
	l := log2Succ(v)
	gl, err := WriteGamma(w, uint64(l))
	if err != nil {
		return 0, err
	}
	if _, err := w.WriteBits(v+1, l); err != nil {
		return 0, err
	}
	return gl + l, nil
}

// LenDelta returns the delta codeword length of v.
func LenDelta(v uint64) int {
	l := log2Succ(v)
	return l + LenGamma(uint64(l))
}

// Delta is the Elias delta code.
type Delta struct{}

func (Delta) Decode(r ucode.BitReader) (uint64, int, error)  { return ReadDelta(r) }
func (Delta) Encode(w ucode.BitWriter, v uint64) (int, error) { return WriteDelta(w, v) }
func (Delta) Len(v uint64) int                                { return LenDelta(v) }
func (Delta) String() string                                  { return "Delta" }
