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

// ReadGamma reads an Elias gamma codeword.
func ReadGamma(r ucode.BitReader) (uint64, int, error) {
	l, err := r.ReadUnary()
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
	return (uint64(1)<<l | rem) - 1, 2*int(l) + 1, nil
}

// WriteGamma writes v+1 as a unary bit length followed by its bits below
// the leading one. math.MaxUint64 cannot be represented.
func WriteGamma(w ucode.BitWriter, v uint64) (int, error) {
	if v == math.MaxUint64 {
		return 0, ucode.ErrValueOutOfRange
	}
	l := log2Succ(v)
	if _, err := WriteUnary(w, uint64(l)); err != nil {
		return 0, err
	}
	if _, err := w.WriteBits(v+1, l); err != nil {
		return 0, err
	}
	return 2*l + 1, nil
}

// LenGamma returns 2⌊log2(v+1)⌋ + 1.
func LenGamma(v uint64) int { return 2*log2Succ(v) + 1 }

// Gamma is the Elias gamma code.
type Gamma struct{}

func (Gamma) Decode(r ucode.BitReader) (uint64, int, error)  { return ReadGamma(r) }
func (Gamma) Encode(w ucode.BitWriter, v uint64) (int, error) { return WriteGamma(w, v) }
func (Gamma) Len(v uint64) int                                { return LenGamma(v) }
func (Gamma) String() string                                  { return "Gamma" }
