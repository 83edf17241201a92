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
	"math/bits"
	"strconv"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/pkg/errors"
)

// zetaBucket returns the bucket h of v+1 and its bounds [low, high).
// high is 0 when (h+1)k == 64.
func zetaBucket(v1 uint64, k int) (h int, low, high uint64) {
	h = (bits.Len64(v1) - 1) / k
	low = uint64(1) << uint(h*k)
	if (h+1)*k < 64 {
		high = uint64(1) << uint((h+1)*k)
	}
	return h, low, high
}

// ReadZeta reads a ζ_k codeword.
func ReadZeta(r ucode.BitReader, k int) (uint64, int, error) {
	if k < 1 || k > 64 {
		return 0, 0, ucode.ErrInvalidParameter
	}
	h, err := r.ReadUnary()
	if err != nil {
		return 0, 0, err
	}
	if h >= 64 || (int(h)+1)*k > 64 {
		return 0, 0, ucode.ErrMalformedCode
	}
	low := uint64(1) << uint(int(h)*k)
	var high uint64
	if (int(h)+1)*k < 64 {
		high = uint64(1) << uint((int(h)+1)*k)
	}
	x, n, err := ReadMinimalBinary(r, high-low)
	if err != nil {
		return 0, 0, err
	}
	return low + x - 1, int(h) + 1 + n, nil
}

// WriteZeta writes v as a unary bucket index followed by the minimal binary
// offset of v+1 inside the bucket.
func WriteZeta(w ucode.BitWriter, v uint64, k int) (int, error) {
	if k < 1 || k > 64 {
		return 0, ucode.ErrInvalidParameter
	}
	if v == math.MaxUint64 {
		return 0, ucode.ErrValueOutOfRange
	}
	h, low, high := zetaBucket(v+1, k)
	if (h+1)*k > 64 {
		return 0, ucode.ErrValueOutOfRange
	}
	if _, err := WriteUnary(w, uint64(h)); err != nil {
		return 0, err
	}
	n, err := WriteMinimalBinary(w, v+1-low, high-low)
	if err != nil {
		return 0, err
	}
	return h + 1 + n, nil
}

// LenZeta returns (h+1)(k+1) - 1, plus one when v+1 falls in the upper part
// of its bucket. Unrepresentable values report math.MaxInt.
func LenZeta(v uint64, k int) int {
	if k < 1 {
		return 0
	}
	if v == math.MaxUint64 {
		return math.MaxInt
	}
	h, low, _ := zetaBucket(v+1, k)
	n := (h+1)*(k+1) - 1
	if v+1-low >= low {
		n++
	}
	return n
}

// Zeta is the Boldi-Vigna ζ_k code. The zero value is Zeta(1), which
// produces the same codewords as Gamma.
type Zeta struct {
	kMinus1 int
}

// NewZeta returns Zeta(k) for 1 <= k <= 64.
func NewZeta(k int) (Zeta, error) {
	if k < 1 || k > 64 {
		return Zeta{}, errors.Wrapf(ucode.ErrInvalidParameter, "zeta k %d not in [1, 64]", k)
	}
	return Zeta{kMinus1: k - 1}, nil
}

// K returns the shrinking factor.
func (c Zeta) K() int { return c.kMinus1 + 1 }

func (c Zeta) Decode(r ucode.BitReader) (uint64, int, error) { return ReadZeta(r, c.K()) }

func (c Zeta) Encode(w ucode.BitWriter, v uint64) (int, error) { return WriteZeta(w, v, c.K()) }

func (c Zeta) Len(v uint64) int { return LenZeta(v, c.K()) }

func (c Zeta) String() string { return "Zeta(" + strconv.Itoa(c.K()) + ")" }
