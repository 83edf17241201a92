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
	"math/bits"
	"strconv"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/pkg/errors"
)

// minimalBinaryParams returns l = ⌊log2 max⌋ and limit = 2^(l+1) - max.
// Values below limit take l bits, the others l+1. For l == 63 the shift
// wraps to zero and the subtraction still yields the right limit mod 2^64.
func minimalBinaryParams(max uint64) (l int, limit uint64) {
	l = bits.Len64(max) - 1
	limit = uint64(1)<<uint(l+1) - max
	return l, limit
}

// ReadMinimalBinary reads a value in [0, max).
func ReadMinimalBinary(r ucode.BitReader, max uint64) (uint64, int, error) {
	if max == 0 {
		return 0, 0, ucode.ErrMalformedCode
	}
	l, limit := minimalBinaryParams(max)
	v, err := r.ReadBits(l)
	if err != nil {
		return 0, 0, err
	}
	if v < limit {
		return v, l, nil
	}
	b, err := r.ReadBits(1)
	if err != nil {
		return 0, 0, err
	}
	return (v<<1 | b) - limit, l + 1, nil
}

// WriteMinimalBinary writes v, which must be in [0, max).
func WriteMinimalBinary(w ucode.BitWriter, v, max uint64) (int, error) {
	if max == 0 {
		return 0, ucode.ErrMalformedCode
	}
	if v >= max {
		return 0, ucode.ErrValueOutOfRange
	}
	l, limit := minimalBinaryParams(max)
	if v < limit {
		return w.WriteBits(v, l)
	}
	t := v + limit
	if _, err := w.WriteBits(t>>1, l); err != nil {
		return 0, err
	}
	if _, err := w.WriteBits(t&1, 1); err != nil {
		return 0, err
	}
	return l + 1, nil
}

// LenMinimalBinary returns the codeword length of v in [0, max).
func LenMinimalBinary(v, max uint64) int {
	if max == 0 {
		return 0
	}
	l, limit := minimalBinaryParams(max)
	if v < limit {
		return l
	}
	return l + 1
}

// MinimalBinary is the truncated binary code for the alphabet [0, max).
// The zero value is MinimalBinary(1), whose only codeword is empty.
type MinimalBinary struct {
	maxMinus1 uint64
}

// NewMinimalBinary returns MinimalBinary(max) for max >= 1.
func NewMinimalBinary(max uint64) (MinimalBinary, error) {
	if max == 0 {
		return MinimalBinary{}, errors.Wrap(ucode.ErrMalformedCode, "minimal binary max must be at least 1")
	}
	return MinimalBinary{maxMinus1: max - 1}, nil
}

// Max returns the alphabet size.
func (c MinimalBinary) Max() uint64 { return c.maxMinus1 + 1 }

func (c MinimalBinary) Decode(r ucode.BitReader) (uint64, int, error) {
	return ReadMinimalBinary(r, c.Max())
}

func (c MinimalBinary) Encode(w ucode.BitWriter, v uint64) (int, error) {
	return WriteMinimalBinary(w, v, c.Max())
}

func (c MinimalBinary) Len(v uint64) int { return LenMinimalBinary(v, c.Max()) }

func (c MinimalBinary) String() string {
	return "MinimalBinary(" + strconv.FormatUint(c.Max(), 10) + ")"
}
