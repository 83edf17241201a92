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
	"strconv"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/pkg/errors"
)

// ReadExpGolomb reads an exponential Golomb codeword of order k.
func ReadExpGolomb(r ucode.BitReader, k int) (uint64, int, error) {
	if k < 0 || k > 63 {
		return 0, 0, ucode.ErrInvalidParameter
	}
	g, gl, err := ReadGamma(r)
	if err != nil {
		return 0, 0, err
	}
	if g > math.MaxUint64>>uint(k) {
		return 0, 0, ucode.ErrMalformedCode
	}
	low, err := r.ReadBits(k)
	if err != nil {
		return 0, 0, err
	}
	return g<<uint(k) | low, gl + k, nil
}

// WriteExpGolomb writes v>>k in gamma followed by the low k bits of v.
func WriteExpGolomb(w ucode.BitWriter, v uint64, k int) (int, error) {
	if k < 0 || k > 63 {
		return 0, ucode.ErrInvalidParameter
	}
	gl, err := WriteGamma(w, v>>uint(k))
	if err != nil {
		return 0, err
	}
	if _, err := w.WriteBits(v, k); err != nil {
		return 0, err
	}
	return gl + k, nil
}

// LenExpGolomb returns LenGamma(v>>k) + k.
func LenExpGolomb(v uint64, k int) int { return LenGamma(v>>uint(k)) + k }

// ExpGolomb is the exponential Golomb code of order k. The zero value is
// ExpGolomb(0), which is Gamma.
type ExpGolomb struct {
	k int
}

// NewExpGolomb returns ExpGolomb(k) for 0 <= k <= 63.
func NewExpGolomb(k int) (ExpGolomb, error) {
	if k < 0 || k > 63 {
		return ExpGolomb{}, errors.Wrapf(ucode.ErrInvalidParameter, "exp-golomb order %d not in [0, 63]", k)
	}
	return ExpGolomb{k: k}, nil
}

// K returns the order.
func (c ExpGolomb) K() int { return c.k }

func (c ExpGolomb) Decode(r ucode.BitReader) (uint64, int, error) { return ReadExpGolomb(r, c.k) }

func (c ExpGolomb) Encode(w ucode.BitWriter, v uint64) (int, error) {
	return WriteExpGolomb(w, v, c.k)
}

func (c ExpGolomb) Len(v uint64) int { return LenExpGolomb(v, c.k) }

func (c ExpGolomb) String() string { return "ExpGolomb(" + strconv.Itoa(c.k) + ")" }
