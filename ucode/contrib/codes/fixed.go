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
	"strconv"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/pkg/errors"
)

// ReadFixed reads an n-bit field. n == 0 returns 0 and consumes nothing.
func ReadFixed(r ucode.BitReader, n int) (uint64, int, error) {
	v, err := r.ReadBits(n)
	if err != nil {
		return 0, 0, err
	}
	return v, n, nil
}

// WriteFixed writes v as an n-bit field.
func WriteFixed(w ucode.BitWriter, v uint64, n int) (int, error) {
	if n < 0 || n > 64 {
		return 0, ucode.ErrInvalidParameter
	}
	if v&^lowBits(n) != 0 {
		return 0, ucode.ErrValueOutOfRange
	}
	return w.WriteBits(v, n)
}

// Fixed is the plain n-bit code. The zero value is Fixed(0).
type Fixed struct {
	n int
}

// NewFixed returns Fixed(n) for 0 <= n <= 64.
func NewFixed(n int) (Fixed, error) {
	if n < 0 || n > 64 {
		return Fixed{}, errors.Wrapf(ucode.ErrInvalidParameter, "fixed width %d not in [0, 64]", n)
	}
	return Fixed{n: n}, nil
}

// Width returns n.
func (c Fixed) Width() int { return c.n }

func (c Fixed) Decode(r ucode.BitReader) (uint64, int, error) { return ReadFixed(r, c.n) }

func (c Fixed) Encode(w ucode.BitWriter, v uint64) (int, error) { return WriteFixed(w, v, c.n) }

func (c Fixed) Len(uint64) int { return c.n }

func (c Fixed) String() string { return "Fixed(" + strconv.Itoa(c.n) + ")" }
