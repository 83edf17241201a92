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

// MaxPiK is the largest accepted π code parameter. With k = 6 every bit
// length up to 64 already fits in the k-bit part.
const MaxPiK = 6

// piParams splits n = v+1 into its remainder width r, the unary part l
// and the k-bit part vv.
func piParams(n uint64, k int) (r int, l uint64, vv uint64) {
	r = bits.Len64(n) - 1
	h := uint64(r) + 1
	l = (h + (uint64(1) << uint(k)) - 1) >> uint(k)
	vv = l<<uint(k) - h
	return r, l, vv
}

// ReadPi reads a π_k codeword.
func ReadPi(r ucode.BitReader, k int) (uint64, int, error) {
	if k < 0 || k > MaxPiK {
		return 0, 0, ucode.ErrInvalidParameter
	}
	q, err := r.ReadUnary()
	if err != nil {
		return 0, 0, err
	}
	if q >= 64 {
		return 0, 0, ucode.ErrMalformedCode
	}
	l := q + 1
	vv, err := r.ReadBits(k)
	if err != nil {
		return 0, 0, err
	}
	h := l<<uint(k) - vv
	if h > 64 {
		return 0, 0, ucode.ErrMalformedCode
	}
	rw := int(h) - 1
	rem, err := r.ReadBits(rw)
	if err != nil {
		return 0, 0, err
	}
	return uint64(1)<<uint(rw) + rem - 1, int(l) + k + rw, nil
}

// WritePi writes v+1 as its bit length h, split into ⌈h/2^k⌉ in unary and
// the padding to the next multiple of 2^k in k bits, followed by the bits of
// v+1 below the leading one.
func WritePi(w ucode.BitWriter, v uint64, k int) (int, error) {
	if k < 0 || k > MaxPiK {
		return 0, ucode.ErrInvalidParameter
	}
	if v == math.MaxUint64 {
		return 0, ucode.ErrValueOutOfRange
	}
	rw, l, vv := piParams(v+1, k)
	if _, err := WriteUnary(w, l-1); err != nil {
		return 0, err
	}
	if _, err := w.WriteBits(vv, k); err != nil {
		return 0, err
	}
	if _, err := w.WriteBits(v+1, rw); err != nil {
		return 0, err
	}
	return int(l) + k + rw, nil
}

// LenPi returns the π_k codeword length of v.
func LenPi(v uint64, k int) int {
	if v == math.MaxUint64 {
		return math.MaxInt
	}
	rw, l, _ := piParams(v+1, k)
	return int(l) + k + rw
}

// Pi is the π_k code. The zero value is Pi(0).
type Pi struct {
	k int
}

// NewPi returns Pi(k) for 0 <= k <= MaxPiK.
func NewPi(k int) (Pi, error) {
	if k < 0 || k > MaxPiK {
		return Pi{}, errors.Wrapf(ucode.ErrInvalidParameter, "pi k %d not in [0, %d]", k, MaxPiK)
	}
	return Pi{k: k}, nil
}

// K returns the parameter.
func (c Pi) K() int { return c.k }

func (c Pi) Decode(r ucode.BitReader) (uint64, int, error) { return ReadPi(r, c.k) }

func (c Pi) Encode(w ucode.BitWriter, v uint64) (int, error) { return WritePi(w, v, c.k) }

func (c Pi) Len(v uint64) int { return LenPi(v, c.k) }

func (c Pi) String() string { return "Pi(" + strconv.Itoa(c.k) + ")" }

// ReadPiWeb reads a π-web codeword: a one bit for zero, otherwise a zero
// bit followed by π_k of v-1.
func ReadPiWeb(r ucode.BitReader, k int) (uint64, int, error) {
	if k < 0 || k > MaxPiK {
		return 0, 0, ucode.ErrInvalidParameter
	}
	b, err := r.ReadBits(1)
	if err != nil {
		return 0, 0, err
	}
	if b == 1 {
		return 0, 1, nil
	}
	v, n, err := ReadPi(r, k)
	if err != nil {
		return 0, 0, err
	}
	return v + 1, n + 1, nil
}

// WritePiWeb writes v as a π-web codeword.
func WritePiWeb(w ucode.BitWriter, v uint64, k int) (int, error) {
	if k < 0 || k > MaxPiK {
		return 0, ucode.ErrInvalidParameter
	}
	if v == 0 {
		return w.WriteBits(1, 1)
	}
	if _, err := w.WriteBits(0, 1); err != nil {
		return 0, err
	}
	n, err := WritePi(w, v-1, k)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

// LenPiWeb returns the π-web codeword length of v.
func LenPiWeb(v uint64, k int) int {
	if v == 0 {
		return 1
	}
	return satAdd(1, LenPi(v-1, k))
}

// PiWeb is the π-web code, which spends one bit to make zero cheap.
// The zero value is PiWeb(0).
type PiWeb struct {
	k int
}

// NewPiWeb returns PiWeb(k) for 0 <= k <= MaxPiK.
func NewPiWeb(k int) (PiWeb, error) {
	if k < 0 || k > MaxPiK {
		return PiWeb{}, errors.Wrapf(ucode.ErrInvalidParameter, "pi-web k %d not in [0, %d]", k, MaxPiK)
	}
	return PiWeb{k: k}, nil
}

// K returns the parameter.
func (c PiWeb) K() int { return c.k }

func (c PiWeb) Decode(r ucode.BitReader) (uint64, int, error) { return ReadPiWeb(r, c.k) }

func (c PiWeb) Encode(w ucode.BitWriter, v uint64) (int, error) { return WritePiWeb(w, v, c.k) }

func (c PiWeb) Len(v uint64) int { return LenPiWeb(v, c.k) }

func (c PiWeb) String() string { return "PiWeb(" + strconv.Itoa(c.k) + ")" }
