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

// ReadGolomb reads a Golomb codeword with modulus b.
func ReadGolomb(r ucode.BitReader, b uint64) (uint64, int, error) {
	if b == 0 {
		return 0, 0, ucode.ErrInvalidParameter
	}
	q, err := r.ReadUnary()
	if err != nil {
		return 0, 0, err
	}
	rem, n, err := ReadMinimalBinary(r, b)
	if err != nil {
		return 0, 0, err
	}
	hi, lo := bits.Mul64(q, b)
	v, carry := bits.Add64(lo, rem, 0)
	if hi != 0 || carry != 0 {
		return 0, 0, ucode.ErrMalformedCode
	}
	return v, unaryLen(q) + n, nil
}

// WriteGolomb writes v/b in unary and v mod b in minimal binary.
func WriteGolomb(w ucode.BitWriter, v, b uint64) (int, error) {
	if b == 0 {
		return 0, ucode.ErrInvalidParameter
	}
	q, rem := v/b, v%b
	if q > ucode.MaxUnaryRun {
		return 0, ucode.ErrValueOutOfRange
	}
	ul, err := WriteUnary(w, q)
	if err != nil {
		return 0, err
	}
	n, err := WriteMinimalBinary(w, rem, b)
	if err != nil {
		return 0, err
	}
	return ul + n, nil
}

// LenGolomb returns the Golomb codeword length of v. It saturates at
// math.MaxInt for quotients no writer accepts.
func LenGolomb(v, b uint64) int {
	if b == 0 {
		return 0
	}
	return satAdd(unaryLen(v/b), LenMinimalBinary(v%b, b))
}

// Golomb is the Golomb code with modulus b. The zero value is Golomb(1),
// which is the unary code.
type Golomb struct {
	bMinus1 uint64
}

// NewGolomb returns Golomb(b) for b >= 1.
func NewGolomb(b uint64) (Golomb, error) {
	if b == 0 {
		return Golomb{}, errors.Wrap(ucode.ErrInvalidParameter, "golomb modulus must be at least 1")
	}
	return Golomb{bMinus1: b - 1}, nil
}

// B returns the modulus.
func (c Golomb) B() uint64 { return c.bMinus1 + 1 }

func (c Golomb) Decode(r ucode.BitReader) (uint64, int, error) { return ReadGolomb(r, c.B()) }

func (c Golomb) Encode(w ucode.BitWriter, v uint64) (int, error) { return WriteGolomb(w, v, c.B()) }

func (c Golomb) Len(v uint64) int { return LenGolomb(v, c.B()) }

func (c Golomb) String() string { return "Golomb(" + strconv.FormatUint(c.B(), 10) + ")" }

// ReadRice reads a Rice codeword with modulus 2^logB.
func ReadRice(r ucode.BitReader, logB int) (uint64, int, error) {
	if logB < 0 || logB > 63 {
		return 0, 0, ucode.ErrInvalidParameter
	}
	q, err := r.ReadUnary()
	if err != nil {
		return 0, 0, err
	}
	if q > math.MaxUint64>>uint(logB) {
		return 0, 0, ucode.ErrMalformedCode
	}
	rem, err := r.ReadBits(logB)
	if err != nil {
		return 0, 0, err
	}
	return q<<uint(logB) | rem, unaryLen(q) + logB, nil
}

// WriteRice writes v>>logB in unary and the low logB bits of v.
func WriteRice(w ucode.BitWriter, v uint64, logB int) (int, error) {
	if logB < 0 || logB > 63 {
		return 0, ucode.ErrInvalidParameter
	}
	ul, err := WriteUnary(w, v>>uint(logB))
	if err != nil {
		return 0, err
	}
	if _, err := w.WriteBits(v, logB); err != nil {
		return 0, err
	}
	return ul + logB, nil
}

// LenRice returns (v>>logB) + 1 + logB.
func LenRice(v uint64, logB int) int {
	return satAdd(unaryLen(v>>uint(logB)), logB)
}

// Rice is the Golomb code restricted to power-of-two moduli. The zero value
// is Rice(0), which is the unary code.
type Rice struct {
	logB int
}

// NewRice returns Rice(logB) for 0 <= logB <= 63.
func NewRice(logB int) (Rice, error) {
	if logB < 0 || logB > 63 {
		return Rice{}, errors.Wrapf(ucode.ErrInvalidParameter, "rice log2 modulus %d not in [0, 63]", logB)
	}
	return Rice{logB: logB}, nil
}

// LogB returns the log2 of the modulus.
func (c Rice) LogB() int { return c.logB }

func (c Rice) Decode(r ucode.BitReader) (uint64, int, error) { return ReadRice(r, c.logB) }

func (c Rice) Encode(w ucode.BitWriter, v uint64) (int, error) { return WriteRice(w, v, c.logB) }

func (c Rice) Len(v uint64) int { return LenRice(v, c.logB) }

func (c Rice) String() string { return "Rice(" + strconv.Itoa(c.logB) + ")" }
