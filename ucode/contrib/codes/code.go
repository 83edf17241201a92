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
	"strings"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/pkg/errors"
)

// Code is a prefix-free code for non-negative integers.
//
// Implementations are immutable values and safe for concurrent use; the
// cursors passed to them are not.
type Code interface {
	// Decode reads one codeword and returns its value and length in bits.
	Decode(r ucode.BitReader) (value uint64, length int, err error)

	// Encode writes the codeword of value and returns its length in bits.
	Encode(w ucode.BitWriter, value uint64) (int, error)

	// Len returns the codeword length of value in bits.
	Len(value uint64) int

	// String returns the name Parse accepts, e.g. "Zeta(3)".
	String() string
}

// Must panics if err is non-nil. It is meant for package-level code values
// with constant parameters.
func Must[C Code](c C, err error) C {
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a Code from its name: "Unary", "Gamma", "Delta", "Zeta(k)",
// "Golomb(b)", "Rice(logB)", "Pi(k)", "PiWeb(k)", "ExpGolomb(k)",
// "MinimalBinary(max)" or "Fixed(n)". Names are case-insensitive and may use
// '_' or '-' as separators.
func Parse(s string) (Code, error) {
	name, arg, hasArg, err := splitCodeName(s)
	if err != nil {
		return nil, err
	}

	switch name {
	case "unary", "gamma", "delta":
		if hasArg {
			return nil, errors.Wrapf(ucode.ErrInvalidParameter, "code %q takes no parameter", s)
		}
	default:
		if !hasArg {
			return nil, errors.Wrapf(ucode.ErrInvalidParameter, "code %q needs a parameter", s)
		}
	}

	switch name {
	case "unary":
		return Unary{}, nil
	case "gamma":
		return Gamma{}, nil
	case "delta":
		return Delta{}, nil
	case "zeta":
		return NewZeta(int(min(arg, math.MaxInt32)))
	case "golomb":
		return NewGolomb(arg)
	case "rice":
		return NewRice(int(min(arg, math.MaxInt32)))
	case "pi":
		return NewPi(int(min(arg, math.MaxInt32)))
	case "piweb":
		return NewPiWeb(int(min(arg, math.MaxInt32)))
	case "expgolomb":
		return NewExpGolomb(int(min(arg, math.MaxInt32)))
	case "minimalbinary":
		return NewMinimalBinary(arg)
	case "fixed":
		return NewFixed(int(min(arg, math.MaxInt32)))
	}
	return nil, errors.Wrapf(ucode.ErrInvalidParameter, "unknown code %q", s)
}

func splitCodeName(s string) (name string, arg uint64, hasArg bool, err error) {
	s = strings.TrimSpace(s)
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return "", 0, false, errors.Wrapf(ucode.ErrInvalidParameter, "unbalanced parenthesis in %q", s)
		}
		arg, err = strconv.ParseUint(strings.TrimSpace(s[open+1:len(s)-1]), 10, 64)
		if err != nil {
			return "", 0, false, errors.Wrapf(ucode.ErrInvalidParameter, "parameter of %q: %v", s, err)
		}
		s, hasArg = s[:open], true
	}
	name = strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "", "-", "", " ", "").Replace(name)
	return name, arg, hasArg, nil
}

// log2Succ returns ⌊log2(v+1)⌋ without overflowing for v == MaxUint64.
func log2Succ(v uint64) int {
	if v == math.MaxUint64 {
		return 64
	}
	return bits.Len64(v+1) - 1
}

// unaryLen returns q+1 saturated to the int range.
func unaryLen(q uint64) int {
	if q >= math.MaxInt {
		return math.MaxInt
	}
	return int(q) + 1
}

func satAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func lowBits(n int) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}
	return uint64(1)<<uint(n) - 1
}
