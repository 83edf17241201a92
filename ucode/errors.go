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

package ucode

import "github.com/pkg/errors"

var (
	// ErrInsufficientBits is returned when the cursor runs out of bits before
	// a field or a unary terminator is complete. The caller may retry once
	// more input is available.
	ErrInsufficientBits = errors.New("insufficient bits")

	// ErrMalformedCode is returned when the input cannot be a valid codeword,
	// e.g. a unary run longer than MaxUnaryRun.
	ErrMalformedCode = errors.New("malformed code")

	// ErrInvalidParameter is returned when a code parameter or a field width
	// is out of its domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrValueOutOfRange is returned when a value cannot be represented by a code.
	ErrValueOutOfRange = errors.New("value out of range")
)

// MaxUnaryRun is the longest run of continuation bits a unary reader accepts.
// Longer runs are reported as ErrMalformedCode.
const MaxUnaryRun uint64 = 1 << 32
