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

package tables

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// bitsNeeded returns the position of the highest set bit of val plus one.
func bitsNeeded[T constraints.Unsigned](val T) int {
	bits := 0
	for val > 0 {
		bits++
		val >>= 1
	}
	return bits
}

// Width returns the smallest unsigned integer width (8, 16, 32 or 64) with
// room for n bits. Widths above 64 bits are not supported.
func Width(n int) (int, error) {
	switch {
	case n < 0:
		return 0, errors.Wrapf(ErrInvalidConfig, "negative bit count %d", n)
	case n <= 8:
		return 8, nil
	case n <= 16:
		return 16, nil
	case n <= 32:
		return 32, nil
	case n <= 64:
		return 64, nil
	}
	return 0, errors.Wrapf(ErrTableTooWide, "%d bits need a 128-bit field", n)
}

// widthFor returns the field width that holds every value up to max.
func widthFor[T constraints.Unsigned](max T) (int, error) {
	return Width(bitsNeeded(max))
}

// packedSize returns the bytes n records of the given field widths take
// when packed.
func packedSize(n, valueWidth, lenWidth int) int {
	if n == 0 {
		return 0
	}
	return n * (valueWidth + lenWidth) / 8
}
