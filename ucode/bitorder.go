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

import (
	"strings"

	"github.com/pkg/errors"
)

// BitOrder selects how codeword bits map onto a stream.
type BitOrder uint8

const (
	// MsbFirst fills each byte starting from its most significant bit.
	MsbFirst BitOrder = iota

	// LsbFirst fills each byte starting from its least significant bit.
	LsbFirst
)

// Short aliases matching the usual big-endian / little-endian naming.
const (
	BE = MsbFirst
	LE = LsbFirst
)

// BitOrders lists both conventions, in a stable order.
var BitOrders = [2]BitOrder{MsbFirst, LsbFirst}

// String returns "BE" or "LE".
func (o BitOrder) String() string {
	switch o {
	case MsbFirst:
		return "BE"
	case LsbFirst:
		return "LE"
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the two supported orders.
func (o BitOrder) Valid() bool {
	return o == MsbFirst || o == LsbFirst
}

// ParseBitOrder accepts "be", "msb", "msbfirst", "le", "lsb" and "lsbfirst",
// case-insensitively.
func ParseBitOrder(s string) (BitOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "be", "msb", "msbfirst", "msb-first":
		return MsbFirst, nil
	case "le", "lsb", "lsbfirst", "lsb-first":
		return LsbFirst, nil
	}
	return 0, errors.Wrapf(ErrInvalidParameter, "unknown bit order %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o BitOrder) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, errors.Wrapf(ErrInvalidParameter, "bit order %d", uint8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *BitOrder) UnmarshalText(text []byte) error {
	v, err := ParseBitOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
