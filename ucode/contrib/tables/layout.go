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
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Layout selects how a Table stores its entries.
type Layout uint8

const (
	// LayoutDefault resolves to DefaultLayout when a table is generated.
	LayoutDefault Layout = iota

	// Merged stores one (value, length) record per entry.
	Merged

	// Separated stores values and lengths in two parallel slices.
	Separated

	// PackedBE stores each field big-endian in a flat byte slice.
	PackedBE

	// PackedLE stores each field little-endian in a flat byte slice.
	PackedLE
)

// Layouts lists the concrete layouts.
var Layouts = [4]Layout{Merged, Separated, PackedBE, PackedLE}

func (l Layout) String() string {
	switch l {
	case LayoutDefault:
		return "default"
	case Merged:
		return "merged"
	case Separated:
		return "separated"
	case PackedBE:
		return "packed-be"
	case PackedLE:
		return "packed-le"
	default:
		return "unknown"
	}
}

// Valid reports whether l is LayoutDefault or a concrete layout.
func (l Layout) Valid() bool {
	return l <= PackedLE
}

// resolve maps LayoutDefault to the process default.
func (l Layout) resolve() Layout {
	if l == LayoutDefault {
		return DefaultLayout()
	}
	return l
}

// ParseLayout accepts the names printed by String, "two-tables" for
// Separated, and "native" for the packed layout of the host byte order.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return LayoutDefault, nil
	case "merged":
		return Merged, nil
	case "separated", "two-tables", "two_tables":
		return Separated, nil
	case "packed-be", "packed_be", "packedbe":
		return PackedBE, nil
	case "packed-le", "packed_le", "packedle":
		return PackedLE, nil
	case "native":
		return NativeLayout(), nil
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown layout %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Layout) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, errors.Wrapf(ErrInvalidConfig, "layout %d", uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layout) UnmarshalText(text []byte) error {
	v, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// store holds one side of a table: n entries of (value, length). For the
// encode side the value is the codeword.
type store interface {
	get(i int) (value uint64, length int)
	set(i int, value uint64, length int)
	len() int
	size() int
}

type mergedEntry[V, L constraints.Unsigned] struct {
	value  V
	length L
}

type mergedStore[V, L constraints.Unsigned] []mergedEntry[V, L]

func (s mergedStore[V, L]) get(i int) (uint64, int) {
	e := s[i]
	return uint64(e.value), int(e.length)
}

func (s mergedStore[V, L]) set(i int, value uint64, length int) {
	s[i] = mergedEntry[V, L]{value: V(value), length: L(length)}
}

func (s mergedStore[V, L]) len() int { return len(s) }

// size includes the padding the record alignment costs.
func (s mergedStore[V, L]) size() int {
	var e mergedEntry[V, L]
	return len(s) * int(unsafe.Sizeof(e))
}

type separatedStore[V, L constraints.Unsigned] struct {
	values  []V
	lengths []L
}

func (s *separatedStore[V, L]) get(i int) (uint64, int) {
	return uint64(s.values[i]), int(s.lengths[i])
}

func (s *separatedStore[V, L]) set(i int, value uint64, length int) {
	s.values[i] = V(value)
	s.lengths[i] = L(length)
}

func (s *separatedStore[V, L]) len() int { return len(s.values) }

func (s *separatedStore[V, L]) size() int {
	var v V
	var l L
	return len(s.values) * int(unsafe.Sizeof(v)+unsafe.Sizeof(l))
}

// newStore allocates n entries in the given concrete layout with the given
// field widths in bits.
func newStore(layout Layout, valueWidth, lenWidth, n int) store {
	switch layout {
	case PackedBE:
		return newPackedStore(true, valueWidth/8, lenWidth/8, n)
	case PackedLE:
		return newPackedStore(false, valueWidth/8, lenWidth/8, n)
	}
	switch valueWidth {
	case 8:
		return newFlatStore[uint8](layout, lenWidth, n)
	case 16:
		return newFlatStore[uint16](layout, lenWidth, n)
	case 32:
		return newFlatStore[uint32](layout, lenWidth, n)
	default:
		return newFlatStore[uint64](layout, lenWidth, n)
	}
}

func newFlatStore[V constraints.Unsigned](layout Layout, lenWidth, n int) store {
	switch lenWidth {
	case 8:
		return makeFlatStore[V, uint8](layout, n)
	case 16:
		return makeFlatStore[V, uint16](layout, n)
	case 32:
		return makeFlatStore[V, uint32](layout, n)
	default:
		return makeFlatStore[V, uint64](layout, n)
	}
}

func makeFlatStore[V, L constraints.Unsigned](layout Layout, n int) store {
	if layout == Merged {
		return make(mergedStore[V, L], n)
	}
	return &separatedStore[V, L]{values: make([]V, n), lengths: make([]L, n)}
}
