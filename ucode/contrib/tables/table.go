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
	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/ajroetker/go-ucodes/ucode/contrib/codes"
)

// Table is an immutable pair of decode and encode lookup tables for one
// code, bit order and prefix width. It is safe for concurrent use.
type Table struct {
	code   codes.Code
	order  ucode.BitOrder
	layout Layout

	prefixBits int
	prefixMask uint64
	writeMax   uint64

	missingLen  int
	maxValue    uint64
	maxLen      int
	maxWriteLen int

	readValueWidth int
	readLenWidth   int
	writeCodeWidth int
	writeLenWidth  int

	read  store // indexed by the next prefixBits stream bits
	write store // indexed by value
}

// Code returns the code the table was generated from.
func (t *Table) Code() codes.Code { return t.code }

// Order returns the bit order of the table.
func (t *Table) Order() ucode.BitOrder { return t.order }

// Layout returns the storage layout.
func (t *Table) Layout() Layout { return t.layout }

// PrefixBits returns the number of stream bits indexing the decode side.
func (t *Table) PrefixBits() int { return t.prefixBits }

// WriteMax returns the largest value with an encode entry.
func (t *Table) WriteMax() uint64 { return t.writeMax }

// MissingLen returns the sentinel length marking a pattern whose codeword
// does not fit in PrefixBits. It is MaxLen() + 1.
func (t *Table) MissingLen() int { return t.missingLen }

// MaxValue returns the largest value the decode side produces.
func (t *Table) MaxValue() uint64 { return t.maxValue }

// MaxLen returns the longest codeword the decode side resolves.
func (t *Table) MaxLen() int { return t.maxLen }

// MaxWriteLen returns the longest codeword on the encode side.
func (t *Table) MaxWriteLen() int { return t.maxWriteLen }

// ReadValueWidth returns the width in bits of decoded value fields.
func (t *Table) ReadValueWidth() int { return t.readValueWidth }

// ReadLenWidth returns the width in bits of decode length fields.
func (t *Table) ReadLenWidth() int { return t.readLenWidth }

// WriteCodeWidth returns the width in bits of codeword fields.
func (t *Table) WriteCodeWidth() int { return t.writeCodeWidth }

// WriteLenWidth returns the width in bits of encode length fields.
func (t *Table) WriteLenWidth() int { return t.writeLenWidth }

// Size returns the memory both sides take, in bytes.
func (t *Table) Size() int { return t.read.size() + t.write.size() }

// LookupDecode returns the entry for the PrefixBits-bit pattern prefix, as
// returned by PeekBits(PrefixBits). ok is false when the pattern does not
// hold a complete codeword.
func (t *Table) LookupDecode(prefix uint64) (value uint64, length int, ok bool) {
	value, length = t.read.get(int(prefix & t.prefixMask))
	if length == t.missingLen {
		return 0, 0, false
	}
	return value, length, true
}

// LookupEncode returns the codeword of value as ReadBits(length) would
// return it. ok is false above WriteMax.
func (t *Table) LookupEncode(value uint64) (codeword uint64, length int, ok bool) {
	if value > t.writeMax {
		return 0, 0, false
	}
	codeword, length = t.write.get(int(value))
	return codeword, length, true
}

// Read decodes one codeword from r on a table hit and consumes it. On a
// miss, including fewer than PrefixBits bits left in r, nothing is consumed
// and ok is false.
func (t *Table) Read(r ucode.BitPeeker) (value uint64, length int, ok bool) {
	prefix, err := r.PeekBits(t.prefixBits)
	if err != nil {
		return 0, 0, false
	}
	value, length, ok = t.LookupDecode(prefix)
	if !ok || r.SkipBits(length) != nil {
		return 0, 0, false
	}
	return value, length, true
}

// Skip consumes one codeword from r on a table hit without producing its
// value.
func (t *Table) Skip(r ucode.BitPeeker) (length int, ok bool) {
	prefix, err := r.PeekBits(t.prefixBits)
	if err != nil {
		return 0, false
	}
	_, length = t.read.get(int(prefix & t.prefixMask))
	if length == t.missingLen || r.SkipBits(length) != nil {
		return 0, false
	}
	return length, true
}

// Write appends the codeword of value to w on a table hit. ok is false when
// value is above WriteMax; err reports a failing writer.
func (t *Table) Write(w ucode.BitWriter, value uint64) (length int, ok bool, err error) {
	codeword, length, ok := t.LookupEncode(value)
	if !ok {
		return 0, false, nil
	}
	if _, err := w.WriteBits(codeword, length); err != nil {
		return 0, true, err
	}
	return length, true, nil
}

// Len returns the codeword length of value on a table hit.
func (t *Table) Len(value uint64) (length int, ok bool) {
	if value > t.writeMax {
		return 0, false
	}
	_, length = t.write.get(int(value))
	return length, true
}
