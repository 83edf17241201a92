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

// Package tables accelerates universal codes with precomputed lookup tables.
//
// A Table is generated once from a reference code in ucode/contrib/codes for
// one bit order and a prefix width P. Its decode side is indexed by the next
// P bits of the stream and holds the decoded value and codeword length, or
// a sentinel length (MissingLen) when P bits are not enough to decide. Its
// encode side is indexed by value and holds the codeword and its length for
// every value up to WriteMax.
//
// Entries are stored in one of four layouts:
//
//   - Merged: one slice of (value, length) records.
//   - Separated: a slice of values and a parallel slice of lengths.
//   - PackedBE / PackedLE: a flat byte slice with each field in the named
//     byte order at a fixed stride.
//
// Field widths are the smallest of 8, 16, 32 and 64 bits that hold the
// largest value, the sentinel and the longest codeword. The layout never
// changes what a table answers, only its size and lookup cost.
//
// Every generated or loaded table is checked against the reference
// algorithm before it is returned, so a Table always agrees with its Code.
//
// # Example Usage
//
//	t, err := tables.Generate(codes.Gamma{}, ucode.BE, tables.Config{
//	    PrefixBits: 9,
//	    WriteMax:   63,
//	    Layout:     tables.Merged,
//	})
//
//	c := tables.DefaultGamma()
//	v, n, err := c.Decode(reader) // table hit, or the reference fallback
//
// # Environment
//
// UCODE_NO_TABLES disables tables in the default codecs. UCODE_TABLE_LAYOUT
// selects the layout of the default tables; it defaults to the packed layout
// matching the host byte order.
package tables
