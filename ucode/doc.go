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

// Package ucode provides the bit cursors that universal integer codes are
// read from and written to.
//
// # Bit Order
//
// A bit stream can be laid out in one of two mirror-image conventions:
//
//   - MsbFirst: each byte is filled from its most significant bit. A field of
//     n bits is read with its first stream bit as the most significant bit of
//     the result.
//   - LsbFirst: each byte is filled from its least significant bit. A field of
//     n bits is read with its first stream bit as the least significant bit of
//     the result.
//
// Both conventions are fully supported by every code in
// ucode/contrib/codes and by every table in ucode/contrib/tables. A single
// decode or encode never mixes the two.
//
// # Cursors
//
// The codecs only touch a stream through three small interfaces:
//
//   - BitReader: ReadBits and ReadUnary, enough for every reference algorithm.
//   - BitPeeker: adds PeekBits and SkipBits, which table lookups need.
//   - BitWriter: WriteBits.
//
// MemReader and MemWriter implement them over a byte slice for both orders.
// StreamReader and StreamWriter adapt an io.Reader / io.Writer for MsbFirst
// streams.
//
// # Example Usage
//
//	w := ucode.NewMemWriter(ucode.MsbFirst)
//	w.WriteBits(0b101, 3)
//	r := ucode.NewMemReaderBits(w.Bytes(), w.BitLen(), ucode.MsbFirst)
//	v, _ := r.ReadBits(3) // v == 5
//
// Cursors are not safe for concurrent use; each decode or encode owns its
// cursor for the duration of the call.
package ucode
