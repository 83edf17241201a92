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

// Package codes implements universal variable-length integer codes bit by bit.
//
// These are the reference algorithms: the lookup tables in
// ucode/contrib/tables are generated from them and verified against them.
//
// # Families
//
//   - Fixed(n): n plain bits.
//   - MinimalBinary(max): values in [0, max) in ⌊log2 max⌋ or ⌊log2 max⌋+1 bits.
//   - Unary: v zero bits followed by a one bit.
//   - Gamma: unary length prefix, then the bits of v+1 below its leading one.
//   - Delta: like Gamma, with the length prefix itself Gamma coded.
//   - Zeta(k): unary bucket h, then a minimal binary offset inside [2^hk, 2^(h+1)k).
//   - Golomb(b): unary quotient v/b, minimal binary remainder v mod b.
//   - Rice(logB): Golomb with b = 2^logB and a fixed remainder.
//   - Pi(k): the bit length of v+1 split into a unary part and a k-bit part,
//     followed by the low bits of v+1.
//   - PiWeb(k): a one-bit escape for zero, then Pi(k) of v-1.
//   - ExpGolomb(k): Gamma of v>>k, then the low k bits of v.
//
// Every family exposes free functions (ReadGamma, WriteGamma, LenGamma, ...)
// and a value type implementing Code. Parameterised types are built with
// their New* constructor, which validates the parameter once; the zero value
// of each type is the smallest valid parameter.
//
// # Example Usage
//
//	w := ucode.NewMemWriter(ucode.LsbFirst)
//	z := codes.Must(codes.NewZeta(3))
//	n, _ := z.Encode(w, 1000)
//	v, l, _ := z.Decode(w.Reader()) // v == 1000, l == n
package codes
