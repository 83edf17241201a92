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

import "github.com/ajroetker/go-ucodes/ucode"

// ReadUnary reads v zero bits followed by a one bit.
func ReadUnary(r ucode.BitReader) (uint64, int, error) {
	q, err := r.ReadUnary()
	if err != nil {
		return 0, 0, err
	}
	return q, unaryLen(q), nil
}

// WriteUnary writes v zero bits followed by a one bit. Runs longer than
// ucode.MaxUnaryRun are rejected since no reader would accept them.
func WriteUnary(w ucode.BitWriter, v uint64) (int, error) {
	if v > ucode.MaxUnaryRun {
		return 0, ucode.ErrValueOutOfRange
	}
	for rest := v; rest > 0; {
		n := int(min(rest, 64))
		if _, err := w.WriteBits(0, n); err != nil {
			return 0, err
		}
		rest -= uint64(n)
	}
	if _, err := w.WriteBits(1, 1); err != nil {
		return 0, err
	}
	return int(v) + 1, nil
}

// LenUnary returns v+1.
func LenUnary(v uint64) int { return unaryLen(v) }

// Unary is the unary code.
type Unary struct{}

func (Unary) Decode(r ucode.BitReader) (uint64, int, error)  { return ReadUnary(r) }
func (Unary) Encode(w ucode.BitWriter, v uint64) (int, error) { return WriteUnary(w, v) }
func (Unary) Len(v uint64) int                                { return LenUnary(v) }
func (Unary) String() string                                  { return "Unary" }
