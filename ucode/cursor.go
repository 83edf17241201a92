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

// BitReader is the capability every reference decoder needs.
type BitReader interface {
	// BitOrder returns the convention the stream is laid out in.
	BitOrder() BitOrder

	// ReadBits consumes exactly n bits (0 <= n <= 64) and returns them as an
	// unsigned integer. n == 0 returns 0 and consumes nothing. If fewer than
	// n bits remain, it returns ErrInsufficientBits and consumes nothing.
	ReadBits(n int) (uint64, error)

	// ReadUnary consumes a run of zero bits terminated by a one bit and
	// returns the length of the run. The terminator is consumed too.
	ReadUnary() (uint64, error)
}

// BitPeeker is a BitReader that can look ahead without consuming, which
// is what table-driven decoding relies on.
type BitPeeker interface {
	BitReader

	// PeekBits returns the next n bits (0 <= n <= 64) without consuming them.
	PeekBits(n int) (uint64, error)

	// SkipBits consumes n bits.
	SkipBits(n int) error
}

// BitWriter is the capability every encoder needs.
type BitWriter interface {
	// BitOrder returns the convention the stream is laid out in.
	BitOrder() BitOrder

	// WriteBits appends the low n bits of value (0 <= n <= 64) and returns n.
	WriteBits(value uint64, n int) (int, error)
}

// lowMask returns a mask with the low n bits set, for 0 <= n <= 64.
func lowMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}
