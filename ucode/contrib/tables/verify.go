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
	"github.com/ajroetker/go-ucodes/ucode/contrib/workerpool"
	"github.com/pkg/errors"
)

// Verify re-runs the reference algorithm over every decode pattern and
// every encode value of t and checks the stored entries against it. It
// also checks that every codeword short enough to fit in PrefixBits
// decodes to its value whatever bits follow it.
func Verify(t *Table) error {
	return verify(nil, t)
}

func verify(pool *workerpool.Pool, t *Table) error {
	p := t.prefixBits
	err := forBatches(pool, 1<<p, func(start, end int) error {
		w := ucode.NewMemWriter(t.order)
		for i := start; i < end; i++ {
			want := decodePattern(t.code, w, uint64(i), p)
			v, n, ok := t.LookupDecode(uint64(i))
			if ok != (want.length >= 0) || ok && (v != want.value || n != want.length) {
				return errors.Wrapf(ErrTableMismatch, "%v %v pattern %0*b: table (%d, %d, %v), reference (%d, %d)",
					t.code, t.order, p, i, v, n, ok, want.value, want.length)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return forBatches(pool, int(t.writeMax)+1, func(start, end int) error {
		w := ucode.NewMemWriter(t.order)
		for v := start; v < end; v++ {
			want := encodeValue(t.code, w, uint64(v))
			cw, n, ok := t.LookupEncode(uint64(v))
			if want.length < 0 || !ok || cw != want.value || n != want.length {
				return errors.Wrapf(ErrTableMismatch, "%v %v value %d: table (%#x, %d), reference (%#x, %d)",
					t.code, t.order, v, cw, n, want.value, want.length)
			}
			if n <= p {
				if err := verifyExtensions(t, uint64(v), cw, n); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// verifyExtensions checks that every decode pattern starting with the
// n-bit codeword cw resolves to (value, n).
func verifyExtensions(t *Table, value, cw uint64, n int) error {
	free := t.prefixBits - n
	for e := range uint64(1) << uint(free) {
		var prefix uint64
		if t.order == ucode.MsbFirst {
			prefix = cw<<uint(free) | e
		} else {
			prefix = cw | e<<uint(n)
		}
		v, l, ok := t.LookupDecode(prefix)
		if !ok || v != value || l != n {
			return errors.Wrapf(ErrTableMismatch, "%v %v pattern %0*b starts with the codeword of %d but decodes to (%d, %d, %v)",
				t.code, t.order, t.prefixBits, prefix, value, v, l, ok)
		}
	}
	return nil
}
