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
	"slices"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/ajroetker/go-ucodes/ucode/contrib/codes"
	"github.com/ajroetker/go-ucodes/ucode/contrib/workerpool"
	"github.com/pkg/errors"
)

// batchSize is the number of patterns or values a worker takes at a time.
const batchSize = 1024

// entry is one generated (value, length) pair; length < 0 marks a pattern
// the reference decoder cannot resolve, or a value it cannot encode.
type entry struct {
	value  uint64
	length int
}

var missing = entry{length: -1}

// Generate builds and verifies the table of code for one bit order.
// When cfg.Workers > 1 the work is split across that many goroutines.
func Generate(code codes.Code, order ucode.BitOrder, cfg Config) (*Table, error) {
	var pool *workerpool.Pool
	if cfg.Workers > 1 {
		pool = workerpool.New(cfg.Workers)
		defer pool.Close()
	}
	return GenerateWithPool(pool, code, order, cfg)
}

// GenerateWithPool is Generate on a caller-owned pool, so that many tables
// can share one set of workers. A nil pool generates on the calling
// goroutine; cfg.Workers is ignored.
func GenerateWithPool(pool *workerpool.Pool, code codes.Code, order ucode.BitOrder, cfg Config) (*Table, error) {
	if code == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "nil code")
	}
	if !order.Valid() {
		return nil, errors.Wrapf(ucode.ErrInvalidParameter, "bit order %d", uint8(order))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := cfg.PrefixBits

	reads := make([]entry, 1<<p)
	err := forBatches(pool, len(reads), func(start, end int) error {
		w := ucode.NewMemWriter(order)
		for i := start; i < end; i++ {
			reads[i] = decodePattern(code, w, uint64(i), p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	writes := make([]entry, cfg.WriteMax+1)
	err = forBatches(pool, len(writes), func(start, end int) error {
		w := ucode.NewMemWriter(order)
		for v := start; v < end; v++ {
			writes[v] = encodeValue(code, w, uint64(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n := slices.IndexFunc(writes, func(e entry) bool { return e.length < 0 }); n >= 0 {
		if n == 0 {
			return nil, errors.Wrapf(ErrInvalidConfig, "%v cannot encode 0 in 64 bits", code)
		}
		writes = writes[:n]
	}

	t, err := build(code, order, cfg.Layout.resolve(), p, reads, writes)
	if err != nil {
		return nil, err
	}
	if err := verify(pool, t); err != nil {
		return nil, err
	}
	return t, nil
}

// decodePattern runs the reference decoder on the p-bit pattern that
// PeekBits(p) would return as prefix. Any decode error is a miss.
func decodePattern(code codes.Code, w *ucode.MemWriter, prefix uint64, p int) entry {
	w.Reset()
	if _, err := w.WriteBits(prefix, p); err != nil {
		return missing
	}
	value, length, err := code.Decode(w.Reader())
	if err != nil {
		return missing
	}
	return entry{value: value, length: length}
}

// encodeValue runs the reference encoder and reads the codeword back the
// way a reader of the same bit order would see it. Codewords longer than
// 64 bits are reported as missing.
func encodeValue(code codes.Code, w *ucode.MemWriter, value uint64) entry {
	if code.Len(value) > 64 {
		return missing
	}
	w.Reset()
	n, err := code.Encode(w, value)
	if err != nil || n > 64 {
		return missing
	}
	codeword, err := w.Reader().ReadBits(n)
	if err != nil {
		return missing
	}
	return entry{value: codeword, length: n}
}

// build lays out generated or unmarshalled entries. It computes the
// sentinel and the field widths.
func build(code codes.Code, order ucode.BitOrder, layout Layout, prefixBits int, reads, writes []entry) (*Table, error) {
	if layout == LayoutDefault || !layout.Valid() {
		return nil, errors.Wrapf(ErrInvalidConfig, "layout %v", layout)
	}
	t := &Table{
		code:       code,
		order:      order,
		layout:     layout,
		prefixBits: prefixBits,
		prefixMask: uint64(1)<<uint(prefixBits) - 1,
		writeMax:   uint64(len(writes) - 1),
	}
	for _, e := range reads {
		if e.length >= 0 {
			t.maxValue = max(t.maxValue, e.value)
			t.maxLen = max(t.maxLen, e.length)
		}
	}
	t.missingLen = t.maxLen + 1
	for _, e := range writes {
		t.maxWriteLen = max(t.maxWriteLen, e.length)
	}

	var err error
	if t.readValueWidth, err = widthFor(t.maxValue); err != nil {
		return nil, err
	}
	if t.readLenWidth, err = widthFor(uint(t.missingLen)); err != nil {
		return nil, err
	}
	if t.writeCodeWidth, err = Width(t.maxWriteLen); err != nil {
		return nil, err
	}
	if t.writeLenWidth, err = widthFor(uint(t.maxWriteLen)); err != nil {
		return nil, err
	}

	t.read = newStore(layout, t.readValueWidth, t.readLenWidth, len(reads))
	for i, e := range reads {
		if e.length < 0 {
			t.read.set(i, 0, t.missingLen)
		} else {
			t.read.set(i, e.value, e.length)
		}
	}
	t.write = newStore(layout, t.writeCodeWidth, t.writeLenWidth, len(writes))
	for v, e := range writes {
		t.write.set(v, e.value, e.length)
	}
	return t, nil
}

func forBatches(pool *workerpool.Pool, n int, fn func(start, end int) error) error {
	if pool == nil {
		return fn(0, n)
	}
	return pool.ParallelForBatched(n, batchSize, fn)
}
