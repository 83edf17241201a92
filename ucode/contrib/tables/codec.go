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
	"github.com/ajroetker/go-ucodes/ucode/contrib/workerpool"
	"github.com/pkg/errors"
)

// Codec is a code accelerated by one table per bit order. It answers from
// the table when it can and falls back to the reference algorithm on a
// miss. Codec implements codes.Code and is safe for concurrent use.
type Codec struct {
	code   codes.Code
	tables [2]*Table // indexed by ucode.BitOrder
}

var _ codes.Code = (*Codec)(nil)

// NewCodec generates the tables of code for both bit orders.
func NewCodec(code codes.Code, cfg Config) (*Codec, error) {
	var pool *workerpool.Pool
	if cfg.Workers > 1 {
		pool = workerpool.New(cfg.Workers)
		defer pool.Close()
	}
	c := &Codec{code: code}
	for _, order := range ucode.BitOrders {
		t, err := GenerateWithPool(pool, code, order, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "generating %v %v table", code, order)
		}
		c.tables[order] = t
	}
	return c, nil
}

// NewCodecFromTables combines tables loaded elsewhere, e.g. with Unmarshal.
// Either may be nil, in which case that bit order always uses the reference
// algorithm. Both tables must share the same code.
func NewCodecFromTables(code codes.Code, tables ...*Table) (*Codec, error) {
	if code == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "nil code")
	}
	c := &Codec{code: code}
	for _, t := range tables {
		if t == nil {
			continue
		}
		if t.code.String() != code.String() {
			return nil, errors.Wrapf(ErrTableMismatch, "table of %v used for %v", t.code, code)
		}
		if c.tables[t.order] != nil {
			return nil, errors.Wrapf(ErrTableMismatch, "two %v tables for %v", t.order, code)
		}
		c.tables[t.order] = t
	}
	return c, nil
}

// ReferenceCodec returns a Codec without tables.
func ReferenceCodec(code codes.Code) *Codec {
	return &Codec{code: code}
}

// Code returns the underlying reference code.
func (c *Codec) Code() codes.Code { return c.code }

// Table returns the table for order, or nil.
func (c *Codec) Table(order ucode.BitOrder) *Table {
	return c.table(order)
}

func (c *Codec) table(order ucode.BitOrder) *Table {
	if !order.Valid() {
		return nil
	}
	return c.tables[order]
}

// Decode implements codes.Code. Readers that cannot peek, such as
// ucode.StreamReader, always take the reference path.
func (c *Codec) Decode(r ucode.BitReader) (uint64, int, error) {
	if t := c.table(r.BitOrder()); t != nil {
		if p, ok := r.(ucode.BitPeeker); ok {
			if v, n, ok := t.Read(p); ok {
				return v, n, nil
			}
		}
	}
	return c.code.Decode(r)
}

// Skip consumes one codeword and returns its length.
func (c *Codec) Skip(r ucode.BitReader) (int, error) {
	if t := c.table(r.BitOrder()); t != nil {
		if p, ok := r.(ucode.BitPeeker); ok {
			if n, ok := t.Skip(p); ok {
				return n, nil
			}
		}
	}
	_, n, err := c.code.Decode(r)
	return n, err
}

// Encode implements codes.Code.
func (c *Codec) Encode(w ucode.BitWriter, value uint64) (int, error) {
	if t := c.table(w.BitOrder()); t != nil {
		n, ok, err := t.Write(w, value)
		if ok {
			return n, err
		}
	}
	return c.code.Encode(w, value)
}

// Len implements codes.Code. Lengths do not depend on the bit order, so
// either table answers.
func (c *Codec) Len(value uint64) int {
	for _, t := range c.tables {
		if t == nil {
			continue
		}
		if n, ok := t.Len(value); ok {
			return n
		}
	}
	return c.code.Len(value)
}

// String implements codes.Code.
func (c *Codec) String() string { return c.code.String() }
