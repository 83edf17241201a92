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
	"sync"

	"github.com/ajroetker/go-ucodes/ucode/contrib/codes"
)

// defaultCodec builds a Codec once, on first use.
type defaultCodec struct {
	once  sync.Once
	codec *Codec
	code  codes.Code
	cfg   Config
}

func (d *defaultCodec) get() *Codec {
	d.once.Do(func() {
		if noTables {
			d.codec = ReferenceCodec(d.code)
			return
		}
		c, err := NewCodec(d.code, d.cfg)
		if err != nil {
			// The default parameters are fixed and covered by tests.
			panic(err)
		}
		d.codec = c
	})
	return d.codec
}

var (
	defaultGamma = defaultCodec{code: codes.Gamma{}, cfg: Config{PrefixBits: 9, WriteMax: 63}}
	defaultDelta = defaultCodec{code: codes.Delta{}, cfg: Config{PrefixBits: 11, WriteMax: 1023}}
	defaultZeta3 = defaultCodec{code: codes.Must(codes.NewZeta(3)), cfg: Config{PrefixBits: 12, WriteMax: 1023}}
	defaultPi2   = defaultCodec{code: codes.Must(codes.NewPi(2)), cfg: Config{PrefixBits: 12, WriteMax: 1023}}
)

// DefaultGamma returns the shared Gamma codec: 9 prefix bits, values up to 63.
func DefaultGamma() *Codec { return defaultGamma.get() }

// DefaultDelta returns the shared Delta codec: 11 prefix bits, values up to 1023.
func DefaultDelta() *Codec { return defaultDelta.get() }

// DefaultZeta3 returns the shared Zeta(3) codec: 12 prefix bits, values up to 1023.
func DefaultZeta3() *Codec { return defaultZeta3.get() }

// DefaultPi2 returns the shared Pi(2) codec: 12 prefix bits, values up to 1023.
func DefaultPi2() *Codec { return defaultPi2.get() }
