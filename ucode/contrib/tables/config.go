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
	"strings"
	"unicode"

	"github.com/ajroetker/go-ucodes/ucode/contrib/codes"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

const (
	// MaxPrefixBits bounds the decode side to 2^20 entries.
	MaxPrefixBits = 20

	// MaxWriteMax bounds the encode side to 2^20 + 1 entries.
	MaxWriteMax = 1 << 20
)

// Config describes the tables to generate for one code.
type Config struct {
	// PrefixBits is the number of stream bits indexing the decode side.
	PrefixBits int `json:"prefixBits"`

	// WriteMax is the largest value with an encode entry. Generation stops
	// earlier at the first value the code cannot encode in 64 bits.
	WriteMax uint64 `json:"writeMax"`

	// Layout selects the storage of both sides.
	Layout Layout `json:"layout,omitempty"`

	// Workers splits generation across a worker pool when greater than one.
	Workers int `json:"workers,omitempty"`
}

// Validate checks the bounds of c.
func (c Config) Validate() error {
	if c.PrefixBits < 1 || c.PrefixBits > MaxPrefixBits {
		return errors.Wrapf(ErrInvalidConfig, "prefix bits %d not in [1, %d]", c.PrefixBits, MaxPrefixBits)
	}
	if c.WriteMax > MaxWriteMax {
		return errors.Wrapf(ErrInvalidConfig, "write max %d above %d", c.WriteMax, MaxWriteMax)
	}
	if !c.Layout.Valid() {
		return errors.Wrapf(ErrInvalidConfig, "layout %d", uint8(c.Layout))
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative worker count %d", c.Workers)
	}
	return nil
}

// ParseConfig reads a Config from YAML (or JSON) and validates it.
//
//	prefixBits: 12
//	writeMax: 1023
//	layout: packed-le
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// TableSpec names one code and the Config to generate its tables with.
type TableSpec struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Config
}

// Ident turns the table name into an exported Go identifier: "zeta_3" and
// "Zeta(3)" both become "Zeta3". Generators derive file and symbol names
// from it.
func (t TableSpec) Ident() string {
	var b strings.Builder
	upper := true
	for _, r := range t.Name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteByte('T')
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Table"
	}
	return b.String()
}

// GenSpec is the input of an offline generator run.
//
//	package: ucodetables
//	output: tables_gen.go
//	tables:
//	  - name: gamma
//	    code: Gamma
//	    prefixBits: 9
//	    writeMax: 63
//	  - name: zeta3
//	    code: Zeta(3)
//	    prefixBits: 12
//	    writeMax: 1023
//	    layout: separated
type GenSpec struct {
	Package string      `json:"package"`
	Output  string      `json:"output"`
	Tables  []TableSpec `json:"tables"`
}

// ParseGenSpec reads a GenSpec from YAML (or JSON) and validates every
// table in it.
func ParseGenSpec(data []byte) (*GenSpec, error) {
	var s GenSpec
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every table has a name, a known code and a valid
// Config, and that no two names share an identifier, compared
// case-insensitively since generated file names are lower case.
func (s *GenSpec) Validate() error {
	if len(s.Tables) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no tables")
	}
	seen := make(map[string]string, len(s.Tables))
	for i, t := range s.Tables {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return errors.Wrapf(ErrInvalidConfig, "table %d has no name", i)
		}
		ident := strings.ToLower(t.Ident())
		if prev, ok := seen[ident]; ok {
			return errors.Wrapf(ErrInvalidConfig, "table names %q and %q both map to %s", prev, name, t.Ident())
		}
		seen[ident] = name
		if _, err := codes.Parse(t.Code); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "table %q: %v", name, err)
		}
		if err := t.Config.Validate(); err != nil {
			return errors.Wrapf(err, "table %q", name)
		}
	}
	return nil
}
