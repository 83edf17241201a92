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

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/ajroetker/go-ucodes/ucode/contrib/codes"
	"github.com/ajroetker/go-ucodes/ucode/contrib/tables"
	"github.com/ajroetker/go-ucodes/ucode/contrib/workerpool"
)

const (
	defaultPackage = "ucodetables"
	defaultOutput  = "ucode_tables.gen.go"
)

// Generator builds and writes every table of a spec.
type Generator struct {
	Spec      *tables.GenSpec
	OutputDir string
	Format    string // "go" or "bin"
	Workers   int
}

// Artifact is one generated table together with its serialized form.
type Artifact struct {
	Spec  tables.TableSpec
	Code  codes.Code
	Order ucode.BitOrder
	Table *tables.Table
	Blob  []byte
}

// Run generates the tables and writes them. It returns the written paths.
func (g *Generator) Run() ([]string, error) {
	if g.Format != "go" && g.Format != "bin" {
		return nil, fmt.Errorf("unknown format %q", g.Format)
	}
	arts, err := g.Build()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(g.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if g.Format == "bin" {
		return EmitBinary(arts, g.OutputDir)
	}

	pkg, out := g.Spec.Package, g.Spec.Output
	if pkg == "" {
		pkg = defaultPackage
	}
	if out == "" {
		out = defaultOutput
	}
	path := filepath.Join(g.OutputDir, out)
	if err := EmitGo(arts, pkg, path); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Build generates both bit orders of every table in the spec. Tables are
// spread across the worker pool one (table, order) pair at a time.
func (g *Generator) Build() ([]*Artifact, error) {
	if err := g.Spec.Validate(); err != nil {
		return nil, err
	}
	arts := make([]*Artifact, 0, 2*len(g.Spec.Tables))
	for _, ts := range g.Spec.Tables {
		code, err := codes.Parse(ts.Code)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", ts.Name, err)
		}
		for _, order := range ucode.BitOrders {
			arts = append(arts, &Artifact{Spec: ts, Code: code, Order: order})
		}
	}

	pool := workerpool.New(max(g.Workers, 1))
	defer pool.Close()
	err := pool.ParallelForAtomic(len(arts), func(i int) error {
		a := arts[i]
		cfg := a.Spec.Config
		cfg.Workers = 0
		t, err := tables.Generate(a.Code, a.Order, cfg)
		if err != nil {
			return fmt.Errorf("table %q %v: %w", a.Spec.Name, a.Order, err)
		}
		blob, err := tables.Marshal(t)
		if err != nil {
			return fmt.Errorf("table %q %v: %w", a.Spec.Name, a.Order, err)
		}
		a.Table, a.Blob = t, blob
		return nil
	})
	if err != nil {
		return nil, err
	}
	return arts, nil
}
