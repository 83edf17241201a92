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

// Command ucodegen precomputes lookup tables for universal integer codes.
//
// Usage:
//
//	ucodegen -code 'Zeta(3)' -prefix 12 -writemax 1023 -output .
//	ucodegen -config tables.yaml -output ./ucodetables
//	ucodegen -code Gamma -prefix 9 -writemax 63 -format bin -output ./artifacts
//
// Or via go:generate:
//
//	//go:generate ucodegen -config tables.yaml -output .
//
// For every table it builds the big-endian and little-endian variants and
// either writes one artifact per bit order (-format bin) or a Go file
// embedding the artifacts with a lazily loaded codec per table (-format go).
// Artifacts are verified against the reference codes before they are
// written, and again when they are loaded.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/ajroetker/go-ucodes/ucode/contrib/tables"
)

var (
	configFile = flag.String("config", "", "YAML file listing the tables to generate")
	codeName   = flag.String("code", "", "Code of a single table, e.g. Gamma or 'Zeta(3)' (ignored with -config)")
	tableName  = flag.String("name", "", "Name of the single table (default: derived from -code)")
	prefixBits = flag.Int("prefix", 12, "Decode prefix width in bits")
	writeMax   = flag.Uint64("writemax", 1023, "Largest value in the encode table")
	layoutName = flag.String("layout", "default", "Table layout (default, merged, separated, packed-be, packed-le)")
	outputDir  = flag.String("output", ".", "Output directory")
	outputFile = flag.String("output_file", "", "Output Go file name (default: from -config or ucode_tables.gen.go)")
	packageOut = flag.String("pkg", "", "Output package name (default: from -config or ucodetables)")
	format     = flag.String("format", "go", "Output format: go or bin")
	workers    = flag.Int("workers", runtime.GOMAXPROCS(0), "Number of generator workers")
)

func main() {
	flag.Parse()

	spec, err := loadSpec()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	gen := &Generator{
		Spec:      spec,
		OutputDir: *outputDir,
		Format:    *format,
		Workers:   *workers,
	}
	written, err := gen.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, f := range written {
		fmt.Printf("Wrote %s\n", f)
	}
}

// loadSpec reads -config, or builds a one-table spec from the other flags.
func loadSpec() (*tables.GenSpec, error) {
	var spec *tables.GenSpec
	if *configFile != "" {
		data, err := os.ReadFile(*configFile)
		if err != nil {
			return nil, err
		}
		spec, err = tables.ParseGenSpec(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", *configFile, err)
		}
	} else {
		if *codeName == "" {
			return nil, fmt.Errorf("-config or -code is required")
		}
		layout, err := tables.ParseLayout(*layoutName)
		if err != nil {
			return nil, err
		}
		name := *tableName
		if name == "" {
			name = *codeName
		}
		spec = &tables.GenSpec{Tables: []tables.TableSpec{{
			Name: name,
			Code: *codeName,
			Config: tables.Config{
				PrefixBits: *prefixBits,
				WriteMax:   *writeMax,
				Layout:     layout,
			},
		}}}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}
	if *packageOut != "" {
		spec.Package = *packageOut
	}
	if *outputFile != "" {
		spec.Output = *outputFile
	}
	return spec, nil
}
