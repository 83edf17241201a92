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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/ajroetker/go-ucodes/ucode/contrib/tables"
	"golang.org/x/tools/imports"
)

// EmitBinary writes one artifact file per table and bit order, named
// <name>_<order>.ucodetab.
func EmitBinary(arts []*Artifact, outDir string) ([]string, error) {
	var written []string
	for _, a := range arts {
		path := filepath.Join(outDir, artifactFilename(a.Spec, a.Order))
		if err := os.WriteFile(path, a.Blob, 0644); err != nil {
			return written, fmt.Errorf("write artifact: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}

func artifactFilename(ts tables.TableSpec, order ucode.BitOrder) string {
	return strings.ToLower(ts.Ident()) + "_" + strings.ToLower(order.String()) + ".ucodetab"
}

// EmitGo writes a Go file embedding the artifacts. For every table it emits
// the table parameters as constants and a function returning a lazily loaded
// codec.
func EmitGo(arts []*Artifact, pkgName, outPath string) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by ucodegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "import (\n")
	fmt.Fprintf(&buf, "\t\"sync\"\n\n")
	fmt.Fprintf(&buf, "\t\"github.com/ajroetker/go-ucodes/ucode/contrib/codes\"\n")
	fmt.Fprintf(&buf, "\t\"github.com/ajroetker/go-ucodes/ucode/contrib/tables\"\n")
	fmt.Fprintf(&buf, ")\n\n")

	// Artifacts come in (BE, LE) pairs per table, in spec order.
	for i := 0; i+1 < len(arts); i += 2 {
		emitTable(&buf, arts[i], arts[i+1])
	}
	emitLoader(&buf)

	formatted, err := imports.Process(outPath, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: formatting failed: %v\n", err)
		formatted = buf.Bytes()
	}
	if err := os.WriteFile(outPath, formatted, 0644); err != nil {
		return fmt.Errorf("write tables: %w", err)
	}
	return nil
}

func emitTable(buf *bytes.Buffer, be, le *Artifact) {
	name := be.Spec.Ident()
	varName := lowerFirst(name) + "Artifacts"
	t := be.Table

	fmt.Fprintf(buf, "// %s tables: %v, %d prefix bits, values up to %d encoded.\n",
		name, be.Code, t.PrefixBits(), t.WriteMax())
	fmt.Fprintf(buf, "const (\n")
	fmt.Fprintf(buf, "\t%sPrefixBits = %d\n", name, t.PrefixBits())
	fmt.Fprintf(buf, "\t%sWriteMax = %d\n", name, t.WriteMax())
	fmt.Fprintf(buf, "\t%sMaxValue = %d\n", name, t.MaxValue())
	fmt.Fprintf(buf, "\t%sMaxLen = %d\n", name, t.MaxLen())
	fmt.Fprintf(buf, "\t%sMissingLen = %d\n", name, t.MissingLen())
	fmt.Fprintf(buf, "\t%sMaxWriteLen = %d\n", name, t.MaxWriteLen())
	fmt.Fprintf(buf, ")\n\n")

	fmt.Fprintf(buf, "var %s = [2]string{\n", varName)
	fmt.Fprintf(buf, "\t%s, // %v, %v\n", strconv.Quote(string(be.Blob)), be.Order, be.Table.Layout())
	fmt.Fprintf(buf, "\t%s, // %v, %v\n", strconv.Quote(string(le.Blob)), le.Order, le.Table.Layout())
	fmt.Fprintf(buf, "}\n\n")

	fmt.Fprintf(buf, "// %s returns the %v codec backed by the generated tables.\n", name, be.Code)
	fmt.Fprintf(buf, "var %s = sync.OnceValue(func() *tables.Codec {\n", name)
	fmt.Fprintf(buf, "\treturn loadCodec(%q, %s[:])\n", be.Code.String(), varName)
	fmt.Fprintf(buf, "})\n\n")
}

func emitLoader(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "func loadCodec(name string, artifacts []string) *tables.Codec {\n")
	fmt.Fprintf(buf, "\tcode := codes.Must(codes.Parse(name))\n")
	fmt.Fprintf(buf, "\tts := make([]*tables.Table, 0, len(artifacts))\n")
	fmt.Fprintf(buf, "\tfor _, a := range artifacts {\n")
	fmt.Fprintf(buf, "\t\tt, err := tables.Unmarshal([]byte(a))\n")
	fmt.Fprintf(buf, "\t\tif err != nil {\n")
	fmt.Fprintf(buf, "\t\t\tpanic(err)\n")
	fmt.Fprintf(buf, "\t\t}\n")
	fmt.Fprintf(buf, "\t\tts = append(ts, t)\n")
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "\tc, err := tables.NewCodecFromTables(code, ts...)\n")
	fmt.Fprintf(buf, "\tif err != nil {\n")
	fmt.Fprintf(buf, "\t\tpanic(err)\n")
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "\treturn c\n")
	fmt.Fprintf(buf, "}\n")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
