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
	"errors"
	"fmt"
	"testing"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/ajroetker/go-ucodes/ucode/contrib/codes"
)

func mustGenerate(t testing.TB, code codes.Code, order ucode.BitOrder, cfg Config) *Table {
	t.Helper()
	tab, err := Generate(code, order, cfg)
	if err != nil {
		t.Fatalf("Generate(%v, %v, %+v): %v", code, order, cfg, err)
	}
	return tab
}

func testCodes() []codes.Code {
	return []codes.Code{
		codes.Unary{}, codes.Gamma{}, codes.Delta{},
		codes.Must(codes.NewZeta(2)), codes.Must(codes.NewZeta(3)),
		codes.Must(codes.NewGolomb(3)), codes.Must(codes.NewGolomb(10)),
		codes.Must(codes.NewRice(2)),
		codes.Must(codes.NewPi(2)), codes.Must(codes.NewPiWeb(2)),
		codes.Must(codes.NewExpGolomb(2)),
		codes.Must(codes.NewMinimalBinary(10)), codes.Must(codes.NewFixed(5)),
	}
}

// ============================================================================
// Width selection
// ============================================================================

func TestWidth(t *testing.T) {
	tests := []struct {
		bits int
		want int
	}{
		{0, 8}, {1, 8}, {8, 8}, {9, 16}, {16, 16}, {17, 32}, {32, 32}, {33, 64}, {64, 64},
	}
	for _, tt := range tests {
		got, err := Width(tt.bits)
		if err != nil || got != tt.want {
			t.Errorf("Width(%d) = (%d, %v), want %d", tt.bits, got, err, tt.want)
		}
	}
	if _, err := Width(65); !errors.Is(err, ErrTableTooWide) {
		t.Errorf("Width(65) err = %v, want ErrTableTooWide", err)
	}
	if got := bitsNeeded(uint64(0)); got != 0 {
		t.Errorf("bitsNeeded(0) = %d, want 0", got)
	}
	if got := bitsNeeded(uint16(256)); got != 9 {
		t.Errorf("bitsNeeded(256) = %d, want 9", got)
	}
}

// ============================================================================
// Generation
// ============================================================================

func TestTableMatchesReference(t *testing.T) {
	const p = 8
	for _, code := range testCodes() {
		for _, order := range ucode.BitOrders {
			t.Run(fmt.Sprintf("%v/%v", code, order), func(t *testing.T) {
				var tabs []*Table
				for _, layout := range Layouts {
					tabs = append(tabs, mustGenerate(t, code, order, Config{PrefixBits: p, WriteMax: 255, Layout: layout}))
				}

				w := ucode.NewMemWriter(order)
				for i := range uint64(1) << p {
					w.Reset()
					w.WriteBits(i, p)
					wantV, wantN, err := code.Decode(w.Reader())
					for _, tab := range tabs {
						v, n, ok := tab.LookupDecode(i)
						if ok != (err == nil) {
							t.Fatalf("%v pattern %08b: ok = %v, reference err = %v", tab.Layout(), i, ok, err)
						}
						if ok && (v != wantV || n != wantN) {
							t.Fatalf("%v pattern %08b: (%d, %d), reference (%d, %d)", tab.Layout(), i, v, n, wantV, wantN)
						}
					}
				}

				for v := range tabs[0].WriteMax() + 1 {
					w.Reset()
					n, err := code.Encode(w, v)
					if err != nil {
						t.Fatalf("reference Encode(%d): %v", v, err)
					}
					want, _ := w.Reader().ReadBits(n)
					for _, tab := range tabs {
						cw, l, ok := tab.LookupEncode(v)
						if !ok || cw != want || l != n {
							t.Fatalf("%v value %d: (%#x, %d, %v), reference (%#x, %d)", tab.Layout(), v, cw, l, ok, want, n)
						}
					}
				}
				for _, tab := range tabs[1:] {
					if tab.MissingLen() != tabs[0].MissingLen() || tab.WriteMax() != tabs[0].WriteMax() {
						t.Errorf("%v metadata differs from %v", tab.Layout(), tabs[0].Layout())
					}
				}
			})
		}
	}
}

func TestGammaSentinel(t *testing.T) {
	tests := []struct {
		order   ucode.BitOrder
		pattern uint64
		value   uint64
		length  int
		ok      bool
	}{
		{ucode.BE, 0b1000, 0, 1, true},
		{ucode.BE, 0b1111, 0, 1, true},
		{ucode.BE, 0b0101, 1, 3, true},
		{ucode.BE, 0b0110, 2, 3, true},
		{ucode.BE, 0b0011, 0, 0, false},
		{ucode.BE, 0b0001, 0, 0, false},
		{ucode.BE, 0b0000, 0, 0, false},
		{ucode.LE, 0b0001, 0, 1, true},
		{ucode.LE, 0b0010, 1, 3, true},
		{ucode.LE, 0b0110, 2, 3, true},
		{ucode.LE, 0b1100, 0, 0, false},
		{ucode.LE, 0b1000, 0, 0, false},
	}
	for _, layout := range Layouts {
		tabs := map[ucode.BitOrder]*Table{}
		for _, order := range ucode.BitOrders {
			tabs[order] = mustGenerate(t, codes.Gamma{}, order, Config{PrefixBits: 4, WriteMax: 63, Layout: layout})
		}
		for _, tt := range tests {
			tab := tabs[tt.order]
			v, n, ok := tab.LookupDecode(tt.pattern)
			if ok != tt.ok || v != tt.value || n != tt.length {
				t.Errorf("%v %v pattern %04b = (%d, %d, %v), want (%d, %d, %v)",
					layout, tt.order, tt.pattern, v, n, ok, tt.value, tt.length, tt.ok)
			}
		}
		tab := tabs[ucode.BE]
		if tab.MaxLen() != 3 || tab.MissingLen() != 4 || tab.MaxValue() != 2 {
			t.Errorf("%v: MaxLen %d MissingLen %d MaxValue %d, want 3 4 2",
				layout, tab.MaxLen(), tab.MissingLen(), tab.MaxValue())
		}
	}
}

func TestEffectiveWriteMax(t *testing.T) {
	tests := []struct {
		code codes.Code
		want uint64
	}{
		{codes.Unary{}, 63},
		{codes.Must(codes.NewMinimalBinary(10)), 9},
		{codes.Must(codes.NewFixed(3)), 7},
		{codes.Gamma{}, 1000},
	}
	for _, tt := range tests {
		tab := mustGenerate(t, tt.code, ucode.LE, Config{PrefixBits: 6, WriteMax: 1000, Layout: Merged})
		if tab.WriteMax() != tt.want {
			t.Errorf("%v WriteMax() = %d, want %d", tt.code, tab.WriteMax(), tt.want)
		}
		if _, _, ok := tab.LookupEncode(tt.want + 1); ok {
			t.Errorf("%v LookupEncode(%d) hit past WriteMax", tt.code, tt.want+1)
		}
	}
}

func TestZeroLengthCode(t *testing.T) {
	tab := mustGenerate(t, codes.MinimalBinary{}, ucode.BE, Config{PrefixBits: 3, WriteMax: 5})
	for i := range uint64(8) {
		v, n, ok := tab.LookupDecode(i)
		if !ok || v != 0 || n != 0 {
			t.Errorf("pattern %03b = (%d, %d, %v), want (0, 0, true)", i, v, n, ok)
		}
	}
	if tab.WriteMax() != 0 || tab.MissingLen() != 1 {
		t.Errorf("WriteMax %d MissingLen %d, want 0 and 1", tab.WriteMax(), tab.MissingLen())
	}
}

func TestGenerateParallelMatchesSequential(t *testing.T) {
	code := codes.Must(codes.NewZeta(3))
	for _, order := range ucode.BitOrders {
		seq := mustGenerate(t, code, order, Config{PrefixBits: 14, WriteMax: 5000, Layout: Separated})
		par := mustGenerate(t, code, order, Config{PrefixBits: 14, WriteMax: 5000, Layout: Separated, Workers: 4})
		for i := range uint64(1) << 14 {
			v1, n1, ok1 := seq.LookupDecode(i)
			v2, n2, ok2 := par.LookupDecode(i)
			if v1 != v2 || n1 != n2 || ok1 != ok2 {
				t.Fatalf("%v pattern %d: sequential (%d, %d, %v), parallel (%d, %d, %v)", order, i, v1, n1, ok1, v2, n2, ok2)
			}
		}
		if seq.WriteMax() != par.WriteMax() || seq.Size() != par.Size() {
			t.Errorf("%v: sequential and parallel metadata differ", order)
		}
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name  string
		code  codes.Code
		order ucode.BitOrder
		cfg   Config
	}{
		{"zero prefix", codes.Gamma{}, ucode.BE, Config{PrefixBits: 0}},
		{"wide prefix", codes.Gamma{}, ucode.BE, Config{PrefixBits: 21}},
		{"write max", codes.Gamma{}, ucode.BE, Config{PrefixBits: 8, WriteMax: 1<<20 + 1}},
		{"layout", codes.Gamma{}, ucode.BE, Config{PrefixBits: 8, Layout: 9}},
		{"workers", codes.Gamma{}, ucode.BE, Config{PrefixBits: 8, Workers: -1}},
		{"nil code", nil, ucode.BE, Config{PrefixBits: 8}},
	}
	for _, tt := range tests {
		if _, err := Generate(tt.code, tt.order, tt.cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: err = %v, want ErrInvalidConfig", tt.name, err)
		}
	}
	if _, err := Generate(codes.Gamma{}, 7, Config{PrefixBits: 8}); !errors.Is(err, ucode.ErrInvalidParameter) {
		t.Errorf("bad order: err = %v, want ErrInvalidParameter", err)
	}
}

func TestLayoutSizes(t *testing.T) {
	code := codes.Must(codes.NewZeta(3))
	cfg := Config{PrefixBits: 12, WriteMax: 1023}
	sizes := map[Layout]int{}
	for _, layout := range Layouts {
		cfg.Layout = layout
		tab := mustGenerate(t, code, ucode.BE, cfg)
		if tab.ReadValueWidth() != 16 || tab.ReadLenWidth() != 8 || tab.WriteCodeWidth() != 16 || tab.WriteLenWidth() != 8 {
			t.Fatalf("%v widths = %d/%d/%d/%d, want 16/8/16/8", layout,
				tab.ReadValueWidth(), tab.ReadLenWidth(), tab.WriteCodeWidth(), tab.WriteLenWidth())
		}
		sizes[layout] = tab.Size()
	}
	if want := (4096 + 1024) * 3; sizes[Separated] != want || sizes[PackedBE] != want || sizes[PackedLE] != want {
		t.Errorf("unpadded sizes = %v, want %d", sizes, want)
	}
	if want := (4096 + 1024) * 4; sizes[Merged] != want {
		t.Errorf("merged size = %d, want %d", sizes[Merged], want)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	tab := mustGenerate(t, codes.Delta{}, ucode.LE, Config{PrefixBits: 8, WriteMax: 100, Layout: PackedLE})
	if err := Verify(tab); err != nil {
		t.Fatalf("Verify on a fresh table: %v", err)
	}

	v, n := tab.read.get(1)
	tab.read.set(1, v+1, n)
	if err := Verify(tab); !errors.Is(err, ErrTableMismatch) {
		t.Errorf("Verify after changing a decode value: err = %v, want ErrTableMismatch", err)
	}
	tab.read.set(1, v, n)

	cw, l := tab.write.get(7)
	tab.write.set(7, cw^1, l)
	if err := Verify(tab); !errors.Is(err, ErrTableMismatch) {
		t.Errorf("Verify after changing a codeword: err = %v, want ErrTableMismatch", err)
	}
}

func TestParseLayout(t *testing.T) {
	tests := map[string]Layout{
		"merged":     Merged,
		"Separated":  Separated,
		"two-tables": Separated,
		"packed-be":  PackedBE,
		"packed_le":  PackedLE,
		"":           LayoutDefault,
		"native":     NativeLayout(),
	}
	for s, want := range tests {
		got, err := ParseLayout(s)
		if err != nil || got != want {
			t.Errorf("ParseLayout(%q) = (%v, %v), want %v", s, got, err, want)
		}
	}
	if _, err := ParseLayout("sparse"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseLayout(sparse) err = %v, want ErrInvalidConfig", err)
	}
	for _, l := range Layouts {
		text, err := l.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Layout
		if err := back.UnmarshalText(text); err != nil || back != l {
			t.Errorf("%v text round trip = (%v, %v)", l, back, err)
		}
	}
	if got := LayoutDefault.resolve(); got != DefaultLayout() || got == LayoutDefault {
		t.Errorf("LayoutDefault resolves to %v", got)
	}
}

// ============================================================================
// Benchmarks
// ============================================================================

func benchmarkStream(b *testing.B, c codes.Code, order ucode.BitOrder) []byte {
	w := ucode.NewMemWriter(order)
	for i := range uint64(4096) {
		if _, err := c.Encode(w, i%200); err != nil {
			b.Fatal(err)
		}
	}
	return w.Bytes()
}

func BenchmarkDecodeGamma(b *testing.B) {
	table := mustGenerate(b, codes.Gamma{}, ucode.LE, Config{PrefixBits: 11, WriteMax: 1023})
	codec, err := NewCodecFromTables(codes.Gamma{}, table)
	if err != nil {
		b.Fatal(err)
	}
	buf := benchmarkStream(b, codes.Gamma{}, ucode.LE)

	for _, bc := range []struct {
		name string
		code codes.Code
	}{{"Reference", codes.Gamma{}}, {"Table", codec}} {
		b.Run(bc.name, func(b *testing.B) {
			for b.Loop() {
				r := ucode.NewMemReader(buf, ucode.LE)
				for range 4096 {
					if _, _, err := bc.code.Decode(r); err != nil {
						b.Fatal(err)
					}
				}
			}
		})
	}
}
