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

package codes

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/ajroetker/go-ucodes/ucode"
	"github.com/google/go-cmp/cmp"
)

// streamBits encodes v and renders the written bits in stream order.
func streamBits(t *testing.T, c Code, v uint64, order ucode.BitOrder) string {
	t.Helper()
	w := ucode.NewMemWriter(order)
	n, err := c.Encode(w, v)
	if err != nil {
		t.Fatalf("%v.Encode(%d): %v", c, v, err)
	}
	if uint64(n) != w.BitLen() {
		t.Fatalf("%v.Encode(%d) returned %d, wrote %d bits", c, v, n, w.BitLen())
	}
	r := w.Reader()
	var sb strings.Builder
	for range n {
		b, _ := r.ReadBits(1)
		sb.WriteByte('0' + byte(b))
	}
	return sb.String()
}

// fromBits writes a stream-order bit string into a reader.
func fromBits(s string, order ucode.BitOrder) *ucode.MemReader {
	w := ucode.NewMemWriter(order)
	for _, c := range s {
		w.WriteBits(uint64(c-'0'), 1)
	}
	return w.Reader()
}

func allCodes() []Code {
	return []Code{
		Unary{}, Gamma{}, Delta{},
		Must(NewZeta(1)), Must(NewZeta(2)), Must(NewZeta(3)), Must(NewZeta(7)),
		Must(NewGolomb(1)), Must(NewGolomb(3)), Must(NewGolomb(10)), Must(NewGolomb(64)),
		Must(NewRice(0)), Must(NewRice(2)), Must(NewRice(5)),
		Must(NewPi(0)), Must(NewPi(2)), Must(NewPi(3)), Must(NewPi(6)),
		Must(NewPiWeb(0)), Must(NewPiWeb(2)),
		Must(NewExpGolomb(0)), Must(NewExpGolomb(1)), Must(NewExpGolomb(4)),
		Must(NewMinimalBinary(300)), Must(NewFixed(9)),
	}
}

// ============================================================================
// Known codewords
// ============================================================================

func TestKnownCodewords(t *testing.T) {
	tests := []struct {
		code  Code
		v     uint64
		order ucode.BitOrder
		want  string
	}{
		{Unary{}, 0, ucode.BE, "1"},
		{Unary{}, 3, ucode.BE, "0001"},
		{Unary{}, 3, ucode.LE, "0001"},
		{Gamma{}, 0, ucode.BE, "1"},
		{Gamma{}, 3, ucode.BE, "00100"},
		{Gamma{}, 5, ucode.BE, "00110"},
		{Gamma{}, 5, ucode.LE, "00101"},
		{Delta{}, 0, ucode.BE, "1"},
		{Delta{}, 3, ucode.BE, "01100"},
		{Must(NewZeta(3)), 0, ucode.BE, "100"},
		{Must(NewZeta(3)), 2, ucode.BE, "1011"},
		{Must(NewZeta(3)), 7, ucode.BE, "0100000"},
		{Must(NewMinimalBinary(10)), 6, ucode.BE, "1100"},
		{Must(NewMinimalBinary(10)), 6, ucode.LE, "0110"},
		{Must(NewMinimalBinary(10)), 2, ucode.BE, "010"},
		{Must(NewMinimalBinary(1)), 0, ucode.BE, ""},
		{Must(NewGolomb(3)), 3, ucode.BE, "010"},
		{Must(NewGolomb(3)), 5, ucode.BE, "0111"},
		{Must(NewRice(2)), 4, ucode.BE, "0100"},
		{Must(NewRice(2)), 1, ucode.LE, "110"},
		{Must(NewExpGolomb(1)), 5, ucode.BE, "0111"},
		{Must(NewExpGolomb(2)), 0, ucode.BE, "100"},
		{Must(NewPi(2)), 0, ucode.BE, "111"},
		{Must(NewPi(2)), 1, ucode.BE, "1100"},
		{Must(NewPi(2)), 2, ucode.BE, "1101"},
		{Must(NewPi(2)), 3, ucode.BE, "10100"},
		{Must(NewPi(2)), 7, ucode.BE, "100000"},
		{Must(NewPi(2)), 20, ucode.BE, "01110101"},
		{Must(NewPi(3)), 0, ucode.BE, "1111"},
		{Must(NewPi(3)), 1, ucode.BE, "11100"},
		{Must(NewPi(3)), 7, ucode.BE, "1100000"},
		{Must(NewPiWeb(2)), 0, ucode.BE, "1"},
		{Must(NewPiWeb(2)), 1, ucode.BE, "0111"},
		{Must(NewFixed(4)), 0b0011, ucode.LE, "1100"},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			got := streamBits(t, tt.code, tt.v, tt.order)
			if got != tt.want {
				t.Errorf("%v %v encode(%d) = %q, want %q", tt.code, tt.order, tt.v, got, tt.want)
			}
			if n := tt.code.Len(tt.v); n != len(tt.want) {
				t.Errorf("%v Len(%d) = %d, want %d", tt.code, tt.v, n, len(tt.want))
			}
			v, n, err := tt.code.Decode(fromBits(tt.want, tt.order))
			if err != nil {
				t.Fatalf("%v decode %q: %v", tt.code, tt.want, err)
			}
			if v != tt.v || n != len(tt.want) {
				t.Errorf("%v decode %q = (%d, %d), want (%d, %d)", tt.code, tt.want, v, n, tt.v, len(tt.want))
			}
		})
	}
}

func TestZeroValuesAreValidCodes(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{Zeta{}, "Zeta(1)"},
		{Golomb{}, "Golomb(1)"},
		{Rice{}, "Rice(0)"},
		{ExpGolomb{}, "ExpGolomb(0)"},
		{Pi{}, "Pi(0)"},
		{PiWeb{}, "PiWeb(0)"},
		{MinimalBinary{}, "MinimalBinary(1)"},
		{Fixed{}, "Fixed(0)"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("zero value String() = %q, want %q", got, tt.want)
		}
	}
	// Zeta(1), Golomb(1) and Rice(0) coincide with simpler codes.
	var zeta1 Zeta
	var golomb1 Golomb
	var rice0 Rice
	for v := range uint64(100) {
		if zeta1.Len(v) != LenGamma(v) {
			t.Fatalf("Zeta(1).Len(%d) = %d, want gamma %d", v, zeta1.Len(v), LenGamma(v))
		}
		if golomb1.Len(v) != LenUnary(v) || rice0.Len(v) != LenUnary(v) {
			t.Fatalf("Golomb(1)/Rice(0) length of %d differs from unary", v)
		}
	}
}

// ============================================================================
// Round trips
// ============================================================================

func TestRoundTripSequence(t *testing.T) {
	var values []uint64
	for v := range uint64(257) {
		values = append(values, v)
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for range 64 {
		values = append(values, rng.Uint64N(1<<16))
	}

	for _, order := range ucode.BitOrders {
		for _, c := range allCodes() {
			t.Run(c.String()+"/"+order.String(), func(t *testing.T) {
				w := ucode.NewMemWriter(order)
				var enc []uint64
				total := 0
				for _, v := range values {
					if mb, ok := c.(MinimalBinary); ok && v >= mb.Max() {
						continue
					}
					if f, ok := c.(Fixed); ok && v >= 1<<uint(f.Width()) {
						continue
					}
					n, err := c.Encode(w, v)
					if err != nil {
						t.Fatalf("Encode(%d): %v", v, err)
					}
					if n != c.Len(v) {
						t.Fatalf("Encode(%d) wrote %d bits, Len says %d", v, n, c.Len(v))
					}
					enc = append(enc, v)
					total += n
				}
				if uint64(total) != w.BitLen() {
					t.Fatalf("total %d != BitLen %d", total, w.BitLen())
				}

				r := w.Reader()
				var got []uint64
				for range enc {
					v, _, err := c.Decode(r)
					if err != nil {
						t.Fatalf("Decode after %d values: %v", len(got), err)
					}
					got = append(got, v)
				}
				if diff := cmp.Diff(enc, got); diff != "" {
					t.Errorf("round trip mismatch (-want +got):\n%s", diff)
				}
				if r.BitsRemaining() != 0 {
					t.Errorf("%d bits left after decoding", r.BitsRemaining())
				}
			})
		}
	}
}

func TestRoundTripThroughStream(t *testing.T) {
	var buf bytes.Buffer
	sw := ucode.NewStreamWriter(&buf)
	values := []uint64{0, 1, 2, 1000, 1 << 40, 77}
	z := Must(NewZeta(3))
	for _, v := range values {
		if _, err := z.Encode(sw, v); err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		if _, err := WriteDelta(sw, v); err != nil {
			t.Fatalf("WriteDelta(%d): %v", v, err)
		}
	}
	if err := sw.Close(); err != nil {
		t.Fatal(err)
	}
	sr := ucode.NewStreamReader(bytes.NewReader(buf.Bytes()))
	for _, want := range values {
		got, _, err := z.Decode(sr)
		if err != nil || got != want {
			t.Fatalf("zeta decode = (%d, %v), want %d", got, err, want)
		}
		got, _, err = ReadDelta(sr)
		if err != nil || got != want {
			t.Fatalf("delta decode = (%d, %v), want %d", got, err, want)
		}
	}
}

func TestBoundaryValues(t *testing.T) {
	tests := []struct {
		code Code
		v    uint64
	}{
		{Gamma{}, math.MaxUint64 - 1},
		{Delta{}, math.MaxUint64 - 1},
		{Must(NewZeta(1)), math.MaxUint64 - 1},
		{Must(NewZeta(4)), math.MaxUint64 - 1},
		{Must(NewZeta(64)), math.MaxUint64 - 1},
		{Must(NewMinimalBinary(math.MaxUint64)), math.MaxUint64 - 1},
		{Must(NewMinimalBinary(math.MaxUint64)), 0},
		{Must(NewGolomb(1 << 40)), 1<<60 + 12345},
		{Must(NewGolomb(math.MaxUint64)), math.MaxUint64 - 1},
		{Must(NewRice(63)), math.MaxUint64},
		{Must(NewExpGolomb(63)), math.MaxUint64},
		{Must(NewExpGolomb(0)), math.MaxUint64 - 1},
		{Must(NewPi(0)), math.MaxUint64 - 1},
		{Must(NewPi(6)), math.MaxUint64 - 1},
		{Must(NewPiWeb(3)), math.MaxUint64},
		{Must(NewFixed(64)), math.MaxUint64},
	}
	for _, tt := range tests {
		for _, order := range ucode.BitOrders {
			w := ucode.NewMemWriter(order)
			n, err := tt.code.Encode(w, tt.v)
			if err != nil {
				t.Errorf("%v %v Encode(%d): %v", tt.code, order, tt.v, err)
				continue
			}
			if n != tt.code.Len(tt.v) {
				t.Errorf("%v Encode(%d) = %d bits, Len = %d", tt.code, tt.v, n, tt.code.Len(tt.v))
			}
			got, gn, err := tt.code.Decode(w.Reader())
			if err != nil || got != tt.v || gn != n {
				t.Errorf("%v %v Decode = (%d, %d, %v), want (%d, %d)", tt.code, order, got, gn, err, tt.v, n)
			}
		}
	}
}

func TestValueOutOfRange(t *testing.T) {
	tests := []struct {
		code Code
		v    uint64
	}{
		{Gamma{}, math.MaxUint64},
		{Delta{}, math.MaxUint64},
		{Must(NewZeta(3)), 1 << 63},
		{Must(NewZeta(64)), math.MaxUint64},
		{Must(NewPi(2)), math.MaxUint64},
		{Must(NewMinimalBinary(10)), 10},
		{Must(NewFixed(3)), 8},
		{Unary{}, ucode.MaxUnaryRun + 1},
		{Must(NewRice(0)), ucode.MaxUnaryRun + 1},
		{Must(NewGolomb(2)), 2*ucode.MaxUnaryRun + 2},
	}
	for _, tt := range tests {
		w := ucode.NewMemWriter(ucode.BE)
		if _, err := tt.code.Encode(w, tt.v); !errors.Is(err, ucode.ErrValueOutOfRange) {
			t.Errorf("%v Encode(%d) err = %v, want ErrValueOutOfRange", tt.code, tt.v, err)
		}
		if w.BitLen() != 0 {
			t.Errorf("%v Encode(%d) wrote %d bits before failing", tt.code, tt.v, w.BitLen())
		}
	}
}

// ============================================================================
// Decode errors
// ============================================================================

func TestDecodeMalformed(t *testing.T) {
	long := strings.Repeat("0", 64) + "1" + strings.Repeat("0", 70)
	tests := []struct {
		name string
		code Code
		bits string
	}{
		{"gamma length 64", Gamma{}, long},
		{"delta length 64", Delta{}, "0000001000001" + strings.Repeat("0", 70)},
		{"zeta bucket past 64 bits", Must(NewZeta(3)), strings.Repeat("0", 21) + "1" + strings.Repeat("0", 70)},
		{"pi length past 64 bits", Must(NewPi(0)), long},
		{"golomb product overflow", Must(NewGolomb(1 << 63)), "001" + strings.Repeat("0", 63)},
		{"rice quotient overflow", Must(NewRice(63)), "001" + strings.Repeat("0", 63)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.code.Decode(fromBits(tt.bits, ucode.BE))
			if !errors.Is(err, ucode.ErrMalformedCode) {
				t.Errorf("%v Decode(%s...) err = %v, want ErrMalformedCode", tt.code, tt.bits[:8], err)
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	for _, order := range ucode.BitOrders {
		for _, c := range allCodes() {
			v := uint64(1000)
			if mb, ok := c.(MinimalBinary); ok {
				v = mb.Max() - 1
			}
			if _, ok := c.(Fixed); ok {
				v = 300
			}
			full := streamBits(t, c, v, order)
			for cut := 0; cut < len(full); cut++ {
				_, _, err := c.Decode(fromBits(full[:cut], order))
				if !errors.Is(err, ucode.ErrInsufficientBits) {
					t.Fatalf("%v %v decode of %d/%d bits err = %v, want ErrInsufficientBits",
						c, order, cut, len(full), err)
				}
			}
		}
	}
}

// ============================================================================
// Parse and constructors
// ============================================================================

func TestParseRoundTrip(t *testing.T) {
	for _, c := range allCodes() {
		got, err := Parse(c.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.String(), err)
		}
		if got != c {
			t.Errorf("Parse(%q) = %v, want %v", c.String(), got, c)
		}
	}

	aliases := map[string]Code{
		"gamma":              Gamma{},
		" ZETA(3) ":          Must(NewZeta(3)),
		"exp_golomb(2)":      Must(NewExpGolomb(2)),
		"pi-web( 1 )":        Must(NewPiWeb(1)),
		"minimal binary(10)": Must(NewMinimalBinary(10)),
	}
	for s, want := range aliases {
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{
		"", "Foo", "Foo(1)", "Gamma(1)", "Zeta", "Zeta(0)", "Zeta(65)", "Zeta(3",
		"Zeta(-1)", "Pi(7)", "Rice(64)", "Golomb(0)", "MinimalBinary(0)", "Fixed(65)",
		"Zeta(99999999999)",
	} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

// ============================================================================
// Stats
// ============================================================================

func TestStatsBest(t *testing.T) {
	var s Stats
	for range 10 {
		s.Update(0)
	}
	best, n := s.Best()
	if best != (Unary{}) || n != 10 {
		t.Errorf("Best over zeros = (%v, %d), want (Unary, 10)", best, n)
	}

	s = Stats{}
	for range 4 {
		s.Update(1 << 20)
	}
	best, n = s.Best()
	if best != Must(NewZeta(7)) || n != 4*24 {
		t.Errorf("Best over 2^20 = (%v, %d), want (Zeta(7), 96)", best, n)
	}
	if s.Count() != 4 {
		t.Errorf("Count = %d, want 4", s.Count())
	}
}

func TestStatsMatchesLen(t *testing.T) {
	var a, b Stats
	rng := rand.New(rand.NewPCG(3, 4))
	var values []uint64
	for range 500 {
		values = append(values, rng.Uint64N(5000))
	}
	for i, v := range values {
		if i%2 == 0 {
			a.Update(v)
		} else {
			b.Update(v)
		}
	}
	a.Merge(&b)

	best, total := a.Best()
	sum := 0
	for _, v := range values {
		sum += best.Len(v)
	}
	if sum != total {
		t.Errorf("Best total %d != sum of %v lengths %d", total, best, sum)
	}
	for _, c := range []Code{Gamma{}, Delta{}, Must(NewZeta(3)), Must(NewGolomb(20)), Must(NewPi(4))} {
		cs := 0
		for _, v := range values {
			cs += c.Len(v)
		}
		if cs < total {
			t.Errorf("%v needs %d bits, less than best %v with %d", c, cs, best, total)
		}
	}
	if a.Zeta[2] == 0 || a.Golomb[19] == 0 || a.Pi[4] == 0 {
		t.Errorf("totals not accumulated: %+v", a)
	}
}

func TestStatsSaturates(t *testing.T) {
	var s Stats
	s.Update(math.MaxUint64)
	s.Update(math.MaxUint64)
	if s.Unary != math.MaxInt {
		t.Errorf("Unary total = %d, want saturated", s.Unary)
	}
}
