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

// Stats accumulates how many bits a sequence of values would take under a
// fixed set of candidate codes, so a writer can pick the cheapest one.
// The zero value is ready to use.
//
// The candidates are exactly the fields below: unary, gamma, delta,
// Zeta(1..10), Golomb(1..20), ExpGolomb(0..9), Rice(0..9) and Pi(0..4).
// PiWeb, MinimalBinary and Fixed are never proposed, and there are no
// Omega or VByte candidates since this package does not implement them.
type Stats struct {
	Unary     int
	Gamma     int
	Delta     int
	Zeta      [10]int // k = 1..10
	Golomb    [20]int // b = 1..20
	ExpGolomb [10]int // k = 0..9
	Rice      [10]int // logB = 0..9
	Pi        [5]int  // k = 0..4

	count uint64
}

// Update adds the codeword lengths of v to every total. Totals saturate at
// math.MaxInt.
func (s *Stats) Update(v uint64) {
	s.count++
	s.Unary = satAdd(s.Unary, LenUnary(v))
	s.Gamma = satAdd(s.Gamma, LenGamma(v))
	s.Delta = satAdd(s.Delta, LenDelta(v))
	for i := range s.Zeta {
		s.Zeta[i] = satAdd(s.Zeta[i], LenZeta(v, i+1))
	}
	for i := range s.Golomb {
		s.Golomb[i] = satAdd(s.Golomb[i], LenGolomb(v, uint64(i+1)))
	}
	for i := range s.ExpGolomb {
		s.ExpGolomb[i] = satAdd(s.ExpGolomb[i], LenExpGolomb(v, i))
	}
	for i := range s.Rice {
		s.Rice[i] = satAdd(s.Rice[i], LenRice(v, i))
	}
	for i := range s.Pi {
		s.Pi[i] = satAdd(s.Pi[i], LenPi(v, i))
	}
}

// Count returns the number of values seen.
func (s *Stats) Count() uint64 { return s.count }

// Merge adds the totals of o into s.
func (s *Stats) Merge(o *Stats) {
	s.count += o.count
	s.Unary = satAdd(s.Unary, o.Unary)
	s.Gamma = satAdd(s.Gamma, o.Gamma)
	s.Delta = satAdd(s.Delta, o.Delta)
	for i := range s.Zeta {
		s.Zeta[i] = satAdd(s.Zeta[i], o.Zeta[i])
	}
	for i := range s.Golomb {
		s.Golomb[i] = satAdd(s.Golomb[i], o.Golomb[i])
	}
	for i := range s.ExpGolomb {
		s.ExpGolomb[i] = satAdd(s.ExpGolomb[i], o.ExpGolomb[i])
	}
	for i := range s.Rice {
		s.Rice[i] = satAdd(s.Rice[i], o.Rice[i])
	}
	for i := range s.Pi {
		s.Pi[i] = satAdd(s.Pi[i], o.Pi[i])
	}
}

// Best returns the code with the smallest total and that total. Ties go
// to the code listed first: unary, gamma, delta, zeta, golomb, exp-golomb,
// rice, pi.
func (s *Stats) Best() (Code, int) {
	var best Code = Unary{}
	bits := s.Unary
	consider := func(c Code, n int) {
		if n < bits {
			best, bits = c, n
		}
	}
	consider(Gamma{}, s.Gamma)
	consider(Delta{}, s.Delta)
	for i, n := range s.Zeta {
		consider(Zeta{kMinus1: i}, n)
	}
	for i, n := range s.Golomb {
		consider(Golomb{bMinus1: uint64(i)}, n)
	}
	for i, n := range s.ExpGolomb {
		consider(ExpGolomb{k: i}, n)
	}
	for i, n := range s.Rice {
		consider(Rice{logB: i}, n)
	}
	for i, n := range s.Pi {
		consider(Pi{k: i}, n)
	}
	return best, bits
}
