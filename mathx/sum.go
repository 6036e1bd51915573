// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mathx provides numeric primitives shared by the stats
// package: compensated summation and a small special-functions
// surface.
package mathx

import "math"

// A Sum is a compensated floating-point accumulator using Neumaier's
// variant of Kahan summation. It keeps a running error term so that
// long sums of terms with mixed magnitudes (entropy sums, jackknife
// moments) do not lose low-order bits.
//
// The zero value is an empty sum.
//
// Neumaier, A. (1974) Rundungsfehleranalyse einiger Verfahren zur
// Summation endlicher Summen.
type Sum struct {
	sum, comp float64
}

// Add adds x to the sum.
func (s *Sum) Add(x float64) {
	t := s.sum + x
	if math.Abs(s.sum) >= math.Abs(x) {
		s.comp += (s.sum - t) + x
	} else {
		s.comp += (x - t) + s.sum
	}
	s.sum = t
}

// Value returns the compensated value of the sum.
func (s *Sum) Value() float64 {
	return s.sum + s.comp
}

// SumSlice returns the compensated sum of xs.
func SumSlice(xs []float64) float64 {
	var s Sum
	for _, x := range xs {
		s.Add(x)
	}
	return s.Value()
}
