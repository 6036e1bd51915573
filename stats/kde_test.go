// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func TestKDE(t *testing.T) {
	s := Sample{Xs: normalSample(500, 3)}
	dist := KDE{}.From(s)

	lo, hi := dist.Bounds()
	if !(lo < hi) {
		t.Fatalf("bad bounds [%v, %v]", lo, hi)
	}
	// Bounds bracket all but ~1% of the mass.
	if c := dist.CDF(lo); c > 0.01 {
		t.Errorf("CDF at lower bound: want <= 0.01, got %v", c)
	}
	if c := dist.CDF(hi); c < 0.99 {
		t.Errorf("CDF at upper bound: want >= 0.99, got %v", c)
	}

	// CDF is monotone and the PDF is nonnegative.
	prev := 0.0
	for x := lo; x <= hi; x += (hi - lo) / 50 {
		c := dist.CDF(x)
		if c < prev {
			t.Fatalf("CDF(%v) = %v < %v", x, c, prev)
		}
		prev = c
		if dist.PDF(x) < 0 {
			t.Fatalf("PDF(%v) = %v < 0", x, dist.PDF(x))
		}
	}

	// InvCDF inverts CDF, including in the tails beyond Bounds.
	for _, y := range []float64{0.001, 0.1, 0.5, 0.9, 0.999} {
		x := dist.InvCDF(y)
		if c := dist.CDF(x); !aeqTol(y, c, 1e-6) {
			t.Errorf("CDF(InvCDF(%v)) = %v", y, c)
		}
	}
	if !math.IsNaN(dist.InvCDF(-0.1)) || !math.IsNaN(dist.InvCDF(1.1)) {
		t.Errorf("InvCDF outside [0, 1] should be NaN")
	}

	// Batch evaluation agrees with pointwise.
	xs := []float64{-1, 0, 1}
	ps, cs := dist.PDFEach(xs), dist.CDFEach(xs)
	for i, x := range xs {
		if ps[i] != dist.PDF(x) || cs[i] != dist.CDF(x) {
			t.Errorf("batch evaluation disagrees at %v", x)
		}
	}
}

func TestBandwidthEstimators(t *testing.T) {
	s := Sample{Xs: normalSample(500, 5)}
	s.Sort()

	silverman := BandwidthSilverman(s)
	scott := BandwidthScott(s)
	cv := BandwidthCV(s)
	for _, h := range []float64{silverman, scott, cv} {
		if !(h > 0) || math.IsInf(h, 0) {
			t.Fatalf("bad bandwidth: silverman=%v scott=%v cv=%v", silverman, scott, cv)
		}
	}
	// On approximately normal data all three rules should land in
	// the same regime.
	if cv > 3*silverman || cv < silverman/3 {
		t.Errorf("cv bandwidth %v far from silverman %v", cv, silverman)
	}
}
