// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func TestDiscreteEntropy(t *testing.T) {
	d := mustEmpirical(t, []float64{1, 2, 2, 3, 3, 3, 4, 4, 4, 4})

	// Plug-in entropy over the smoothed PMF plus the
	// Miller-Madow correction (U-1)/(2N).
	want := 0.0
	for _, c := range []float64{1.5, 2.5, 3.5, 4.5} {
		p := c / 12
		want -= p * math.Log(p)
	}
	want += 3.0 / 20

	if got := d.Entropy(); !aeq(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestDiscreteEntropyUniformBound(t *testing.T) {
	// A heavily repeated 4-point uniform: entropy near log(4),
	// and never above log(U) by more than the bias correction.
	d := mustEmpirical(t, []float64{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4})
	if got := d.Entropy(); !aeqTol(math.Log(4), got, 0.15) {
		t.Errorf("want ~log 4 = %v, got %v", math.Log(4), got)
	}
}

func TestKNNEntropyNormal(t *testing.T) {
	// The differential entropy of N(0,1) is ln(2πe)/2 ≈ 1.4189.
	// The Kozachenko-Leonenko estimator with k=3 should land
	// within 0.1 nat on 2000 draws.
	want := math.Log(2*math.Pi*math.E) / 2

	d := mustEmpirical(t, normalSample(2000, 7))
	if d.IsDiscrete() {
		t.Fatalf("normal sample misclassified as discrete")
	}
	if got := d.Entropy(); !aeqTol(want, got, 0.1) {
		t.Errorf("want %v ± 0.1, got %v", want, got)
	}
}

func TestKNNEntropyScaling(t *testing.T) {
	// H(aX) = H(X) + log a. Scale a fixed sample by 10 and the
	// estimate should shift by log 10.
	xs := normalSample(500, 11)
	scaled := make([]float64, len(xs))
	for i, x := range xs {
		scaled[i] = 10 * x
	}

	h := mustEmpirical(t, xs).Entropy()
	hScaled := mustEmpirical(t, scaled).Entropy()
	if !aeqTol(h+math.Log(10), hScaled, 1e-6) {
		t.Errorf("want %v, got %v", h+math.Log(10), hScaled)
	}
}

func TestKDEEntropyFallback(t *testing.T) {
	// An explicit k larger than the sample forces the KDE
	// fallback, which should still be in the right neighborhood.
	want := math.Log(2*math.Pi*math.E) / 2
	xs := normalSample(200, 13)

	d := mustEmpirical(t, xs)
	got := d.entropy(EstimatorConfig{Kind: EstimatorKNN, K: len(xs) + 1})
	if !aeqTol(want, got, 0.3) {
		t.Errorf("want %v ± 0.3, got %v", want, got)
	}
}

func TestKthNeighborDist(t *testing.T) {
	xs := []float64{0, 1, 3, 6, 10}

	check := func(i, k int, want float64) {
		t.Helper()
		if got := kthNeighborDist(xs, i, k); got != want {
			t.Errorf("kthNeighborDist(%d, %d): want %v, got %v", i, k, want, got)
		}
	}
	check(0, 1, 1)  // 0 -> 1
	check(0, 2, 3)  // 0 -> 3
	check(2, 1, 2)  // 3 -> 1
	check(2, 2, 3)  // 3 -> 0 or 6
	check(2, 3, 3)  // 3 -> 6
	check(2, 4, 7)  // 3 -> 10
	check(4, 1, 4)  // 10 -> 6
	check(4, 4, 10) // 10 -> 0

	// More neighbors than other points: the walk stops at the
	// farthest available.
	check(0, 10, 10)

	// Duplicate values floor at a positive distance.
	if got := kthNeighborDist([]float64{5, 5, 5}, 1, 1); got != minNeighborDist {
		t.Errorf("duplicate neighbors: want %v, got %v", minNeighborDist, got)
	}
}

func TestKthNeighborDistTo(t *testing.T) {
	xs := []float64{0, 1, 3, 6, 10}

	check := func(x float64, k int, want float64) {
		t.Helper()
		if got := kthNeighborDistTo(xs, x, k); got != want {
			t.Errorf("kthNeighborDistTo(%v, %d): want %v, got %v", x, k, want, got)
		}
	}
	check(2, 1, 1)  // 2 -> 1 or 3
	check(2, 2, 1)  // the other of 1, 3
	check(2, 3, 2)  // 2 -> 0
	check(-5, 1, 5) // below the sample
	check(12, 2, 6) // above the sample

	// A query equal to a sample point sees that point at
	// (floored) distance zero.
	if got := kthNeighborDistTo(xs, 3, 1); got != minNeighborDist {
		t.Errorf("exact match: want %v, got %v", minNeighborDist, got)
	}
}

func TestCountPeaks(t *testing.T) {
	check := func(ys []float64, interior bool, want int) {
		t.Helper()
		if got := countPeaks(ys, interior); got != want {
			t.Errorf("countPeaks(%v, %v): want %d, got %d", ys, interior, want, got)
		}
	}

	// A monotone sequence has a maximum at its edge, which only
	// counts when edges are eligible.
	check([]float64{5, 4, 3, 2, 1}, false, 1)
	check([]float64{5, 4, 3, 2, 1}, true, 0)

	// An edge maximum next to an interior one.
	check([]float64{5, 1, 3, 1, 0}, false, 2)
	check([]float64{5, 1, 3, 1, 0}, true, 1)

	// A plateau counts once, at its left edge.
	check([]float64{0, 2, 2, 1, 0}, false, 1)
	check([]float64{0, 2, 2, 1, 0}, true, 1)

	check([]float64{0, 2, 0, 2, 0}, true, 2)
}

func TestCVBandwidth(t *testing.T) {
	xs := Sample{Xs: normalSample(100, 17)}
	h0 := BandwidthSilverman(xs)

	h := BandwidthCV(xs)
	found := false
	for _, scale := range cvScales {
		if aeq(scale*h0, h) {
			found = true
		}
	}
	if !found {
		t.Errorf("BandwidthCV returned %v, not on the grid around %v", h, h0)
	}

	// Degenerate samples get a usable bandwidth.
	if h := cvBandwidth([]float64{3}); h != 1 {
		t.Errorf("single point: want bandwidth 1, got %v", h)
	}
	if h := cvBandwidth([]float64{2, 2, 2}); !(h > 0) {
		t.Errorf("zero spread: want positive bandwidth, got %v", h)
	}
}
