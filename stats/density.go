// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aclements/go-npstat/mathx"
)

const sqrt2Pi = 2.5066282746310005024157652848110452530069867406099383166299235763

// gaussKDE is a fixed-bandwidth Gaussian kernel density estimate over
// a sorted sample. Unlike the public KDE type, it supports
// leave-one-out evaluation, which the entropy and divergence
// estimators need; it performs no boundary correction.
type gaussKDE struct {
	xs []float64 // ascending
	h  float64
}

// newGaussKDE returns a Gaussian KDE over sorted with bandwidth h. If
// h <= 0, the bandwidth is selected by leave-one-out maximum
// likelihood (see cvBandwidth).
func newGaussKDE(sorted []float64, h float64) gaussKDE {
	if h <= 0 {
		h = cvBandwidth(sorted)
	}
	return gaussKDE{sorted, h}
}

// pdf returns the density estimate at x, floored at the smallest
// positive float64 so that downstream logarithms stay finite.
func (k gaussKDE) pdf(x float64) float64 {
	var sum mathx.Sum
	for _, xi := range k.xs {
		z := (x - xi) / k.h
		sum.Add(math.Exp(-z * z / 2))
	}
	d := sum.Value() / (float64(len(k.xs)) * k.h * sqrt2Pi)
	if d < math.SmallestNonzeroFloat64 {
		return math.SmallestNonzeroFloat64
	}
	return d
}

// pdfLeaveOut returns the density estimate at k.xs[i] with the i'th
// point excluded and the normalization reduced to n-1.
func (k gaussKDE) pdfLeaveOut(i int) float64 {
	x := k.xs[i]
	var sum mathx.Sum
	for j, xj := range k.xs {
		if j == i {
			continue
		}
		z := (x - xj) / k.h
		sum.Add(math.Exp(-z * z / 2))
	}
	d := sum.Value() / (float64(len(k.xs)-1) * k.h * sqrt2Pi)
	if d < math.SmallestNonzeroFloat64 {
		return math.SmallestNonzeroFloat64
	}
	return d
}

// silvermanBandwidth is Silverman's Rule of Thumb, 1.06·σ̂·n^(-1/5),
// with the sample standard deviation (n-1 denominator). Degenerate
// samples (n < 2, or zero spread) get bandwidth 1.
func silvermanBandwidth(xs []float64) float64 {
	if len(xs) < 2 {
		return 1
	}
	h := 1.06 * stat.StdDev(xs, nil) * math.Pow(float64(len(xs)), -1.0/5)
	if !(h > 0) {
		return 1
	}
	return h
}

// cvScales are the candidate bandwidth multipliers for cvBandwidth.
// The unit scale comes first so that ties in the likelihood keep
// Silverman's bandwidth.
var cvScales = []float64{1.0, 0.5, 0.75, 1.25, 1.5, 2.0}

// cvBandwidth selects a bandwidth for sorted by maximizing the
// leave-one-out log likelihood over a small multiplicative grid
// around Silverman's bandwidth. This is a plain grid search; the
// likelihood surface is cheap enough at the sample sizes the
// estimators see that derivative-based selection is not worth the
// complexity.
func cvBandwidth(sorted []float64) float64 {
	h0 := silvermanBandwidth(sorted)
	if len(sorted) < 2 {
		return h0
	}

	best, bestLL := h0, -inf
	for _, scale := range cvScales {
		h := scale * h0
		ll := looLogLikelihood(sorted, h)
		if ll > bestLL {
			best, bestLL = h, ll
		}
	}
	return best
}

// looLogLikelihood returns the leave-one-out log likelihood of a
// Gaussian KDE with bandwidth h on sorted.
func looLogLikelihood(sorted []float64, h float64) float64 {
	k := gaussKDE{sorted, h}
	var ll mathx.Sum
	for i := range sorted {
		ll.Add(math.Log(k.pdfLeaveOut(i)))
	}
	return ll.Value()
}
