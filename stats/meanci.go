// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MeanCI returns the mean of xs and the bounds of the confidence
// interval of the mean at the given confidence level, using the
// Student's t-distribution.
//
// If xs is empty, all results are NaN. If the interval cannot be
// computed at the given confidence (confidence 1, or a single
// sample), the bounds are -Inf and +Inf.
func MeanCI(xs []float64, confidence float64) (mean, lo, hi float64) {
	if len(xs) == 0 {
		return nan, nan, nan
	}

	s := Sample{Xs: xs}
	mean = s.Mean()
	if confidence <= 0 {
		return mean, mean, mean
	}
	if confidence >= 1 || len(xs) < 2 {
		return mean, -inf, inf
	}

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(len(xs) - 1)}
	crit := t.Quantile(1 - (1-confidence)/2)
	margin := crit * s.StdDev() / math.Sqrt(float64(len(xs)))
	return mean, mean - margin, mean + margin
}
