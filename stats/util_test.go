// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// aeqTol is aeq with an explicit absolute tolerance.
func aeqTol(expect, got, tol float64) bool {
	return math.Abs(expect-got) < tol
}

// testFunc checks that f(x) == y for each x, y pair in vals.
func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	for x, want := range vals {
		got := f(x)
		if math.IsNaN(want) && math.IsNaN(got) {
			continue
		}
		if !aeq(want, got) {
			t.Errorf("%s(%v): want %v, got %v", name, x, want, got)
		}
	}
}

// testDiscreteCDF checks that dist's CDF is consistent with summing
// its PMF across the support.
func testDiscreteCDF(t *testing.T, name string, dist DiscreteDist) {
	t.Helper()
	lo, hi := dist.Bounds()
	sum := 0.0
	for k := lo; k <= hi; k += dist.Step() {
		if !aeq(sum, dist.CDF(k-dist.Step()/2)) {
			t.Errorf("%s(%v): want %v, got %v", name, k-dist.Step()/2, sum, dist.CDF(k-dist.Step()/2))
		}
		sum += dist.PMF(k)
		if !aeq(sum, dist.CDF(k)) {
			t.Errorf("%s(%v): want %v, got %v", name, k, sum, dist.CDF(k))
		}
	}
}
