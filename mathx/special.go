// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// Digamma returns ψ(x), the logarithmic derivative of the gamma
// function. It returns NaN at the poles (x = 0, -1, -2, ...); callers
// evaluating estimators point-by-point are expected to skip non-finite
// results rather than fail.
func Digamma(x float64) float64 {
	return mathext.Digamma(x)
}

// LogGamma returns log|Γ(x)|. Unlike math.Lgamma it discards the sign,
// which is always +1 on the positive arguments the estimators use.
func LogGamma(x float64) float64 {
	lg, _ := math.Lgamma(x)
	return lg
}

// Log1p returns log(1+x) without the cancellation loss of a literal
// log(1+x) for small x.
func Log1p(x float64) float64 {
	return math.Log1p(x)
}
