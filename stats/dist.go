// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

// A Dist is a continuous statistical distribution.
type Dist interface {
	// PDF returns the value of the probability density function
	// of this distribution at x.
	PDF(x float64) float64

	// PDFEach returns PDF(xs[i]) for each i.
	PDFEach(xs []float64) []float64

	// CDF returns the value of the cumulative distribution
	// function for this distribution at x. This is the integral
	// of the PDF from 0 to x.
	CDF(x float64) float64

	// CDFEach returns CDF(xs[i]) for each i.
	CDFEach(xs []float64) []float64

	// InvCDF returns the inverse of the CDF for y. That is,
	// InvCDF(CDF(x)) = x. The value of y must be in [0, 1].
	InvCDF(y float64) float64

	// InvCDFEach returns InvCDF(ys[i]) for each i.
	InvCDFEach(ys []float64) []float64

	// Bounds returns reasonable bounds for this distribution's
	// PDF and CDF. The total weight outside of these bounds
	// should be approximately 0.
	Bounds() (float64, float64)
}

// A DiscreteDist is a discrete statistical distribution whose support
// is a subset of an evenly spaced lattice.
type DiscreteDist interface {
	// PMF returns the probability of sampling exactly k.
	PMF(k float64) float64

	// CDF returns the probability of sampling a value <= k.
	CDF(k float64) float64

	// Bounds returns the smallest and largest support points.
	Bounds() (float64, float64)

	// Step returns the spacing of the support lattice.
	Step() float64
}

// A Distribution is the minimal query surface the divergence and
// entropy machinery requires. It is implemented by *Empirical,
// NormalDist, and by any parametric distribution adapted through
// Parametric.
type Distribution interface {
	// PDF returns the density (continuous) or probability mass
	// (discrete) at x.
	PDF(x float64) float64

	// CDF returns the probability of sampling a value <= x.
	CDF(x float64) float64

	// Support returns the bounds of the support. Unlike
	// Dist.Bounds, these are the true support bounds and may be
	// infinite.
	Support() (lo, hi float64)

	// IsDiscrete reports whether the distribution's support is a
	// lattice.
	IsDiscrete() bool
}
