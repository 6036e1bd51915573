// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/aclements/go-npstat/mathx"
)

// Empirical is a distribution backed by an observed sample.
//
// At construction the sample is sorted, tabulated into unique support
// points with multiplicities, and classified as discrete or
// continuous (see IsDiscrete). Discrete samples are modeled by a
// Laplace-smoothed probability mass function over the observed
// support; continuous samples by an interpolated empirical CDF and a
// Gaussian kernel density estimate.
//
// An Empirical is immutable after construction and safe for
// concurrent use.
type Empirical struct {
	xs     []float64 // sorted sample
	values []float64 // unique support, ascending
	counts []int     // multiplicity per support point
	class  supportClass

	probs []float64 // smoothed probabilities, aligned with values
	cum   []float64 // cumulative smoothed probabilities

	mean, variance float64

	kdeOnce sync.Once
	kde     gaussKDE
}

var errEmptySample = errors.New("stats: empty sample")

// NewEmpirical returns the empirical distribution of the sample xs.
// The sample must be non-empty and every value must be finite; xs is
// copied, not retained.
func NewEmpirical(xs []float64) (*Empirical, error) {
	if len(xs) == 0 {
		return nil, errEmptySample
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("stats: sample value %v at index %d is not finite", x, i)
		}
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	e := &Empirical{xs: sorted}
	e.values, e.counts = uniqueCounts(sorted)
	e.class = classifySupport(e.values, len(sorted), 0)

	e.probs = smoothedProbs(e.counts, len(sorted))
	e.cum = make([]float64, len(e.probs))
	cum := 0.0
	for i, p := range e.probs {
		cum += p
		e.cum[i] = cum
	}

	e.mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		e.variance = stat.Variance(sorted, nil)
	}
	return e, nil
}

// density returns the kernel density estimate over the sample,
// building it on first use. Bandwidth selection is quadratic in the
// sample size, so it is deferred until a query actually needs it.
func (e *Empirical) density() gaussKDE {
	e.kdeOnce.Do(func() {
		e.kde = newGaussKDE(e.xs, 0)
	})
	return e.kde
}

// N returns the sample size.
func (e *Empirical) N() int { return len(e.xs) }

// Sample returns the sorted sample backing e. The caller must not
// modify it.
func (e *Empirical) Sample() Sample {
	return Sample{Xs: e.xs, Sorted: true}
}

// IsDiscrete reports whether the sample was classified as discrete.
func (e *Empirical) IsDiscrete() bool { return e.class.discrete() }

// LatticeStep returns the spacing of the support lattice. ok is false
// for continuous samples and for discrete samples with no consistent
// spacing.
func (e *Empirical) LatticeStep() (step float64, ok bool) {
	if e.class.kind != supportLattice {
		return 0, false
	}
	return e.class.step, true
}

// LatticeOrigin returns the smallest support point of a discrete
// sample. ok is false for continuous samples.
func (e *Empirical) LatticeOrigin() (origin float64, ok bool) {
	if !e.class.discrete() {
		return 0, false
	}
	return e.class.origin, true
}

// Support returns the smallest and largest sample values.
func (e *Empirical) Support() (lo, hi float64) {
	return e.xs[0], e.xs[len(e.xs)-1]
}

// PDF returns the Laplace-smoothed probability of x for a discrete
// sample, or the kernel density estimate at x for a continuous one.
// For a discrete sample, x must be an observed support point to have
// nonzero probability.
func (e *Empirical) PDF(x float64) float64 {
	if e.IsDiscrete() {
		i := sort.SearchFloat64s(e.values, x)
		if i < len(e.values) && e.values[i] == x {
			return e.probs[i]
		}
		return 0
	}
	return e.density().pdf(x)
}

// CDF returns the probability of sampling a value <= x. For
// continuous samples this is the piecewise-linear interpolation of
// the empirical CDF, so it is the exact inverse of InvCDF.
func (e *Empirical) CDF(x float64) float64 {
	if e.IsDiscrete() {
		// Index of the last support point <= x.
		i := sort.SearchFloat64s(e.values, x)
		if i < len(e.values) && e.values[i] == x {
			return e.cum[i]
		}
		if i == 0 {
			return 0
		}
		return e.cum[i-1]
	}

	n := len(e.xs)
	if x < e.xs[0] {
		return 0
	}
	if x >= e.xs[n-1] {
		return 1
	}
	if n == 1 {
		return 1
	}
	i := sort.SearchFloat64s(e.xs, x)
	if i < n && e.xs[i] == x {
		return float64(i) / float64(n-1)
	}
	j := i - 1
	frac := (x - e.xs[j]) / (e.xs[i] - e.xs[j])
	return (float64(j) + frac) / float64(n-1)
}

// SF returns the survival function 1 - CDF(x).
func (e *Empirical) SF(x float64) float64 {
	return 1 - e.CDF(x)
}

// Hazard returns the hazard function PDF(x)/SF(x).
func (e *Empirical) Hazard(x float64) float64 {
	sf := e.SF(x)
	if sf == 0 {
		return inf
	}
	return e.PDF(x) / sf
}

// CumulativeHazard returns -log(SF(x)). It is computed from the CDF
// via log1p, which keeps precision where the survival probability is
// near 1.
func (e *Empirical) CumulativeHazard(x float64) float64 {
	return -mathx.Log1p(-e.CDF(x))
}

// InvCDF returns the smallest x with CDF(x) >= y. The value of y must
// be in [0, 1]; other values return NaN.
func (e *Empirical) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	if e.IsDiscrete() {
		i := sort.SearchFloat64s(e.cum, y)
		if i >= len(e.values) {
			i = len(e.values) - 1
		}
		return e.values[i]
	}
	return interpQuantile(e.xs, y)
}

// InvSF returns the smallest x with SF(x) <= y, the complement of
// InvCDF. The value of y must be in [0, 1]; other values return NaN.
func (e *Empirical) InvSF(y float64) float64 {
	return e.InvCDF(1 - y)
}

// PDFEach returns PDF(xs[i]) for each i.
func (e *Empirical) PDFEach(xs []float64) []float64 { return atEach(e.PDF, xs) }

// CDFEach returns CDF(xs[i]) for each i.
func (e *Empirical) CDFEach(xs []float64) []float64 { return atEach(e.CDF, xs) }

// InvCDFEach returns InvCDF(ys[i]) for each i.
func (e *Empirical) InvCDFEach(ys []float64) []float64 { return atEach(e.InvCDF, ys) }

// Bounds returns the sample bounds.
func (e *Empirical) Bounds() (float64, float64) { return e.Support() }

// Mean returns the sample mean.
func (e *Empirical) Mean() float64 { return e.mean }

// Variance returns the sample variance (n-1 denominator).
func (e *Empirical) Variance() float64 { return e.variance }

// StdDev returns the sample standard deviation.
func (e *Empirical) StdDev() float64 { return math.Sqrt(e.variance) }

// Median returns the sample median.
func (e *Empirical) Median() float64 { return e.InvCDF(0.5) }

// Skewness returns the adjusted sample skewness.
func (e *Empirical) Skewness() float64 {
	if len(e.xs) < 3 || e.variance == 0 {
		return nan
	}
	return stat.Skew(e.xs, nil)
}

// Kurtosis returns the sample excess kurtosis.
func (e *Empirical) Kurtosis() float64 {
	if len(e.xs) < 4 || e.variance == 0 {
		return nan
	}
	return stat.ExKurtosis(e.xs, nil)
}

// Mode returns the most probable value: the support point with the
// highest smoothed probability for a discrete sample, or the highest
// point of the kernel density estimate for a continuous one. Ties go
// to the smallest value.
func (e *Empirical) Mode() float64 {
	if e.IsDiscrete() {
		best := 0
		for i, p := range e.probs {
			if p > e.probs[best] {
				best = i
			}
		}
		return e.values[best]
	}

	kde := e.density()
	grid := e.modalityGrid(kde)
	best, bestY := 0, -inf
	for i, y := range grid.ys {
		if y > bestY {
			best, bestY = i, y
		}
	}
	return grid.x(best)
}

// IsLikelyMultimodal reports whether the sample shows more than one
// mode: more than one strict local maximum of the smoothed PMF
// (discrete) or of the KDE evaluated at interior points of an evenly
// spaced grid (continuous). Samples with fewer than 5 points are
// never flagged.
func (e *Empirical) IsLikelyMultimodal() bool {
	if len(e.xs) < 5 {
		return false
	}
	if e.IsDiscrete() {
		return countPeaks(e.probs, false) > 1
	}
	return countPeaks(e.modalityGrid(e.density()).ys, true) > 1
}

type densityGrid struct {
	lo, step float64
	ys       []float64
}

func (g densityGrid) x(i int) float64 { return g.lo + float64(i)*g.step }

func (e *Empirical) modalityGrid(kde gaussKDE) densityGrid {
	lo, hi := e.Support()
	m := modalityGridSize(len(e.xs))
	step := (hi - lo) / float64(m-1)
	ys := make([]float64, m)
	for i := range ys {
		ys[i] = kde.pdf(lo + float64(i)*step)
	}
	return densityGrid{lo, step, ys}
}

// Entropy returns the entropy point estimate in nats: plug-in entropy
// with the Miller-Madow correction for discrete samples, and the
// k-nearest-neighbor differential entropy (with KDE fallback for tiny
// samples) for continuous ones.
func (e *Empirical) Entropy() float64 {
	return e.entropy(EstimatorConfig{})
}

func (e *Empirical) entropy(cfg EstimatorConfig) float64 {
	if e.IsDiscrete() {
		return discreteEntropy(e.probs, len(e.xs))
	}
	return continuousEntropy(e.xs, cfg)
}
