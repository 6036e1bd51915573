// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-npstat/mathx"
)

// KLOptions configures KLDivergence. The zero value (and a nil
// pointer) are reasonable defaults.
type KLOptions struct {
	// Rule is the fixed-location quadrature rule used for the
	// continuous path. If nil, quad.Legendre is used. Infinite
	// integration bounds are mapped onto a finite interval by an
	// algebraic substitution before the rule is applied, so the
	// rule must accept finite bounds.
	Rule quad.FixedLocationer

	// QuadPoints is the number of quadrature abscissae. If zero,
	// 120 is used.
	QuadPoints int

	// DensityFloor is substituted for smaller or zero densities
	// of the second operand to keep the log finite, and first
	// operand densities at or below it contribute nothing. If
	// zero, 1e-300 is used.
	DensityFloor float64

	// DiscreteTailCutoff stops an unbounded discrete summation
	// once both operands' survival mass drops below it. If zero,
	// 1e-10 is used.
	DiscreteTailCutoff float64

	// MaxDiscreteEvals bounds the number of support points a
	// discrete summation will visit before giving up and
	// reporting the divergence undefined. If zero, 1<<20 is used.
	MaxDiscreteEvals int

	// Bounds, if non-nil, restricts integration or summation to
	// [Bounds[0], Bounds[1]] instead of the intersection of the
	// operands' supports. Setting Bounds also disables the
	// analytic closed-form path.
	Bounds *[2]float64

	// Estimator configures density estimation for the
	// sample-vs-sample continuous path.
	Estimator EstimatorConfig
}

func (o *KLOptions) withDefaults() KLOptions {
	var opt KLOptions
	if o != nil {
		opt = *o
	}
	if opt.QuadPoints == 0 {
		opt.QuadPoints = 120
	}
	if opt.DensityFloor == 0 {
		opt.DensityFloor = 1e-300
	}
	if opt.DiscreteTailCutoff == 0 {
		opt.DiscreteTailCutoff = 1e-10
	}
	if opt.MaxDiscreteEvals == 0 {
		opt.MaxDiscreteEvals = 1 << 20
	}
	return opt
}

// KLDivergence returns the Kullback-Leibler divergence D(p‖q) in
// nats.
//
// The result is +Inf (with ok true) if q assigns zero mass or density
// somewhere p does not: the divergence is defined but infinite. ok is
// false if the divergence is undefined: the operands disagree about
// discreteness, their supports do not intersect, the samples are too
// small for the configured estimator, or the computation did not
// produce a finite value.
//
// Evaluation strategy, in order: a closed form when both operands are
// normal with known parameters; nonparametric estimation when both
// are Empirical; discrete summation when both are discrete; adaptive
// quadrature otherwise.
func KLDivergence(p, q Distribution, opt *KLOptions) (kl float64, ok bool) {
	o := opt.withDefaults()

	if o.Bounds == nil {
		if mp, sp, okP := normalParams(p); okP {
			if mq, sq, okQ := normalParams(q); okQ {
				return klNormal(mp, sp, mq, sq), true
			}
		}
	}

	if pe, okP := p.(*Empirical); okP {
		if qe, okQ := q.(*Empirical); okQ {
			return klEmpirical(pe, qe, o)
		}
	}

	if p.IsDiscrete() != q.IsDiscrete() {
		return 0, false
	}

	lo, hi := supportIntersection(p, q, o)
	if !(lo < hi) && !(p.IsDiscrete() && lo == hi) {
		return 0, false
	}

	if p.IsDiscrete() {
		return klDiscrete(p, q, lo, hi, o)
	}
	return klContinuous(p, q, lo, hi, o)
}

// KLDivergence returns the Kullback-Leibler divergence D(e‖q). See
// the package-level KLDivergence.
func (e *Empirical) KLDivergence(q Distribution, opt *KLOptions) (float64, bool) {
	return KLDivergence(e, q, opt)
}

// normalParams extracts (μ, σ) when d is recognizably normal: a
// NormalDist, or a Parametric wrapping distuv.Normal. The match is an
// explicit case list, so adding a family means adding a case.
func normalParams(d Distribution) (mu, sigma float64, ok bool) {
	switch d := d.(type) {
	case NormalDist:
		return d.Mu, d.Sigma, d.Sigma > 0
	case Parametric:
		if n, isNormal := d.D.(distuv.Normal); isNormal {
			return n.Mu, n.Sigma, n.Sigma > 0
		}
	}
	return 0, 0, false
}

// klNormal is the closed form for two normals:
// log(σq/σp) + (σp² + (μp−μq)²)/(2σq²) − ½.
func klNormal(mp, sp, mq, sq float64) float64 {
	return math.Log(sq/sp) + (sp*sp+(mp-mq)*(mp-mq))/(2*sq*sq) - 0.5
}

func supportIntersection(p, q Distribution, o KLOptions) (lo, hi float64) {
	if o.Bounds != nil {
		return o.Bounds[0], o.Bounds[1]
	}
	plo, phi := p.Support()
	qlo, qhi := q.Support()
	return math.Max(plo, qlo), math.Min(phi, qhi)
}

// klTerm returns the contribution p·log(p/q) of one evaluation point,
// or diverged=true if q vanishes where p has mass. Non-finite
// evaluations are absorbed as zero: a single pathological point must
// not fail the whole estimate.
func klTerm(pv, qv, floor float64) (term float64, diverged bool) {
	if !(pv > floor) {
		return 0, false
	}
	if qv <= 0 {
		return 0, true
	}
	if qv < floor {
		qv = floor
	}
	term = pv * math.Log(pv/qv)
	if math.IsNaN(term) || math.IsInf(term, 0) {
		return 0, false
	}
	return term, false
}

func klContinuous(p, q Distribution, lo, hi float64, o KLOptions) (float64, bool) {
	diverged := false
	f := func(x float64) float64 {
		term, div := klTerm(p.PDF(x), q.PDF(x), o.DensityFloor)
		if div {
			diverged = true
		}
		return term
	}

	// Map infinite bounds onto a finite interval. The Gaussian
	// rules never evaluate at the interval endpoints, so the
	// substitutions below stay finite everywhere they are called.
	g, a, b := f, lo, hi
	loInf, hiInf := math.IsInf(lo, -1), math.IsInf(hi, 1)
	switch {
	case loInf && hiInf:
		// x = t/(1−t²) maps (−1, 1) onto (−∞, ∞).
		g = func(t float64) float64 {
			u := 1 - t*t
			return f(t/u) * (1 + t*t) / (u * u)
		}
		a, b = -1, 1
	case hiInf:
		// x = lo + t/(1−t) maps (0, 1) onto (lo, ∞).
		g = func(t float64) float64 {
			u := 1 - t
			return f(lo+t/u) / (u * u)
		}
		a, b = 0, 1
	case loInf:
		g = func(t float64) float64 {
			u := 1 - t
			return f(hi-t/u) / (u * u)
		}
		a, b = 0, 1
	}

	rule := o.Rule
	if rule == nil {
		rule = quad.Legendre{}
	}
	kl := quad.Fixed(g, a, b, o.QuadPoints, rule, 0)

	// Divergence outranks whatever the quadrature accumulated.
	if diverged {
		return inf, true
	}
	if math.IsNaN(kl) || math.IsInf(kl, 0) {
		return 0, false
	}
	return kl, true
}

func klDiscrete(p, q Distribution, lo, hi float64, o KLOptions) (float64, bool) {
	k := math.Ceil(lo)
	bounded := !math.IsInf(hi, 1)

	var sum mathx.Sum
	for evals := 0; ; evals++ {
		if evals > o.MaxDiscreteEvals {
			return 0, false
		}
		if bounded && k > math.Floor(hi) {
			break
		}
		if !bounded && 1-p.CDF(k) < o.DiscreteTailCutoff && 1-q.CDF(k) < o.DiscreteTailCutoff {
			break
		}

		term, diverged := klTerm(p.PDF(k), q.PDF(k), o.DensityFloor)
		if diverged {
			return inf, true
		}
		sum.Add(term)
		k++
	}

	kl := sum.Value()
	if math.IsNaN(kl) || math.IsInf(kl, 0) {
		return 0, false
	}
	return kl, true
}

// klEmpirical estimates D(p‖q) from two samples.
func klEmpirical(p, q *Empirical, o KLOptions) (float64, bool) {
	if p.IsDiscrete() || q.IsDiscrete() {
		return klEmpiricalDiscrete(p, q, o)
	}
	switch o.Estimator.Kind {
	case EstimatorKDE:
		return klCrossKDE(p, q, o.Estimator)
	case EstimatorKNN:
		return klCrossKNN(p, q, o.Estimator)
	default:
		if kl, ok := klCrossKNN(p, q, o.Estimator); ok {
			return kl, ok
		}
		return klCrossKDE(p, q, o.Estimator)
	}
}

// klEmpiricalDiscrete sums p·log(p/q) over the union of the observed
// supports, with each side's probabilities Laplace-smoothed over that
// union. The union is finite, so no tail cutoff applies; smoothing
// keeps q positive everywhere, so the sum cannot diverge.
func klEmpiricalDiscrete(p, q *Empirical, o KLOptions) (float64, bool) {
	union := mergeSupports(p.values, q.values)
	pp := smoothedUnionProbs(union, p)
	qp := smoothedUnionProbs(union, q)

	var sum mathx.Sum
	for i := range union {
		term, diverged := klTerm(pp[i], qp[i], o.DensityFloor)
		if diverged {
			return inf, true
		}
		sum.Add(term)
	}
	kl := sum.Value()
	if math.IsNaN(kl) || math.IsInf(kl, 0) {
		return 0, false
	}
	return kl, true
}

func mergeSupports(a, b []float64) []float64 {
	union := make([]float64, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			union = append(union, a[i])
			i++
		case i == len(a) || b[j] < a[i]:
			union = append(union, b[j])
			j++
		default: // equal
			union = append(union, a[i])
			i, j = i+1, j+1
		}
	}
	return union
}

// smoothedUnionProbs returns e's Laplace-smoothed probabilities over
// the union support; points e never observed get the smoothing mass
// α/(N + α·U).
func smoothedUnionProbs(union []float64, e *Empirical) []float64 {
	counts := make([]int, len(union))
	for i, v := range union {
		j := sort.SearchFloat64s(e.values, v)
		if j < len(e.values) && e.values[j] == v {
			counts[i] = e.counts[j]
		}
	}
	return smoothedProbs(counts, len(e.xs))
}

// klCrossKNN is the nearest-neighbor cross estimator
//
//	D̂ = (1/n)·Σᵢ log(νᵢ/ρᵢ) + log(m/(n−1))
//
// where ρᵢ is the k-th neighbor distance of xᵢ within p's sample and
// νᵢ the k-th neighbor distance of xᵢ within q's sample. Both are
// O(log + k) per point on sorted data.
//
// Wang, Q.; Kulkarni, S.; Verdú, S. (2009) Divergence estimation for
// multidimensional densities via k-nearest-neighbor distances.
func klCrossKNN(p, q *Empirical, cfg EstimatorConfig) (float64, bool) {
	n, m := len(p.xs), len(q.xs)
	k := cfg.neighbors(n)
	if n <= k || m < k {
		return 0, false
	}

	var sum mathx.Sum
	for i := range p.xs {
		rho := kthNeighborDist(p.xs, i, k)
		nu := kthNeighborDistTo(q.xs, p.xs[i], k)
		sum.Add(math.Log(nu / rho))
	}
	kl := sum.Value()/float64(n) + math.Log(float64(m)/float64(n-1))
	if math.IsNaN(kl) || math.IsInf(kl, 0) {
		return 0, false
	}
	return kl, true
}

// klCrossKDE averages log(p̂(xᵢ)/q̂(xᵢ)) over p's sample, with each
// side's bandwidth selected independently. p's density leaves the
// evaluation point out of its own estimate; q's does not, since the
// point is not part of q's sample.
func klCrossKDE(p, q *Empirical, cfg EstimatorConfig) (float64, bool) {
	pk := newGaussKDE(p.xs, cfg.Bandwidth)
	qk := newGaussKDE(q.xs, cfg.Bandwidth)

	var sum mathx.Sum
	for i := range p.xs {
		sum.Add(math.Log(pk.pdfLeaveOut(i) / qk.pdf(p.xs[i])))
	}
	kl := sum.Value() / float64(len(p.xs))
	if math.IsNaN(kl) || math.IsInf(kl, 0) {
		return 0, false
	}
	return kl, true
}
