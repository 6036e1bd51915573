// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-npstat/mathx"
)

// A CIMethod selects how a bootstrap confidence interval is read off
// the replicate distribution.
type CIMethod int

//go:generate stringer -type=CIMethod

const (
	// Percentile reads the interval directly from the empirical
	// quantiles of the bootstrap replicates.
	Percentile CIMethod = iota

	// BCa applies bias correction and jackknife-based
	// acceleration to the quantile levels before reading them
	// off the replicates.
	//
	// Efron, B. (1987) Better Bootstrap Confidence Intervals.
	BCa
)

// Bootstrap configures bootstrap confidence interval estimation. The
// zero value is a reasonable default configuration.
type Bootstrap struct {
	// Resamples is the number of bootstrap replicates B. If zero,
	// 1000 is used. No interval can be computed with B <= 1.
	Resamples int

	// Confidence is the confidence level of the interval, in
	// (0, 1). If zero, 0.95 is used.
	Confidence float64

	// Method selects the interval construction. The two-sample
	// driver does not define BCa acceleration and silently uses
	// Percentile instead; the result reports the method actually
	// used.
	Method CIMethod

	// Seed seeds the resampling RNG. If zero, a nondeterministic
	// seed is drawn.
	Seed uint64

	// Workers is the number of goroutines evaluating replicates.
	// If zero, GOMAXPROCS is used. Each worker draws from its own
	// RNG stream, so results depend on Seed and Workers but not
	// on scheduling.
	Workers int
}

// A BootstrapEstimate is a point estimate with a bootstrap confidence
// interval.
type BootstrapEstimate struct {
	// Value is the estimate on the original data.
	Value float64

	// Lower and Upper bound the confidence interval. They are NaN
	// if the interval could not be computed: fewer than two
	// replicates requested, or too few replicates produced a
	// finite value.
	Lower, Upper float64

	// Confidence is the requested confidence level.
	Confidence float64

	// Resamples is the number of replicates drawn.
	Resamples int

	// Method is the interval construction actually used.
	Method CIMethod
}

func (b Bootstrap) withDefaults() Bootstrap {
	if b.Resamples == 0 {
		b.Resamples = 1000
	}
	if b.Confidence == 0 {
		b.Confidence = 0.95
	}
	if b.Workers <= 0 {
		b.Workers = runtime.GOMAXPROCS(0)
	}
	if b.Seed == 0 {
		b.Seed = rand.Uint64() | 1
	}
	return b
}

// OneSample estimates a confidence interval for estimator(data) by
// resampling data with replacement.
//
// The estimator is an arbitrary scalar statistic; it may do heavy
// work per replicate, such as rebuilding an Empirical distribution to
// reclassify the resampled data. Replicates are evaluated in
// parallel, so the estimator must be safe for concurrent calls.
func (b Bootstrap) OneSample(data []float64, estimator func([]float64) float64) BootstrapEstimate {
	b = b.withDefaults()
	est := BootstrapEstimate{
		Value:      estimator(data),
		Lower:      nan,
		Upper:      nan,
		Confidence: b.Confidence,
		Resamples:  b.Resamples,
		Method:     b.Method,
	}
	if b.Resamples <= 1 || len(data) == 0 {
		return est
	}

	reps := finiteSorted(b.replicates(data, estimator))
	if len(reps) < 2 {
		return est
	}

	alpha := (1 - b.Confidence) / 2
	switch b.Method {
	case Percentile:
		est.Lower = interpQuantile(reps, alpha)
		est.Upper = interpQuantile(reps, 1-alpha)
	case BCa:
		lo, hi := bcaInterval(reps, est.Value, alpha, jackknife(data, estimator))
		est.Lower, est.Upper = lo, hi
	default:
		panic("unknown confidence interval method")
	}
	return est
}

// TwoSample estimates a confidence interval for estimator(xs, ys) by
// resampling xs and ys independently, one pair per replicate.
//
// BCa acceleration is not defined for two independent samples in this
// design; if requested, the percentile method is used and reported.
func (b Bootstrap) TwoSample(xs, ys []float64, estimator func(xs, ys []float64) float64) BootstrapEstimate {
	b = b.withDefaults()
	b.Method = Percentile

	est := BootstrapEstimate{
		Value:      estimator(xs, ys),
		Lower:      nan,
		Upper:      nan,
		Confidence: b.Confidence,
		Resamples:  b.Resamples,
		Method:     Percentile,
	}
	if b.Resamples <= 1 || len(xs) == 0 || len(ys) == 0 {
		return est
	}

	reps := make([]float64, b.Resamples)
	b.eachReplicate(func(lo, hi int, rng *rand.Rand) {
		rx := make([]float64, len(xs))
		ry := make([]float64, len(ys))
		for i := lo; i < hi; i++ {
			resampleInto(rng, xs, rx)
			resampleInto(rng, ys, ry)
			reps[i] = estimator(rx, ry)
		}
	})
	reps = finiteSorted(reps)
	if len(reps) < 2 {
		return est
	}

	alpha := (1 - b.Confidence) / 2
	est.Lower = interpQuantile(reps, alpha)
	est.Upper = interpQuantile(reps, 1-alpha)
	return est
}

// replicates draws b.Resamples resamples of data with replacement and
// applies estimator to each.
func (b Bootstrap) replicates(data []float64, estimator func([]float64) float64) []float64 {
	reps := make([]float64, b.Resamples)
	b.eachReplicate(func(lo, hi int, rng *rand.Rand) {
		resample := make([]float64, len(data))
		for i := lo; i < hi; i++ {
			resampleInto(rng, data, resample)
			reps[i] = estimator(resample)
		}
	})
	return reps
}

// eachReplicate partitions the replicate indexes across workers, each
// with its own RNG stream derived from the seed.
func (b Bootstrap) eachReplicate(run func(lo, hi int, rng *rand.Rand)) {
	workers := minint(b.Workers, b.Resamples)
	per := (b.Resamples + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * per
		hi := minint(lo+per, b.Resamples)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(b.Seed + uint64(w)*0x9e3779b97f4a7c15))
			run(lo, hi, rng)
		}(w, lo, hi)
	}
	wg.Wait()
}

func resampleInto(rng *rand.Rand, data, out []float64) {
	for i := range out {
		out[i] = data[rng.Intn(len(data))]
	}
}

// finiteSorted drops non-finite replicates (an estimator may be
// undefined on some resamples) and sorts the remainder.
func finiteSorted(reps []float64) []float64 {
	kept := reps[:0]
	for _, r := range reps {
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			kept = append(kept, r)
		}
	}
	sort.Float64s(kept)
	return kept
}

// jackknife returns the leave-one-out estimates of estimator on data.
func jackknife(data []float64, estimator func([]float64) float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	loo := make([]float64, len(data)-1)
	jack := make([]float64, len(data))
	for i := range data {
		loo = loo[:0]
		loo = append(loo, data[:i]...)
		loo = append(loo, data[i+1:]...)
		jack[i] = estimator(loo)
	}
	return jack
}

// bcaInterval reads the bias-corrected and accelerated interval off
// the sorted replicates.
func bcaInterval(sortedReps []float64, original, alpha float64, jack []float64) (lo, hi float64) {
	// Bias term: the normal quantile of the fraction of
	// replicates below the original estimate. Clamped away from 0
	// and 1 so a degenerate replicate distribution yields the
	// extreme order statistics rather than NaN.
	below := sort.SearchFloat64s(sortedReps, original)
	frac := float64(below) / float64(len(sortedReps))
	frac = math.Max(math.Min(frac, 1-1/float64(len(sortedReps)+1)), 1/float64(len(sortedReps)+1))
	z0 := distuv.UnitNormal.Quantile(frac)

	a := acceleration(jack)

	adj := func(tail float64) float64 {
		z := distuv.UnitNormal.Quantile(tail)
		zadj := z0 + (z0+z)/(1-a*(z0+z))
		return distuv.UnitNormal.CDF(zadj)
	}
	return interpQuantile(sortedReps, adj(alpha)), interpQuantile(sortedReps, adj(1-alpha))
}

// acceleration computes the BCa acceleration term from jackknife
// estimates: Σ(m̄−mᵢ)³ / (6·(Σ(m̄−mᵢ)²)^{3/2}).
func acceleration(jack []float64) float64 {
	if len(jack) == 0 {
		return 0
	}
	mbar := mathx.SumSlice(jack) / float64(len(jack))

	var sq, cube mathx.Sum
	for _, m := range jack {
		d := mbar - m
		sq.Add(d * d)
		cube.Add(d * d * d)
	}
	denom := 6 * math.Pow(sq.Value(), 1.5)
	if denom == 0 || math.IsNaN(denom) {
		return 0
	}
	return cube.Value() / denom
}

// EntropyEstimate returns the entropy of e with a bootstrap
// confidence interval. Each replicate rebuilds an Empirical from the
// resampled data, so discreteness is reclassified per replicate.
func (e *Empirical) EntropyEstimate(cfg EstimatorConfig, b Bootstrap) BootstrapEstimate {
	return b.OneSample(e.xs, func(xs []float64) float64 {
		d, err := NewEmpirical(xs)
		if err != nil {
			return nan
		}
		return d.entropy(cfg)
	})
}

// KLDivergenceEstimate returns the Kullback-Leibler divergence
// D(e‖q) with a two-sample bootstrap confidence interval. ok is false
// if the divergence of the original samples is undefined.
func (e *Empirical) KLDivergenceEstimate(q *Empirical, opt *KLOptions, b Bootstrap) (est BootstrapEstimate, ok bool) {
	if _, ok := KLDivergence(e, q, opt); !ok {
		return BootstrapEstimate{}, false
	}
	est = b.TwoSample(e.xs, q.xs, func(xs, ys []float64) float64 {
		dp, err := NewEmpirical(xs)
		if err != nil {
			return nan
		}
		dq, err := NewEmpirical(ys)
		if err != nil {
			return nan
		}
		kl, ok := KLDivergence(dp, dq, opt)
		if !ok {
			return nan
		}
		return kl
	})
	return est, true
}
