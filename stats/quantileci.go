// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// QuantileCIResult is the confidence interval for a quantile,
// expressed in order statistics of a sample.
type QuantileCIResult struct {
	// Quantile is the quantile this interval covers, copied from
	// the argument to QuantileCI.
	Quantile float64

	// N is the sample size.
	N int

	// Confidence is the achieved confidence level. Order
	// statistics are coarse, so this is >= the requested level.
	Confidence float64

	// LoOrder and HiOrder are the 1-based order statistics
	// bounding the interval: for a sorted sample Xs, the interval
	// is Xs[LoOrder-1] to Xs[HiOrder-1].
	//
	// Either may fall outside 1..N, meaning the corresponding
	// bound is infinite. This happens when the sample is too
	// small for the confidence level, or the quantile is extreme.
	LoOrder, HiOrder int

	// Ambiguous indicates the interval is not unique: the
	// interval LoOrder+1 to HiOrder+1 achieves the same
	// confidence.
	Ambiguous bool
}

// FromSample maps the order statistics of the interval to values of
// the sample, substituting -Inf or +Inf for order statistics that
// fall outside it.
func (q QuantileCIResult) FromSample(s Sample) (lo, hi float64) {
	if s.Weights != nil {
		panic("cannot compute quantile CI on a weighted sample")
	}
	if len(s.Xs) != q.N {
		panic("sample size differs from computed quantile CI")
	}

	if !s.Sorted {
		s = *s.Copy().Sort()
	}

	lo, hi = -inf, inf
	if q.LoOrder >= 1 {
		lo = s.Xs[q.LoOrder-1]
	}
	if q.HiOrder-1 < len(s.Xs) {
		hi = s.Xs[q.HiOrder-1]
	}
	return
}

// quantileCIApproxThreshold is the sample size above which QuantileCI
// switches from exact binomial summation to the normal approximation.
// It is a variable so tests can force either branch.
var quantileCIApproxThreshold = 30

// QuantileCI returns the confidence interval of the q'th quantile of
// a sample of size n, as order statistics.
//
// The number of sample values below the population quantile is
// binomial with parameters n and q, so the probability that the
// quantile falls between order statistics l and r is a sum of
// binomial probabilities, and an interval achieving the requested
// confidence can be read off that distribution. For large n this uses
// the normal approximation to the binomial with a continuity
// correction.
func QuantileCI(n int, q, confidence float64) QuantileCIResult {
	res := QuantileCIResult{N: n, Quantile: q}

	if confidence >= 1 {
		res.Confidence = 1
		res.LoOrder, res.HiOrder = 0, n+1
		return res
	}

	// Index k of the binomial counts how many sample values fall
	// below the population quantile. Equivalently it names the
	// gap the quantile falls in: gap 0 is (-inf, Xs[0]), gap k is
	// (Xs[k-1], Xs[k]). PMF(k) is then the probability that the
	// population quantile lies in gap k.
	samp := BinomialDist{N: n, P: q}

	var l, r int
	if samp.N <= quantileCIApproxThreshold {
		l, r = quantileCIExact(samp, confidence, &res)
	} else {
		l, r = quantileCINormal(samp, confidence, &res)
	}

	res.LoOrder = maxint(l, 0)
	res.HiOrder = minint(r, n+1)
	return res
}

// quantileCIExact grows the interval [l, r) of binomial gaps outward
// from the mode, always absorbing the more probable neighbor, until
// the requested confidence is reached. Probabilities fall
// monotonically away from the mode, so this yields the narrowest
// interval, left-biased on ties.
func quantileCIExact(samp BinomialDist, confidence float64, res *QuantileCIResult) (l, r int) {
	x := int(math.Ceil(float64(samp.N+1)*samp.P) - 1)
	if samp.P == 0 {
		x = 0
	}
	accum := samp.PMF(float64(x))

	l, r = x, x+1
	lp, rp := samp.PMF(float64(l-1)), samp.PMF(float64(r))
	// A twin mode on the right means the starting gap was an
	// arbitrary choice.
	res.Ambiguous = rp == accum

	// The lp > 0 || rp > 0 guard stops the loop if accumulated
	// rounding error keeps accum just short of the confidence
	// after the whole distribution has been summed.
	for accum < confidence && (lp > 0 || rp > 0) {
		res.Ambiguous = lp == rp
		if lp >= rp {
			accum += lp
			l--
			lp = samp.PMF(float64(l - 1))
		} else {
			accum += rp
			r++
			rp = samp.PMF(float64(r))
		}
	}
	res.Confidence = accum
	return l, r
}

// quantileCINormal reads the interval off the normal approximation to
// samp. Binomial gap k corresponds to the band [k-0.5, k+0.5] of the
// normal, so the central confidence mass is rounded out to half-integer
// boundaries and converted back to gap indexes.
func quantileCINormal(samp BinomialDist, confidence float64, res *QuantileCIResult) (l, r int) {
	norm := samp.NormalApprox()
	alpha := (1 - confidence) / 2

	l1 := norm.InvCDF(alpha)
	r1 := 2*norm.Mu - l1 // symmetric around the mean

	l = int(math.Floor(math.Floor(l1-0.5) + 0.5)) + 1
	r = int(math.Floor(math.Ceil(r1-0.5) + 0.5)) + 1

	// Pr[l <= X < r] on the approximated binomial, with the
	// half-gap continuity correction on both bounds.
	cdf := func(l, r int) float64 {
		return norm.CDF(float64(r)-0.5) - norm.CDF(float64(l)-0.5)
	}
	res.Confidence = cdf(l, r)

	// The rounded interval is symmetric. If dropping the
	// rightmost gap still satisfies the confidence, prefer that,
	// matching the exact branch's left bias.
	if aBiased := cdf(l, r-1); aBiased >= confidence && aBiased < res.Confidence {
		res.Confidence, res.Ambiguous = aBiased, true
		r--
	}
	if l <= 0 && r >= samp.N+1 {
		// The interval spans every gap, so its true
		// confidence is 1 even though the normal's infinite
		// tails make cdf come up short.
		res.Confidence = 1
		res.Ambiguous = false
	}
	return l, r
}
