// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"github.com/aclements/go-npstat/mathx"
)

// minNeighborDist floors k-th neighbor distances so repeated sample
// values do not produce log(0) in the entropy and divergence
// estimators.
const minNeighborDist = 1e-12

// kthNeighborDist returns the distance from sorted[i] to its k-th
// nearest neighbor among the other elements of sorted.
//
// Because the data is one-dimensional and sorted, the k nearest
// neighbors occupy a contiguous window around i, so this is a two
// pointer walk that consumes whichever side currently offers the
// smaller candidate distance. O(k) per point; no spatial index.
func kthNeighborDist(sorted []float64, i, k int) float64 {
	lo, hi := i-1, i+1
	d := 0.0
	for taken := 0; taken < k; taken++ {
		dl, dr := inf, inf
		if lo >= 0 {
			dl = sorted[i] - sorted[lo]
		}
		if hi < len(sorted) {
			dr = sorted[hi] - sorted[i]
		}
		if math.IsInf(dl, 1) && math.IsInf(dr, 1) {
			break
		}
		if dl <= dr {
			d = dl
			lo--
		} else {
			d = dr
			hi++
		}
	}
	if d < minNeighborDist {
		d = minNeighborDist
	}
	return d
}

// kthNeighborDistTo returns the k-th smallest distance from x to a
// point of sorted. Unlike kthNeighborDist, x need not be an element;
// every point of sorted is a candidate.
func kthNeighborDistTo(sorted []float64, x float64, k int) float64 {
	lo := sort.SearchFloat64s(sorted, x) - 1
	hi := lo + 1
	d := 0.0
	for taken := 0; taken < k; taken++ {
		dl, dr := inf, inf
		if lo >= 0 {
			dl = x - sorted[lo]
		}
		if hi < len(sorted) {
			dr = sorted[hi] - x
		}
		if math.IsInf(dl, 1) && math.IsInf(dr, 1) {
			break
		}
		if dl <= dr {
			d = dl
			lo--
		} else {
			d = dr
			hi++
		}
	}
	if d < minNeighborDist {
		d = minNeighborDist
	}
	return d
}

// logBallVolume is the log volume of the one-dimensional unit ball,
// π^{1/2}/Γ(3/2) = 2. This is the c₁ constant of the
// Kozachenko-Leonenko estimator.
var logBallVolume = 0.5*math.Log(math.Pi) - mathx.LogGamma(1.5)

// knnEntropy estimates the differential entropy of the distribution
// underlying sorted from k-th nearest neighbor distances:
//
//	Ĥ = ψ(n) − ψ(k) + log c₁ + (1/n)·Σᵢ log ρᵢ
//
// where ρᵢ is the distance from point i to its k-th neighbor and c₁
// the unit ball volume. It requires n > k and reports ok=false
// otherwise, or if the digamma terms are non-finite.
//
// Kozachenko, L. F.; Leonenko, N. N. (1987) Sample estimate of the
// entropy of a random vector.
func knnEntropy(sorted []float64, k int) (h float64, ok bool) {
	n := len(sorted)
	if k < 1 || n <= k {
		return 0, false
	}

	base := mathx.Digamma(float64(n)) - mathx.Digamma(float64(k)) + logBallVolume
	if math.IsNaN(base) || math.IsInf(base, 0) {
		return 0, false
	}

	var sum mathx.Sum
	for i := range sorted {
		sum.Add(math.Log(kthNeighborDist(sorted, i, k)))
	}
	return base + sum.Value()/float64(n), true
}
