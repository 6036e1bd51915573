// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// laplaceAlpha is the additive smoothing constant applied to observed
// multiplicities before normalizing them into probabilities.
const laplaceAlpha = 0.5

// supportKind classifies the support of a sample.
type supportKind int

const (
	supportContinuous supportKind = iota

	// supportLattice is a discrete support with a consistent
	// spacing between points.
	supportLattice

	// supportDiscrete is a discrete support with no consistent
	// spacing. This arises from heavily repeated samples that do
	// not fall on a lattice, such as rounded or censored
	// continuous data.
	supportDiscrete
)

// supportClass is the result of classifying a sample's support.
type supportClass struct {
	kind supportKind

	// step and origin describe the lattice for supportLattice.
	// origin is the smallest support point for every discrete
	// kind; step is NaN unless kind is supportLattice.
	step, origin float64
}

func (c supportClass) discrete() bool {
	return c.kind != supportContinuous
}

// classifySupport decides whether a sample is discrete or continuous.
// values is the ascending unique support; total is the sample size
// including duplicates.
//
// The lattice test accepts gaps whose ratios to the smallest gap are
// integral within a relative tolerance, so integer data perturbed by
// floating noise still classifies as a lattice. Samples that fail the
// lattice test but repeat more than a quarter of their values are
// still treated as discrete, with no known step.
func classifySupport(values []float64, total int, toleranceScale float64) supportClass {
	if toleranceScale <= 0 {
		toleranceScale = 1e-6
	}

	if len(values) == 0 {
		return supportClass{kind: supportDiscrete, step: nan, origin: nan}
	}
	if len(values) == 1 {
		return supportClass{kind: supportDiscrete, step: nan, origin: values[0]}
	}
	if len(values) == total {
		// Every sample value distinct.
		return supportClass{kind: supportContinuous, step: nan, origin: nan}
	}

	minGap := inf
	for i := 1; i < len(values); i++ {
		if gap := values[i] - values[i-1]; gap > 0 && gap < minGap {
			minGap = gap
		}
	}

	tol := math.Max(toleranceScale*minGap, 4*machEps)
	lattice := !math.IsInf(minGap, 1)
	for i := 1; lattice && i < len(values); i++ {
		ratio := (values[i] - values[i-1]) / minGap
		if math.Abs(ratio-math.Round(ratio)) > tol {
			lattice = false
		}
	}
	if lattice {
		return supportClass{kind: supportLattice, step: minGap, origin: values[0]}
	}

	// Duplicate-fraction fallback: heavily repeated values are
	// discrete even without a clean lattice.
	if 1-float64(len(values))/float64(total) > 0.25 {
		return supportClass{kind: supportDiscrete, step: nan, origin: values[0]}
	}
	return supportClass{kind: supportContinuous, step: nan, origin: nan}
}

const machEps = 2.220446049250313e-16

// smoothedProbs converts multiplicities over a unique support into
// Laplace-smoothed probabilities (count + α) / (N + α·U). The result
// always sums to 1 up to floating error, and no entry is zero, so
// logarithms of these probabilities are finite.
//
// This is recomputed per call rather than cached because bootstrap and
// jackknife replicates tabulate sub-samples with different U and N.
func smoothedProbs(counts []int, total int) []float64 {
	probs := make([]float64, len(counts))
	denom := float64(total) + laplaceAlpha*float64(len(counts))
	for i, c := range counts {
		probs[i] = (float64(c) + laplaceAlpha) / denom
	}
	return probs
}

// uniqueCounts tabulates the distinct values of sorted and their
// multiplicities.
func uniqueCounts(sorted []float64) (values []float64, counts []int) {
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		values = append(values, sorted[i])
		counts = append(counts, j-i)
		i = j
	}
	return
}
