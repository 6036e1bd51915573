// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"github.com/aclements/go-npstat/mathx"
)

// defaultNeighbors is the k used by the nearest-neighbor estimators
// when the caller does not choose one.
const defaultNeighbors = 3

// An EstimatorKind selects the density estimation technique used by
// the continuous entropy and divergence estimators.
type EstimatorKind int

const (
	// EstimatorAuto picks an estimator and its parameters from
	// the data:
	// nearest-neighbor with the default k where the sample is
	// large enough, otherwise kernel density estimation.
	EstimatorAuto EstimatorKind = iota

	// EstimatorKNN uses k-th nearest neighbor distances.
	EstimatorKNN

	// EstimatorKDE uses a Gaussian kernel density estimate.
	EstimatorKDE
)

// An EstimatorConfig configures density estimation for the continuous
// entropy and divergence estimators. The zero value selects
// everything automatically.
type EstimatorConfig struct {
	Kind EstimatorKind

	// K is the neighbor count for EstimatorKNN. If zero, the
	// default is used. It is clamped to at least 1 and to half
	// the sample size.
	K int

	// Bandwidth is the kernel bandwidth for EstimatorKDE. If
	// zero, the bandwidth is selected by leave-one-out maximum
	// likelihood around Silverman's rule.
	Bandwidth float64
}

// neighbors returns the neighbor count to use for a sample of size n.
// An automatically chosen k is clamped to half the sample size; an
// explicit k is honored, which may push the nearest-neighbor
// estimators past their n > k requirement and into their fallbacks.
func (c EstimatorConfig) neighbors(n int) int {
	k := c.K
	if k == 0 {
		k = minint(defaultNeighbors, n/2)
	}
	return maxint(k, 1)
}

// discreteEntropy returns the plug-in entropy of the smoothed
// probabilities with the Miller-Madow finite-sample bias correction
// (U-1)/(2N).
//
// Miller, G. (1955) Note on the bias of information estimates.
func discreteEntropy(probs []float64, n int) float64 {
	var sum mathx.Sum
	for _, p := range probs {
		if p > 0 {
			sum.Add(-p * math.Log(p))
		}
	}
	return sum.Value() + float64(len(probs)-1)/(2*float64(n))
}

// continuousEntropy estimates differential entropy of the sorted
// sample. It prefers the nearest-neighbor estimator and falls back to
// the leave-one-out KDE log likelihood when the sample is too small
// for the requested k (or when the config selects KDE outright).
func continuousEntropy(sorted []float64, cfg EstimatorConfig) float64 {
	if cfg.Kind != EstimatorKDE {
		k := cfg.neighbors(len(sorted))
		if h, ok := knnEntropy(sorted, k); ok {
			return h
		}
		// Too few points for the requested k. Degrade to KDE
		// rather than failing the whole estimate.
	}
	return kdeEntropy(sorted, cfg.Bandwidth)
}

// kdeEntropy is the leave-one-out KDE entropy −(1/n)·Σᵢ log ƒ̂₋ᵢ(xᵢ).
func kdeEntropy(sorted []float64, bandwidth float64) float64 {
	kde := newGaussKDE(sorted, bandwidth)
	var sum mathx.Sum
	for i := range sorted {
		sum.Add(math.Log(kde.pdfLeaveOut(i)))
	}
	return -sum.Value() / float64(len(sorted))
}

// countPeaks counts local maxima of ys. A peak must rise strictly
// from the left and not fall short of its right neighbor, so a
// plateau counts once, at its left edge. If interior is true the
// first and last points are not eligible; a density sampled on a
// truncated grid always slopes into its edges, so an edge maximum
// there is an artifact, whereas the endpoint of a PMF's support can
// be a real mode.
func countPeaks(ys []float64, interior bool) int {
	peaks := 0
	for i := range ys {
		if interior && (i == 0 || i == len(ys)-1) {
			continue
		}
		rising := i == 0 || ys[i] > ys[i-1]
		falling := i == len(ys)-1 || ys[i] >= ys[i+1]
		if rising && falling {
			peaks++
		}
	}
	return peaks
}

// modalityGridSize returns the KDE evaluation grid size for a sample
// of size n: six points per sample, clamped to [16, 128].
func modalityGridSize(n int) int {
	return minint(maxint(6*n, 16), 128)
}
