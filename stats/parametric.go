// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

// A UnivariateDist is the evaluation surface of a parametric
// distribution: a density (or probability mass) function and a CDF.
// Every univariate distribution in gonum.org/v1/gonum/stat/distuv
// satisfies it.
type UnivariateDist interface {
	Prob(x float64) float64
	CDF(x float64) float64
}

// Parametric adapts a parametric distribution to the Distribution
// interface so it can be an operand of KLDivergence.
//
// Discrete distributions must have integer support: the divergence
// engine walks their support in unit steps.
type Parametric struct {
	// D evaluates the distribution.
	D UnivariateDist

	// Lower and Upper are the support bounds. Either may be
	// infinite.
	Lower, Upper float64

	// Discrete marks an integer-lattice distribution.
	Discrete bool
}

func (p Parametric) PDF(x float64) float64 { return p.D.Prob(x) }

func (p Parametric) CDF(x float64) float64 { return p.D.CDF(x) }

func (p Parametric) Support() (lo, hi float64) { return p.Lower, p.Upper }

func (p Parametric) IsDiscrete() bool { return p.Discrete }
