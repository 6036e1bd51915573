// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalDist is a normal (Gaussian) distribution with mean Mu and
// standard deviation Sigma.
type NormalDist struct {
	Mu, Sigma float64
}

// StdNormal is the standard normal distribution (Mu = 0, Sigma = 1)
var StdNormal = NormalDist{0, 1}

// 1/sqrt(2 * pi)
const invSqrt2Pi = 0.39894228040143267793994605993438186847585863116493465766592583

func (n NormalDist) PDF(x float64) float64 {
	z := x - n.Mu
	return math.Exp(-z*z/(2*n.Sigma*n.Sigma)) * invSqrt2Pi / n.Sigma
}

func (n NormalDist) PDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	if n.Mu == 0 && n.Sigma == 1 {
		// Standard normal fast path
		for i, x := range xs {
			res[i] = math.Exp(-x*x/2) * invSqrt2Pi
		}
	} else {
		a := -1 / (2 * n.Sigma * n.Sigma)
		b := invSqrt2Pi / n.Sigma
		for i, x := range xs {
			z := x - n.Mu
			res[i] = math.Exp(z*z*a) * b
		}
	}
	return res
}

func (n NormalDist) CDF(x float64) float64 {
	return (1 + math.Erf((x-n.Mu)/(n.Sigma*math.Sqrt2))) / 2
}

func (n NormalDist) CDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	a := 1 / (n.Sigma * math.Sqrt2)
	for i, x := range xs {
		res[i] = (1 + math.Erf((x-n.Mu)*a)) / 2
	}
	return res
}

func (n NormalDist) InvCDF(y float64) float64 {
	if y < 0 || y > 1 {
		return nan
	}
	return n.Mu + n.Sigma*distuv.UnitNormal.Quantile(y)
}

func (n NormalDist) InvCDFEach(ys []float64) []float64 {
	res := make([]float64, len(ys))
	for i, y := range ys {
		res[i] = n.InvCDF(y)
	}
	return res
}

func (n NormalDist) Bounds() (float64, float64) {
	const stddevs = 3
	return n.Mu - stddevs*n.Sigma, n.Mu + stddevs*n.Sigma
}

// Support returns the full real line. Together with PDF, CDF, and
// IsDiscrete this makes NormalDist a Distribution, so it can be an
// operand of KLDivergence. A pair of NormalDist operands takes the
// analytic path.
func (n NormalDist) Support() (float64, float64) {
	return -inf, inf
}

func (n NormalDist) IsDiscrete() bool {
	return false
}
