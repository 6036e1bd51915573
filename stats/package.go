// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats implements nonparametric statistical estimation.
//
// The centerpiece is the Empirical distribution, which is constructed
// from a raw sample, classifies itself as discrete or continuous, and
// exposes the full distribution query surface along with entropy and
// Kullback-Leibler divergence estimators and bootstrap confidence
// intervals around them. Parametric distributions (for example, the
// ones in gonum.org/v1/gonum/stat/distuv) participate in divergence
// computations through the Parametric adapter.
package stats // import "github.com/aclements/go-npstat/stats"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
