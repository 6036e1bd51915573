// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

// pmfDist is a hand-built integer-lattice distribution for divergence
// tests.
type pmfDist struct {
	probs  map[float64]float64
	lo, hi float64
}

func (d pmfDist) PDF(x float64) float64 { return d.probs[x] }

func (d pmfDist) CDF(x float64) float64 {
	sum := 0.0
	for k, p := range d.probs {
		if k <= x {
			sum += p
		}
	}
	return sum
}

func (d pmfDist) Support() (float64, float64) { return d.lo, d.hi }

func (d pmfDist) IsDiscrete() bool { return true }

func TestKLNormalAnalytic(t *testing.T) {
	// Identical normals: exactly zero, not approximately. This
	// verifies the closed-form branch is taken; the quadrature
	// path could only be approximately zero.
	kl, ok := KLDivergence(NormalDist{0, 1}, NormalDist{0, 1}, nil)
	if !ok || kl != 0 {
		t.Errorf("want exactly 0, got %v, %v", kl, ok)
	}

	// Closed form: log(σq/σp) + (σp²+(μp−μq)²)/(2σq²) − ½.
	kl, ok = KLDivergence(NormalDist{0, 1}, NormalDist{1, 2}, nil)
	want := math.Log(2) + (1+1)/8.0 - 0.5
	if !ok || !aeq(want, kl) {
		t.Errorf("want %v, got %v, %v", want, kl, ok)
	}

	// The analytic path also recognizes distuv normals behind
	// the Parametric adapter.
	p := Parametric{D: distuv.Normal{Mu: 0, Sigma: 1}, Lower: -inf, Upper: inf}
	q := Parametric{D: distuv.Normal{Mu: 1, Sigma: 2}, Lower: -inf, Upper: inf}
	kl, ok = KLDivergence(p, q, nil)
	if !ok || !aeq(want, kl) {
		t.Errorf("parametric normals: want %v, got %v, %v", want, kl, ok)
	}
}

func TestKLContinuousQuadrature(t *testing.T) {
	// Explicit bounds disable the analytic path, so this
	// exercises the quadrature against the known closed form.
	want := math.Log(2) + (1+1)/8.0 - 0.5
	opt := &KLOptions{Bounds: &[2]float64{-10, 12}}
	kl, ok := KLDivergence(NormalDist{0, 1}, NormalDist{1, 2}, opt)
	if !ok || !aeqTol(want, kl, 1e-6) {
		t.Errorf("finite bounds: want %v, got %v, %v", want, kl, ok)
	}

	// Doubly infinite bounds, integrated through the algebraic
	// substitution onto (-1, 1).
	opt = &KLOptions{Bounds: &[2]float64{-inf, inf}}
	kl, ok = KLDivergence(NormalDist{0, 1}, NormalDist{1, 2}, opt)
	if !ok || !aeqTol(want, kl, 1e-4) {
		t.Errorf("infinite bounds: want %v, got %v, %v", want, kl, ok)
	}

	// Semi-infinite: two exponentials on [0, ∞).
	// D(Exp(λp)‖Exp(λq)) = log(λp/λq) + λq/λp − 1.
	pe := Parametric{D: distuv.Exponential{Rate: 2}, Lower: 0, Upper: inf}
	qe := Parametric{D: distuv.Exponential{Rate: 1}, Lower: 0, Upper: inf}
	wantExp := math.Log(2) + 0.5 - 1
	kl, ok = KLDivergence(pe, qe, nil)
	if !ok || !aeqTol(wantExp, kl, 1e-4) {
		t.Errorf("exponentials: want %v, got %v, %v", wantExp, kl, ok)
	}
}

func TestKLDiscreteParametric(t *testing.T) {
	// D(Poisson(λp)‖Poisson(λq)) = λp·log(λp/λq) + λq − λp.
	p := Parametric{D: distuv.Poisson{Lambda: 3}, Lower: 0, Upper: inf, Discrete: true}
	q := Parametric{D: distuv.Poisson{Lambda: 5}, Lower: 0, Upper: inf, Discrete: true}

	want := 3*math.Log(3.0/5) + 5 - 3
	kl, ok := KLDivergence(p, q, nil)
	if !ok || !aeqTol(want, kl, 1e-6) {
		t.Errorf("want %v, got %v, %v", want, kl, ok)
	}

	// Self-divergence is zero.
	kl, ok = KLDivergence(p, p, nil)
	if !ok || !aeqTol(0, kl, 1e-12) {
		t.Errorf("self: want 0, got %v, %v", kl, ok)
	}
}

func TestKLDivergent(t *testing.T) {
	// Q assigns zero probability where P has mass: defined but
	// infinite, which is distinct from undefined.
	p := pmfDist{probs: map[float64]float64{0: 0.5, 2: 0.5}, lo: 0, hi: 2}
	q := pmfDist{probs: map[float64]float64{1: 0.5, 3: 0.5}, lo: 1, hi: 3}

	kl, ok := KLDivergence(p, q, nil)
	if !ok || !math.IsInf(kl, 1) {
		t.Errorf("want +Inf, got %v, %v", kl, ok)
	}
}

func TestKLUndefined(t *testing.T) {
	// Mismatched discreteness.
	p := Parametric{D: distuv.Poisson{Lambda: 3}, Lower: 0, Upper: inf, Discrete: true}
	if _, ok := KLDivergence(p, NormalDist{0, 1}, nil); ok {
		t.Errorf("discrete vs continuous should be undefined")
	}

	// Disjoint continuous supports.
	u1 := Parametric{D: distuv.Uniform{Min: 0, Max: 1}, Lower: 0, Upper: 1}
	u2 := Parametric{D: distuv.Uniform{Min: 2, Max: 3}, Lower: 2, Upper: 3}
	if _, ok := KLDivergence(u1, u2, nil); ok {
		t.Errorf("disjoint supports should be undefined")
	}
}

func TestKLEmpiricalDiscrete(t *testing.T) {
	// Identical samples: identical smoothed probabilities on both
	// sides, so the divergence is exactly zero.
	xs := []float64{1, 2, 2, 3, 3, 3}
	p := mustEmpirical(t, xs)
	q := mustEmpirical(t, xs)
	kl, ok := KLDivergence(p, q, nil)
	if !ok || kl != 0 {
		t.Errorf("self: want exactly 0, got %v, %v", kl, ok)
	}

	// Different discrete samples: positive and finite, even with
	// non-overlapping support, because smoothing spreads mass
	// over the union.
	r := mustEmpirical(t, []float64{7, 7, 8, 8, 8, 9})
	kl, ok = KLDivergence(p, r, nil)
	if !ok || !(kl > 0) || math.IsInf(kl, 0) {
		t.Errorf("want positive finite, got %v, %v", kl, ok)
	}

	// Hand check on the union-support smoothing: supports {1,2}
	// and {2,3}, union {1,2,3}.
	a := mustEmpirical(t, []float64{1, 1, 2, 2})
	b := mustEmpirical(t, []float64{2, 2, 3, 3})
	pa := []float64{2.5 / 5.5, 2.5 / 5.5, 0.5 / 5.5}
	pb := []float64{0.5 / 5.5, 2.5 / 5.5, 2.5 / 5.5}
	want := 0.0
	for i := range pa {
		want += pa[i] * math.Log(pa[i]/pb[i])
	}
	kl, ok = KLDivergence(a, b, nil)
	if !ok || !aeq(want, kl) {
		t.Errorf("want %v, got %v, %v", want, kl, ok)
	}

	// One discrete sample pulls a continuous one onto the
	// merged-support path rather than leaving the pair undefined.
	c := mustEmpirical(t, normalSample(50, 41))
	kl, ok = KLDivergence(p, c, nil)
	if !ok || math.IsInf(kl, 0) || math.IsNaN(kl) {
		t.Errorf("mixed samples: want finite, got %v, %v", kl, ok)
	}
}

func TestKLEmpiricalContinuous(t *testing.T) {
	// D(N(0,1)‖N(0.5,1)) = 0.125. The nearest-neighbor cross
	// estimator should be in the neighborhood on 2000 draws each.
	xs := normalSample(2000, 19)
	ys := normalSample(2000, 23)
	for i := range ys {
		ys[i] += 0.5
	}

	p := mustEmpirical(t, xs)
	q := mustEmpirical(t, ys)

	kl, ok := KLDivergence(p, q, nil)
	if !ok || !aeqTol(0.125, kl, 0.1) {
		t.Errorf("KNN: want ~0.125, got %v, %v", kl, ok)
	}

	// The KDE cross estimator smooths both densities, so it is
	// more biased; just require the right ballpark.
	kl, ok = KLDivergence(p, q, &KLOptions{Estimator: EstimatorConfig{Kind: EstimatorKDE}})
	if !ok || !(kl > 0) || !(kl < 0.3) {
		t.Errorf("KDE: want in (0, 0.3), got %v, %v", kl, ok)
	}

	// Two independent samples from the same distribution: near
	// zero, up to estimator noise.
	kl, ok = KLDivergence(p, mustEmpirical(t, normalSample(2000, 47)), nil)
	if !ok || !aeqTol(0, kl, 0.1) {
		t.Errorf("same distribution: want ~0, got %v, %v", kl, ok)
	}
}

func TestKLEmpiricalVsParametric(t *testing.T) {
	// An empirical operand against a parametric one goes through
	// quadrature with the empirical side's KDE.
	p := mustEmpirical(t, normalSample(1000, 29))
	q := NormalDist{0, 1}

	kl, ok := KLDivergence(p, q, nil)
	if !ok || !aeqTol(0, kl, 0.25) {
		t.Errorf("want ~0, got %v, %v", kl, ok)
	}
}
