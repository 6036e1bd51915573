// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"math"
	"testing"
)

func TestSumCompensation(t *testing.T) {
	// Naive summation of this sequence loses 1 entirely.
	var s Sum
	s.Add(1)
	s.Add(1e100)
	s.Add(1)
	s.Add(-1e100)
	if got := s.Value(); got != 2 {
		t.Errorf("want 2, got %v", got)
	}

	// Many small terms against a large one.
	s = Sum{}
	s.Add(1e16)
	for i := 0; i < 1000; i++ {
		s.Add(0.1)
	}
	want := 1e16 + 100
	if got := s.Value(); math.Abs(got-want) > 1 {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestSumSlice(t *testing.T) {
	if got := SumSlice(nil); got != 0 {
		t.Errorf("empty sum: want 0, got %v", got)
	}
	if got := SumSlice([]float64{1, 2, 3}); got != 6 {
		t.Errorf("want 6, got %v", got)
	}
}

func TestDigamma(t *testing.T) {
	// ψ(1) = -γ.
	const gamma = 0.57721566490153286
	if got := Digamma(1); math.Abs(got+gamma) > 1e-10 {
		t.Errorf("Digamma(1): want %v, got %v", -gamma, got)
	}
	// Recurrence ψ(x+1) = ψ(x) + 1/x.
	for _, x := range []float64{0.5, 1, 2.5, 10} {
		if got, want := Digamma(x+1), Digamma(x)+1/x; math.Abs(got-want) > 1e-10 {
			t.Errorf("Digamma recurrence at %v: want %v, got %v", x, want, got)
		}
	}
	if !math.IsNaN(Digamma(0)) && !math.IsInf(Digamma(0), 0) {
		t.Errorf("Digamma(0): want non-finite, got %v", Digamma(0))
	}
}

func TestLogGamma(t *testing.T) {
	if got := LogGamma(5); !(math.Abs(got-math.Log(24)) < 1e-12) {
		t.Errorf("LogGamma(5): want log(24), got %v", got)
	}
}
