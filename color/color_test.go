// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package color

import (
	"testing"

	"github.com/hirdrac/rend/math/lin"
)

func TestAdd(t *testing.T) {
	got := New(0.1, 0.2, 0.3).Add(New(0.4, 0.4, 0.4))
	want := Color{R: 0.5, G: 0.6, B: 0.7, A: 2}
	if !lin.Aeq(got.R, want.R) || !lin.Aeq(got.G, want.G) || !lin.Aeq(got.B, want.B) || !lin.Aeq(got.A, want.A) {
		t.Errorf("got %+v want %+v", got, want)
	}
}

func TestMul(t *testing.T) {
	got := New(0.5, 0.5, 0.5).Mul(New(1, 0, 0.5))
	want := Color{R: 0.5, G: 0, B: 0.25, A: 1}
	if got != want {
		t.Errorf("got %+v want %+v", got, want)
	}
}

func TestIsBlack(t *testing.T) {
	if !Black.IsBlack(1e-6) {
		t.Error("zero-value color should be black")
	}
	if White.IsBlack(1e-6) {
		t.Error("white should not be black")
	}
}

func TestClamp01(t *testing.T) {
	got := Color{R: -1, G: 0.5, B: 2, A: 1.5}.Clamp01()
	want := Color{R: 0, G: 0.5, B: 1, A: 1}
	if got != want {
		t.Errorf("got %+v want %+v", got, want)
	}
}

func TestGray(t *testing.T) {
	if !lin.Aeq(White.Gray(), 1) {
		t.Errorf("white gray should be 1, got %v", White.Gray())
	}
	if Black.Gray() != 0 {
		t.Errorf("black gray should be 0, got %v", Black.Gray())
	}
}
