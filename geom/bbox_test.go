// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/hirdrac/rend/math/lin"
)

func TestBBoxEmpty(t *testing.T) {
	b := NewBBox()
	if !b.Empty() {
		t.Error("a freshly reset box should be empty")
	}
	if b.Weight() != 0 {
		t.Error("an empty box should weigh zero")
	}
}

func TestBBoxFitPoint(t *testing.T) {
	b := NewBBox()
	b.FitPoint(&lin.V3{X: 1, Y: 2, Z: 3})
	b.FitPoint(&lin.V3{X: -1, Y: 5, Z: 0})
	if b.Empty() {
		t.Fatal("box with two points should not be empty")
	}
	if b.Pmin != (lin.V3{X: -1, Y: 2, Z: 0}) || b.Pmax != (lin.V3{X: 1, Y: 5, Z: 3}) {
		t.Errorf("unexpected bounds: min=%v max=%v", b.Pmin, b.Pmax)
	}
}

func TestBBoxWeight(t *testing.T) {
	b := NewBBox()
	b.FitPoint(&lin.V3{X: 0, Y: 0, Z: 0})
	b.FitPoint(&lin.V3{X: 2, Y: 3, Z: 4})
	want := 2*(3+4) + 3*4.0
	if b.Weight() != want {
		t.Errorf("got %v want %v", b.Weight(), want)
	}
}

func TestBBoxIntersect(t *testing.T) {
	a := NewBBox()
	a.FitPoint(&lin.V3{X: 0, Y: 0, Z: 0})
	a.FitPoint(&lin.V3{X: 4, Y: 4, Z: 4})
	b := NewBBox()
	b.FitPoint(&lin.V3{X: 2, Y: 2, Z: 2})
	b.FitPoint(&lin.V3{X: 6, Y: 6, Z: 6})
	a.Intersect(b)
	if a.Pmin != (lin.V3{X: 2, Y: 2, Z: 2}) || a.Pmax != (lin.V3{X: 4, Y: 4, Z: 4}) {
		t.Errorf("unexpected intersection: min=%v max=%v", a.Pmin, a.Pmax)
	}
}

func TestBBoxIntersectDisjointIsEmpty(t *testing.T) {
	a := NewBBox()
	a.FitPoint(&lin.V3{X: 0, Y: 0, Z: 0})
	a.FitPoint(&lin.V3{X: 1, Y: 1, Z: 1})
	b := NewBBox()
	b.FitPoint(&lin.V3{X: 5, Y: 5, Z: 5})
	b.FitPoint(&lin.V3{X: 6, Y: 6, Z: 6})
	a.Intersect(b)
	if !a.Empty() {
		t.Error("disjoint boxes should intersect to an empty box")
	}
}

func TestFitTransformedWithMatrix(t *testing.T) {
	b := NewBBox()
	scale := *lin.M4I
	scale.ScaleSM(2, 2, 2)
	tr := NewTransform()
	pts := []lin.V3{{X: 1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: -1}}
	b.FitTransformed(tr, &scale, pts)
	if b.Pmin != (lin.V3{X: -2, Y: -2, Z: -2}) || b.Pmax != (lin.V3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("expected scale-only bound, got min=%v max=%v", b.Pmin, b.Pmax)
	}
}

func TestFitTransformedWithoutMatrixUsesFinal(t *testing.T) {
	b := NewBBox()
	tr := NewTransform()
	tr.Base = *lin.M4I
	tr.Base.ScaleSM(3, 3, 3)
	if err := tr.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	pts := []lin.V3{{X: 1, Y: 1, Z: 1}}
	b.FitTransformed(tr, nil, pts)
	if b.Pmax != (lin.V3{X: 3, Y: 3, Z: 3}) {
		t.Errorf("expected final-transform bound, got max=%v", b.Pmax)
	}
}

func TestUnion(t *testing.T) {
	a := NewBBox()
	a.FitPoint(&lin.V3{X: 0, Y: 0, Z: 0})
	b := NewBBox()
	b.FitPoint(&lin.V3{X: 5, Y: 5, Z: 5})
	u := Union(a, b)
	if u.Pmin != (lin.V3{X: 0, Y: 0, Z: 0}) || u.Pmax != (lin.V3{X: 5, Y: 5, Z: 5}) {
		t.Errorf("unexpected union: min=%v max=%v", u.Pmin, u.Pmax)
	}
}
