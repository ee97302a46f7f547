// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"math"
	"testing"

	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
)

func TestTorusIntersectThroughTube(t *testing.T) {
	tor := NewTorus(0.25)
	if err := tor.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// a ray through the tube cross-section at x=1, parallel to z, crosses
	// the tube twice (near and far wall of the donut's circular cross-section).
	r := &ray.Ray{Base: lin.V3{X: 1, Y: 0, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	n := tor.Intersect(r, hl)
	if n != 1 {
		t.Fatalf("expected 1 hit in non-CSG mode, got %d", n)
	}
}

func TestTorusIntersectMissesCenterHole(t *testing.T) {
	tor := NewTorus(0.25)
	if err := tor.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 0, Y: 0, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	if n := tor.Intersect(r, hl); n != 0 {
		t.Errorf("expected the ray through the donut hole to miss, got %d hits", n)
	}
}

func TestTorusNormalUnitLength(t *testing.T) {
	tor := NewTorus(0.25)
	if err := tor.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	h := &hitlist.HitInfo{LocalPt: lin.V3{X: 1.25, Y: 0, Z: 0}}
	n := tor.Normal(nil, h)
	l := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if math.Abs(l-1) > 1e-6 {
		t.Errorf("expected unit normal, got length %v", l)
	}
}
