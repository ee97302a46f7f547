// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"testing"

	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
)

func TestPlaneIntersectBeyondDiscRadius(t *testing.T) {
	p := NewPlane()
	if err := p.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// unlike Disc, Plane has no radius cutoff -- this would miss a Disc.
	r := &ray.Ray{Base: lin.V3{X: 5, Y: 5, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	n := p.Intersect(r, hl)
	if n != 1 {
		t.Fatalf("expected 1 hit, got %d", n)
	}
	h := hl.RemoveFirstHit(r)
	if h.Distance != 5 {
		t.Errorf("expected distance 5, got %v", h.Distance)
	}
}

func TestPlaneIntersectParallelMiss(t *testing.T) {
	p := NewPlane()
	if err := p.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 0, Y: 0, Z: 1}, Dir: lin.V3{X: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	if n := p.Intersect(r, hl); n != 0 {
		t.Errorf("expected a ray parallel to the plane to miss, got %d hits", n)
	}
}
