// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"testing"

	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
)

func TestConeIntersectThroughCap(t *testing.T) {
	c := NewCone()
	if err := c.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// x=0.5 is within the base cap's radius and also crosses the cone's
	// slanted wall further along +z, so the near hit is the cap at z=-1.
	r := &ray.Ray{Base: lin.V3{X: 0.5, Y: 0, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	n := c.Intersect(r, hl)
	if n != 1 {
		t.Fatalf("expected 1 hit, got %d", n)
	}
	h := hl.RemoveFirstHit(r)
	if h.Distance != 4 || h.Side != 1 {
		t.Errorf("expected the base cap at distance 4, got dist=%v side=%v", h.Distance, h.Side)
	}
}

func TestConeIntersectMiss(t *testing.T) {
	c := NewCone()
	if err := c.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 5, Y: 5, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	if n := c.Intersect(r, hl); n != 0 {
		t.Errorf("expected a miss, got %d hits", n)
	}
}
