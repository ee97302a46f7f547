// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"testing"

	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
)

func TestCubeIntersectFace(t *testing.T) {
	c := NewCube()
	if err := c.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 0, Y: 0, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	n := c.Intersect(r, hl)
	if n != 1 {
		t.Fatalf("expected 1 hit, got %d", n)
	}
	h := hl.FirstHit()
	if h.Distance != 4 {
		t.Errorf("expected distance 4, got %v", h.Distance)
	}
	nrm := c.Normal(r, h)
	if nrm.Z > -0.999 {
		t.Errorf("expected -z face normal, got %v", nrm)
	}
}

func TestCubeIntersectMiss(t *testing.T) {
	c := NewCube()
	if err := c.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 5, Y: 0, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	if n := c.Intersect(r, hl); n != 0 {
		t.Errorf("expected miss, got %d hits", n)
	}
}

func TestCubeIntersectCSGEnterExit(t *testing.T) {
	c := NewCube()
	if err := c.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 0, Y: 0, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(true)
	n := c.Intersect(r, hl)
	if n != 2 {
		t.Fatalf("expected 2 hits, got %d", n)
	}
	first := hl.RemoveFirstHit(r)
	if first.Type != hitlist.Enter || first.Distance != 4 {
		t.Errorf("expected enter at 4, got type=%v dist=%v", first.Type, first.Distance)
	}
	second := hl.RemoveFirstHit(r)
	if second.Type != hitlist.Exit || second.Distance != 6 {
		t.Errorf("expected exit at 6, got type=%v dist=%v", second.Type, second.Distance)
	}
}
