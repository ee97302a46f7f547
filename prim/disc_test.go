// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"testing"

	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
)

func TestDiscIntersectWithinRadius(t *testing.T) {
	d := NewDisc()
	if err := d.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 0.5, Y: 0, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	n := d.Intersect(r, hl)
	if n != 1 {
		t.Fatalf("expected 1 hit, got %d", n)
	}
	h := hl.RemoveFirstHit(r)
	if h.Distance != 5 {
		t.Errorf("expected distance 5, got %v", h.Distance)
	}
}

func TestDiscIntersectOutsideRadius(t *testing.T) {
	d := NewDisc()
	if err := d.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 2, Y: 0, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	if n := d.Intersect(r, hl); n != 0 {
		t.Errorf("expected a miss beyond the disc's radius, got %d hits", n)
	}
}

func TestDiscIntersectParallelMiss(t *testing.T) {
	d := NewDisc()
	if err := d.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 0, Y: 0, Z: 1}, Dir: lin.V3{X: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	if n := d.Intersect(r, hl); n != 0 {
		t.Errorf("expected a ray parallel to the disc's plane to miss, got %d hits", n)
	}
}
