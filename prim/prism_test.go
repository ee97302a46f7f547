// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"testing"

	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
)

func TestPrismInitRejectsOutOfRangeSides(t *testing.T) {
	p := NewPrism(2)
	if err := p.Init(nil); err == nil {
		t.Error("expected an error for sides < 3")
	}
	p = NewPrism(361)
	if err := p.Init(nil); err == nil {
		t.Error("expected an error for sides > 360")
	}
}

func TestPrismIntersectThroughCenter(t *testing.T) {
	p := NewPrism(6)
	if err := p.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 0, Y: 0, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	n := p.Intersect(r, hl)
	if n != 1 {
		t.Fatalf("expected 1 hit through the prism's end caps, got %d", n)
	}
	h := hl.FirstHit()
	if h.Distance != 4 {
		t.Errorf("expected distance 4 (end cap at z=-1), got %v", h.Distance)
	}
}

func TestPrismIntersectMiss(t *testing.T) {
	p := NewPrism(6)
	if err := p.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r := &ray.Ray{Base: lin.V3{X: 50, Y: 50, Z: -5}, Dir: lin.V3{Z: 1}, MaxLength: lin.Large}
	hl := newHitList(false)
	if n := p.Intersect(r, hl); n != 0 {
		t.Errorf("expected miss, got %d hits", n)
	}
}
