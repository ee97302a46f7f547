// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bvh groups a scene's top-level primitives into a tree of axis-
// aligned bounding boxes, trading the cost of walking every primitive on
// every ray for a handful of cheap box tests that let whole subtrees be
// skipped.
package bvh

import (
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
)

// Bound is a bounding volume wrapping a fixed set of primitives: a ray
// that misses box never touches any of them. Built only by Build; callers
// never construct one directly.
type Bound struct {
	hitlist.ObjectBase
	objects []prim.Primitive
	box     *geom.BBox
}

// Trans satisfies prim.Primitive but is never consulted: Bound tests a
// ray in global space directly against its cached box, the same way
// Union/Group wrap children without introducing a frame of their own.
func (b *Bound) Trans() *geom.Transform { return geom.NewTransform() }

// Init is a no-op: a Bound's children were already initialized against
// their own original parent transform when Build walked the scene list.
func (b *Bound) Init(parent *geom.Transform) error { return nil }

// Bound returns the cached box this node was built with, ignoring m: a
// Bound never moves once built, unlike a primitive re-bounded under a
// parent transform.
func (b *Bound) Bound(m *lin.M4) *geom.BBox { return b.box }

func (b *Bound) HitCost(tbl *prim.CostTable) float64 { return tbl.Bound }

func (b *Bound) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 { return lin.V3{} }

// ShaderOf satisfies prim.Primitive but is never consulted: a Bound is
// never the hit.Object a trace resolves a shader against -- its wrapped
// objects add hits under their own identity, not the Bound's.
func (b *Bound) ShaderOf() prim.Shader { return nil }

// Intersect slab-tests r against box first; only on a hit does it walk
// the wrapped objects.
func (b *Bound) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Bound++

	nearHit, farHit := -lin.Large, lin.Large
	for axis := 0; axis < 3; axis++ {
		bmin, bmax := axisVal(&b.box.Pmin, axis), axisVal(&b.box.Pmax, axis)
		base, dir := axisVal(&r.Base, axis), axisVal(&r.Dir, axis)
		h1 := (bmin - base) / dir
		h2 := (bmax - base) / dir
		if h1 > h2 {
			h1, h2 = h2, h1
		}
		if h1 > nearHit {
			nearHit = h1
		}
		if h2 < farHit {
			farHit = h2
		}
	}

	if nearHit > farHit || farHit < r.MinLength || nearHit >= r.MaxLength {
		return 0
	}

	hl.Stats().BoundHit++
	hits := 0
	for _, ob := range b.objects {
		hits += ob.Intersect(r, hl)
	}
	return hits
}

func axisVal(v *lin.V3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
