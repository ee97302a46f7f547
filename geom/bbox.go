// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package geom provides the scene-graph geometry shared by every primitive:
// the hierarchical affine Transform (base/final/finalInv, composed with a
// parent at init time) and the axis-aligned BBox used by the BVH builder's
// cost heuristic.
package geom

import (
	"github.com/hirdrac/rend/math/lin"
)

// BBox is an axis-aligned bounding box, empty until fit with at least one
// point. Pmin/Pmax track the box corners; a box is empty whenever Pmin
// exceeds Pmax on any axis.
type BBox struct {
	Pmin lin.V3
	Pmax lin.V3
}

// NewBBox returns an empty box, ready to be grown with Fit.
func NewBBox() *BBox {
	b := &BBox{}
	b.Reset()
	return b
}

// Reset clears b back to the empty box.
func (b *BBox) Reset() {
	b.Pmin = lin.V3{X: lin.Large, Y: lin.Large, Z: lin.Large}
	b.Pmax = lin.V3{X: -lin.Large, Y: -lin.Large, Z: -lin.Large}
}

// Empty returns true if b contains no points.
func (b *BBox) Empty() bool {
	return b.Pmin.X > b.Pmax.X || b.Pmin.Y > b.Pmax.Y || b.Pmin.Z > b.Pmax.Z
}

// Weight returns the BVH builder's surface-area-like cost heuristic:
// x(y+z) + yz where x,y,z are the box's edge lengths. An empty box weighs
// zero.
func (b *BBox) Weight() float64 {
	if b.Empty() {
		return 0
	}
	x := b.Pmax.X - b.Pmin.X
	y := b.Pmax.Y - b.Pmin.Y
	z := b.Pmax.Z - b.Pmin.Z
	return x*(y+z) + y*z
}

// Center returns the midpoint of the box.
func (b *BBox) Center() lin.V3 {
	return lin.V3{
		X: (b.Pmin.X + b.Pmax.X) * 0.5,
		Y: (b.Pmin.Y + b.Pmax.Y) * 0.5,
		Z: (b.Pmin.Z + b.Pmax.Z) * 0.5,
	}
}

// FitPoint grows b, if necessary, to contain pt.
func (b *BBox) FitPoint(pt *lin.V3) {
	if pt.X < b.Pmin.X {
		b.Pmin.X = pt.X
	}
	if pt.Y < b.Pmin.Y {
		b.Pmin.Y = pt.Y
	}
	if pt.Z < b.Pmin.Z {
		b.Pmin.Z = pt.Z
	}
	if pt.X > b.Pmax.X {
		b.Pmax.X = pt.X
	}
	if pt.Y > b.Pmax.Y {
		b.Pmax.Y = pt.Y
	}
	if pt.Z > b.Pmax.Z {
		b.Pmax.Z = pt.Z
	}
}

// FitBox grows b, if necessary, to contain box.
func (b *BBox) FitBox(box *BBox) {
	b.FitPoint(&box.Pmin)
	b.FitPoint(&box.Pmax)
}

// FitTransformed grows b to contain every point in pts, mapped through m
// if given, or through t's own Final transform otherwise. A caller passes
// m to bound a primitive as it will sit inside a parent's composed
// transform (the BVH builder's own use), and nil to bound it in place.
// Curved primitives fit a representative extent-box corner set this way
// rather than an exact analytic bound (e.g. a torus fits the 8 corners of
// its axis-aligned extent box).
func (b *BBox) FitTransformed(t *Transform, m *lin.M4, pts []lin.V3) {
	for i := range pts {
		p := pts[i]
		var global *lin.V3
		if m != nil {
			global = PointThroughM4(&p, m)
		} else {
			global = t.PointLocalToGlobal(&p)
		}
		b.FitPoint(global)
	}
}

// Intersect shrinks b to the overlap of b and box. The result may end up
// empty if b and box do not overlap.
func (b *BBox) Intersect(box *BBox) {
	if box.Pmin.X > b.Pmin.X {
		b.Pmin.X = box.Pmin.X
	}
	if box.Pmin.Y > b.Pmin.Y {
		b.Pmin.Y = box.Pmin.Y
	}
	if box.Pmin.Z > b.Pmin.Z {
		b.Pmin.Z = box.Pmin.Z
	}
	if box.Pmax.X < b.Pmax.X {
		b.Pmax.X = box.Pmax.X
	}
	if box.Pmax.Y < b.Pmax.Y {
		b.Pmax.Y = box.Pmax.Y
	}
	if box.Pmax.Z < b.Pmax.Z {
		b.Pmax.Z = box.Pmax.Z
	}
}

// Union returns a new box fit to contain both a and b.
func Union(a, b *BBox) *BBox {
	box := &BBox{Pmin: a.Pmin, Pmax: a.Pmax}
	box.FitBox(b)
	return box
}
