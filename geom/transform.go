// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import (
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/lin"
)

// Transform is the per-object placement state every primitive and group
// owns: an author-supplied local matrix Base, composed at Init time with a
// parent's Final to produce Final/FinalInv. FinalInv is kept around so that
// a global ray can be localized (RayLocalBase/RayLocalDir) without
// repeating the inversion per ray.
type Transform struct {
	Base lin.M4 // configured local transform.

	final    lin.M4
	finalInv lin.M4
	noParent bool // true disables composition with a parent transform.
}

// NewTransform returns a Transform with an identity Base.
func NewTransform() *Transform {
	t := &Transform{}
	t.Clear()
	return t
}

// Clear resets t to an uninitialized identity transform.
func (t *Transform) Clear() {
	t.Base = *lin.M4I
	t.final = *lin.M4I
	t.finalInv = *lin.M4I
	t.noParent = false
}

// SetNoParent controls whether Init composes with a parent's Final.
func (t *Transform) SetNoParent(v bool) { t.noParent = v }

// NoParent reports whether t ignores its parent's composed transform.
func (t *Transform) NoParent() bool { return t.noParent }

// Final returns the parent-composed transform computed by the last Init.
func (t *Transform) Final() *lin.M4 { return &t.final }

// FinalInv returns the inverse of Final computed by the last Init.
func (t *Transform) FinalInv() *lin.M4 { return &t.finalInv }

// Init composes t.final = t.Base, then (unless NoParent) t.final *= parent's
// Final, and caches the inverse in finalInv. Returns rerr.ErrSingularMatrix,
// leaving final/finalInv at their prior values, if the composed matrix
// cannot be inverted.
func (t *Transform) Init(parent *Transform) error {
	final := t.Base
	if parent != nil && !t.noParent {
		final.Mult(&final, &parent.final)
	}
	var inv lin.M4
	if !inv.Invert(&final) {
		return rerr.ErrSingularMatrix
	}
	t.final = final
	t.finalInv = inv
	return nil
}

// PointThroughM4 maps point p (homogeneous w=1) through matrix m.
func PointThroughM4(p *lin.V3, m *lin.M4) *lin.V3 {
	r := lin.MultvM4(&lin.V4{X: p.X, Y: p.Y, Z: p.Z, W: 1}, m)
	return &lin.V3{X: r.X, Y: r.Y, Z: r.Z}
}

// vectorThroughM4 maps direction v (homogeneous w=0) through matrix m.
func vectorThroughM4(v *lin.V3, m *lin.M4) *lin.V3 {
	r := lin.MultvM4(&lin.V4{X: v.X, Y: v.Y, Z: v.Z, W: 0}, m)
	return &lin.V3{X: r.X, Y: r.Y, Z: r.Z}
}

// PointLocalToGlobal maps a point from the primitive's local space to
// global (scene) space using Final.
func (t *Transform) PointLocalToGlobal(pos *lin.V3) *lin.V3 {
	return PointThroughM4(pos, &t.final)
}

// VectorLocalToGlobal maps a direction (ray direction, tangent) from local
// to global space using Final. Unlike points, directions are unaffected by
// translation (w=0).
func (t *Transform) VectorLocalToGlobal(dir *lin.V3) *lin.V3 {
	return vectorThroughM4(dir, &t.final)
}

// NormalLocalToGlobal maps a unit surface normal from local to global
// space. Normals transform by the transpose of the inverse, not by Final
// directly, so that non-uniform scale doesn't skew them.
func (t *Transform) NormalLocalToGlobal(n *lin.V3) *lin.V3 {
	var invT lin.M4
	invT.Transpose(&t.finalInv)
	g := vectorThroughM4(n, &invT)
	return g.Unit()
}

// RayLocalBase maps a global ray origin into the primitive's local frame.
func (t *Transform) RayLocalBase(base *lin.V3) *lin.V3 {
	return PointThroughM4(base, &t.finalInv)
}

// RayLocalDir maps a global ray direction into the primitive's local frame.
func (t *Transform) RayLocalDir(dir *lin.V3) *lin.V3 {
	return vectorThroughM4(dir, &t.finalInv)
}
