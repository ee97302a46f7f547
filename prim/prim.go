// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package prim implements the closed set of analytic primitives a scene
// can place (spheres, cubes, cones, cylinders, discs, planes,
// paraboloids, tori, prisms) plus the CSG nodes that combine them. Every
// primitive intersects in its own canonical local frame -- unit sphere,
// unit cube [-1,1]^3, unit disc at z=0, and so on -- then reports hits
// through the shared geom.Transform back in global space.
package prim

import (
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
)

// Shader is the sealed handle a primitive owns for evaluating its surface
// color. Defined here (rather than in a shader package importing prim)
// since the Primitive/CSG base needs the field before package shader is
// built; concrete shader types satisfy it by embedding ShaderBase.
type Shader interface {
	isShader()
}

// ShaderBase is embedded by every concrete shader type to satisfy Shader.
type ShaderBase struct{}

func (ShaderBase) isShader() {}

// Primitive is the contract every closed primitive variant and CSG node
// implements: intersect, normal, bound, and hitCost.
type Primitive interface {
	hitlist.Object
	Init(parent *geom.Transform) error
	Bound(m *lin.M4) *geom.BBox
	Intersect(r *ray.Ray, hl *hitlist.HitList) int
	Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3
	HitCost(tbl *CostTable) float64
	Trans() *geom.Transform
	ShaderOf() Shader
}

// Base is embedded by every concrete primitive: the transform placing it
// in the scene, its shader handle, and an optional per-instance cost
// override (negative means "use the table default").
type Base struct {
	hitlist.ObjectBase
	Trans  geom.Transform
	Shader Shader
	Cost   float64
}

// NewBase returns a Base with an identity transform and no per-instance
// cost override.
func NewBase() Base {
	b := Base{Cost: -1}
	b.Trans.Clear()
	return b
}

// ShaderOf returns the primitive's own shader, or nil if none was
// assigned during parsing; the caller (package scene) falls back to the
// scene's default object shader in that case.
func (b *Base) ShaderOf() Shader { return b.Shader }

// SetShader assigns the primitive's own shader, promoted onto every
// concrete primitive and CSG node so a scene builder can set it without
// a type switch over the closed primitive set.
func (b *Base) SetShader(sh Shader) { b.Shader = sh }

// SetCost overrides the primitive's intersection cost used in place of
// its CostTable default.
func (b *Base) SetCost(v float64) { b.Cost = v }

// CostTable holds the per-kind intersection cost used by the BVH builder
// to weigh a leaf's expected hit cost. Defaults are empirically tuned
// values.
type CostTable struct {
	Bound      float64
	Disc       float64
	Cone       float64
	CSG        float64
	Cube       float64
	Cylinder   float64
	Paraboloid float64
	Plane      float64
	Sphere     float64
	Torus      float64
}

// DefaultCostTable returns a set of empirically tuned per-kind costs.
func DefaultCostTable() CostTable {
	return CostTable{
		Bound:      .8,
		Disc:       .9,
		Cone:       1.5,
		CSG:        .3,
		Cube:       1.2,
		Cylinder:   1.7,
		Paraboloid: 1.3,
		Plane:      .85,
		Sphere:     1.0,
		Torus:      7.0,
	}
}

// cost returns override if it is non-negative, else deflt.
func cost(override, deflt float64) float64 {
	if override >= 0 {
		return override
	}
	return deflt
}

// hitPoint returns base + dir*t, the local-space point a ray parameter
// maps to. Every primitive's intersect routine calls this once per
// surviving hit.
func hitPoint(base, dir *lin.V3, t float64) lin.V3 {
	return lin.V3{X: base.X + dir.X*t, Y: base.Y + dir.Y*t, Z: base.Z + dir.Z*t}
}

// unitCubeCorners are the canonical [-1,1]^3 cube corners every box-like
// primitive (sphere, cube, cone, cylinder, paraboloid) bounds
// itself with -- fitting the transformed corners rather than computing an
// exact analytic bound for curved shapes.
var unitCubeCorners = [8]lin.V3{
	{X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1},
}

// planeCorners are the canonical disc/plane extent corners (the unit
// square at z=0 the disc inscribes and the plane spans).
var planeCorners = [4]lin.V3{
	{X: 1, Y: 1, Z: 0}, {X: -1, Y: 1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: -1, Y: -1, Z: 0},
}

// unitCubeBound fits a box to the unit cube corners mapped through m (if
// given) or t's own Final transform.
func unitCubeBound(t *geom.Transform, m *lin.M4) *geom.BBox {
	b := geom.NewBBox()
	b.FitTransformed(t, m, unitCubeCorners[:])
	return b
}

// planeBound fits a box to the disc/plane extent corners mapped through m
// (if given) or t's own Final transform.
func planeBound(t *geom.Transform, m *lin.M4) *geom.BBox {
	b := geom.NewBBox()
	b.FitTransformed(t, m, planeCorners[:])
	return b
}
