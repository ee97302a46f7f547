// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"math"

	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/stats"
)

// Paraboloid is the z-axis paraboloid x^2+y^2=(1-z)/2, capped at z=-1,
// vertex at z=1, fitting the unit cube.
type Paraboloid struct {
	Base
	baseNormal lin.V3
}

func NewParaboloid() *Paraboloid { return &Paraboloid{Base: NewBase()} }

func (p *Paraboloid) Trans() *geom.Transform { return &p.Base.Trans }

func (p *Paraboloid) Init(parent *geom.Transform) error {
	if err := p.Base.Trans.Init(parent); err != nil {
		return err
	}
	p.baseNormal = *p.Base.Trans.NormalLocalToGlobal(&lin.V3{Z: -1})
	return nil
}

func (p *Paraboloid) Bound(m *lin.M4) *geom.BBox { return unitCubeBound(&p.Base.Trans, m) }

func (p *Paraboloid) HitCost(tbl *CostTable) float64 { return cost(p.Base.Cost, tbl.Paraboloid) }

func (p *Paraboloid) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Tried(stats.Paraboloid)
	dir := p.Base.Trans.RayLocalDir(&r.Dir)
	base := p.Base.Trans.RayLocalBase(&r.Base)

	var h [2]float64
	var side [2]int
	hits := 0

	a := dir.X*dir.X + dir.Y*dir.Y
	b := base.X*dir.X + base.Y*dir.Y + 0.25*dir.Z
	cc := base.X*base.X + base.Y*base.Y + 0.5*base.Z - 0.5

	if lin.AeqZ(a) {
		if !lin.AeqZ(b) {
			h1 := -cc / (2.0 * b)
			if z := base.Z + dir.Z*h1; z >= -1.0 && z <= 1.0 {
				h[hits], side[hits] = h1, 0
				hits++
			}
		}
	} else {
		d := b*b - a*cc
		if d < lin.VerySmall {
			return 0
		}
		sqrtD := math.Sqrt(d)
		h1 := (-b - sqrtD) / a
		if z := base.Z + dir.Z*h1; z >= -1.0 && z <= 1.0 {
			h[hits], side[hits] = h1, 0
			hits++
		}
		h2 := (-b + sqrtD) / a
		if z := base.Z + dir.Z*h2; z >= -1.0 && z <= 1.0 {
			h[hits], side[hits] = h2, 0
			hits++
		}
	}

	if hits == 1 && dir.Z != 0 {
		h0 := -(base.Z + 1.0) / dir.Z
		x, y := base.X+dir.X*h0, base.Y+dir.Y*h0
		if x*x+y*y <= 1.0 {
			h[hits], side[hits] = h0, 1
			hits++
		}
	}

	if hits != 2 {
		return 0
	}

	nearH, nearSide, farH, farSide := h[0], side[0], h[1], side[1]
	if h[0] >= h[1] {
		nearH, nearSide, farH, farSide = h[1], side[1], h[0], side[0]
	}

	if farH < r.MinLength || nearH >= r.MaxLength {
		return 0
	}

	if hl.CSG() {
		hl.Stats().Hit(stats.Paraboloid)
		np := hitPoint(base, dir, nearH)
		fp := hitPoint(base, dir, farH)
		hl.AddHit(p, nearH, &np, nearSide, hitlist.Enter)
		hl.AddHit(p, farH, &fp, farSide, hitlist.Exit)
		return 2
	}

	if nearH < r.MinLength {
		if farH >= r.MaxLength {
			return 0
		}
		nearH, nearSide = farH, farSide
	}

	hl.Stats().Hit(stats.Paraboloid)
	pt := hitPoint(base, dir, nearH)
	hl.AddHit(p, nearH, &pt, nearSide, hitlist.Normal)
	return 1
}

func (p *Paraboloid) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 {
	if h.Side == 1 {
		return p.baseNormal
	}
	n := lin.V3{X: h.LocalPt.X, Y: h.LocalPt.Y, Z: 0.25}
	return *p.Base.Trans.NormalLocalToGlobal(&n)
}
