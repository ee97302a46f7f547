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

// Cone is the modified z-axis cone x^2+y^2-((1-z)/2)^2=0, apex at +Z,
// capped at z=-1, fitting the unit cube.
type Cone struct {
	Base
	baseNormal lin.V3
}

func NewCone() *Cone { return &Cone{Base: NewBase()} }

func (c *Cone) Trans() *geom.Transform { return &c.Base.Trans }

func (c *Cone) Init(parent *geom.Transform) error {
	if err := c.Base.Trans.Init(parent); err != nil {
		return err
	}
	c.baseNormal = *c.Base.Trans.NormalLocalToGlobal(&lin.V3{Z: -1})
	return nil
}

func (c *Cone) Bound(m *lin.M4) *geom.BBox { return unitCubeBound(&c.Base.Trans, m) }

func (c *Cone) HitCost(tbl *CostTable) float64 { return cost(c.Base.Cost, tbl.Cone) }

func (c *Cone) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Tried(stats.Cone)
	dir := c.Base.Trans.RayLocalDir(&r.Dir)
	base := c.Base.Trans.RayLocalBase(&r.Base)

	var h [2]float64
	var side [2]int
	hits := 0

	a := dir.X*dir.X + dir.Y*dir.Y - 0.25*dir.Z*dir.Z
	b := base.X*dir.X + base.Y*dir.Y + 0.25*dir.Z*(1.0-base.Z)
	cc := base.X*base.X + base.Y*base.Y - 0.25*(base.Z-1.0)*(base.Z-1.0)

	if lin.AeqZ(a) {
		h1 := -cc / (2.0 * b)
		if z := base.Z + dir.Z*h1; z >= -1.0 && z <= 1.0 {
			h[hits], side[hits] = h1, 0
			hits++
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
		hl.Stats().Hit(stats.Cone)
		np := hitPoint(base, dir, nearH)
		fp := hitPoint(base, dir, farH)
		hl.AddHit(c, nearH, &np, nearSide, hitlist.Enter)
		hl.AddHit(c, farH, &fp, farSide, hitlist.Exit)
		return 2
	}

	if nearH < r.MinLength {
		if farH >= r.MaxLength {
			return 0
		}
		nearH, nearSide = farH, farSide
	}

	hl.Stats().Hit(stats.Cone)
	pt := hitPoint(base, dir, nearH)
	hl.AddHit(c, nearH, &pt, nearSide, hitlist.Normal)
	return 1
}

func (c *Cone) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 {
	if h.Side == 1 {
		return c.baseNormal
	}
	n := lin.V3{X: h.LocalPt.X, Y: h.LocalPt.Y, Z: 0.25 * (1.0 - h.LocalPt.Z)}
	return *c.Base.Trans.NormalLocalToGlobal(&n)
}
