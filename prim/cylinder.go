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

// Cylinder is the z-axis cylinder x^2+y^2=1, capped at z=-1 and z=1.
type Cylinder struct {
	Base
	endNormal [2]lin.V3
}

func NewCylinder() *Cylinder { return &Cylinder{Base: NewBase()} }

func (c *Cylinder) Trans() *geom.Transform { return &c.Base.Trans }

func (c *Cylinder) Init(parent *geom.Transform) error {
	if err := c.Base.Trans.Init(parent); err != nil {
		return err
	}
	c.endNormal[0] = *c.Base.Trans.NormalLocalToGlobal(&lin.V3{Z: -1})
	c.endNormal[1] = *c.Base.Trans.NormalLocalToGlobal(&lin.V3{Z: 1})
	return nil
}

func (c *Cylinder) Bound(m *lin.M4) *geom.BBox { return unitCubeBound(&c.Base.Trans, m) }

func (c *Cylinder) HitCost(tbl *CostTable) float64 { return cost(c.Base.Cost, tbl.Cylinder) }

func (c *Cylinder) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Tried(stats.Cylinder)
	dir := c.Base.Trans.RayLocalDir(&r.Dir)
	base := c.Base.Trans.RayLocalBase(&r.Base)

	var h [2]float64
	var side [2]int
	hits := 0

	a := dir.X*dir.X + dir.Y*dir.Y
	if lin.AeqZ(a) {
		if base.X*base.X+base.Y*base.Y > 1.0 {
			return 0
		}
	} else {
		b := base.X*dir.X + base.Y*dir.Y
		cc := base.X*base.X + base.Y*base.Y - 1.0
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

	if hits < 2 && dir.Z != 0 {
		for _, end := range [2]float64{-1, 1} {
			if hits == 2 {
				break
			}
			ht := (end - base.Z) / dir.Z
			x, y := base.X+dir.X*ht, base.Y+dir.Y*ht
			if x*x+y*y <= 1.0 {
				capSide := 1
				if end > 0 {
					capSide = 2
				}
				h[hits], side[hits] = ht, capSide
				hits++
			}
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
		hl.Stats().Hit(stats.Cylinder)
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

	hl.Stats().Hit(stats.Cylinder)
	pt := hitPoint(base, dir, nearH)
	hl.AddHit(c, nearH, &pt, nearSide, hitlist.Normal)
	return 1
}

func (c *Cylinder) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 {
	switch h.Side {
	case 1:
		return c.endNormal[0]
	case 2:
		return c.endNormal[1]
	default:
		n := lin.V3{X: h.LocalPt.X, Y: h.LocalPt.Y, Z: 0}
		return *c.Base.Trans.NormalLocalToGlobal(&n)
	}
}
