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

var cubeSideNormal = [6]lin.V3{
	{X: -1}, {X: 1}, {Y: -1}, {Y: 1}, {Z: -1}, {Z: 1},
}

// Cube is the axis-aligned cube [-1,1]^3, hit with the slab method.
type Cube struct {
	Base
	sideNormal [6]lin.V3 // cached, transform-mapped face normals.
}

func NewCube() *Cube { return &Cube{Base: NewBase()} }

func (c *Cube) Trans() *geom.Transform { return &c.Base.Trans }

func (c *Cube) Init(parent *geom.Transform) error {
	if err := c.Base.Trans.Init(parent); err != nil {
		return err
	}
	for i := range cubeSideNormal {
		c.sideNormal[i] = *c.Base.Trans.NormalLocalToGlobal(&cubeSideNormal[i])
	}
	return nil
}

func (c *Cube) Bound(m *lin.M4) *geom.BBox { return unitCubeBound(&c.Base.Trans, m) }

func (c *Cube) HitCost(tbl *CostTable) float64 { return cost(c.Base.Cost, tbl.Cube) }

func (c *Cube) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Tried(stats.Cube)

	dir := c.Base.Trans.RayLocalDir(&r.Dir)
	base := c.Base.Trans.RayLocalBase(&r.Base)

	nearH, farH := -lin.Large, lin.Large
	nearSide, farSide := -1, -1

	if dir.X != 0 {
		h1 := (-1.0 - base.X) / dir.X
		h2 := (1.0 - base.X) / dir.X
		if h1 < h2 {
			nearH, nearSide = h1, 0
			farH, farSide = h2, 1
		} else {
			nearH, nearSide = h2, 1
			farH, farSide = h1, 0
		}
	} else if math.Abs(base.X) > 1.0 {
		return 0
	}

	axes := [2]struct {
		d, b float64
		s    int
	}{{dir.Y, base.Y, 2}, {dir.Z, base.Z, 4}}
	for _, ax := range axes {
		if ax.d != 0 {
			h1 := (-1.0 - ax.b) / ax.d
			h2 := (1.0 - ax.b) / ax.d
			if h1 < h2 {
				if h1 > nearH {
					nearH, nearSide = h1, ax.s
				}
				if h2 < farH {
					farH, farSide = h2, ax.s+1
				}
			} else {
				if h2 > nearH {
					nearH, nearSide = h2, ax.s+1
				}
				if h1 < farH {
					farH, farSide = h1, ax.s
				}
			}
			if nearH > farH {
				return 0
			}
		} else if math.Abs(ax.b) > 1.0 {
			return 0
		}
	}

	if farH < r.MinLength || nearH >= r.MaxLength {
		return 0
	}

	if hl.CSG() {
		hl.Stats().Hit(stats.Cube)
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

	hl.Stats().Hit(stats.Cube)
	pt := hitPoint(base, dir, nearH)
	hl.AddHit(c, nearH, &pt, nearSide, hitlist.Normal)
	return 1
}

func (c *Cube) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 {
	return c.sideNormal[h.Side]
}
