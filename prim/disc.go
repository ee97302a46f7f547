// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/stats"
)

// Disc is the unit disc x^2+y^2<=1 at z=0, single-sided.
type Disc struct {
	Base
	normal lin.V3
}

func NewDisc() *Disc { return &Disc{Base: NewBase()} }

func (d *Disc) Trans() *geom.Transform { return &d.Base.Trans }

func (d *Disc) Init(parent *geom.Transform) error {
	if err := d.Base.Trans.Init(parent); err != nil {
		return err
	}
	d.normal = *d.Base.Trans.NormalLocalToGlobal(&lin.V3{Z: 1})
	return nil
}

func (d *Disc) Bound(m *lin.M4) *geom.BBox { return planeBound(&d.Base.Trans, m) }

func (d *Disc) HitCost(tbl *CostTable) float64 { return cost(d.Base.Cost, tbl.Disc) }

func (d *Disc) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Tried(stats.Disc)
	dir := d.Base.Trans.RayLocalDir(&r.Dir)
	base := d.Base.Trans.RayLocalBase(&r.Base)

	if lin.AeqZ(dir.Z) {
		return 0
	}
	t := -base.Z / dir.Z
	if t < r.MinLength || t >= r.MaxLength {
		return 0
	}
	x, y := base.X+dir.X*t, base.Y+dir.Y*t
	if x*x+y*y > 1.0 {
		return 0
	}

	hl.Stats().Hit(stats.Disc)
	pt := lin.V3{X: x, Y: y, Z: 0}
	hl.AddHit(d, t, &pt, 0, hitlist.Normal)
	return 1
}

func (d *Disc) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 {
	return d.normal
}
