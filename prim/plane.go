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

// Plane is the infinite z=0 plane, single-sided, bounded for BVH purposes
// by the same unit extent a Disc uses.
type Plane struct {
	Base
	normal lin.V3
}

func NewPlane() *Plane { return &Plane{Base: NewBase()} }

func (p *Plane) Trans() *geom.Transform { return &p.Base.Trans }

func (p *Plane) Init(parent *geom.Transform) error {
	if err := p.Base.Trans.Init(parent); err != nil {
		return err
	}
	p.normal = *p.Base.Trans.NormalLocalToGlobal(&lin.V3{Z: 1})
	return nil
}

func (p *Plane) Bound(m *lin.M4) *geom.BBox { return planeBound(&p.Base.Trans, m) }

func (p *Plane) HitCost(tbl *CostTable) float64 { return cost(p.Base.Cost, tbl.Plane) }

func (p *Plane) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Tried(stats.Plane)
	dir := p.Base.Trans.RayLocalDir(&r.Dir)
	base := p.Base.Trans.RayLocalBase(&r.Base)

	if lin.AeqZ(dir.Z) {
		return 0
	}
	t := -base.Z / dir.Z
	if t < r.MinLength || t >= r.MaxLength {
		return 0
	}

	hl.Stats().Hit(stats.Plane)
	pt := hitPoint(base, dir, t)
	pt.Z = 0
	hl.AddHit(p, t, &pt, 0, hitlist.Normal)
	return 1
}

func (p *Plane) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 {
	return p.normal
}
