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

// Sphere is the unit sphere centered at the origin: x^2+y^2+z^2-1=0.
type Sphere struct{ Base }

// NewSphere returns a unit sphere with an identity transform.
func NewSphere() *Sphere { return &Sphere{Base: NewBase()} }

func (s *Sphere) Trans() *geom.Transform { return &s.Base.Trans }

func (s *Sphere) Init(parent *geom.Transform) error { return s.Base.Trans.Init(parent) }

func (s *Sphere) Bound(m *lin.M4) *geom.BBox {
	return unitCubeBound(&s.Base.Trans, m)
}

func (s *Sphere) HitCost(tbl *CostTable) float64 { return cost(s.Base.Cost, tbl.Sphere) }

func (s *Sphere) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Tried(stats.Sphere)

	dir := s.Base.Trans.RayLocalDir(&r.Dir)
	base := s.Base.Trans.RayLocalBase(&r.Base)

	a := dir.Dot(dir)
	b := base.Dot(dir)
	c := base.Dot(base) - 1.0
	d := b*b - a*c
	if d < lin.VerySmall {
		return 0 // missed, or single-intersection graze treated as a miss.
	}

	sqrtD := math.Sqrt(d)
	farH := (-b + sqrtD) / a
	if farH < r.MinLength {
		return 0
	}
	nearH := (-b - sqrtD) / a
	if nearH >= r.MaxLength {
		return 0
	}

	if hl.CSG() {
		hl.Stats().Hit(stats.Sphere)
		np := hitPoint(base, dir, nearH)
		fp := hitPoint(base, dir, farH)
		hl.AddHit(s, nearH, &np, 0, hitlist.Enter)
		hl.AddHit(s, farH, &fp, 0, hitlist.Exit)
		return 2
	}

	if nearH < r.MinLength {
		if farH >= r.MaxLength {
			return 0
		}
		nearH = farH
	}

	hl.Stats().Hit(stats.Sphere)
	pt := hitPoint(base, dir, nearH)
	hl.AddHit(s, nearH, &pt, 0, hitlist.Normal)
	return 1
}

func (s *Sphere) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 {
	return *s.Base.Trans.NormalLocalToGlobal(&h.LocalPt)
}
