// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"fmt"
	"math"

	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/stats"
)

// planeVec2 is an (A,B) side-plane normal, D implicitly 1.0.
type planeVec2 struct{ X, Y float64 }

// Prism is a right n-sided prism: an n-gon cross-section at every z
// extruded between z=-1 and z=1, each side a plane at unit distance from
// the z axis.
type Prism struct {
	Base
	Sides         int
	plane         []planeVec2
	normal        []lin.V3 // Sides side normals, then +z, then -z.
	halfSideLenSq float64
}

// NewPrism returns a prism with the given side count, which must be
// between 3 and 360.
func NewPrism(sides int) *Prism {
	return &Prism{Base: NewBase(), Sides: sides}
}

func (p *Prism) Trans() *geom.Transform { return &p.Base.Trans }

func (p *Prism) Init(parent *geom.Transform) error {
	if p.Sides < 3 || p.Sides > 360 {
		return fmt.Errorf("%w: prism sides %d out of range [3,360]", rerr.ErrBadParameter, p.Sides)
	}
	if err := p.Base.Trans.Init(parent); err != nil {
		return err
	}

	p.plane = make([]planeVec2, p.Sides)
	for i := 0; i < p.Sides; i++ {
		angle := (2.0 * math.Pi / float64(p.Sides)) * float64(i)
		p.plane[i] = planeVec2{X: math.Sin(angle), Y: math.Cos(angle)}
	}

	p.normal = make([]lin.V3, 0, p.Sides+2)
	for _, n := range p.plane {
		p.normal = append(p.normal, *p.Base.Trans.NormalLocalToGlobal(&lin.V3{X: n.X, Y: n.Y}))
	}
	p.normal = append(p.normal, *p.Base.Trans.NormalLocalToGlobal(&lin.V3{Z: 1}))
	p.normal = append(p.normal, *p.Base.Trans.NormalLocalToGlobal(&lin.V3{Z: -1}))

	t := math.Tan(math.Pi / float64(p.Sides))
	p.halfSideLenSq = t * t
	return nil
}

func (p *Prism) Bound(m *lin.M4) *geom.BBox {
	b := geom.NewBBox()
	length := math.Sqrt(1.0 + p.halfSideLenSq)
	for i := 0; i < p.Sides; i++ {
		a := (2.0 * math.Pi / float64(p.Sides)) * (float64(i) + 0.5)
		x := math.Sin(a) * length
		y := math.Cos(a) * length
		pts := [2]lin.V3{{X: x, Y: y, Z: 1}, {X: x, Y: y, Z: -1}}
		b.FitTransformed(&p.Base.Trans, m, pts[:])
	}
	return b
}

func (p *Prism) HitCost(tbl *CostTable) float64 {
	if p.Base.Cost >= 0 {
		return p.Base.Cost
	}
	return 1.0 + 0.2*float64(p.Sides)
}

func (p *Prism) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Tried(stats.Prism)
	dir := p.Base.Trans.RayLocalDir(&r.Dir)
	base := p.Base.Trans.RayLocalBase(&r.Base)

	nearH, farH := lin.Large, -lin.Large
	nearSide, farSide := -1, -1

	for s := 0; s < p.Sides; s++ {
		n := p.plane[s]
		vd := n.X*dir.X + n.Y*dir.Y
		if vd == 0 {
			continue
		}

		h := (1.0 - (n.X*base.X + n.Y*base.Y)) / vd
		ptZ := base.Z + dir.Z*h
		if ptZ < -1.0 || ptZ > 1.0 {
			continue
		}

		ptX := base.X + dir.X*h
		ptY := base.Y + dir.Y*h
		lenSq := (ptX-n.X)*(ptX-n.X) + (ptY-n.Y)*(ptY-n.Y)
		if lenSq < p.halfSideLenSq {
			if h < nearH {
				nearH, nearSide = h, s
			}
			if h > farH {
				farH, farSide = h, s
			}
			if nearSide != farSide {
				break
			}
		}
	}

	if nearSide == farSide && dir.Z != 0 {
		for _, end := range [2]struct {
			z    float64
			side int
		}{{1, p.Sides}, {-1, p.Sides + 1}} {
			h := -(base.Z - end.z) / dir.Z
			ptX := base.X + dir.X*h
			ptY := base.Y + dir.Y*h
			inside := true
			for i := 0; i < p.Sides; i++ {
				n := p.plane[i]
				if n.X*ptX+n.Y*ptY-1.0 > 0 {
					inside = false
					break
				}
			}
			if !inside {
				continue
			}
			if h < nearH {
				nearH, nearSide = h, end.side
			}
			if h > farH {
				farH, farSide = h, end.side
			}
		}
	}

	if nearSide == farSide {
		return 0
	}

	if farH < r.MinLength || nearH >= r.MaxLength {
		return 0
	}

	if hl.CSG() {
		hl.Stats().Hit(stats.Prism)
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

	hl.Stats().Hit(stats.Prism)
	pt := hitPoint(base, dir, nearH)
	hl.AddHit(p, nearH, &pt, nearSide, hitlist.Normal)
	return 1
}

func (p *Prism) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 {
	return p.normal[h.Side]
}
