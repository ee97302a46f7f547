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
	"github.com/hirdrac/rend/math/roots"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/stats"
)

// torusCorners are the 8 corners of the torus's axis-aligned extent box:
// the outer ring radius (1+Radius2) in X/Y, the tube radius in Z.
func torusCorners(radius2 float64) [8]lin.V3 {
	r := 1.0 + radius2
	return [8]lin.V3{
		{X: r, Y: r, Z: radius2}, {X: -r, Y: r, Z: radius2},
		{X: r, Y: -r, Z: radius2}, {X: r, Y: r, Z: -radius2},
		{X: -r, Y: -r, Z: radius2}, {X: r, Y: -r, Z: -radius2},
		{X: -r, Y: r, Z: -radius2}, {X: -r, Y: -r, Z: -radius2},
	}
}

// Torus is the ring x,y,z satisfying the standard torus quartic, centered
// on the z axis with ring radius 1 (axis to tube center) and tube radius
// Radius2, so its outer radius is 1+Radius2.
type Torus struct {
	Base
	Radius2 float64
}

func NewTorus(radius2 float64) *Torus {
	return &Torus{Base: NewBase(), Radius2: radius2}
}

func (t *Torus) Trans() *geom.Transform { return &t.Base.Trans }

func (t *Torus) Init(parent *geom.Transform) error {
	if t.Radius2 < lin.VerySmall {
		return fmt.Errorf("%w: torus radius2 %g below epsilon", rerr.ErrBadParameter, t.Radius2)
	}
	return t.Base.Trans.Init(parent)
}

func (t *Torus) Bound(m *lin.M4) *geom.BBox {
	b := geom.NewBBox()
	corners := torusCorners(t.Radius2)
	b.FitTransformed(&t.Base.Trans, m, corners[:])
	return b
}

func (t *Torus) HitCost(tbl *CostTable) float64 { return cost(t.Base.Cost, tbl.Torus) }

func (t *Torus) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	hl.Stats().Tried(stats.Torus)
	dir := t.Base.Trans.RayLocalDir(&r.Dir)
	base := t.Base.Trans.RayLocalBase(&r.Base)

	// Standard torus quartic coefficients (ring radius 1, tube radius
	// Radius2), derived from substituting p = base + t*dir into the
	// implicit surface (x^2+y^2+z^2+1-Radius2^2)^2 = 4(x^2+y^2) and
	// collecting t^4..t^0 terms.
	r2 := t.Radius2 * t.Radius2
	dd := dir.X*dir.X + dir.Y*dir.Y + dir.Z*dir.Z
	bd := base.X*dir.X + base.Y*dir.Y + base.Z*dir.Z
	bb := base.X*base.X + base.Y*base.Y + base.Z*base.Z
	cterm := bb + 1.0 - r2 // constant term of (p.p + 1 - Radius2^2)

	// axy, dxy, bxy are the t^2/t/const coefficients of x^2+y^2 alone.
	axy := dd - dir.Z*dir.Z
	dxy := bd - base.Z*dir.Z
	bxy := bb - base.Z*base.Z

	a4 := dd * dd
	a3 := 4.0 * dd * bd
	a2 := 4.0*bd*bd + 2.0*dd*cterm - 4.0*axy
	a1 := 4.0*bd*cterm - 8.0*dxy
	a0 := cterm*cterm - 4.0*bxy

	rt, n := roots.Quartic([5]float64{a0, a1, a2, a3, a4})
	if n < 2 {
		return 0
	}
	sorted := rt[:n]
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}

	if hl.CSG() {
		count := 0
		for i := 0; i+1 < n; i += 2 {
			enterT, exitT := sorted[i], sorted[i+1]
			if exitT < r.MinLength || enterT >= r.MaxLength {
				continue
			}
			hl.Stats().Hit(stats.Torus)
			ep := hitPoint(base, dir, enterT)
			xp := hitPoint(base, dir, exitT)
			hl.AddHit(t, enterT, &ep, 0, hitlist.Enter)
			hl.AddHit(t, exitT, &xp, 0, hitlist.Exit)
			count += 2
		}
		return count
	}

	for i := 0; i < n; i++ {
		if sorted[i] < r.MinLength || sorted[i] >= r.MaxLength {
			continue
		}
		hl.Stats().Hit(stats.Torus)
		pt := hitPoint(base, dir, sorted[i])
		hl.AddHit(t, sorted[i], &pt, 0, hitlist.Normal)
		return 1
	}
	return 0
}

// Normal is the gradient of the implicit surface
// (x^2+y^2+z^2+1-Radius2^2)^2 - 4(x^2+y^2) at the local hit point,
// normalized: (4x(c-2), 4y(c-2), 4zc) where c = p.p + 1 - Radius2^2.
func (t *Torus) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 {
	p := h.LocalPt
	c := p.X*p.X + p.Y*p.Y + p.Z*p.Z + 1.0 - t.Radius2*t.Radius2
	n := lin.V3{
		X: 4.0 * p.X * (c - 2.0),
		Y: 4.0 * p.Y * (c - 2.0),
		Z: 4.0 * p.Z * c,
	}
	if l := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z); l > lin.VerySmall {
		n.X, n.Y, n.Z = n.X/l, n.Y/l, n.Z/l
	}
	return *t.Base.Trans.NormalLocalToGlobal(&n)
}
