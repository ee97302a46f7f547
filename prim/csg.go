// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
)

// CSGBase is embedded by every CSG combinator (Merge, Union, Intersection,
// Difference): the shared child list, init/cost bookkeeping every variant
// does identically, and a Normal stub -- shading a CSG hit dispatches
// through HitInfo.Parent to the leaf primitive that was actually struck,
// since only the original primitive can compute the correct surface
// normal, so the CSG node's own Normal is never called.
type CSGBase struct {
	Base
	Children []Primitive
}

func (c *CSGBase) Trans() *geom.Transform { return &c.Base.Trans }

// Init requires at least two children, places each child under this
// node's transform, and recurses.
func (c *CSGBase) Init(parent *geom.Transform) error {
	if len(c.Children) <= 1 {
		return rerr.ErrZeroChildCSG
	}
	if err := c.Base.Trans.Init(parent); err != nil {
		return err
	}
	for _, ch := range c.Children {
		if err := ch.Init(&c.Base.Trans); err != nil {
			return err
		}
	}
	return nil
}

// HitCost is the table's CSG overhead plus every child's own cost.
func (c *CSGBase) HitCost(tbl *CostTable) float64 {
	if c.Base.Cost >= 0 {
		return c.Base.Cost
	}
	total := tbl.CSG
	for _, ch := range c.Children {
		total += ch.HitCost(tbl)
	}
	return total
}

func (c *CSGBase) Normal(r *ray.Ray, h *hitlist.HitInfo) lin.V3 { return lin.V3{} }

// boundChildren fits a box around every child's bound, composing m (if
// given) with each child's own transform before delegating.
func boundChildren(children []Primitive, m *lin.M4, useFinal bool) *geom.BBox {
	b := geom.NewBBox()
	for _, ch := range children {
		if m == nil {
			b.FitBox(ch.Bound(nil))
			continue
		}
		var child lin.M4
		if useFinal {
			child.Mult(ch.Trans().Final(), m)
		} else {
			child.Mult(&ch.Trans().Base, m)
		}
		b.FitBox(ch.Bound(&child))
	}
	return b
}

// Merge passes every child hit through unchanged, only relabeling
// ownership -- used to treat a child group as one object for shading
// while keeping every surface it has.
type Merge struct{ CSGBase }

func NewMerge(children ...Primitive) *Merge {
	return &Merge{CSGBase{Base: NewBase(), Children: children}}
}

func (m *Merge) Bound(mat *lin.M4) *geom.BBox { return boundChildren(m.Children, mat, false) }

func (m *Merge) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	sub := hitlist.New(hl.Cache(), hl.Stats(), true)
	for _, ch := range m.Children {
		ch.Intersect(r, sub)
	}
	sub.CSGMerge(m)
	hits := sub.Count()
	hl.MergeList(sub)
	return hits
}

// Union is the boolean union of every child solid.
type Union struct{ CSGBase }

func NewUnion(children ...Primitive) *Union {
	return &Union{CSGBase{Base: NewBase(), Children: children}}
}

func (u *Union) Bound(m *lin.M4) *geom.BBox { return boundChildren(u.Children, m, false) }

// ChildPrimitives exposes Union's children for the bvh builder: since union
// is commutative/associative, the builder is free to regroup a flat
// union's children into nested unions/bounds without changing the result
// -- the other CSG combinators don't offer this and stay opaque leaves.
func (u *Union) ChildPrimitives() []Primitive { return u.Children }

func (u *Union) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	sub := hitlist.New(hl.Cache(), hl.Stats(), true)
	for _, ch := range u.Children {
		ch.Intersect(r, sub)
	}
	sub.CSGUnion(u)
	hits := sub.Count()
	hl.MergeList(sub)
	return hits
}

// Intersection is the boolean intersection of every child solid.
type Intersection struct{ CSGBase }

func NewIntersection(children ...Primitive) *Intersection {
	return &Intersection{CSGBase{Base: NewBase(), Children: children}}
}

// Bound intersects every child's bound rather than fitting their union,
// since the result can only occupy space all children share.
func (i *Intersection) Bound(m *lin.M4) *geom.BBox {
	if len(i.Children) == 0 {
		return geom.NewBBox()
	}
	first := i.Children[0]
	var b *geom.BBox
	if m == nil {
		b = first.Bound(nil)
	} else {
		var t lin.M4
		t.Mult(first.Trans().Final(), m)
		b = first.Bound(&t)
	}
	for _, ch := range i.Children[1:] {
		var cb *geom.BBox
		if m == nil {
			cb = ch.Bound(nil)
		} else {
			var t lin.M4
			t.Mult(ch.Trans().Final(), m)
			cb = ch.Bound(&t)
		}
		b.Intersect(cb)
	}
	return b
}

func (i *Intersection) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	sub := hitlist.New(hl.Cache(), hl.Stats(), true)
	for _, ch := range i.Children {
		ch.Intersect(r, sub)
	}
	sub.CSGIntersection(i, len(i.Children))
	hits := sub.Count()
	hl.MergeList(sub)
	return hits
}

// Difference is the primary child's solid minus every other child.
type Difference struct{ CSGBase }

func NewDifference(primary Primitive, subtracted ...Primitive) *Difference {
	children := append([]Primitive{primary}, subtracted...)
	return &Difference{CSGBase{Base: NewBase(), Children: children}}
}

// Bound is just the primary child's bound -- subtraction can only shrink
// it, never grow it.
func (d *Difference) Bound(m *lin.M4) *geom.BBox {
	primary := d.Children[0]
	if m == nil {
		return primary.Bound(nil)
	}
	var t lin.M4
	t.Mult(primary.Trans().Final(), m)
	return primary.Bound(&t)
}

func (d *Difference) Intersect(r *ray.Ray, hl *hitlist.HitList) int {
	sub := hitlist.New(hl.Cache(), hl.Stats(), true)
	for _, ch := range d.Children {
		ch.Intersect(r, sub)
	}
	sub.CSGDifference(d, d.Children[0])
	hits := sub.Count()
	hl.MergeList(sub)
	return hits
}
