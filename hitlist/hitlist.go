// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hitlist

import (
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/stats"
)

// HitList owns a distance-sorted HitInfo chain for one ray trace. Its CSG
// flag tells the primitive being intersected to add enter/exit pairs
// rather than a single Normal hit.
type HitList struct {
	head  *HitInfo
	cache *HitCache
	stats *stats.Info
	csg   bool
}

// New returns an empty HitList backed by the given per-thread cache and
// stats counters.
func New(cache *HitCache, s *stats.Info, csg bool) *HitList {
	return &HitList{cache: cache, stats: s, csg: csg}
}

// CSG reports whether primitives should emit enter/exit pairs into this
// list instead of a single Normal hit.
func (l *HitList) CSG() bool { return l.csg }

// Stats returns the per-thread counter bundle for this trace.
func (l *HitList) Stats() *stats.Info { return l.stats }

// Cache returns the free-list cache backing this list, so a CSG node can
// build a scratch child HitList sharing the same recycled nodes rather
// than allocating its own.
func (l *HitList) Cache() *HitCache { return l.cache }

// Empty reports whether the list holds no hits.
func (l *HitList) Empty() bool { return l.head == nil }

// Count returns the number of hits currently in the list.
func (l *HitList) Count() int {
	n := 0
	for h := l.head; h != nil; h = h.next {
		n++
	}
	return n
}

// FirstHit returns the head of the distance-sorted chain without removing
// it, or nil if the list is empty.
func (l *HitList) FirstHit() *HitInfo { return l.head }

// AddHit records a new hit at distance t, inserting it in sorted order.
// The returned node's Parent is left nil until claimed by CSG algebra.
func (l *HitList) AddHit(ob Object, t float64, localPt *lin.V3, side int, typ HitType) *HitInfo {
	h := l.cache.fetch()
	h.Object = ob
	h.Parent = nil
	h.Distance = t
	h.LocalPt = *localPt
	h.Side = side
	h.Type = typ

	var prev *HitInfo
	n := l.head
	for n != nil && n.Distance < t {
		prev = n
		n = n.next
	}
	h.next = n
	if prev == nil {
		l.head = h
	} else {
		prev.next = h
	}
	return h
}

// Clear releases every node back to the cache and empties the list.
func (l *HitList) Clear() {
	if l.head != nil {
		l.cache.store(l.head)
		l.head = nil
	}
}

// MergeList splices every hit out of other (which ends up empty) into l,
// preserving l's distance ordering. Used when a CSG node hands the
// scratch list built from its children back to the caller's list.
func (l *HitList) MergeList(other *HitList) {
	var prev *HitInfo
	n := l.head
	for other.head != nil {
		h := other.head
		other.head = h.next
		for n != nil && n.Distance < h.Distance {
			prev = n
			n = n.next
		}
		h.next = n
		if prev == nil {
			l.head = h
		} else {
			prev.next = h
		}
		prev = h
	}
}

// RemoveFirstHit returns and unlinks the first hit whose distance falls
// within r's [MinLength, MaxLength), skipping (and releasing) any earlier
// hits below MinLength, or nil if no such hit exists.
func (l *HitList) RemoveFirstHit(r *ray.Ray) *HitInfo {
	for l.head != nil && l.head.Distance < r.MinLength {
		l.killNext(nil)
	}
	if l.head == nil || l.head.Distance >= r.MaxLength {
		return nil
	}
	h := l.head
	l.head = h.next
	h.next = nil
	return h
}

// killNext removes the node following prev (or the head, if prev is nil)
// and returns it to the cache.
func (l *HitList) killNext(prev *HitInfo) {
	var dead *HitInfo
	if prev == nil {
		dead = l.head
		if dead != nil {
			l.head = dead.next
		}
	} else {
		dead = prev.next
		if dead != nil {
			prev.next = dead.next
		}
	}
	if dead != nil {
		dead.next = nil
		l.cache.store(dead)
	}
}

// claim marks h as belonging to csg: its original Object is left intact
// (the leaf primitive that was actually hit) and Parent is updated to the
// nearest enclosing CSG node, so repeated nesting ends with the outermost
// CSG as Parent.
func claim(h *HitInfo, csg Object) { h.Parent = csg }

// CSGMerge relabels every hit's Parent to csg without filtering any of
// them -- used to treat a child group as one object for shading purposes
// while still reporting every child surface.
func (l *HitList) CSGMerge(csg Object) {
	for h := l.head; h != nil; h = h.next {
		claim(h, csg)
	}
}

// CSGUnion collapses the hit list to the boundary of the union of all
// currently-solid intervals: a boundary survives only where the ray
// crosses from outside every child to inside at least one (Enter, from an
// inside count of zero) or from inside at least one back to outside all
// (Exit, to an inside count of zero); interior enter/exit pairs between
// overlapping children are discarded. Every surviving hit is claimed by
// csg.
func (l *HitList) CSGUnion(csg Object) {
	h := l.head
	var prev *HitInfo
	insideCount := 0
	for h != nil {
		before := insideCount
		if h.Type == Enter {
			insideCount++
		} else if h.Type == Exit {
			insideCount--
		}
		keep := (h.Type == Enter && before == 0) || (h.Type == Exit && insideCount == 0)
		next := h.next
		if keep {
			claim(h, csg)
			prev = h
		} else {
			l.killNext(prev)
		}
		h = next
	}
}

// CSGIntersection collapses the hit list to the boundary of the
// intersection of objectCount child solids: a boundary survives only while
// the ray is inside every child simultaneously.
func (l *HitList) CSGIntersection(csg Object, objectCount int) {
	h := l.head
	var prev *HitInfo
	count := 0
	for h != nil {
		var remove bool
		switch h.Type {
		case Enter:
			count++
			remove = count < objectCount
		case Exit:
			remove = count < objectCount
			count--
		default: // hollow object hit: keep only if inside every other child.
			remove = count < objectCount-1
		}
		if remove {
			next := h.next
			l.killNext(prev)
			h = next
		} else {
			claim(h, csg)
			prev = h
			h = h.next
		}
	}
}

// CSGDifference collapses the hit list to primary minus every other
// child: boundaries of primary survive only outside the other solids, and
// other children's boundaries survive only while inside primary.
func (l *HitList) CSGDifference(csg, primary Object) {
	h := l.head
	var prev *HitInfo
	count := 0 // inside count of non-primary objects.
	insidePrimary := false
	for h != nil {
		remove := true
		switch {
		case h.Object == primary:
			insidePrimary = h.Type == Enter
			remove = count > 0
		case h.Type == Enter:
			count++
			h.Type = Exit
			remove = !insidePrimary || count != 1
		case h.Type == Exit:
			count--
			h.Type = Enter
			remove = !insidePrimary || count != 0
		}
		if remove {
			next := h.next
			l.killNext(prev)
			h = next
		} else {
			claim(h, csg)
			prev = h
			h = h.next
		}
	}
}
