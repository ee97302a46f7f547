// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package hitlist

import "github.com/hirdrac/rend/math/lin"

// HitType distinguishes a plain surface hit from the enter/exit pair a
// primitive emits when the hit list is being built for CSG algebra.
type HitType int

const (
	// Normal is an ordinary, non-CSG surface hit.
	Normal HitType = iota
	// Enter marks where a ray enters a solid volume.
	Enter
	// Exit marks where a ray leaves a solid volume.
	Exit
)

// HitInfo is one node in a singly-linked, distance-sorted chain: the
// hottest allocation in the tracer, so HitList recycles released nodes
// through a per-thread HitCache instead of letting them become garbage.
type HitInfo struct {
	next     *HitInfo
	Object   Object  // the primitive (or CSG node) that produced this hit.
	Parent   Object  // nearest enclosing CSG node once claimed; nil until then.
	Distance float64 // ray parameter t at the hit point.
	LocalPt  lin.V3  // hit point in the object's local space.
	Side     int     // which side/face was hit; primitive-specific meaning.
	Type     HitType
}

// HitCache is a per-thread pool of released HitInfo nodes. Recycling
// through a free list (rather than letting the GC collect and re-allocate)
// keeps hit-list churn off the hot path and avoids cross-thread allocator
// contention between worker goroutines.
type HitCache struct {
	free *HitInfo
}

// fetch removes and returns a node from the free list, allocating a new
// one only if the cache is empty.
func (c *HitCache) fetch() *HitInfo {
	if c.free == nil {
		return &HitInfo{}
	}
	h := c.free
	c.free = h.next
	h.next = nil
	return h
}

// store returns a chain of nodes (h and everything linked after it) to the
// free list in one splice.
func (c *HitCache) store(h *HitInfo) {
	if h == nil {
		return
	}
	tail := h
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = c.free
	c.free = h
}
