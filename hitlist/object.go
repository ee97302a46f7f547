// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package hitlist implements the per-ray distance-sorted hit chain and its
// CSG algebra (union, intersection, difference), plus the per-thread
// HitInfo free list that backs it.
package hitlist

// Object is the closed scene-graph node kind every primitive, CSG node,
// and BVH bound implements: a tagged sum matched on the variant rather
// than probed by type. The unexported marker method seals the set to
// this module's own types; callers type-switch on a concrete Object to
// recover the variant.
type Object interface {
	isObject()
}

// ObjectBase is embedded by every primitive and scene-graph node defined
// outside this package that needs to satisfy Object -- an unexported
// method can only be implemented by embedding it, since an interface's
// unexported methods otherwise confine implementers to the defining
// package.
type ObjectBase struct{}

func (ObjectBase) isObject() {}
