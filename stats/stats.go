// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package stats holds the per-primitive-kind intersection counters each
// worker's JobState accumulates and the renderer folds into a single
// report at job-pool stop.
package stats

// Kind identifies a primitive type for per-kind Tried/Hit accounting.
// It mirrors the closed primitive set the prim package implements.
type Kind int

const (
	Sphere Kind = iota
	Cube
	Cone
	Cylinder
	Disc
	Plane
	Paraboloid
	Torus
	Prism
	numKinds
)

// String names a Kind for the end-of-render report.
func (k Kind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Cube:
		return "cube"
	case Cone:
		return "cone"
	case Cylinder:
		return "cylinder"
	case Disc:
		return "disc"
	case Plane:
		return "plane"
	case Paraboloid:
		return "paraboloid"
	case Torus:
		return "torus"
	case Prism:
		return "prism"
	default:
		return "unknown"
	}
}

// count is a per-kind tried/hit pair.
type count struct {
	Tried uint64
	Hit   uint64
}

// Info collects ray/primitive intersection counts for one worker (or, once
// folded, the whole render): how many times each kind of primitive was
// tested against a ray and how many of those tests produced a hit, plus
// how many bounding-box tests were performed by the BVH walk.
type Info struct {
	counts        [numKinds]count
	Bound         uint64
	BoundHit      uint64
	Rays          uint64
	RaysHit       uint64
	ShadowRays    uint64
	ShadowRaysHit uint64
}

// TriedRay records a traced ray, and HitRay one that found a surface.
func (s *Info) TriedRay() { s.Rays++ }
func (s *Info) HitRay()   { s.RaysHit++ }

// TriedShadowRay records a cast shadow ray, and HitShadowRay one that
// found an occluder.
func (s *Info) TriedShadowRay() { s.ShadowRays++ }
func (s *Info) HitShadowRay()   { s.ShadowRaysHit++ }

// Tried records an intersection attempt against a primitive of kind k.
func (s *Info) Tried(k Kind) { s.counts[k].Tried++ }

// Hit records a successful intersection against a primitive of kind k.
func (s *Info) Hit(k Kind) { s.counts[k].Hit++ }

// TriedCount returns the number of intersection attempts recorded for k.
func (s *Info) TriedCount(k Kind) uint64 { return s.counts[k].Tried }

// HitCount returns the number of successful intersections recorded for k.
func (s *Info) HitCount(k Kind) uint64 { return s.counts[k].Hit }

// Add folds o's counters into s, used when the job pool stops to combine
// every worker's thread-local Info into one global report.
func (s *Info) Add(o *Info) {
	for k := range s.counts {
		s.counts[k].Tried += o.counts[k].Tried
		s.counts[k].Hit += o.counts[k].Hit
	}
	s.Bound += o.Bound
	s.BoundHit += o.BoundHit
	s.Rays += o.Rays
	s.RaysHit += o.RaysHit
	s.ShadowRays += o.ShadowRays
	s.ShadowRaysHit += o.ShadowRaysHit
}
