// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package shader implements the composable shader family a primitive's
// surface evaluates at a hit point: solid color, side selection, the
// repeating-pattern family, the map-projection family, Perlin noise
// perturbation, Phong illumination, and ambient occlusion.
package shader

import (
	"math"
	"math/rand"

	"golang.org/x/sys/cpu"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/stats"
)

// EvaluatedHit is the shader-facing view of a hit: the global point and
// unit normal of the surface, the parameterization map shaders compose
// over, and the side/face index ShaderSide dispatches on.
type EvaluatedHit struct {
	GlobalPt lin.V3
	Normal   lin.V3
	Map      lin.V3
	Side     int
}

// JobState is a worker's thread-local scratch: the HitList recycle pool,
// per-kind intersection counters, and a private RNG for the distributions
// the occlusion shader and future camera sampling draw from. Never shared
// across goroutines.
type JobState struct {
	Cache *hitlist.HitCache
	Stats *stats.Info
	Rng   *rand.Rand

	// pad keeps adjacent JobStates (the render package allocates one per
	// worker goroutine) from sharing a cache line, so one worker's
	// read-modify-write of its own Stats/Rng never invalidates a
	// neighbor's cache line.
	pad cpu.CacheLinePad
}

// randUnit draws a uniform direction on the unit sphere by rejection
// sampling the enclosing cube (avoids the pole-clustering a naive
// spherical-coordinate sample would introduce).
func (js *JobState) randUnit() lin.V3 {
	for {
		d := lin.V3{
			X: js.Rng.Float64()*2 - 1,
			Y: js.Rng.Float64()*2 - 1,
			Z: js.Rng.Float64()*2 - 1,
		}
		lenSqr := d.Dot(&d)
		if lenSqr <= 1 && lenSqr > lin.VerySmall {
			d.Div(math.Sqrt(lenSqr))
			return d
		}
	}
}

// RandHemisphereDir draws a uniform direction on the unit sphere, resampled
// until it has a non-zero component along normal, then flipped so it lies
// in normal's hemisphere.
func (js *JobState) RandHemisphereDir(normal lin.V3) lin.V3 {
	for {
		d := js.randUnit()
		dot := normal.Dot(&d)
		if lin.AeqZ(dot) {
			continue
		}
		if dot < 0 {
			d = lin.V3{X: -d.X, Y: -d.Y, Z: -d.Z}
		}
		return d
	}
}

// LightResult is what a Light reports for one illuminate call: the unit
// direction toward the light, the distance to it (for the shadow ray's
// max_length), and the incidence cosine already folded in as a scalar
// weight alongside the light's energy color.
type LightResult struct {
	Dir      lin.V3
	Distance float64
	Angle    float64
	Energy   color.Color
}

// Light is the sealed handle a Tracer holds for each scene light; defined
// here (not in a separate light package importing shader) since Phong
// needs it and light's concrete types need EvaluatedHit/JobState/Tracer,
// the same forward-reference shape prim.Shader resolves for primitives.
type Light interface {
	// Luminate reports whether the light reaches globalPt un-occluded and,
	// if so, the direction/distance/angle/energy contribution.
	Luminate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) (LightResult, bool)
}

// Tracer is the minimal scene contract a shader needs to recurse: Phong's
// reflection bounce and Occlusion's hemisphere samples both call back
// into the trace loop, and Phong reads the scene's default ambient shader
// and lights. Satisfied by package scene's Scene type; defining it here
// (rather than importing scene) is what lets shader and scene both exist
// without a cycle -- scene depends on shader, never the reverse.
type Tracer interface {
	TraceRay(js *JobState, r *ray.Ray) color.Color
	CastShadowRay(js *JobState, r *ray.Ray) bool
	Lights() []Light
	Ambient() Shader
	MaxRayDepth() int
	RayMoveout() float64
	MinRayValue() float64
	ShadowEnabled() bool
}

// Shader is the full per-hit evaluation contract; every concrete type
// here embeds prim.ShaderBase to satisfy the sealed prim.Shader marker a
// primitive's Base.Shader field holds, then adds Evaluate.
type Shader interface {
	prim.Shader
	Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color
}

// Initer is implemented by shaders that own child shaders or their own
// transform and so need an init pass before first use. A shader's own
// transform never composes with an enclosing object's or parent
// shader's, so Init takes no parent transform and keeps only the
// Tracer a handful of shaders (Phong's ambient default, Occlusion's
// shadow rays) need. Leaf shaders (Solid) don't implement it; a
// scene's init walk type-asserts before calling.
type Initer interface {
	Init(tr Tracer) error
}
