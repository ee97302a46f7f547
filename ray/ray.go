// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package ray defines the Ray type threaded through the tracer: camera
// rays, shadow rays, and reflection rays are all the same shape.
package ray

import "github.com/hirdrac/rend/math/lin"

// Ray is a parametric ray base + dir*t, valid only over [MinLength,
// MaxLength). Depth counts reflection bounces so the trace engine can
// enforce the scene's maxdepth limit; Time is carried for the ray
// channel used by procedural shaders (the noise and pattern families).
type Ray struct {
	Base      lin.V3
	Dir       lin.V3 // expected to be unit length.
	MinLength float64
	MaxLength float64
	Time      float64
	Depth     int
}

// InRange reports whether ray parameter t falls within [MinLength,
// MaxLength).
func (r *Ray) InRange(t float64) bool {
	return t >= r.MinLength && t < r.MaxLength
}

// At returns the global point base + dir*t.
func (r *Ray) At(t float64) lin.V3 {
	return lin.V3{
		X: r.Base.X + r.Dir.X*t,
		Y: r.Base.Y + r.Dir.Y*t,
		Z: r.Base.Z + r.Dir.Z*t,
	}
}
