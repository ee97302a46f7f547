// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"math/rand"
	"testing"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/shader"
	"github.com/hirdrac/rend/stats"
)

var _ shader.Tracer = (*Scene)(nil)

func newJobState() *shader.JobState {
	return &shader.JobState{Cache: &hitlist.HitCache{}, Stats: &stats.Info{}, Rng: rand.New(rand.NewSource(1))}
}

func TestTraceRayHitsSphereWithOwnShader(t *testing.T) {
	s := New()
	sph := prim.NewSphere()
	sph.Shader = shader.NewSolid(color.New(1, 0, 0))
	if err := s.AddObject(sph); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	r := &ray.Ray{Base: lin.V3{Z: 5}, Dir: lin.V3{Z: -1}, MinLength: lin.VerySmall, MaxLength: lin.Large}
	c := s.TraceRay(newJobState(), r)
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("got %v, want red", c)
	}
}

func TestTraceRayFallsBackToDefaultObjectShader(t *testing.T) {
	s := New()
	sph := prim.NewSphere()
	if err := s.AddObject(sph); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	r := &ray.Ray{Base: lin.V3{Z: 5}, Dir: lin.V3{Z: -1}, MinLength: lin.VerySmall, MaxLength: lin.Large}
	c := s.TraceRay(newJobState(), r)
	if c != color.New(.3, .3, .3) {
		t.Errorf("got %v, want the default object color", c)
	}
}

func TestTraceRayMissEvaluatesBackground(t *testing.T) {
	s := New()
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	r := &ray.Ray{Base: lin.V3{Z: 5}, Dir: lin.V3{Z: -1}, MinLength: lin.VerySmall, MaxLength: lin.Large}
	c := s.TraceRay(newJobState(), r)
	if c != color.New(.2, .2, .5) {
		t.Errorf("got %v, want the default background color", c)
	}
}

func TestCastShadowRayReportsAnyHit(t *testing.T) {
	s := New()
	sph := prim.NewSphere()
	if err := s.AddObject(sph); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	hit := &ray.Ray{Base: lin.V3{Z: 5}, Dir: lin.V3{Z: -1}, MinLength: lin.VerySmall, MaxLength: lin.Large}
	if !s.CastShadowRay(newJobState(), hit) {
		t.Error("expected a shadow ray toward the sphere to report occluded")
	}

	miss := &ray.Ray{Base: lin.V3{X: 10, Z: 5}, Dir: lin.V3{Z: -1}, MinLength: lin.VerySmall, MaxLength: lin.Large}
	if s.CastShadowRay(newJobState(), miss) {
		t.Error("expected a shadow ray away from the sphere to report unoccluded")
	}
}
