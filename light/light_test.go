// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package light

import (
	"testing"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/shader"
)

type fakeTracer struct {
	shadowHit bool
	shadow    bool
}

func (f *fakeTracer) TraceRay(js *shader.JobState, r *ray.Ray) color.Color { return color.Black }
func (f *fakeTracer) CastShadowRay(js *shader.JobState, r *ray.Ray) bool   { return f.shadowHit }
func (f *fakeTracer) Lights() []shader.Light                              { return nil }
func (f *fakeTracer) Ambient() shader.Shader                              { return nil }
func (f *fakeTracer) MaxRayDepth() int                                    { return 4 }
func (f *fakeTracer) RayMoveout() float64                                 { return 1e-7 }
func (f *fakeTracer) MinRayValue() float64                                { return 1e-4 }
func (f *fakeTracer) ShadowEnabled() bool                                 { return f.shadow }

var (
	_ shader.Tracer = (*fakeTracer)(nil)
	_ shader.Light  = (*Sun)(nil)
	_ shader.Light  = (*PointLight)(nil)
	_ shader.Light  = (*SpotLight)(nil)
)

func TestSunFacesAwayFromItsDirection(t *testing.T) {
	s := NewSun()
	s.Dir = lin.V3{Z: 1}
	_ = s.SetEnergy(shader.NewSolid(color.White))
	if err := s.Init(&fakeTracer{}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	eh := &shader.EvaluatedHit{Normal: lin.V3{Z: 1}}
	lr, ok := s.Luminate(nil, &fakeTracer{}, &ray.Ray{}, eh)
	if !ok {
		t.Fatal("expected the sun to light a surface facing away from it")
	}
	if lr.Dir.Z != -1 {
		t.Errorf("got dir %v, want {0,0,-1}", lr.Dir)
	}
}

func TestSunMissesBackfacingSurface(t *testing.T) {
	s := NewSun()
	_ = s.SetEnergy(shader.NewSolid(color.White))
	if err := s.Init(&fakeTracer{}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	eh := &shader.EvaluatedHit{Normal: lin.V3{Z: -1}}
	_, ok := s.Luminate(nil, &fakeTracer{}, &ray.Ray{}, eh)
	if ok {
		t.Error("expected no contribution from a surface facing away from the sun")
	}
}

func TestSunRespectsShadowRay(t *testing.T) {
	s := NewSun()
	_ = s.SetEnergy(shader.NewSolid(color.White))
	tr := &fakeTracer{shadow: true, shadowHit: true}
	if err := s.Init(tr); err != nil {
		t.Fatalf("Init: %v", err)
	}

	eh := &shader.EvaluatedHit{Normal: lin.V3{Z: 1}}
	_, ok := s.Luminate(nil, tr, &ray.Ray{}, eh)
	if ok {
		t.Error("expected an occluded surface to get no contribution")
	}
}

func TestPointLightDistanceAndDirection(t *testing.T) {
	p := NewPointLight()
	p.Trans.Base.TranslateTM(0, 0, 5)
	_ = p.SetEnergy(shader.NewSolid(color.White))
	if err := p.Init(&fakeTracer{}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	eh := &shader.EvaluatedHit{GlobalPt: lin.V3{}, Normal: lin.V3{Z: 1}}
	lr, ok := p.Luminate(nil, &fakeTracer{}, &ray.Ray{}, eh)
	if !ok {
		t.Fatal("expected a lit point directly under the light")
	}
	if !lin.Aeq(lr.Distance, 5) {
		t.Errorf("got distance %v, want 5", lr.Distance)
	}
	if lr.Dir.Z <= 0 {
		t.Errorf("expected direction to point toward +Z, got %v", lr.Dir)
	}
}

func TestSpotLightNeverContributes(t *testing.T) {
	s := NewSpotLight()
	_ = s.SetEnergy(shader.NewSolid(color.White))
	if err := s.Init(&fakeTracer{}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	_, ok := s.Luminate(nil, &fakeTracer{}, &ray.Ray{}, &shader.EvaluatedHit{})
	if ok {
		t.Error("expected the unfinished spotlight to never contribute light")
	}
}
