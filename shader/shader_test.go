// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package shader

import (
	"math/rand"
	"testing"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
)

// fakeTracer is a minimal Tracer with no lights, used to exercise shaders
// whose Evaluate only conditionally touches the scene (Phong with a
// black specular, Occlusion).
type fakeTracer struct {
	lights      []Light
	ambient     Shader
	maxRayDepth int
	rayMoveout  float64
	minRayValue float64
	shadowHit   bool
	shadow      bool
}

func (f *fakeTracer) TraceRay(js *JobState, r *ray.Ray) color.Color { return color.Black }
func (f *fakeTracer) CastShadowRay(js *JobState, r *ray.Ray) bool   { return f.shadowHit }
func (f *fakeTracer) Lights() []Light                               { return f.lights }
func (f *fakeTracer) Ambient() Shader                                { return f.ambient }
func (f *fakeTracer) MaxRayDepth() int                               { return f.maxRayDepth }
func (f *fakeTracer) RayMoveout() float64                            { return f.rayMoveout }
func (f *fakeTracer) MinRayValue() float64                           { return f.minRayValue }
func (f *fakeTracer) ShadowEnabled() bool                            { return f.shadow }

var _ Tracer = (*fakeTracer)(nil)

func newJobState() *JobState {
	return &JobState{Rng: rand.New(rand.NewSource(1))}
}

func TestSolidReturnsConstantColor(t *testing.T) {
	s := NewSolid(color.New(.2, .4, .6))
	got := s.Evaluate(nil, nil, nil, &EvaluatedHit{})
	if got != color.New(.2, .4, .6) {
		t.Errorf("got %v", got)
	}
}

func TestSideWrapsNegativeIndex(t *testing.T) {
	red, green, blue := NewSolid(color.New(1, 0, 0)), NewSolid(color.New(0, 1, 0)), NewSolid(color.New(0, 0, 1))
	s := NewSide(red, green, blue)

	cases := []struct {
		side int
		want color.Color
	}{
		{0, color.New(1, 0, 0)},
		{1, color.New(0, 1, 0)},
		{4, color.New(0, 1, 0)}, // 4 mod 3 == 1
		{-1, color.New(0, 0, 1)},
	}
	for _, c := range cases {
		got := s.Evaluate(nil, nil, nil, &EvaluatedHit{Side: c.side})
		if got != c.want {
			t.Errorf("side %d: got %v, want %v", c.side, got, c.want)
		}
	}
}

func mustInit(t *testing.T, sh Shader, tr Tracer) {
	t.Helper()
	if i, ok := sh.(Initer); ok {
		if err := i.Init(tr); err != nil {
			t.Fatalf("Init: %v", err)
		}
	}
}

func TestStripeSelectsByFloorOfX(t *testing.T) {
	a, b := NewSolid(color.New(1, 0, 0)), NewSolid(color.New(0, 1, 0))
	s := NewStripe(a, b)
	mustInit(t, s, nil)

	got := s.Evaluate(nil, nil, nil, &EvaluatedHit{Map: lin.V3{X: 1.5}})
	if got != color.New(0, 1, 0) {
		t.Errorf("got %v, want green (floor(1.5)=1 -> index 1)", got)
	}
	got = s.Evaluate(nil, nil, nil, &EvaluatedHit{Map: lin.V3{X: 0.2}})
	if got != color.New(1, 0, 0) {
		t.Errorf("got %v, want red (floor(0.2)=0 -> index 0)", got)
	}
}

func TestStripeBorderTakesPriority(t *testing.T) {
	a, b := NewSolid(color.New(1, 0, 0)), NewSolid(color.New(0, 1, 0))
	border := NewSolid(color.New(1, 1, 1))
	s := NewStripe(a, b)
	if err := s.AddShader(border, true); err != nil {
		t.Fatalf("AddShader: %v", err)
	}
	mustInit(t, s, nil)

	got := s.Evaluate(nil, nil, nil, &EvaluatedHit{Map: lin.V3{X: 1.0}})
	if got != color.New(1, 1, 1) {
		t.Errorf("expected the border color at an exact grid line, got %v", got)
	}
}

func TestCheckerboardAlternatesByParity(t *testing.T) {
	a, b := NewSolid(color.New(1, 0, 0)), NewSolid(color.New(0, 1, 0))
	s := NewCheckerboard(a, b)
	mustInit(t, s, nil)

	got := s.Evaluate(nil, nil, nil, &EvaluatedHit{Map: lin.V3{X: 0.5, Y: 0.5}})
	if got != color.New(1, 0, 0) {
		t.Errorf("got %v, want red at (0,0) cell", got)
	}
	got = s.Evaluate(nil, nil, nil, &EvaluatedHit{Map: lin.V3{X: 1.5, Y: 0.5}})
	if got != color.New(0, 1, 0) {
		t.Errorf("got %v, want green at (1,0) cell", got)
	}
}

func TestMapCubeFlipsFaceZeroXAxis(t *testing.T) {
	recorded := &recordingShader{}
	mc := NewMapCube(recorded)

	eh := &EvaluatedHit{Map: lin.V3{X: 1, Y: 2, Z: 3}, Side: 0}
	mc.Evaluate(nil, nil, nil, eh)
	if recorded.got.X != -3 || recorded.got.Y != 2 {
		t.Errorf("face 0: got map %v, want {-3,2,*}", recorded.got)
	}
}

func TestMapTorusFlipsXByYSign(t *testing.T) {
	recorded := &recordingShader{}
	mt := NewMapTorus(recorded)

	mt.Evaluate(nil, nil, nil, &EvaluatedHit{Map: lin.V3{X: 2, Y: -1, Z: 5}})
	if recorded.got.X != -2 || recorded.got.Y != -5 {
		t.Errorf("got map %v, want {-2,-5,*} for negative y", recorded.got)
	}

	mt.Evaluate(nil, nil, nil, &EvaluatedHit{Map: lin.V3{X: 2, Y: 1, Z: 5}})
	if recorded.got.X != 2 || recorded.got.Y != -5 {
		t.Errorf("got map %v, want {2,-5,*} for positive y", recorded.got)
	}
}

// recordingShader captures the EvaluatedHit.Map it was last called with, to
// verify a map shader's rewrite without needing a full child shader.
type recordingShader struct {
	prim.ShaderBase
	got lin.V3
}

func (r *recordingShader) Evaluate(js *JobState, tr Tracer, rr *ray.Ray, eh *EvaluatedHit) color.Color {
	r.got = eh.Map
	return color.Black
}

func TestNoisePerturbsMapXDeterministically(t *testing.T) {
	recorded := &recordingShader{}
	n := NewNoise(recorded)
	mustInit(t, n, nil)

	eh := &EvaluatedHit{Map: lin.V3{X: 1, Y: 2, Z: 3}}
	n.Evaluate(nil, nil, nil, eh)
	first := recorded.got.X

	n.Evaluate(nil, nil, nil, eh)
	if recorded.got.X != first {
		t.Errorf("expected deterministic perturbation, got %v then %v", first, recorded.got.X)
	}
	if recorded.got.Y != 2 || recorded.got.Z != 3 {
		t.Errorf("expected only Map.X to change, got %v", recorded.got)
	}
}

func TestPhongAmbientOnlyWithNoLights(t *testing.T) {
	p := NewPhong()
	tr := &fakeTracer{ambient: NewSolid(color.New(.1, .1, .1)), minRayValue: 1e-4}
	if err := p.Init(tr); err != nil {
		t.Fatalf("Init: %v", err)
	}

	eh := &EvaluatedHit{Normal: lin.V3{Z: 1}}
	r := &ray.Ray{Dir: lin.V3{Z: 1}}
	got := p.Evaluate(newJobState(), tr, r, eh)

	// ambient(.1,.1,.1) * default diffuse gray(.5,.5,.5)
	want := color.New(.05, .05, .05)
	if !closeColor(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOcclusionReturnsBlackWhenFullyOccluded(t *testing.T) {
	o := NewOcclusion(NewSolid(color.White))
	tr := &fakeTracer{shadowHit: true, rayMoveout: 1e-7}
	if err := o.Init(tr); err != nil {
		t.Fatalf("Init: %v", err)
	}

	got := o.Evaluate(newJobState(), tr, &ray.Ray{}, &EvaluatedHit{Normal: lin.V3{Z: 1}})
	if got != color.Black {
		t.Errorf("expected black when every sample is occluded, got %v", got)
	}
}

func closeColor(a, b color.Color) bool {
	return lin.Aeq(a.R, b.R) && lin.Aeq(a.G, b.G) && lin.Aeq(a.B, b.B)
}
