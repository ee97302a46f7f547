// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scene holds everything a parsed scene file describes -- the
// object/light/shader inventory, camera placement, sampling settings,
// and secondary-ray behavior -- and drives both initialization order
// and the trace loop itself. Scene satisfies shader.Tracer directly,
// acting as both the scene container and the tracer in one.
package scene

import (
	"github.com/hirdrac/rend/bvh"
	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/light"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/shader"
)

// Flag distinguishes the scene-level role a top-level shader plays when
// it's attached with AddShader, the subset Scene itself switches on
// (Phong's own ambient/diffuse/specular/
// transmit slots use the same enum but are handled inside package shader,
// not here).
type Flag int

const (
	FlagNone Flag = iota
	FlagAmbient
	FlagBackground
	FlagDefaultLight
	FlagDefaultObject
	FlagInitOnly
)

// Scene is the full render job description: camera, sampling, secondary
// ray behavior, and the object/light/shader inventory a sceneparser
// builds incrementally via AddObject/AddLight/AddShader before Init.
type Scene struct {
	// image size and render region
	ImageWidth, ImageHeight int
	RegionMin, RegionMax    [2]int

	// camera
	Eye, Coi, Vup lin.V3
	Fov           float64
	Aperture      float64
	Focus         float64

	// anti-aliasing
	SampleX, SampleY int
	Jitter           float64
	Samples          int

	// secondary ray behavior
	Shadow         bool
	MaxRayDepthVal int
	MinRayValueVal float64
	RayMoveoutVal  float64

	// intersection cost table
	Costs prim.CostTable

	// inventory counts, filled in by Init
	BoundCount  int
	ObjectCount int
	ShaderCount int

	objects    []prim.Primitive
	optObjects []prim.Primitive
	lights     []shader.Light
	shaders    []shader.Shader

	ambient    shader.Shader
	background shader.Shader
	defaultObj shader.Shader
	defaultLt  shader.Shader
}

// New returns a Scene with reasonable default camera, sampling, and
// secondary-ray settings.
func New() *Scene {
	s := &Scene{
		ImageWidth: 256, ImageHeight: 256,
		Eye: lin.V3{Z: 1}, Vup: lin.V3{Y: 1},
		Fov: 50.0, Focus: 1,
		SampleX: 1, SampleY: 1, Samples: 1,
		Shadow:         true,
		MaxRayDepthVal: 99,
		MinRayValueVal: lin.VerySmall,
		RayMoveoutVal:  .0001,
		Costs:          prim.DefaultCostTable(),
	}
	s.RegionMax = [2]int{s.ImageWidth - 1, s.ImageHeight - 1}
	return s
}

// AddObject appends a top-level primitive to the scene.
func (s *Scene) AddObject(ob prim.Primitive) error {
	if ob == nil {
		return rerr.ErrNoShader
	}
	s.objects = append(s.objects, ob)
	return nil
}

// AddLight appends a light.
func (s *Scene) AddLight(lt shader.Light) error {
	if lt == nil {
		return rerr.ErrNoShader
	}
	s.lights = append(s.lights, lt)
	return nil
}

// AddShader attaches a top-level shader under the given role; Flag
// determines which single scene-level slot it fills (Ambient,
// Background, the default object/light shaders) or whether it's merely
// queued for initialization (FlagInitOnly, FlagNone) without claiming a
// slot -- the role a shader nested inside an object or pattern plays.
func (s *Scene) AddShader(sh shader.Shader, flag Flag) error {
	if sh == nil {
		return rerr.ErrNoShader
	}
	switch flag {
	case FlagAmbient:
		if s.ambient != nil {
			return rerr.ErrDuplicateSlot
		}
		s.ambient = sh
	case FlagBackground:
		if s.background != nil {
			return rerr.ErrDuplicateSlot
		}
		s.background = sh
	case FlagDefaultLight:
		if s.defaultLt != nil {
			return rerr.ErrDuplicateSlot
		}
		s.defaultLt = sh
	case FlagDefaultObject:
		if s.defaultObj != nil {
			return rerr.ErrDuplicateSlot
		}
		s.defaultObj = sh
	case FlagInitOnly, FlagNone:
		// queued for init only; no scene-level slot claimed.
	default:
		return rerr.ErrDuplicateSlot
	}
	s.shaders = append(s.shaders, sh)
	return nil
}

// Init assigns default shaders for any unset scene-level slot, then
// initializes lights, objects, the BVH, and every queued shader in that
// order -- lights and objects before shaders so a shader's default
// (ambient, or a light's default energy) is resolved by the time it's
// initialized, and lights before objects so a light nested in a group
// picks up the group's transform before Init runs.
func (s *Scene) Init() error {
	if s.ambient == nil {
		s.ambient = shader.NewSolid(color.New(.1, .1, .1))
		s.shaders = append(s.shaders, s.ambient)
	}
	if s.background == nil {
		s.background = shader.NewSolid(color.New(.2, .2, .5))
		s.shaders = append(s.shaders, s.background)
	}
	if s.defaultObj == nil {
		s.defaultObj = shader.NewSolid(color.New(.3, .3, .3))
		s.shaders = append(s.shaders, s.defaultObj)
	}
	if s.defaultLt == nil {
		s.defaultLt = shader.NewSolid(color.White)
		s.shaders = append(s.shaders, s.defaultLt)
	}

	for _, lt := range s.lights {
		if err := s.initLight(lt); err != nil {
			return err
		}
	}

	s.ObjectCount = 0
	for _, ob := range s.objects {
		if err := s.initObject(ob); err != nil {
			return err
		}
	}

	s.optObjects = bvh.Build(&s.Costs, s.Eye, s.objects)
	s.BoundCount = countBounds(s.optObjects)

	s.ShaderCount = 0
	for _, sh := range s.shaders {
		if err := s.initShader(sh); err != nil {
			return err
		}
	}

	return nil
}

// initLight falls back to the scene's default light energy if none was
// set during parsing, then inits the light itself. A light's own
// transform (PointLight, SpotLight) is resolved inside its own Init, not
// here -- each light's own transform init owns that call.
func (s *Scene) initLight(lt shader.Light) error {
	if eb, ok := lt.(interface{ GetEnergy() shader.Shader }); ok && eb.GetEnergy() == nil {
		if setter, ok := lt.(interface{ SetEnergy(shader.Shader) error }); ok {
			if err := setter.SetEnergy(s.defaultLt); err != nil {
				return err
			}
		}
	}
	if i, ok := lt.(light.Initer); ok {
		return i.Init(s)
	}
	return nil
}

// initObject inits a top-level object and counts it. A primitive's own
// Init call composes any nested children against its transform
// internally (CSG/group nodes walk their own child list), so Scene only
// ever calls Init with a nil parent here.
func (s *Scene) initObject(ob prim.Primitive) error {
	s.ObjectCount++
	return ob.Init(nil)
}

// initShader inits a top-level queued shader. Unlike objects, a
// shader's own transform is always rooted (nil parent) regardless of
// which object it's attached to; every entry in the flat shader list is
// initialized uniformly with a nil parent, so a pattern's own transform
// never inherits an enclosing object's placement.
func (s *Scene) initShader(sh shader.Shader) error {
	s.ShaderCount++
	if i, ok := sh.(shader.Initer); ok {
		return i.Init(s)
	}
	return nil
}

func countBounds(objs []prim.Primitive) int {
	n := 0
	for _, ob := range objs {
		if _, ok := ob.(*bvh.Bound); ok {
			n++
		}
	}
	return n
}

// Objects returns the scene's flat (pre-BVH) primitive list.
func (s *Scene) Objects() []prim.Primitive { return s.objects }

// OptObjects returns the BVH-optimized primitive list Init built.
func (s *Scene) OptObjects() []prim.Primitive { return s.optObjects }

// SamplesPerPixel reports the total number of camera-ray samples taken
// per pixel, folding the sub-pixel grid together with jitter sampling
// when either jitter or a depth-of-field aperture is active.
func (s *Scene) SamplesPerPixel() int {
	multiSample := s.Jitter > lin.VerySmall || s.Aperture > lin.VerySmall
	x, y := s.SampleX, s.SampleY
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	n := x * y
	if multiSample {
		samples := s.Samples
		if samples < 1 {
			samples = 1
		}
		n *= samples
	}
	return n
}

// **** shader.Tracer ****

func (s *Scene) Lights() []shader.Light { return s.lights }
func (s *Scene) Ambient() shader.Shader { return s.ambient }
func (s *Scene) Background() shader.Shader { return s.background }

func (s *Scene) MaxRayDepth() int     { return s.MaxRayDepthVal }
func (s *Scene) RayMoveout() float64  { return s.RayMoveoutVal }
func (s *Scene) MinRayValue() float64 { return s.MinRayValueVal }
func (s *Scene) ShadowEnabled() bool  { return s.Shadow }

// TraceRay intersects r against every optimized top-level object,
// evaluating the winning hit's shader (or the scene's default object
// shader if the primitive carries none) and, on a miss, the background
// shader against the ray direction mapped onto a simple hemisphere UV.
func (s *Scene) TraceRay(js *shader.JobState, r *ray.Ray) color.Color {
	si := js.Stats
	si.TriedRay()

	hl := hitlist.New(js.Cache, si, false)
	for _, ob := range s.optObjects {
		ob.Intersect(r, hl)
	}

	hit := hl.FirstHit()
	if hit == nil {
		u := r.Dir.X
		if r.Dir.Z <= 0 {
			u = -u
		}
		eh := shader.EvaluatedHit{Map: lin.V3{X: u, Y: r.Dir.Y}}
		return s.background.Evaluate(js, s, r, &eh)
	}

	si.HitRay()

	obj, _ := hit.Object.(prim.Primitive)
	var sh shader.Shader
	if ps := obj.ShaderOf(); ps != nil {
		sh = ps.(shader.Shader)
	}
	if sh == nil {
		sh = s.defaultObj
	}

	normal := obj.Normal(r, hit)
	if r.Dir.Dot(&normal) > 0 {
		normal = lin.V3{X: -normal.X, Y: -normal.Y, Z: -normal.Z}
	}

	eh := shader.EvaluatedHit{
		GlobalPt: r.At(hit.Distance),
		Normal:   normal,
		Map:      hit.LocalPt,
		Side:     hit.Side,
	}
	return sh.Evaluate(js, s, r, &eh)
}

// CastShadowRay reports whether r hits anything before its max length;
// this renderer has no transparency, so any hit fully occludes.
func (s *Scene) CastShadowRay(js *shader.JobState, r *ray.Ray) bool {
	si := js.Stats
	si.TriedShadowRay()

	hl := hitlist.New(js.Cache, si, false)
	for _, ob := range s.optObjects {
		ob.Intersect(r, hl)
	}

	if hl.FirstHit() == nil {
		return false
	}
	si.HitShadowRay()
	return true
}
