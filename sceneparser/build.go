// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sceneparser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/light"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/scene"
	"github.com/hirdrac/rend/shader"
)

// Builder walks a parsed command sequence and fills a *scene.Scene
// through a keyword dispatch table. Each keyword here lives in one of
// four small registries (scene scalars, objects, shaders, lights)
// instead of one polymorphic item type, since Go has no dynamic
// downcast to lean on for a single dispatch table.
type Builder struct {
	sc *scene.Scene
}

// NewBuilder returns a Builder that fills sc.
func NewBuilder(sc *scene.Scene) *Builder {
	return &Builder{sc: sc}
}

// Build dispatches every top-level parsed node against the scene.
func (b *Builder) Build(nodes []*Node) error {
	for _, n := range nodes {
		if err := b.processTop(n); err != nil {
			return err
		}
	}
	return nil
}

// command returns n's list items if n is a non-empty list headed by a
// symbol, along with the lower-cased keyword; ok is false for anything
// else (a bare number/string/symbol at a position expecting a command).
func command(n *Node) (keyword string, args []*Node, ok bool) {
	if n.Kind != NodeList || len(n.Items) == 0 || n.Items[0].Kind != NodeSymbol {
		return "", nil, false
	}
	return strings.ToLower(n.Items[0].Value), n.Items[1:], true
}

// **** argument cursor ****

type args struct {
	items []*Node
	i     int
}

func newArgs(items []*Node) *args { return &args{items: items} }

func (a *args) peek() *Node {
	if a.i >= len(a.items) {
		return nil
	}
	return a.items[a.i]
}

func (a *args) take() *Node {
	n := a.peek()
	if n != nil {
		a.i++
	}
	return n
}

func (a *args) flt() (float64, error) {
	n := a.take()
	if n == nil || n.Kind != NodeNumber {
		return 0, argErr(n, "expected a number")
	}
	return strconv.ParseFloat(n.Value, 64)
}

func (a *args) int_() (int, error) {
	n := a.take()
	if n == nil || n.Kind != NodeNumber {
		return 0, argErr(n, "expected an integer")
	}
	v, err := strconv.ParseFloat(n.Value, 64)
	return int(v), err
}

func (a *args) str() (string, error) {
	n := a.take()
	if n == nil || (n.Kind != NodeString && n.Kind != NodeSymbol) {
		return "", argErr(n, "expected a string")
	}
	return n.Value, nil
}

func (a *args) vec3() (lin.V3, error) {
	var v lin.V3
	var err error
	if v.X, err = a.flt(); err != nil {
		return v, err
	}
	if v.Y, err = a.flt(); err != nil {
		return v, err
	}
	if v.Z, err = a.flt(); err != nil {
		return v, err
	}
	return v, nil
}

func (a *args) bool_() (bool, error) {
	n := a.take()
	if n == nil {
		return false, argErr(n, "expected a boolean")
	}
	switch n.Value[0] {
	case '0', 'f', 'F', 'n', 'N':
		return false, nil
	case '1', 't', 'T', 'y', 'Y':
		return true, nil
	}
	return false, argErr(n, "expected a boolean, not %q", n.Value)
}

func argErr(n *Node, format string, rest ...any) error {
	if n != nil {
		return n.errorf(format, rest...)
	}
	return &parseEOFError{msg: format}
}

type parseEOFError struct{ msg string }

func (e *parseEOFError) Error() string { return "unexpected end of arguments: " + e.msg }

// **** transform ****

// applyTransform applies a single move/scale/rotate/no_parent command
// directly onto t's own Base matrix (TranslateMT/ScaleMS compose the new
// operation after whatever's already there, so repeated commands append
// in order), returning handled=false if keyword isn't a transform
// command at all.
func applyTransform(t *geom.Transform, keyword string, a *args) (handled bool, err error) {
	switch keyword {
	case "move":
		v, err := a.vec3()
		if err != nil {
			return true, err
		}
		t.Base.TranslateMT(v.X, v.Y, v.Z)
	case "move_x":
		v, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.TranslateMT(v, 0, 0)
	case "move_y":
		v, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.TranslateMT(0, v, 0)
	case "move_z":
		v, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.TranslateMT(0, 0, v)
	case "scale":
		v, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(v, v, v)
	case "scale_x":
		v, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(v, 1, 1)
	case "scale_y":
		v, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(1, v, 1)
	case "scale_z", "stretch_z":
		v, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(1, 1, v)
	case "stretch_x":
		v, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(v, 1, 1)
	case "stretch_y":
		v, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(1, v, 1)
	case "scale_xy":
		x, err := a.flt()
		if err != nil {
			return true, err
		}
		y, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(x, y, 1)
	case "scale_xz":
		x, err := a.flt()
		if err != nil {
			return true, err
		}
		z, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(x, 1, z)
	case "scale_yz":
		y, err := a.flt()
		if err != nil {
			return true, err
		}
		z, err := a.flt()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(1, y, z)
	case "scale_xyz":
		v, err := a.vec3()
		if err != nil {
			return true, err
		}
		t.Base.ScaleMS(v.X, v.Y, v.Z)
	case "rotate_x":
		deg, err := a.flt()
		if err != nil {
			return true, err
		}
		rotateAxis(t, 0, deg)
	case "rotate_y":
		deg, err := a.flt()
		if err != nil {
			return true, err
		}
		rotateAxis(t, 1, deg)
	case "rotate_z":
		deg, err := a.flt()
		if err != nil {
			return true, err
		}
		rotateAxis(t, 2, deg)
	case "no_parent":
		t.SetNoParent(true)
	default:
		return false, nil
	}
	return true, nil
}

// rotateAxis appends a rotation of deg degrees about the given axis
// (0=X, 1=Y, 2=Z) onto t.Base, matching the TranslateMT/ScaleMS
// convention of post-multiplying the new local operation onto whatever
// Base already holds.
func rotateAxis(t *geom.Transform, axis int, deg float64) {
	rad := lin.Rad(deg)
	s, c := math.Sin(rad), math.Cos(rad)
	var rot lin.M4
	rot.Xx, rot.Yy, rot.Zz, rot.Ww = 1, 1, 1, 1
	switch axis {
	case 0: // X
		rot.Yy, rot.Yz = c, s
		rot.Zy, rot.Zz = -s, c
	case 1: // Y
		rot.Xx, rot.Xz = c, -s
		rot.Zx, rot.Zz = s, c
	case 2: // Z
		rot.Xx, rot.Xy = c, s
		rot.Yx, rot.Yy = -s, c
	}
	old := t.Base
	t.Base.Mult(&old, &rot)
}

// **** top-level dispatch ****

func (b *Builder) processTop(n *Node) error {
	keyword, items, ok := command(n)
	if !ok {
		return n.errorf("unexpected value %q", n.Value)
	}
	a := newArgs(items)

	if fn, ok := sceneScalars[keyword]; ok {
		return fn(b.sc, a)
	}

	switch keyword {
	case "ambient", "background", "default", "defaultlight":
		sh, err := b.nextShader(a)
		if err != nil {
			return err
		}
		return b.sc.AddShader(sh, sceneSlotFlags[keyword])
	}

	if _, ok := objectBuilders[keyword]; ok {
		ob, err := b.buildObject(n)
		if err != nil {
			return err
		}
		return b.sc.AddObject(ob)
	}

	if _, ok := lightBuilders[keyword]; ok {
		lt, err := b.buildLight(n)
		if err != nil {
			return err
		}
		return b.sc.AddLight(lt)
	}

	return n.errorf("%w: %s", rerr.ErrUnknownKeyword, keyword)
}

var sceneSlotFlags = map[string]scene.Flag{
	"ambient":     scene.FlagAmbient,
	"background":  scene.FlagBackground,
	"default":     scene.FlagDefaultObject,
	"defaultlight": scene.FlagDefaultLight,
}

// sceneScalars are keyword handlers that read arguments directly into
// scalar scene.Scene fields -- camera, sampling, and limit settings that
// take no nested children.
var sceneScalars = map[string]func(*scene.Scene, *args) error{
	"eye": func(s *scene.Scene, a *args) error { v, err := a.vec3(); s.Eye = v; return err },
	"coi": func(s *scene.Scene, a *args) error { v, err := a.vec3(); s.Coi = v; return err },
	"vup": func(s *scene.Scene, a *args) error { v, err := a.vec3(); s.Vup = v; return err },
	"fov": func(s *scene.Scene, a *args) error { v, err := a.flt(); s.Fov = v; return err },
	"aperture": func(s *scene.Scene, a *args) error { v, err := a.flt(); s.Aperture = v; return err },
	"focus": func(s *scene.Scene, a *args) error { v, err := a.flt(); s.Focus = v; return err },
	"size": func(s *scene.Scene, a *args) error {
		w, err := a.int_()
		if err != nil {
			return err
		}
		h, err := a.int_()
		if err != nil {
			return err
		}
		s.ImageWidth, s.ImageHeight = w, h
		s.RegionMin, s.RegionMax = [2]int{0, 0}, [2]int{w - 1, h - 1}
		return nil
	},
	"region": func(s *scene.Scene, a *args) error {
		x0, err := a.int_()
		if err != nil {
			return err
		}
		y0, err := a.int_()
		if err != nil {
			return err
		}
		x1, err := a.int_()
		if err != nil {
			return err
		}
		y1, err := a.int_()
		if err != nil {
			return err
		}
		s.RegionMin, s.RegionMax = [2]int{x0, y0}, [2]int{x1, y1}
		return nil
	},
	"supersample": func(s *scene.Scene, a *args) error {
		x, err := a.int_()
		if err != nil {
			return err
		}
		y, err := a.int_()
		if err != nil {
			return err
		}
		s.SampleX, s.SampleY = x, y
		return nil
	},
	"samples": func(s *scene.Scene, a *args) error { v, err := a.int_(); s.Samples = v; return err },
	"jitter": func(s *scene.Scene, a *args) error { v, err := a.flt(); s.Jitter = v; return err },
	"maxdepth": func(s *scene.Scene, a *args) error { v, err := a.int_(); s.MaxRayDepthVal = v; return err },
	"minvalue": func(s *scene.Scene, a *args) error { v, err := a.flt(); s.MinRayValueVal = v; return err },
	"shadow":   func(s *scene.Scene, a *args) error { v, err := a.bool_(); s.Shadow = v; return err },
}

// objectBuilders marks which keywords build a primitive, used by
// processTop/buildObject to recognize nested object children.
var objectBuilders = map[string]bool{
	"sphere": true, "cube": true, "plane": true, "disc": true,
	"cylinder": true, "cone": true, "paraboloid": true, "torus": true,
	"prism": true, "group": true, "union": true, "intersect": true,
	"difference": true,
}

var lightBuilders = map[string]bool{"light": true, "sun": true, "spotlight": true}

var shaderBuilders = map[string]bool{
	"rgb": true, "phong": true, "checker": true, "checker3d": true,
	"stripe": true, "ring": true, "squarering": true, "pinwheel": true,
	"side": true, "colorcube": true, "noise": true, "occlusion": true,
	"map_global": true, "map_local": true, "map_cube": true,
	"map_cylinder": true, "map_cone": true, "map_paraboloid": true,
	"map_sphere": true, "map_torus": true,
}

// **** objects ****

func (b *Builder) buildObject(n *Node) (prim.Primitive, error) {
	keyword, items, _ := command(n)
	switch keyword {
	case "sphere":
		return b.buildLeaf(prim.NewSphere(), items)
	case "cube":
		return b.buildLeaf(prim.NewCube(), items)
	case "plane":
		return b.buildLeaf(prim.NewPlane(), items)
	case "disc":
		return b.buildLeaf(prim.NewDisc(), items)
	case "cylinder":
		return b.buildLeaf(prim.NewCylinder(), items)
	case "cone":
		return b.buildLeaf(prim.NewCone(), items)
	case "paraboloid":
		return b.buildLeaf(prim.NewParaboloid(), items)
	case "torus":
		radius2 := 0.25
		a := newArgs(items)
		if pk := a.peek(); pk != nil && pk.Kind == NodeNumber {
			v, err := a.flt()
			if err != nil {
				return nil, err
			}
			radius2 = v
			items = items[a.i:]
		}
		return b.buildLeaf(prim.NewTorus(radius2), items)
	case "prism":
		sides := 3
		a := newArgs(items)
		if pk := a.peek(); pk != nil && pk.Kind == NodeNumber {
			v, err := a.int_()
			if err != nil {
				return nil, err
			}
			sides = v
			items = items[a.i:]
		}
		return b.buildLeaf(prim.NewPrism(sides), items)
	case "group":
		children, rest, err := b.splitChildren(items)
		if err != nil {
			return nil, err
		}
		return b.buildLeaf(prim.NewMerge(children...), rest)
	case "union":
		children, rest, err := b.splitChildren(items)
		if err != nil {
			return nil, err
		}
		return b.buildLeaf(prim.NewUnion(children...), rest)
	case "intersect":
		children, rest, err := b.splitChildren(items)
		if err != nil {
			return nil, err
		}
		return b.buildLeaf(prim.NewIntersection(children...), rest)
	case "difference":
		children, rest, err := b.splitChildren(items)
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return nil, rerr.ErrZeroChildCSG
		}
		return b.buildLeaf(prim.NewDifference(children[0], children[1:]...), rest)
	}
	return nil, n.errorf("%w: %s", rerr.ErrUnknownKeyword, keyword)
}

// splitChildren pulls every nested object command out of items (in
// order), building each recursively, and returns the remaining
// transform/shader commands untouched for the caller to apply.
func (b *Builder) splitChildren(items []*Node) (children []prim.Primitive, rest []*Node, err error) {
	for _, c := range items {
		kw, _, ok := command(c)
		if ok && objectBuilders[kw] {
			ob, err := b.buildObject(c)
			if err != nil {
				return nil, nil, err
			}
			children = append(children, ob)
			continue
		}
		rest = append(rest, c)
	}
	return children, rest, nil
}

func (b *Builder) buildLeaf(ob prim.Primitive, items []*Node) (prim.Primitive, error) {
	trans := ob.Trans()
	for _, c := range items {
		kw, sub, ok := command(c)
		if !ok {
			return nil, c.errorf("unexpected value %q", c.Value)
		}
		a := newArgs(sub)
		if handled, err := applyTransform(trans, kw, a); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		if fn, ok := objectScalars[kw]; ok {
			if err := fn(ob, a); err != nil {
				return nil, err
			}
			continue
		}
		if shaderBuilders[kw] {
			sh, err := b.buildShader(c)
			if err != nil {
				return nil, err
			}
			if err := setShaderOf(ob, sh); err != nil {
				return nil, err
			}
			continue
		}
		return nil, c.errorf("%w: %s", rerr.ErrUnknownKeyword, kw)
	}
	return ob, nil
}

// objectScalars are per-primitive scalar args. Every concrete primitive
// in this package is a canonical unit-sized shape (unit sphere, unit
// cube, unit disc...) positioned and sized entirely through its
// transform, so "radius" is sugar for a uniform scale rather than a
// distinct field -- except Torus, whose tube radius (Radius2) has no
// transform equivalent and is set directly. "sides" only applies to
// Prism, the one primitive whose cross-section takes a side count; it
// is normally given as the leading positional argument to (prism ...)
// but is also accepted as a child command for parity with "radius".
var objectScalars = map[string]func(prim.Primitive, *args) error{
	"radius": func(ob prim.Primitive, a *args) error {
		v, err := a.flt()
		if err != nil {
			return err
		}
		setRadius(ob, v)
		return nil
	},
	"sides": func(ob prim.Primitive, a *args) error {
		v, err := a.int_()
		if err != nil {
			return err
		}
		return setSides(ob, v)
	},
	"cost": func(ob prim.Primitive, a *args) error {
		v, err := a.flt()
		if err != nil {
			return err
		}
		return setCost(ob, v)
	},
}

// setRadius scales ob uniformly to the given radius, or -- for a Torus,
// whose tube thickness has no transform equivalent -- sets Radius2
// directly.
func setRadius(ob prim.Primitive, v float64) {
	if t, ok := ob.(*prim.Torus); ok {
		t.Radius2 = v
		return
	}
	ob.Trans().Base.ScaleMS(v, v, v)
}

// setSides rewrites a Prism's side count; Init (called later, during
// scene.Scene.Init) derives the prism's cross-section from whatever
// value Sides holds at that point.
func setSides(ob prim.Primitive, v int) error {
	p, ok := ob.(*prim.Prism)
	if !ok {
		return fmt.Errorf("%w: sides", rerr.ErrUnknownKeyword)
	}
	p.Sides = v
	return nil
}

// costSetter is satisfied by every concrete primitive and CSG node
// (promoted from prim.Base.SetCost).
type costSetter interface {
	SetCost(v float64)
}

func setCost(ob prim.Primitive, v float64) error {
	cs, ok := ob.(costSetter)
	if !ok {
		return fmt.Errorf("%w: cost", rerr.ErrUnknownKeyword)
	}
	cs.SetCost(v)
	return nil
}

// shaderSetter is satisfied by every concrete primitive and CSG node
// (promoted from prim.Base.SetShader).
type shaderSetter interface {
	SetShader(sh prim.Shader)
}

func setShaderOf(ob prim.Primitive, sh shader.Shader) error {
	ss, ok := ob.(shaderSetter)
	if !ok {
		return fmt.Errorf("%w: shader", rerr.ErrUnknownKeyword)
	}
	ss.SetShader(sh)
	return nil
}

// **** shaders ****

func (b *Builder) nextShader(a *args) (shader.Shader, error) {
	n := a.take()
	if n == nil {
		return nil, argErr(n, "expected a shader")
	}
	return b.buildShader(n)
}

func (b *Builder) buildShader(n *Node) (shader.Shader, error) {
	keyword, items, ok := command(n)
	if !ok {
		return nil, n.errorf("unexpected value %q", n.Value)
	}
	switch keyword {
	case "rgb":
		a := newArgs(items)
		v, err := a.vec3()
		if err != nil {
			return nil, err
		}
		return shader.NewSolid(color.New(v.X, v.Y, v.Z)), nil

	case "phong":
		ph := shader.NewPhong()
		for _, c := range items {
			kw, sub, ok := command(c)
			if !ok {
				return nil, c.errorf("unexpected value %q", c.Value)
			}
			if kw == "exp" {
				a := newArgs(sub)
				v, err := a.flt()
				if err != nil {
					return nil, err
				}
				ph.Exp = v
				continue
			}
			slot, ok := phongSlots[kw]
			if !ok {
				return nil, c.errorf("%w: %s", rerr.ErrUnknownKeyword, kw)
			}
			sh, err := b.nextShader(newArgs(sub))
			if err != nil {
				return nil, err
			}
			if err := ph.AddShader(sh, slot); err != nil {
				return nil, err
			}
		}
		return ph, nil

	case "checker", "checker3d", "stripe", "ring", "squarering", "pinwheel":
		return b.buildPattern(keyword, items)

	case "side":
		s := shader.NewSide()
		for _, c := range items {
			child, err := b.buildShader(c)
			if err != nil {
				return nil, err
			}
			if err := s.AddShader(child); err != nil {
				return nil, err
			}
		}
		return s, nil

	case "colorcube":
		cc := shader.NewColorCube()
		for _, c := range items {
			kw, sub, ok := command(c)
			if !ok {
				return nil, c.errorf("unexpected value %q", c.Value)
			}
			a := newArgs(sub)
			if handled, err := applyTransform(&cc.Trans, kw, a); handled {
				if err != nil {
					return nil, err
				}
				continue
			}
			return nil, c.errorf("%w: %s", rerr.ErrUnknownKeyword, kw)
		}
		return cc, nil

	case "noise":
		return b.buildNoise(items)

	case "occlusion":
		return b.buildOcclusion(items)

	case "map_global", "map_local", "map_cube", "map_cylinder", "map_cone",
		"map_paraboloid", "map_sphere", "map_torus":
		return b.buildMap(keyword, items)
	}
	return nil, n.errorf("%w: %s", rerr.ErrUnknownKeyword, keyword)
}

// buildNoise handles (noise [value v] child-shader), taking the "value"
// scalar in any position and the first shader command encountered as the
// single delegate child -- Noise.SetChild rejects a second one the same
// way MapShader.SetChild does.
func (b *Builder) buildNoise(items []*Node) (shader.Shader, error) {
	var n *shader.Noise
	for _, c := range items {
		kw, sub, ok := command(c)
		if !ok {
			return nil, c.errorf("unexpected value %q", c.Value)
		}
		if kw == "value" {
			a := newArgs(sub)
			v, err := a.flt()
			if err != nil {
				return nil, err
			}
			if n == nil {
				n = shader.NewNoise(nil)
			}
			n.Value = v
			continue
		}
		if shaderBuilders[kw] {
			child, err := b.buildShader(c)
			if err != nil {
				return nil, err
			}
			if n == nil {
				n = shader.NewNoise(nil)
			}
			if err := n.SetChild(child); err != nil {
				return nil, err
			}
			continue
		}
		return nil, c.errorf("%w: %s", rerr.ErrUnknownKeyword, kw)
	}
	if n == nil {
		n = shader.NewNoise(nil)
	}
	return n, nil
}

// buildOcclusion handles (occlusion [radius r] [samples n] child-shader).
func (b *Builder) buildOcclusion(items []*Node) (shader.Shader, error) {
	var o *shader.Occlusion
	ensure := func() *shader.Occlusion {
		if o == nil {
			o = shader.NewOcclusion(nil)
		}
		return o
	}
	for _, c := range items {
		kw, sub, ok := command(c)
		if !ok {
			return nil, c.errorf("unexpected value %q", c.Value)
		}
		a := newArgs(sub)
		switch kw {
		case "radius":
			v, err := a.flt()
			if err != nil {
				return nil, err
			}
			ensure().Radius = v
			continue
		case "samples":
			v, err := a.int_()
			if err != nil {
				return nil, err
			}
			ensure().Samples = v
			continue
		}
		if shaderBuilders[kw] {
			child, err := b.buildShader(c)
			if err != nil {
				return nil, err
			}
			if err := ensure().SetChild(child); err != nil {
				return nil, err
			}
			continue
		}
		return nil, c.errorf("%w: %s", rerr.ErrUnknownKeyword, kw)
	}
	return ensure(), nil
}

// buildMap handles the map_* projection family: each wraps exactly one
// child shader, the first (and only) shader command found in items.
func (b *Builder) buildMap(keyword string, items []*Node) (shader.Shader, error) {
	var child shader.Shader
	for _, c := range items {
		kw, _, ok := command(c)
		if !ok {
			return nil, c.errorf("unexpected value %q", c.Value)
		}
		if !shaderBuilders[kw] {
			return nil, c.errorf("%w: %s", rerr.ErrUnknownKeyword, kw)
		}
		sh, err := b.buildShader(c)
		if err != nil {
			return nil, err
		}
		child = sh
	}
	switch keyword {
	case "map_global":
		return shader.NewMapGlobal(child), nil
	case "map_local":
		return shader.NewMapLocal(child), nil
	case "map_cube":
		return shader.NewMapCube(child), nil
	case "map_cylinder":
		return shader.NewMapCylinder(child), nil
	case "map_cone":
		return shader.NewMapCone(child), nil
	case "map_paraboloid":
		return shader.NewMapParaboloid(child), nil
	case "map_sphere":
		return shader.NewMapSphere(child), nil
	case "map_torus":
		return shader.NewMapTorus(child), nil
	}
	return nil, fmt.Errorf("%w: %s", rerr.ErrUnknownKeyword, keyword)
}

var phongSlots = map[string]int{
	"ambient":  shader.SlotAmbient,
	"diffuse":  shader.SlotDiffuse,
	"specular": shader.SlotSpecular,
	"transmit": shader.SlotTransmit,
}

// patternAdder is satisfied by every pattern-family shader: they all
// embed shader.PatternShader, which supplies AddShader with a pointer
// receiver, so it promotes onto *Stripe, *Checkerboard, and so on
// without each type needing its own wrapper.
type patternAdder interface {
	AddShader(sh shader.Shader, border bool) error
}

// patternTransform returns a pattern shader's own transform, the one
// target "move"/"scale"/"rotate_*" commands inside its body apply to.
func patternTransform(sh shader.Shader) *geom.Transform {
	switch s := sh.(type) {
	case *shader.Stripe:
		return &s.Trans
	case *shader.Checkerboard:
		return &s.Trans
	case *shader.Checkerboard3D:
		return &s.Trans
	case *shader.Ring:
		return &s.Trans
	case *shader.SquareRing:
		return &s.Trans
	case *shader.Pinwheel:
		return &s.Trans
	}
	return nil
}

// setOffset handles the "offset" keyword, which only Ring and
// SquareRing carry; setSpin/setSectors below cover Pinwheel's own extra
// fields.
func setOffset(sh shader.Shader, v float64) error {
	switch s := sh.(type) {
	case *shader.Ring:
		s.Offset = v
	case *shader.SquareRing:
		s.Offset = v
	default:
		return fmt.Errorf("%w: offset", rerr.ErrUnknownKeyword)
	}
	return nil
}

func setSpin(sh shader.Shader, v float64) error {
	p, ok := sh.(*shader.Pinwheel)
	if !ok {
		return fmt.Errorf("%w: spin", rerr.ErrUnknownKeyword)
	}
	p.Spin = v
	return nil
}

func setPinwheelSectors(sh shader.Shader, v int) error {
	p, ok := sh.(*shader.Pinwheel)
	if !ok {
		return fmt.Errorf("%w: sectors", rerr.ErrUnknownKeyword)
	}
	p.Sectors = v
	return nil
}

func (b *Builder) buildPattern(keyword string, items []*Node) (shader.Shader, error) {
	var sh shader.Shader
	switch keyword {
	case "checker":
		sh = shader.NewCheckerboard()
	case "checker3d":
		sh = shader.NewCheckerboard3D()
	case "stripe":
		sh = shader.NewStripe()
	case "ring":
		sh = shader.NewRing()
	case "squarering":
		sh = shader.NewSquareRing()
	case "pinwheel":
		sh = shader.NewPinwheel()
	}
	adder := sh.(patternAdder)
	trans := patternTransform(sh)

	for _, c := range items {
		kw, sub, ok := command(c)
		if !ok {
			return nil, c.errorf("unexpected value %q", c.Value)
		}
		a := newArgs(sub)
		if handled, err := applyTransform(trans, kw, a); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		switch kw {
		case "border":
			child, err := b.nextShader(a)
			if err != nil {
				return nil, err
			}
			if err := adder.AddShader(child, true); err != nil {
				return nil, err
			}
			continue
		case "offset":
			v, err := a.flt()
			if err != nil {
				return nil, err
			}
			if err := setOffset(sh, v); err != nil {
				return nil, err
			}
			continue
		case "spin":
			v, err := a.flt()
			if err != nil {
				return nil, err
			}
			if err := setSpin(sh, v); err != nil {
				return nil, err
			}
			continue
		case "sectors":
			v, err := a.int_()
			if err != nil {
				return nil, err
			}
			if err := setPinwheelSectors(sh, v); err != nil {
				return nil, err
			}
			continue
		}
		if shaderBuilders[kw] {
			child, err := b.buildShader(c)
			if err != nil {
				return nil, err
			}
			if err := adder.AddShader(child, false); err != nil {
				return nil, err
			}
			continue
		}
		return nil, c.errorf("%w: %s", rerr.ErrUnknownKeyword, kw)
	}
	return sh, nil
}

// **** lights ****

func (b *Builder) buildLight(n *Node) (shader.Light, error) {
	keyword, items, _ := command(n)
	switch keyword {
	case "sun":
		s := light.NewSun()
		for _, c := range items {
			if err := b.applyLightArg(&s.Base, nil, s, c); err != nil {
				return nil, err
			}
		}
		return s, nil

	case "light":
		p := light.NewPointLight()
		for _, c := range items {
			if err := b.applyLightArg(&p.Base, &p.Trans, p, c); err != nil {
				return nil, err
			}
		}
		return p, nil

	case "spotlight":
		s := light.NewSpotLight()
		for _, c := range items {
			if err := b.applyLightArg(&s.Base, &s.Trans, s, c); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	return nil, n.errorf("%w: %s", rerr.ErrUnknownKeyword, keyword)
}

// applyLightArg handles the args every light shares (a transform for
// positioned lights, "dir", and an energy shader), then falls through to
// setLightScalar for the handful of fields only PointLight carries.
func (b *Builder) applyLightArg(base *light.Base, trans *geom.Transform, lt shader.Light, c *Node) error {
	kw, sub, ok := command(c)
	if !ok {
		return c.errorf("unexpected value %q", c.Value)
	}
	a := newArgs(sub)
	if trans != nil {
		if handled, err := applyTransform(trans, kw, a); handled {
			return err
		}
	}
	if kw == "dir" {
		v, err := a.vec3()
		if err != nil {
			return err
		}
		base.Dir = v
		return nil
	}
	if shaderBuilders[kw] {
		sh, err := b.buildShader(c)
		if err != nil {
			return err
		}
		return base.SetEnergy(sh)
	}
	if handled, err := setLightScalar(lt, kw, a); handled {
		return err
	}
	return c.errorf("%w: %s", rerr.ErrUnknownKeyword, kw)
}

// setLightScalar handles "radius"/"samples", the soft-shadow area-
// sampling fields only PointLight carries.
func setLightScalar(lt shader.Light, keyword string, a *args) (handled bool, err error) {
	p, ok := lt.(*light.PointLight)
	if !ok {
		return false, nil
	}
	switch keyword {
	case "radius":
		v, err := a.flt()
		p.Radius = v
		return true, err
	case "samples":
		v, err := a.int_()
		p.Samples = v
		return true, err
	}
	return false, nil
}
