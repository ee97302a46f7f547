// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package shader

import (
	"math"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
)

// MapShader is the shared base of the projection family (Global, Cone,
// Cube, Cylinder, Paraboloid, Sphere, Torus, Local): each rewrites
// EvaluatedHit.Map to a projected parameterization and delegates to a
// single child. Unlike PatternShader, the family owns no transform of
// its own.
type MapShader struct {
	prim.ShaderBase
	Child Shader
}

// SetChild assigns the single delegate shader; returns rerr.ErrDuplicateSlot
// if one is already set, mirroring MapShader::addShader's _child guard.
func (m *MapShader) SetChild(sh Shader) error {
	if sh == nil {
		return rerr.ErrNoShader
	}
	if m.Child != nil {
		return rerr.ErrDuplicateSlot
	}
	m.Child = sh
	return nil
}

// Init inits the child shader if it needs it, failing if none was set.
func (m *MapShader) Init(tr Tracer) error {
	if m.Child == nil {
		return rerr.ErrNoChildren
	}
	if i, ok := m.Child.(Initer); ok {
		return i.Init(tr)
	}
	return nil
}

// **** MapGlobal ****

// MapGlobal replaces Map with the hit's GlobalPt before delegating.
type MapGlobal struct{ MapShader }

func NewMapGlobal(child Shader) *MapGlobal {
	m := &MapGlobal{}
	_ = m.SetChild(child)
	return m
}

func (m *MapGlobal) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	eh2 := *eh
	eh2.Map = eh.GlobalPt
	return m.Child.Evaluate(js, tr, r, &eh2)
}

// **** MapLocal ****

// MapLocal leaves Map unchanged before delegating -- a no-op projection,
// present for symmetry with the rest of the family (Map already defaults
// to the hit's local point before any map shader runs).
type MapLocal struct{ MapShader }

func NewMapLocal(child Shader) *MapLocal {
	m := &MapLocal{}
	_ = m.SetChild(child)
	return m
}

func (m *MapLocal) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	return m.Child.Evaluate(js, tr, r, eh)
}

// **** MapCube ****

// MapCube remaps Map per cube face (Side 0-5) into a flattened 2D
// parameterization, unwrapping the cube the way a texture atlas would.
type MapCube struct{ MapShader }

func NewMapCube(child Shader) *MapCube {
	m := &MapCube{}
	_ = m.SetChild(child)
	return m
}

func (m *MapCube) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	eh2 := *eh
	switch eh.Side {
	case 0:
		eh2.Map = lin.V3{X: -eh.Map.Z, Y: eh.Map.Y}
	case 1:
		eh2.Map = lin.V3{X: eh.Map.Z, Y: eh.Map.Y}
	case 2:
		eh2.Map = lin.V3{X: eh.Map.X, Y: -eh.Map.Z}
	case 3:
		eh2.Map = lin.V3{X: eh.Map.X, Y: eh.Map.Z}
	case 4:
		eh2.Map = lin.V3{X: eh.Map.X, Y: eh.Map.Y}
	case 5:
		eh2.Map = lin.V3{X: -eh.Map.X, Y: eh.Map.Y}
	default:
		eh2.Map = eh.Map
	}
	return m.Child.Evaluate(js, tr, r, &eh2)
}

// **** MapCylinder ****

// MapCylinder unwraps a side hit's angle into a linear U coordinate;
// end-cap hits (Side != 0) pass Map through unchanged.
type MapCylinder struct{ MapShader }

func NewMapCylinder(child Shader) *MapCylinder {
	m := &MapCylinder{}
	_ = m.SetChild(child)
	return m
}

func (m *MapCylinder) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	eh2 := *eh
	if eh.Side == 0 {
		x := lin.Clamp(eh.Map.X, -1+lin.VerySmall, 1-lin.VerySmall)
		u := math.Acos(x)*(2.0/lin.PI) - 1.0
		if eh.Map.Y < 0 {
			u = -u
		}
		eh2.Map = lin.V3{X: u, Y: eh.Map.Z}
	}
	return m.Child.Evaluate(js, tr, r, &eh2)
}

// **** MapCone ****

// MapCone unwraps a side hit's angle the same way MapCylinder does; a
// base-cap hit (Side 1) mirrors Map.X and drops to a fixed Z of -1.
type MapCone struct{ MapShader }

func NewMapCone(child Shader) *MapCone {
	m := &MapCone{}
	_ = m.SetChild(child)
	return m
}

func (m *MapCone) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	eh2 := *eh
	if eh.Side == 1 {
		eh2.Map = lin.V3{X: -eh.Map.X, Y: eh.Map.Y, Z: -1}
	} else {
		dir := lin.V3{X: eh.Map.X, Y: eh.Map.Y}
		dir.Unit()
		x := lin.Clamp(dir.X, -1+lin.VerySmall, 1-lin.VerySmall)
		u := math.Acos(x)*(2.0/lin.PI) - 1.0
		if eh.Map.Y < 0 {
			u = -u
		}
		eh2.Map = lin.V3{X: u, Y: eh.Map.Z}
	}
	return m.Child.Evaluate(js, tr, r, &eh2)
}

// **** MapParaboloid / MapSphere ****

// MapParaboloid and MapSphere both flip Map.X's sign by Map.Z's sign and
// drop Z to 0 -- identical formulas, kept as distinct types since they
// name distinct scene keywords and surfaces.
type MapParaboloid struct{ MapShader }

func NewMapParaboloid(child Shader) *MapParaboloid {
	m := &MapParaboloid{}
	_ = m.SetChild(child)
	return m
}

func (m *MapParaboloid) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	eh2 := *eh
	eh2.Map = flipXByZSign(eh.Map)
	return m.Child.Evaluate(js, tr, r, &eh2)
}

type MapSphere struct{ MapShader }

func NewMapSphere(child Shader) *MapSphere {
	m := &MapSphere{}
	_ = m.SetChild(child)
	return m
}

func (m *MapSphere) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	eh2 := *eh
	eh2.Map = flipXByZSign(eh.Map)
	return m.Child.Evaluate(js, tr, r, &eh2)
}

func flipXByZSign(m lin.V3) lin.V3 {
	if m.Z > 0 {
		return lin.V3{X: m.X, Y: m.Y}
	}
	return lin.V3{X: -m.X, Y: m.Y}
}

// **** MapTorus ****

// MapTorus flips Map.X's sign by Map.Y's sign and negates Map.Z.
type MapTorus struct{ MapShader }

func NewMapTorus(child Shader) *MapTorus {
	m := &MapTorus{}
	_ = m.SetChild(child)
	return m
}

func (m *MapTorus) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	eh2 := *eh
	x := eh.Map.X
	if eh.Map.Y < 0 {
		x = -x
	}
	eh2.Map = lin.V3{X: x, Y: -eh.Map.Z}
	return m.Child.Evaluate(js, tr, r, &eh2)
}
