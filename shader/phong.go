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

// Phong is the standard ambient/diffuse/specular/transmit illumination
// model: ambient lights the surface uniformly, each scene light
// contributes a diffuse term and (if the surface has specular color) a
// specular highlight, and a specular surface recurses one more reflection
// bounce through the Tracer.
type Phong struct {
	prim.ShaderBase
	Exp      float64
	Ambient  Shader
	Diffuse  Shader
	Specular Shader
	Transmit Shader
}

// NewPhong returns a Phong shader with a default exponent of 5; the
// four sub-shader slots are left nil until Init or AddShader fill them.
func NewPhong() *Phong { return &Phong{Exp: 5.0} }

const (
	slotAmbient = iota
	slotDiffuse
	slotSpecular
	slotTransmit
)

// Exported aliases of Phong's slot constants, for callers outside this
// package building a Phong from parsed scene commands (e.g. sceneparser's
// "ambient"/"diffuse"/"specular"/"transmit" sub-shader keywords).
const (
	SlotAmbient  = slotAmbient
	SlotDiffuse  = slotDiffuse
	SlotSpecular = slotSpecular
	SlotTransmit = slotTransmit
)

// AddShader assigns one of Phong's four named slots, rejecting a second
// value for the same slot the way Phong::addShader's switch does.
func (p *Phong) AddShader(sh Shader, slot int) error {
	if sh == nil {
		return rerr.ErrNoShader
	}
	switch slot {
	case slotAmbient:
		if p.Ambient != nil {
			return rerr.ErrDuplicateSlot
		}
		p.Ambient = sh
	case slotDiffuse:
		if p.Diffuse != nil {
			return rerr.ErrDuplicateSlot
		}
		p.Diffuse = sh
	case slotSpecular:
		if p.Specular != nil {
			return rerr.ErrDuplicateSlot
		}
		p.Specular = sh
	case slotTransmit:
		if p.Transmit != nil {
			return rerr.ErrDuplicateSlot
		}
		p.Transmit = sh
	default:
		return rerr.ErrDuplicateSlot
	}
	return nil
}

// Init fills any unset slot with its scene-provided or gray-color
// default and inits every slot's own shader tree, mirroring Phong::init.
func (p *Phong) Init(tr Tracer) error {
	if p.Ambient == nil {
		p.Ambient = tr.Ambient()
	} else if err := initShader(p.Ambient, tr); err != nil {
		return err
	}

	if p.Diffuse == nil {
		p.Diffuse = NewSolid(color.New(.5, .5, .5))
	}
	if err := initShader(p.Diffuse, tr); err != nil {
		return err
	}

	if p.Specular == nil {
		p.Specular = NewSolid(color.Black)
	}
	if err := initShader(p.Specular, tr); err != nil {
		return err
	}

	if p.Transmit == nil {
		p.Transmit = NewSolid(color.Black)
	}
	return initShader(p.Transmit, tr)
}

func initShader(sh Shader, tr Tracer) error {
	if i, ok := sh.(Initer); ok {
		return i.Init(tr)
	}
	return nil
}

func (p *Phong) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	blackVal := tr.MinRayValue()

	colorD := p.Diffuse.Evaluate(js, tr, r, eh)
	colorS := p.Specular.Evaluate(js, tr, r, eh)
	isSpecular := !colorS.IsBlack(blackVal)

	var reflect lin.V3
	if isSpecular {
		reflect.Reflect(&r.Dir, &eh.Normal)
	}

	result := p.Ambient.Evaluate(js, tr, r, eh).Mul(colorD)

	for _, lt := range tr.Lights() {
		lr, ok := lt.Luminate(js, tr, r, eh)
		if !ok {
			continue
		}

		result = result.Add(lr.Energy.Mul(colorD).Scale(lr.Angle))

		if isSpecular {
			angle := reflect.Dot(&lr.Dir)
			if angle > 0 {
				result = result.Add(lr.Energy.Mul(colorS).Scale(math.Pow(angle, p.Exp)))
			}
		}
	}

	if isSpecular && r.Depth < tr.MaxRayDepth() {
		reflectRay := &ray.Ray{
			Base:      eh.GlobalPt,
			Dir:       reflect,
			MinLength: tr.RayMoveout(),
			MaxLength: lin.Large,
			Time:      r.Time,
			Depth:     r.Depth + 1,
		}
		result = result.Add(tr.TraceRay(js, reflectRay).Mul(colorS))
	}

	return result
}
