// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package shader

import (
	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
)

// Occlusion is the ambient-occlusion shader: it casts Samples shadow
// rays into the hemisphere around the hit normal within Radius, and
// scales its child's evaluation by the fraction that reach open sky
// un-occluded. A fully enclosed point (lit == 0) evaluates to black
// without even asking the child to run.
type Occlusion struct {
	prim.ShaderBase
	Child   Shader
	Radius  float64
	Samples int
}

// NewOcclusion returns an Occlusion shader with reasonable defaults.
func NewOcclusion(child Shader) *Occlusion {
	return &Occlusion{Child: child, Radius: .1, Samples: 4}
}

// SetChild assigns the delegate shader once.
func (o *Occlusion) SetChild(sh Shader) error {
	if sh == nil {
		return rerr.ErrNoShader
	}
	if o.Child != nil {
		return rerr.ErrDuplicateSlot
	}
	o.Child = sh
	return nil
}

func (o *Occlusion) Init(tr Tracer) error {
	if o.Child == nil {
		return rerr.ErrNoChildren
	}
	return initShader(o.Child, tr)
}

func (o *Occlusion) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	sray := &ray.Ray{
		Base:      eh.GlobalPt,
		MinLength: tr.RayMoveout(),
		MaxLength: o.Radius,
		Time:      r.Time,
	}

	lit := 0
	for i := 0; i < o.Samples; i++ {
		sray.Dir = js.RandHemisphereDir(eh.Normal)
		if !tr.CastShadowRay(js, sray) {
			lit++
		}
	}

	if lit == 0 {
		return color.Black
	}

	return o.Child.Evaluate(js, tr, r, eh).Scale(float64(lit) / float64(o.Samples))
}
