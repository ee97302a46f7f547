// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package light

import (
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/shader"
)

// PointLight radiates from a single position, placed by its own
// transform. Radius/Samples describe a soft-shadow area-sampling
// extension Luminate never actually draws from -- they're normalized in
// Init and carried here for scene-file compatibility, but a single
// Luminate call still casts exactly one shadow ray.
type PointLight struct {
	Base
	Trans    geom.Transform
	Radius   float64
	Samples  int
	finalPos lin.V3
}

// NewPointLight returns a PointLight with a default of one sample at
// zero radius.
func NewPointLight() *PointLight {
	p := &PointLight{Base: Base{Dir: lin.V3{Z: 1}}, Samples: 1}
	p.Trans.Clear()
	return p
}

func (p *PointLight) Init(tr shader.Tracer) error {
	if err := p.Trans.Init(nil); err != nil {
		return err
	}
	var origin lin.V3
	p.finalPos = *p.Trans.PointLocalToGlobal(&origin)

	if p.Radius <= lin.VerySmall {
		p.Samples = 1
	} else if p.Samples < 1 {
		p.Samples = 1
	}
	return nil
}

func (p *PointLight) Luminate(js *shader.JobState, tr shader.Tracer, r *ray.Ray, eh *shader.EvaluatedHit) (shader.LightResult, bool) {
	var dir lin.V3
	dir.Sub(&p.finalPos, &eh.GlobalPt)
	length := dir.Len()
	dir.Div(length)

	angle := eh.Normal.Dot(&dir)
	if angle <= lin.VerySmall {
		return shader.LightResult{}, false
	}

	if tr.ShadowEnabled() {
		sray := &ray.Ray{
			Base:      eh.GlobalPt,
			Dir:       dir,
			MinLength: tr.RayMoveout(),
			MaxLength: length,
		}
		if tr.CastShadowRay(js, sray) {
			return shader.LightResult{}, false
		}
	}

	return shader.LightResult{
		Dir:      dir,
		Distance: length,
		Angle:    angle,
		Energy:   p.Energy.Evaluate(js, tr, r, eh),
	}, true
}
