// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package light

import (
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/shader"
)

// Sun is a directional light: every hit sees the same incoming
// direction regardless of position, so no shadow-ray max length applies.
type Sun struct {
	Base
	finalDir lin.V3
}

// NewSun returns a Sun aimed along +Z by default.
func NewSun() *Sun {
	return &Sun{Base: Base{Dir: lin.V3{Z: 1}}}
}

// Init resolves Dir to a unit vector once; a Sun owns no transform.
func (s *Sun) Init(tr shader.Tracer) error {
	s.finalDir = s.Dir
	s.finalDir.Unit()
	return nil
}

func (s *Sun) Luminate(js *shader.JobState, tr shader.Tracer, r *ray.Ray, eh *shader.EvaluatedHit) (shader.LightResult, bool) {
	unitDir := lin.V3{X: -s.finalDir.X, Y: -s.finalDir.Y, Z: -s.finalDir.Z}
	angle := eh.Normal.Dot(&unitDir)
	if angle <= lin.VerySmall {
		return shader.LightResult{}, false
	}

	if tr.ShadowEnabled() {
		sray := &ray.Ray{
			Base:      eh.GlobalPt,
			Dir:       unitDir,
			MinLength: tr.RayMoveout(),
			MaxLength: lin.Large,
		}
		if tr.CastShadowRay(js, sray) {
			return shader.LightResult{}, false
		}
	}

	return shader.LightResult{
		Dir:      unitDir,
		Distance: lin.Large,
		Angle:    angle,
		Energy:   s.Energy.Evaluate(js, tr, r, eh),
	}, true
}
