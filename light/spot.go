// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package light

import (
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/shader"
)

// SpotLight is a positioned, aimed light with a cone falloff. Its
// Luminate is an intentional always-miss stub: the cone-angle/falloff
// math isn't implemented yet. A scene containing a spotlight still
// parses and renders, it just never contributes light.
type SpotLight struct {
	Base
	Trans    geom.Transform
	finalPos lin.V3
	finalDir lin.V3
}

// NewSpotLight returns a SpotLight aimed along +Z.
func NewSpotLight() *SpotLight {
	s := &SpotLight{Base: Base{Dir: lin.V3{Z: 1}}}
	s.Trans.Clear()
	return s
}

func (s *SpotLight) Init(tr shader.Tracer) error {
	if err := s.Trans.Init(nil); err != nil {
		return err
	}
	var origin lin.V3
	s.finalPos = *s.Trans.PointLocalToGlobal(&origin)
	s.finalDir = *s.Trans.VectorLocalToGlobal(&s.Dir)
	return nil
}

func (s *SpotLight) Luminate(js *shader.JobState, tr shader.Tracer, r *ray.Ray, eh *shader.EvaluatedHit) (shader.LightResult, bool) {
	return shader.LightResult{}, false
}
