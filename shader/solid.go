// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package shader

import (
	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
)

// Solid is a constant-color shader: every hit evaluates to the same
// value regardless of position, normal, or side.
type Solid struct {
	prim.ShaderBase
	Color color.Color
}

// NewSolid returns a Solid shader of the given color.
func NewSolid(c color.Color) *Solid { return &Solid{Color: c} }

func (s *Solid) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	return s.Color
}
