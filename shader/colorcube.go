// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package shader

import (
	"math"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
)

// ColorCube is a diagnostic shader: it maps the hit's pattern coordinate
// through its own transform and reports the absolute value of each axis
// as the matching color channel, useful for visualizing a primitive's
// map parameterization directly.
type ColorCube struct {
	prim.ShaderBase
	Trans geom.Transform
}

// NewColorCube returns a ColorCube with an identity transform.
func NewColorCube() *ColorCube {
	c := &ColorCube{}
	c.Trans.Clear()
	return c
}

// Init stands Trans up as its own root transform (shader transforms never
// compose with an enclosing object or parent shader); ColorCube owns no
// children so there is nothing else to init.
func (c *ColorCube) Init(tr Tracer) error {
	return c.Trans.Init(nil)
}

func (c *ColorCube) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	m := c.Trans.PointLocalToGlobal(&eh.Map)
	return color.New(math.Abs(m.X), math.Abs(m.Y), math.Abs(m.Z))
}
