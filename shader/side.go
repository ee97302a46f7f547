// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package shader

import (
	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
)

// Side dispatches to one of an ordered list of sub-shaders by the hit's
// side/face index, wrapping negative-safe modulo the way a cube or cone's
// side indices are expected to be used: children[side mod len(children)].
type Side struct {
	prim.ShaderBase
	Children []Shader
}

// NewSide returns a Side shader with the given sub-shaders.
func NewSide(children ...Shader) *Side { return &Side{Children: children} }

// AddShader appends a sub-shader slot; mirrors ShaderSide::addShader's
// unconditional append (no flag, no duplicate rejection -- each call adds
// one more indexed face shader).
func (s *Side) AddShader(sh Shader) error {
	if sh == nil {
		return rerr.ErrNoShader
	}
	s.Children = append(s.Children, sh)
	return nil
}

func (s *Side) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	n := len(s.Children)
	x := eh.Side % n
	if x < 0 {
		x += n
	}
	return s.Children[x].Evaluate(js, tr, r, eh)
}
