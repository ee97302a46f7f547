// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package shader

import (
	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/noise"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
)

// Noise perturbs a hit's Map.X by scaled classical Perlin noise sampled
// at the hit's own-transformed map coordinate, then delegates to its
// child with the perturbed map.
type Noise struct {
	prim.ShaderBase
	Trans geom.Transform
	Child Shader
	Value float64
}

// NewNoise returns a Noise shader with a default scale of 1.
func NewNoise(child Shader) *Noise {
	n := &Noise{Child: child, Value: 1.0}
	n.Trans.Clear()
	return n
}

// SetChild assigns the delegate shader once.
func (n *Noise) SetChild(sh Shader) error {
	if sh == nil {
		return rerr.ErrNoShader
	}
	if n.Child != nil {
		return rerr.ErrDuplicateSlot
	}
	n.Child = sh
	return nil
}

func (n *Noise) Init(tr Tracer) error {
	if n.Child == nil {
		return rerr.ErrNoChildren
	}
	if err := n.Trans.Init(nil); err != nil {
		return err
	}
	return initShader(n.Child, tr)
}

func (n *Noise) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	m := n.Trans.PointLocalToGlobal(&eh.Map)
	eh2 := *eh
	eh2.Map.X += noise.Noise(m.X, m.Y, m.Z) * n.Value
	return n.Child.Evaluate(js, tr, r, &eh2)
}
