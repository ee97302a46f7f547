// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package light implements the concrete scene lights a Phong shader
// sums over: a directional Sun, a positional PointLight, and a SpotLight
// stub. Each satisfies shader.Light by reporting whether it reaches a
// hit point un-occluded and, if so, its direction/distance/angle/energy
// contribution.
package light

import (
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/shader"
)

// Base is embedded by every concrete light: the energy shader evaluated
// for its contribution, and the aim direction a directional/spot light
// reads before its own Init resolves it to global space.
type Base struct {
	Energy shader.Shader
	Dir    lin.V3
}

// SetEnergy assigns the light's energy shader once.
func (b *Base) SetEnergy(sh shader.Shader) error {
	if sh == nil {
		return rerr.ErrNoShader
	}
	if b.Energy != nil {
		return rerr.ErrDuplicateSlot
	}
	b.Energy = sh
	return nil
}

// GetEnergy returns the light's energy shader, or nil if none was set
// during parsing -- named apart from the Energy field since Go forbids a
// method and field sharing one name on the same type.
func (b *Base) GetEnergy() shader.Shader { return b.Energy }

// Initer is implemented by every concrete light; a scene's init walk
// calls it once after all lights and shaders are parsed.
type Initer interface {
	Init(tr shader.Tracer) error
}
