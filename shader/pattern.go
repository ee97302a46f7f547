// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package shader

import (
	"math"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/geom"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/ray"
)

// PatternShader is the shared base of the repeating-pattern family
// (Stripe, Checkerboard, Checkerboard3D, Ring, SquareRing, Pinwheel): an
// own transform that maps a hit's Map into pattern space, an ordered
// child-shader list dispatched on by a per-shape discriminant, and an
// optional border shader tested before the discriminant dispatch.
type PatternShader struct {
	prim.ShaderBase
	Trans       geom.Transform
	Children    []Shader
	Border      Shader
	Borderwidth float64
}

// NewPatternShader returns a PatternShader base with an identity
// transform and a default borderwidth of .05.
func NewPatternShader(children ...Shader) PatternShader {
	p := PatternShader{Children: children, Borderwidth: .05}
	p.Trans.Clear()
	return p
}

// AddShader appends a pattern child, or sets the border shader once.
func (p *PatternShader) AddShader(sh Shader, border bool) error {
	if sh == nil {
		return rerr.ErrNoShader
	}
	if border {
		if p.Border != nil {
			return rerr.ErrDuplicateSlot
		}
		p.Border = sh
		return nil
	}
	p.Children = append(p.Children, sh)
	return nil
}

// Init stands up Trans as its own root and inits the border and children
// shaders in turn, failing if there are no children at all.
func (p *PatternShader) Init(tr Tracer) error {
	if len(p.Children) == 0 {
		return rerr.ErrNoChildren
	}
	if err := p.Trans.Init(nil); err != nil {
		return err
	}
	if p.Border != nil {
		if i, ok := p.Border.(Initer); ok {
			if err := i.Init(tr); err != nil {
				return err
			}
		}
	}
	for _, c := range p.Children {
		if i, ok := c.(Initer); ok {
			if err := i.Init(tr); err != nil {
				return err
			}
		}
	}
	return nil
}

// child returns Children[i mod len(Children)], wrapping negative indices.
func (p *PatternShader) child(i int) Shader {
	n := len(p.Children)
	c := i % n
	if c < 0 {
		c += n
	}
	return p.Children[c]
}

func (p *PatternShader) halfBorder() float64 { return p.Borderwidth * .5 }

// onGridLine reports whether v sits within half a borderwidth of the
// nearest integer grid line -- the scalar border test every pattern
// shader but Pinwheel shares.
func onGridLine(v, halfBW float64) bool {
	return math.Abs(v-math.Floor(v+halfBW)) < halfBW
}

// **** Stripe ****

// Stripe repeats sub-shaders along the pattern-space X axis.
type Stripe struct{ PatternShader }

// NewStripe returns a Stripe pattern shader with the given children.
func NewStripe(children ...Shader) *Stripe {
	return &Stripe{PatternShader: NewPatternShader(children...)}
}

func (s *Stripe) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	d := s.Trans.PointLocalToGlobal(&eh.Map).X

	if s.Border != nil && onGridLine(d, s.halfBorder()) {
		return s.Border.Evaluate(js, tr, r, eh)
	}
	c := int(math.Floor(d + lin.VerySmall))
	return s.child(c).Evaluate(js, tr, r, eh)
}

// **** Checkerboard ****

// Checkerboard is the classic 2D checkerboard over pattern-space X,Y.
type Checkerboard struct{ PatternShader }

func NewCheckerboard(children ...Shader) *Checkerboard {
	return &Checkerboard{PatternShader: NewPatternShader(children...)}
}

func (s *Checkerboard) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	m := s.Trans.PointLocalToGlobal(&eh.Map)
	if s.Border != nil {
		hb := s.halfBorder()
		if onGridLine(m.X, hb) || onGridLine(m.Y, hb) {
			return s.Border.Evaluate(js, tr, r, eh)
		}
	}
	c := int(math.Floor(m.X+lin.VerySmall) + math.Floor(m.Y+lin.VerySmall))
	return s.child(c).Evaluate(js, tr, r, eh)
}

// **** Checkerboard3D ****

// Checkerboard3D extends Checkerboard's parity test into pattern-space Z.
type Checkerboard3D struct{ PatternShader }

func NewCheckerboard3D(children ...Shader) *Checkerboard3D {
	return &Checkerboard3D{PatternShader: NewPatternShader(children...)}
}

func (s *Checkerboard3D) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	m := s.Trans.PointLocalToGlobal(&eh.Map)
	if s.Border != nil {
		hb := s.halfBorder()
		if onGridLine(m.X, hb) || onGridLine(m.Y, hb) || onGridLine(m.Z, hb) {
			return s.Border.Evaluate(js, tr, r, eh)
		}
	}
	c := int(math.Floor(m.X+lin.VerySmall) + math.Floor(m.Y+lin.VerySmall) + math.Floor(m.Z+lin.VerySmall))
	return s.child(c).Evaluate(js, tr, r, eh)
}

// **** Ring ****

// Ring repeats sub-shaders in concentric bands radiating from the
// pattern-space origin.
type Ring struct {
	PatternShader
	Offset float64
}

func NewRing(children ...Shader) *Ring {
	return &Ring{PatternShader: NewPatternShader(children...)}
}

func (s *Ring) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	m := s.Trans.PointLocalToGlobal(&eh.Map)
	d := math.Sqrt(m.X*m.X+m.Y*m.Y) + s.Offset

	if s.Border != nil {
		hb := s.halfBorder()
		if (d-s.Offset) > hb && onGridLine(d, hb) {
			return s.Border.Evaluate(js, tr, r, eh)
		}
	}
	return s.child(int(math.Floor(d))).Evaluate(js, tr, r, eh)
}

// **** SquareRing ****

// SquareRing is Ring's Chebyshev-distance (square) analog.
type SquareRing struct {
	PatternShader
	Offset float64
}

func NewSquareRing(children ...Shader) *SquareRing {
	return &SquareRing{PatternShader: NewPatternShader(children...)}
}

func (s *SquareRing) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	m := s.Trans.PointLocalToGlobal(&eh.Map)
	d := math.Max(math.Abs(m.X), math.Abs(m.Y)) + s.Offset

	if s.Border != nil {
		hb := s.halfBorder()
		if (d-s.Offset) > hb && onGridLine(d, hb) {
			return s.Border.Evaluate(js, tr, r, eh)
		}
	}
	return s.child(int(math.Floor(d))).Evaluate(js, tr, r, eh)
}

// **** Pinwheel ****

// Pinwheel divides pattern space into angular sectors around the origin,
// optionally spun by radius so the sectors curve outward.
type Pinwheel struct {
	PatternShader
	Spin    float64
	Sectors int
}

// NewPinwheel returns a Pinwheel with a default of 6 sectors.
func NewPinwheel(children ...Shader) *Pinwheel {
	return &Pinwheel{PatternShader: NewPatternShader(children...), Sectors: 6}
}

func (s *Pinwheel) Evaluate(js *JobState, tr Tracer, r *ray.Ray, eh *EvaluatedHit) color.Color {
	m := s.Trans.PointLocalToGlobal(&eh.Map)
	radius := math.Sqrt(m.X*m.X + m.Y*m.Y)
	spinVal := s.Spin * radius * lin.PI * .25
	angle := math.Atan2(m.Y, m.X) + spinVal

	sect := float64(s.Sectors) * (angle / lin.PIx2)

	if s.Border != nil {
		edgeAngle := (math.Floor(sect+.5)/float64(s.Sectors))*lin.PIx2 - spinVal
		edgeX := radius * math.Cos(edgeAngle)
		edgeY := radius * math.Sin(edgeAngle)
		dx, dy := edgeX-m.X, edgeY-m.Y
		hb := s.halfBorder()
		if (dx*dx + dy*dy) < hb*hb {
			return s.Border.Evaluate(js, tr, r, eh)
		}
	}

	return s.child(int(math.Floor(sect))).Evaluate(js, tr, r, eh)
}
