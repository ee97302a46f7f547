// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package color provides the RGB(A) color type shaders and lights produce
// and combine. A spectral renderer might carry an arbitrary number of
// wavelengths per sample; this module sticks to plain RGB plus alpha.
package color

import "github.com/hirdrac/rend/math/lin"

// Color is a linear RGB color with alpha. Alpha is carried through shader
// composition for background compositing; the BVH/trace core itself is
// opaque-surfaces-only.
type Color struct {
	R, G, B, A float64
}

// Black is the zero-value color: fully transparent black.
var Black = Color{}

// White is full-intensity, fully opaque.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// New returns an opaque color with the given channel values.
func New(r, g, b float64) Color { return Color{R: r, G: g, B: b, A: 1} }

// Add returns the element-wise sum of c and o.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Mul returns the element-wise (Hadamard) product of c and o: how a
// surface's color modulates an incoming light color.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Scale returns c with every channel multiplied by s.
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Gray returns the luminance-weighted grayscale value of c's RGB channels.
func (c Color) Gray() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// IsBlack reports whether every RGB channel of c is within eps of zero.
// Alpha is not considered -- a fully transparent non-black color and an
// opaque black one both read as "no visible contribution" for different
// reasons, but IsBlack only answers the color question.
func (c Color) IsBlack(eps float64) bool {
	return c.R < eps && c.R > -eps &&
		c.G < eps && c.G > -eps &&
		c.B < eps && c.B > -eps
}

// Clamp01 returns c with every channel clamped to [0,1], as required just
// before a color is written to an 8-bit image channel.
func (c Color) Clamp01() Color {
	return Color{
		R: lin.Clamp(c.R, 0, 1),
		G: lin.Clamp(c.G, 0, 1),
		B: lin.Clamp(c.B, 0, 1),
		A: lin.Clamp(c.A, 0, 1),
	}
}
