// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package imageio is the render core's opaque pixel surface: a
// Framebuffer the render package's Camera/Pool write into through the
// render.Plotter interface, plus BMP/PNG encoders that turn it into an
// output file. Neither the render core nor the trace engine imports
// this package; a Framebuffer satisfies render.Plotter structurally,
// the same forward-interface shape shader.Tracer uses to keep package
// scene out of package shader.
package imageio

import (
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/math/lin"
)

// cacheLine is the row-stride alignment Framebuffer pads to, so two
// adjacent scanlines a different worker goroutine might be writing
// concurrently (disjoint tile regions, but possibly abutting rows)
// never share a cache line. golang.org/x/sys/cpu.CacheLinePad's own
// size is the portable per-arch cache line size; reading it via
// unsafe.Sizeof avoids hardcoding 64 for every platform the way
// shader.JobState's own CacheLinePad field already does.
var cacheLine = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// Framebuffer is a single aligned float array of RGB or RGBA channels,
// row-padded: one flat []float64 of Height scanlines, each Stride
// floats wide (Stride >= Width*channels, rounded up so a row's byte
// length is a cache-line multiple), holding linear (not yet
// gamma-corrected or clamped) color values until an encoder reads them.
type Framebuffer struct {
	Width, Height int
	Alpha         bool // true: RGBA (4 channels); false: RGB (3 channels)
	Stride        int  // floats per row, >= Width*Channels()
	Pix           []float64
}

// NewFramebuffer allocates a Framebuffer of the given size. alpha
// selects RGBA (4 channels, needed for PNG's alpha-compositing use
// cases) over plain RGB (3 channels, all a 24-bit uncompressed BMP
// needs).
func NewFramebuffer(width, height int, alpha bool) *Framebuffer {
	f := &Framebuffer{Width: width, Height: height, Alpha: alpha}
	f.Stride = paddedStride(width, f.Channels())
	f.Pix = make([]float64, f.Stride*height)
	return f
}

// Channels reports 4 for an alpha-carrying Framebuffer, 3 otherwise.
func (f *Framebuffer) Channels() int {
	if f.Alpha {
		return 4
	}
	return 3
}

// paddedStride rounds width*channels floats up so the row's byte length
// is a multiple of cacheLine bytes.
func paddedStride(width, channels int) int {
	const floatBytes = 8
	rowBytes := width * channels * floatBytes
	if rowBytes%cacheLine != 0 {
		rowBytes += cacheLine - rowBytes%cacheLine
	}
	return rowBytes / floatBytes
}

// Plot implements render.Plotter: stores c at pixel (x, y), silently
// ignoring an out-of-bounds coordinate (a worker's tile region is
// always clamped to the camera's render region, so this should never
// fire in practice; it's a defensive bound, not a reachable path).
func (f *Framebuffer) Plot(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	off := y*f.Stride + x*f.Channels()
	f.Pix[off] = c.R
	f.Pix[off+1] = c.G
	f.Pix[off+2] = c.B
	if f.Alpha {
		f.Pix[off+3] = c.A
	}
}

// At returns the color stored at (x, y).
func (f *Framebuffer) At(x, y int) color.Color {
	off := y*f.Stride + x*f.Channels()
	c := color.Color{R: f.Pix[off], G: f.Pix[off+1], B: f.Pix[off+2], A: 1}
	if f.Alpha {
		c.A = f.Pix[off+3]
	}
	return c
}

// clamp255 converts a linear [0,1] channel value to an 8-bit sample.
func clamp255(v float64) byte {
	return byte(lin.Clamp(v, 0, 1)*255.0 + 0.5)
}
