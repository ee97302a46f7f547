// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package render turns an initialized scene into pixel colors: Camera
// builds the view/sample geometry a scene's eye/coi/vup/fov describe,
// and Pool drives a goroutine-per-job task queue that hands each worker
// image-row strips to shade through Camera.Render.
package render

import (
	"math"
	"math/rand"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/ray"
	"github.com/hirdrac/rend/scene"
	"github.com/hirdrac/rend/shader"
)

// Plotter receives the final, sample-averaged color for one pixel. The
// imageio package's Framebuffer satisfies this; Camera never imports
// imageio directly, the same forward-interface shape shader.Tracer uses
// to avoid a dependency on package scene.
type Plotter interface {
	Plot(x, y int, c color.Color)
}

// Camera holds the view/sample geometry Init computes once from a
// scene's camera and sampling fields, and the image/jitter/aperture
// settings Render reads per pixel.
type Camera struct {
	imageWidth, imageHeight int
	regionMin, regionMax    [2]int

	eye                        lin.V3
	vnormal, vcenter           lin.V3
	pixelX, pixelY             lin.V3
	apertureX, apertureY       lin.V3
	aperture, jitter           float64
	jitterScaleX, jitterScaleY float64
	samplesPerJitter           int
	samples                    []lin.V2
}

// NewCamera computes a Camera's view vectors and sample grid from s.
// Returns rerr.ErrDegenerateVup if the scene's up vector is parallel to
// its view direction, so no screen-space basis can be built.
func NewCamera(s *scene.Scene) (*Camera, error) {
	vnormal := lin.V3{}
	vnormal.Sub(&s.Coi, &s.Eye)
	vnormal.Unit()

	vup := s.Vup
	vup.Unit()

	d := vnormal.Dot(&vup)
	if lin.Aeq(math.Abs(d), 1) {
		return nil, rerr.ErrDegenerateVup
	}

	vtop := lin.V3{X: vup.X - vnormal.X*d, Y: vup.Y - vnormal.Y*d, Z: vup.Z - vnormal.Z*d}
	vtop.Unit()
	vside := lin.V3{}
	vside.Cross(&vnormal, &vtop)
	vside.Unit()

	focalLen := 1.0
	if s.Aperture > lin.VerySmall {
		focalLen = s.Focus
	}
	imgW, imgH := float64(s.ImageWidth), float64(s.ImageHeight)
	ss := math.Tan(lin.Rad(s.Fov*.5)) * focalLen
	screenWidth := ss * (imgW / imgH)

	c := &Camera{
		imageWidth:  s.ImageWidth,
		imageHeight: s.ImageHeight,
		regionMin:   s.RegionMin,
		regionMax:   s.RegionMax,
		eye:         s.Eye,
		vnormal:     vnormal,
		aperture:    s.Aperture,
		jitter:      s.Jitter,
	}
	c.pixelX.Scale(&vside, screenWidth/(imgW*.5))
	c.pixelY.Scale(&vtop, ss/(imgH*.5))
	c.vcenter.Scale(&vnormal, focalLen)
	c.vcenter.Add(&c.vcenter, &s.Eye)
	c.apertureX.Scale(&vside, s.Aperture)
	c.apertureY.Scale(&vtop, s.Aperture)

	sampleX, sampleY := s.SampleX, s.SampleY
	if sampleX < 1 {
		sampleX = 1
	}
	if sampleY < 1 {
		sampleY = 1
	}
	c.samples = make([]lin.V2, 0, sampleX*sampleY)
	for y := 0; y < sampleY; y++ {
		for x := 0; x < sampleX; x++ {
			c.samples = append(c.samples, lin.V2{
				X: (float64(x) + .5) / float64(sampleX),
				Y: (float64(y) + .5) / float64(sampleY),
			})
		}
	}

	c.jitterScaleX = s.Jitter / float64(sampleX)
	c.jitterScaleY = s.Jitter / float64(sampleY)
	c.samplesPerJitter = 1
	if s.Jitter > lin.VerySmall || s.Aperture > lin.VerySmall {
		c.samplesPerJitter = s.Samples
		if c.samplesPerJitter < 1 {
			c.samplesPerJitter = 1
		}
	}
	return c, nil
}

// RegionMin and RegionMax report the inclusive pixel region Pool should
// split into tasks, and ImageWidth/ImageHeight the full image size those
// tasks are bounded by.
func (c *Camera) RegionMin() [2]int { return c.regionMin }
func (c *Camera) RegionMax() [2]int { return c.regionMax }
func (c *Camera) ImageWidth() int   { return c.imageWidth }
func (c *Camera) ImageHeight() int  { return c.imageHeight }

// Render shades every pixel in [minX,maxX]x[minY,maxY] (inclusive),
// plotting the sample-averaged color of each into fb. js is the calling
// worker's thread-local scratch: its Rng seeds jitter/aperture sampling
// and its Cache/Stats feed every traced ray.
func (c *Camera) Render(js *shader.JobState, tracer shader.Tracer, fb Plotter, minX, minY, maxX, maxY int) {
	halfWidth := float64(c.imageWidth) * .5
	halfHeight := float64(c.imageHeight) * .5

	useJitter := c.jitter > lin.VerySmall
	useAperture := c.aperture > lin.VerySmall
	samplesInv := 1.0 / float64(len(c.samples)*c.samplesPerJitter)

	for y := minY; y <= maxY; y++ {
		yy := float64(y) - halfHeight
		for x := minX; x <= maxX; x++ {
			xx := float64(x) - halfWidth

			sum := color.Black
			for i := 0; i < c.samplesPerJitter; i++ {
				for _, pt := range c.samples {
					sx, sy := xx+pt.X, yy+pt.Y
					if useJitter {
						sx += (js.Rng.Float64() - .5) * c.jitterScaleX
						sy += (js.Rng.Float64() - .5) * c.jitterScaleY
					}

					var px, py, dir lin.V3
					px.Scale(&c.pixelX, sx)
					py.Scale(&c.pixelY, sy)
					dir.Add(&px, &py)

					base := c.eye
					if useAperture {
						rx, ry := diskSample(js.Rng, .5)
						var ax, ay, offset lin.V3
						ax.Scale(&c.apertureX, rx)
						ay.Scale(&c.apertureY, ry)
						offset.Add(&ax, &ay)
						base.Add(&base, &offset)

						var toCenter lin.V3
						toCenter.Sub(&c.vcenter, &base)
						dir.Add(&dir, &toCenter)
					} else {
						dir.Add(&dir, &c.vnormal)
					}
					dir.Unit()

					r := &ray.Ray{Base: base, Dir: dir, MinLength: 0, MaxLength: lin.Large}
					sum = sum.Add(tracer.TraceRay(js, r))
				}
			}

			fb.Plot(x, y, sum.Scale(samplesInv))
		}
	}
}

// diskSample rejection-samples a point uniformly within a disk of the
// given radius.
func diskSample(rng *rand.Rand, radius float64) (x, y float64) {
	r2 := radius * radius
	for {
		x = (rng.Float64()*2 - 1) * radius
		y = (rng.Float64()*2 - 1) * radius
		if x*x+y*y <= r2 {
			return x, y
		}
	}
}
