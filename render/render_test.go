// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"testing"
	"time"

	"github.com/hirdrac/rend/color"
	"github.com/hirdrac/rend/internal/rerr"
	"github.com/hirdrac/rend/math/lin"
	"github.com/hirdrac/rend/prim"
	"github.com/hirdrac/rend/scene"
	"github.com/hirdrac/rend/shader"
)

type fakeFB struct {
	w, h int
	px   []color.Color
}

func newFakeFB(w, h int) *fakeFB {
	return &fakeFB{w: w, h: h, px: make([]color.Color, w*h)}
}

func (f *fakeFB) Plot(x, y int, c color.Color) {
	f.px[y*f.w+x] = c
}

func (f *fakeFB) At(x, y int) color.Color { return f.px[y*f.w+x] }

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.New()
	s.ImageWidth, s.ImageHeight = 16, 16
	s.RegionMin, s.RegionMax = [2]int{0, 0}, [2]int{15, 15}
	sph := prim.NewSphere()
	sph.Shader = shader.NewSolid(color.New(1, 0, 0))
	if err := s.AddObject(sph); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func TestNewCameraRejectsDegenerateVup(t *testing.T) {
	s := scene.New()
	// default Eye={Z:1}, Coi={0,0,0}, so the view direction is -Z; an up
	// vector parallel to that (here, +Z) leaves no screen-space basis.
	s.Vup = lin.V3{Z: 1}
	if _, err := NewCamera(s); err != rerr.ErrDegenerateVup {
		t.Fatalf("got %v, want ErrDegenerateVup", err)
	}
}

func TestPoolRendersEveryPixel(t *testing.T) {
	s := testScene(t)
	cam, err := NewCamera(s)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	fb := newFakeFB(16, 16)

	p := NewPool(cam, s, fb)
	p.Start(2)
	if n := p.WaitForJobs(5 * time.Second); n != 0 {
		t.Fatalf("WaitForJobs: %d tasks still pending", n)
	}
	p.Stop()

	var sawHit bool
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if fb.At(x, y) == (color.Color{}) {
				t.Errorf("pixel (%d,%d) was never plotted", x, y)
			}
			if fb.At(x, y) != color.Black {
				sawHit = true
			}
		}
	}
	if !sawHit {
		t.Error("expected at least one pixel to hit the sphere's red shader")
	}
	if p.Stats.Rays == 0 {
		t.Error("expected Pool.Stats to accumulate traced-ray counts from workers")
	}
}

func TestPoolIsDeterministicAcrossWorkerCounts(t *testing.T) {
	s := testScene(t)
	cam, err := NewCamera(s)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	render := func(jobs int) *fakeFB {
		fb := newFakeFB(16, 16)
		p := NewPool(cam, s, fb)
		p.Start(jobs)
		p.WaitForJobs(5 * time.Second)
		p.Stop()
		return fb
	}

	one := render(1)
	eight := render(8)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if one.At(x, y) != eight.At(x, y) {
				t.Fatalf("pixel (%d,%d) differs between 1 and 8 workers: %v vs %v", x, y, one.At(x, y), eight.At(x, y))
			}
		}
	}
}
