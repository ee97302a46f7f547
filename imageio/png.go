// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package imageio

import (
	stdimage "image"
	"image/color"
	"image/png"
	"io"
)

// EncodePNG writes fb to w as a top-down PNG, RGBA if fb carries alpha
// or RGB (opaque alpha) otherwise, via stdlib image/png over an
// image.NRGBA built from the framebuffer. The encoder-by-extension
// table (the encoders map in encode.go) follows the same pluggable-registration
// shape golang.org/x/image's own format packages use (each registers
// itself with image.RegisterFormat); this module registers "png" and
// "bmp" the same way so a caller can dispatch purely off a file
// extension without a type switch.
func EncodePNG(w io.Writer, fb *Framebuffer) error {
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y).Clamp01()
			img.SetNRGBA(x, y, color.NRGBA{
				R: clamp255(c.R), G: clamp255(c.G), B: clamp255(c.B), A: clamp255(c.A),
			})
		}
	}
	return png.Encode(w, img)
}
