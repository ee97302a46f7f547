// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package imageio

import (
	"encoding/binary"
	"io"
)

// EncodeBMP writes fb to w as a 24-bit uncompressed Windows BMP: BGR
// pixel order, rows padded to a 4-byte multiple, written bottom-up.
// Always opaque (BMP carries no alpha channel here); an alpha-carrying
// Framebuffer just drops its A channel.
func EncodeBMP(w io.Writer, fb *Framebuffer) error {
	rowSize := (fb.Width*3 + 3) &^ 3 // round up to a 4-byte multiple
	pixelDataSize := rowSize * fb.Height
	fileSize := 14 + 40 + pixelDataSize

	var hdr [54]byte
	// BITMAPFILEHEADER (14 bytes)
	hdr[0], hdr[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(hdr[2:], uint32(fileSize))
	binary.LittleEndian.PutUint32(hdr[10:], 54) // pixel data offset

	// BITMAPINFOHEADER (40 bytes)
	binary.LittleEndian.PutUint32(hdr[14:], 40)
	binary.LittleEndian.PutUint32(hdr[18:], uint32(fb.Width))
	binary.LittleEndian.PutUint32(hdr[22:], uint32(fb.Height))
	binary.LittleEndian.PutUint16(hdr[26:], 1)  // planes
	binary.LittleEndian.PutUint16(hdr[28:], 24) // bits per pixel
	// compression (0, BI_RGB), resolution and palette fields are left
	// zero -- valid for BI_RGB per the format spec; the image size field
	// carries the pixel data length.
	binary.LittleEndian.PutUint32(hdr[34:], uint32(pixelDataSize))

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	row := make([]byte, rowSize)
	for y := fb.Height - 1; y >= 0; y-- { // bottom-up
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y).Clamp01()
			off := x * 3
			row[off] = clamp255(c.B)
			row[off+1] = clamp255(c.G)
			row[off+2] = clamp255(c.R)
		}
		for i := fb.Width * 3; i < rowSize; i++ {
			row[i] = 0
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
