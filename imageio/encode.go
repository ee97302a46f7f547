// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package imageio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Encoder writes a Framebuffer in one concrete format.
type Encoder func(w io.Writer, fb *Framebuffer) error

// encoders is a pluggable by-extension table, the same registration
// shape golang.org/x/image's format packages use (each calls
// image.RegisterFormat in an init so image.Decode can dispatch on
// sniffed magic bytes); this table dispatches on file extension
// instead, since the output format is chosen by the destination path's
// extension rather than by sniffing.
var encoders = map[string]Encoder{
	".png": EncodePNG,
	".bmp": EncodeBMP,
}

// DefaultExt is returned by ExtOf when a path carries no recognized
// extension at all.
const DefaultExt = ".png"

// RegisterEncoder adds or replaces the encoder used for ext (including
// the leading dot, e.g. ".tga"). Exported so a caller embedding this
// module can add a format without forking imageio itself.
func RegisterEncoder(ext string, enc Encoder) {
	encoders[strings.ToLower(ext)] = enc
}

// ExtOf returns path's lowercased extension, or DefaultExt if path has
// none.
func ExtOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return DefaultExt
	}
	return ext
}

// Save writes fb to path, selecting PNG or BMP by path's extension.
// Returns an error wrapping the unrecognized extension if no encoder is
// registered for it, or any I/O failure opening/writing the file.
func Save(path string, fb *Framebuffer) error {
	enc, ok := encoders[ExtOf(path)]
	if !ok {
		return fmt.Errorf("imageio: no encoder registered for extension %q", ExtOf(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	if err := enc(f, fb); err != nil {
		f.Close()
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return f.Close()
}
