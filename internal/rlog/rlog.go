// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rlog is rend's coarse-grained lifecycle logger: scene load,
// job-pool start/stop, and the end-of-render statistics line. It never
// sits on a hot path -- no per-ray or per-pixel logging, just the
// standard log package used sparingly at state transitions.
package rlog

import (
	"io"
	"log"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hirdrac/rend/stats"
)

// Std is the package-level logger every rend component logs through,
// wrapping os.Stderr the way the standard library's default logger
// does.
var Std = log.New(os.Stderr, "", log.LstdFlags)

// SetOutput redirects Std's destination, for example so a test can
// capture log output.
func SetOutput(w io.Writer) { Std.SetOutput(w) }

// printer formats the end-of-render report with locale-aware thousands
// separators (golang.org/x/text/message), since the tried/hit counters
// a many-primitive scene accumulates read better grouped than as a
// single long digit run.
var printer = message.NewPrinter(language.English)

// SceneLoaded logs a scene file's load, the object/light/shader
// inventory Scene.Init counted, in one line.
func SceneLoaded(path string, objects, lights, shaders, bounds int) {
	Std.Printf("loaded %s: %d objects, %d lights, %d shaders, %d bounds",
		path, objects, lights, shaders, bounds)
}

// JobsStarted logs a job pool starting n workers over a width x height
// image.
func JobsStarted(n, width, height int) {
	Std.Printf("render started: %d workers, %dx%d image", n, width, height)
}

// JobsStopped logs a job pool's final statistics report, using
// x/text/message's locale-aware integer formatting for the
// potentially-large tried/hit counts a many-primitive scene accumulates.
func JobsStopped(elapsedMs int64, s *stats.Info) {
	printer.Fprintf(Std.Writer(), "render finished in %dms: %d rays (%d hit), %d shadow rays (%d hit), %d bound tests (%d hit)\n",
		elapsedMs, s.Rays, s.RaysHit, s.ShadowRays, s.ShadowRaysHit, s.Bound, s.BoundHit)
}

// SaveFailed logs an image-save I/O failure before the caller returns a
// non-zero exit code.
func SaveFailed(path string, err error) {
	Std.Printf("failed to save %s: %s", path, err)
}
