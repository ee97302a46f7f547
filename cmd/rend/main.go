// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command rend renders a scene file to an image file:
//
//	rend [options] [scene-file [image-file]]
//
// Options: -j[N]/--jobs[=N] sets worker parallelism (N defaults to the
// host's hardware concurrency hint when omitted), -i/--interactive
// enters a line-oriented REPL, -config <file> merges an optional YAML
// config on top of the defaults, -h/--help prints usage. Exit code 0 on
// success, non-zero on any load/init/render/save failure.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hirdrac/rend/imageio"
	"github.com/hirdrac/rend/internal/rlog"
	"github.com/hirdrac/rend/render"
	"github.com/hirdrac/rend/repl"
	"github.com/hirdrac/rend/sceneparser"
)

const usage = `usage: rend [options] [scene-file [image-file]]

options:
  -j[N], --jobs[=N]   set worker parallelism (default: host concurrency)
  -i, --interactive    enter interactive mode
  -config <file>       merge a YAML config file over the defaults
  -h, --help           show this message
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var opts []Option
	interactive := false
	var scenePath, imagePath string
	var positional []string

	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch {
		case arg == "-h" || arg == "--help":
			fmt.Fprint(os.Stdout, usage)
			return 0

		case arg == "-i" || arg == "--interactive":
			interactive = true

		case arg == "-j" || arg == "--jobs":
			opts = append(opts, Jobs(0))

		case strings.HasPrefix(arg, "--jobs="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--jobs="))
			if err != nil {
				fmt.Fprintf(os.Stderr, "rend: invalid --jobs value: %s\n", arg)
				return 1
			}
			opts = append(opts, Jobs(n))

		case strings.HasPrefix(arg, "-j"):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "-j"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "rend: invalid -j value: %s\n", arg)
				return 1
			}
			opts = append(opts, Jobs(n))

		case arg == "-config":
			i++
			if i >= len(argv) {
				fmt.Fprintln(os.Stderr, "rend: -config requires a file argument")
				return 1
			}
			y, err := LoadYAMLOptions(argv[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "rend: %s\n", err)
				return 1
			}
			opts = append(opts, y...)

		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "rend: unknown option %q\n", arg)
			return 1

		default:
			positional = append(positional, arg)
		}
		i++
	}

	if len(positional) > 0 {
		scenePath = positional[0]
	}
	if len(positional) > 1 {
		imagePath = positional[1]
	}

	cfg := NewConfig(opts...)

	if interactive {
		return repl.Run(os.Stdin, os.Stdout, scenePath)
	}

	if scenePath == "" {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}
	if imagePath == "" {
		imagePath = "image" + imageio.DefaultExt
	}
	if cfg.ImagePath != "" {
		imagePath = cfg.ImagePath
	}

	return renderToFile(scenePath, imagePath, cfg)
}

// renderToFile loads scenePath, applies cfg's overrides, renders, and
// saves the result to imagePath, returning the process exit code.
func renderToFile(scenePath, imagePath string, cfg Config) int {
	sc, err := sceneparser.Load(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rend: load %s: %s\n", scenePath, err)
		return 1
	}

	if cfg.Width > 0 {
		sc.ImageWidth = cfg.Width
		sc.RegionMax[0] = cfg.Width - 1
	}
	if cfg.Height > 0 {
		sc.ImageHeight = cfg.Height
		sc.RegionMax[1] = cfg.Height - 1
	}
	if cfg.SampleX > 0 {
		sc.SampleX = cfg.SampleX
	}
	if cfg.SampleY > 0 {
		sc.SampleY = cfg.SampleY
	}
	if cfg.Jitter > 0 {
		sc.Jitter = cfg.Jitter
	}

	if err := sc.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "rend: init %s: %s\n", scenePath, err)
		return 1
	}
	rlog.SceneLoaded(scenePath, sc.ObjectCount, len(sc.Lights()), sc.ShaderCount, sc.BoundCount)

	cam, err := render.NewCamera(sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rend: camera: %s\n", err)
		return 1
	}

	fb := imageio.NewFramebuffer(cam.ImageWidth(), cam.ImageHeight(), false)
	pool := render.NewPool(cam, sc, fb)

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = renderDefaults.Jobs
	}

	start := time.Now()
	rlog.JobsStarted(jobs, cam.ImageWidth(), cam.ImageHeight())
	pool.Start(jobs)
	pool.WaitForJobs(time.Hour)
	pool.Stop()
	rlog.JobsStopped(time.Since(start).Milliseconds(), &pool.Stats)

	if err := imageio.Save(imagePath, fb); err != nil {
		rlog.SaveFailed(imagePath, err)
		return 1
	}
	return 0
}
