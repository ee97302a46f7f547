// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package repl implements rend's `-i`/`--interactive` line-oriented
// control loop: a run loop that reads one input batch, updates state,
// and repeats, applied to a scene/render/save cycle instead of a
// per-frame game loop.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/hirdrac/rend/imageio"
	"github.com/hirdrac/rend/internal/rlog"
	"github.com/hirdrac/rend/render"
	"github.com/hirdrac/rend/scene"
	"github.com/hirdrac/rend/sceneparser"
)

const prompt = "rend> "

const help = `commands:
  load <file>   load and init a scene file
  render [out]  render the loaded scene to out (default: image.png)
  quit, exit    leave the REPL
  help          show this message
`

// Run drives the REPL over in/out. If initialScene is non-empty it's
// loaded and initialized before the first prompt. Returns a process
// exit code (0 unless the REPL's input stream fails to read at all).
func Run(in io.Reader, out io.Writer, initialScene string) int {
	sc := newSession(out)
	if initialScene != "" {
		sc.load(initialScene)
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			if sc.dispatch(line) {
				return 0
			}
		}
		fmt.Fprint(out, prompt)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(out, "repl: read error: %s\n", err)
		return 1
	}
	return 0
}

// session holds the REPL's only piece of state: the currently loaded
// and initialized scene, if any.
type session struct {
	out io.Writer
	sc  *scene.Scene
}

func newSession(out io.Writer) *session { return &session{out: out} }

// dispatch handles one line of input, returning true iff the REPL
// should exit.
func (s *session) dispatch(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true

	case "help", "?":
		fmt.Fprint(s.out, help)

	case "load":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: load <file>")
			return false
		}
		s.load(args[0])

	case "render":
		outPath := "image" + imageio.DefaultExt
		if len(args) == 1 {
			outPath = args[0]
		}
		s.render(outPath)

	default:
		fmt.Fprintf(s.out, "unknown command %q (try \"help\")\n", cmd)
	}
	return false
}

func (s *session) load(path string) {
	sc, err := sceneparser.Load(path)
	if err != nil {
		fmt.Fprintf(s.out, "load %s: %s\n", path, err)
		return
	}
	if err := sc.Init(); err != nil {
		fmt.Fprintf(s.out, "init %s: %s\n", path, err)
		return
	}
	s.sc = sc
	fmt.Fprintf(s.out, "loaded %s: %d objects, %d lights, %d shaders\n",
		path, sc.ObjectCount, len(sc.Lights()), sc.ShaderCount)
}

func (s *session) render(outPath string) {
	if s.sc == nil {
		fmt.Fprintln(s.out, "no scene loaded (try \"load <file>\" first)")
		return
	}

	cam, err := render.NewCamera(s.sc)
	if err != nil {
		fmt.Fprintf(s.out, "camera: %s\n", err)
		return
	}

	fb := imageio.NewFramebuffer(cam.ImageWidth(), cam.ImageHeight(), false)
	pool := render.NewPool(cam, s.sc, fb)

	start := time.Now()
	pool.Start(runtime.NumCPU())
	pool.WaitForJobs(time.Hour)
	pool.Stop()
	rlog.JobsStopped(time.Since(start).Milliseconds(), &pool.Stats)

	if err := imageio.Save(outPath, fb); err != nil {
		fmt.Fprintf(s.out, "save %s: %s\n", outPath, err)
		return
	}
	fmt.Fprintf(s.out, "saved %s\n", outPath)
}
