// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sceneparser

import "github.com/hirdrac/rend/scene"

// Load parses path (and every file it includes) and builds a fresh
// *scene.Scene from it, but does not call Scene.Init -- callers decide
// when init happens (the REPL reloads a scene and may want to tweak it
// further before rendering, cmd/rend inits immediately).
func Load(path string) (*scene.Scene, error) {
	nodes, err := New().ParseFile(path)
	if err != nil {
		return nil, err
	}
	sc := scene.New()
	if err := NewBuilder(sc).Build(nodes); err != nil {
		return nil, err
	}
	return sc, nil
}
