// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the overridable render settings the CLI, an optional
// YAML file, and a scene file's own camera/sampling commands can all
// contribute to -- functional options over a Config, the same shape
// an engine constructor builds from a sequence of Attr closures over a
// shared options struct.
type Config struct {
	Jobs          int
	Width, Height int
	SampleX       int
	SampleY       int
	Jitter        float64
	ImagePath     string
}

// renderDefaults is a package-level default configuration: reasonable
// values so rend runs even with zero flags given. Jobs defaults to the
// host's hardware concurrency hint.
var renderDefaults = Config{
	Jobs: runtime.NumCPU(),
}

// Option configures a Config, a func(*Config) closure over one setting.
type Option func(*Config)

// Jobs sets the worker count. n <= 0 falls back to the host
// concurrency hint, matching `-j`/`--jobs` given with no number.
func Jobs(n int) Option {
	return func(c *Config) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		c.Jobs = n
	}
}

// Size overrides the rendered image's width and height.
func Size(w, h int) Option {
	return func(c *Config) {
		if w > 0 {
			c.Width = w
		}
		if h > 0 {
			c.Height = h
		}
	}
}

// Samples overrides the sub-pixel sample grid.
func Samples(x, y int) Option {
	return func(c *Config) {
		if x > 0 {
			c.SampleX = x
		}
		if y > 0 {
			c.SampleY = y
		}
	}
}

// Jitter overrides the sub-pixel jitter amount.
func Jitter(v float64) Option {
	return func(c *Config) { c.Jitter = v }
}

// ImagePath overrides the output image path.
func ImagePath(p string) Option {
	return func(c *Config) { c.ImagePath = p }
}

// NewConfig returns renderDefaults with every opt applied in order.
func NewConfig(opts ...Option) Config {
	c := renderDefaults
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// yamlConfig is the optional `-config <file>` document shape: the same
// fields Config carries, decoded once at startup and never touched
// again -- never on a hot path.
type yamlConfig struct {
	Jobs    int     `yaml:"jobs"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	SampleX int     `yaml:"sample_x"`
	SampleY int     `yaml:"sample_y"`
	Jitter  float64 `yaml:"jitter"`
	Image   string  `yaml:"image"`
}

// LoadYAMLOptions reads a YAML config file and returns it as a slice of
// Options to apply on top of the CLI flags, so -config merges rather
// than replaces whatever the command line already specified.
func LoadYAMLOptions(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var opts []Option
	if y.Jobs > 0 {
		opts = append(opts, Jobs(y.Jobs))
	}
	if y.Width > 0 || y.Height > 0 {
		opts = append(opts, Size(y.Width, y.Height))
	}
	if y.SampleX > 0 || y.SampleY > 0 {
		opts = append(opts, Samples(y.SampleX, y.SampleY))
	}
	if y.Jitter > 0 {
		opts = append(opts, Jitter(y.Jitter))
	}
	if y.Image != "" {
		opts = append(opts, ImagePath(y.Image))
	}
	return opts, nil
}
