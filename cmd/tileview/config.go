package main

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

type options struct {
	Config string `short:"c" long:"config" description:"YAML file with default option values" yaml:"-"`

	Backend     string   `short:"b" long:"backend" description:"Backend name, or \"default\" for the best available" yaml:"backend"`
	Width       float64  `short:"W" long:"width" description:"Container width in logical pixels" yaml:"width"`
	Height      float64  `short:"H" long:"height" description:"Container height in logical pixels" yaml:"height"`
	Density     float64  `short:"d" long:"density" description:"Pixel density ratio; the backend decides when unset" yaml:"density"`
	NoSmoothing bool     `long:"no-smoothing" description:"Disable image smoothing" yaml:"noSmoothing"`
	Rotation    float64  `short:"r" long:"rotation" description:"Viewport rotation in degrees" yaml:"rotation"`
	Grid        []string `short:"g" long:"grid" description:"Debug grid color, repeatable" yaml:"debugGridColor"`

	Image    string `short:"i" long:"image" description:"Source image; a checkerboard is drawn when empty" yaml:"image"`
	TileSize int    `short:"t" long:"tile-size" description:"Tile size in source pixels" yaml:"tileSize"`
	Output   string `short:"o" long:"output" description:"PNG file to write the image backend surface to" yaml:"output"`
	Frames   int    `short:"f" long:"frames" description:"Number of ticks to run" yaml:"frames"`
	Verbose  bool   `short:"v" long:"verbose" description:"Debug logging" yaml:"verbose"`
}

func defaultOptions() options {
	return options{
		Backend:  "image",
		Width:    800,
		Height:   600,
		TileSize: 256,
		Frames:   1,
	}
}

// loadConfig reads option values from a YAML file on top of the defaults.
func loadConfig(path string) (options, error) {
	opts := defaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := opts.validate(); err != nil {
		return opts, fmt.Errorf("invalid %s: %w", path, err)
	}
	return opts, nil
}

func (o options) validate() error {
	if o.TileSize < 1 {
		return fmt.Errorf("tile size must be positive, got %d", o.TileSize)
	}
	if o.Density < 0 || math.IsNaN(o.Density) || math.IsInf(o.Density, 0) {
		return fmt.Errorf("density must be positive or unset, got %g", o.Density)
	}
	return nil
}
