package tiledraw

import "fmt"

// Options configures a backend. Viewer, Viewport and Container are
// required; the rest is optional.
type Options struct {
	Viewer    Viewer    `yaml:"-"`
	Viewport  Viewport  `yaml:"-"`
	Container Container `yaml:"-"`

	// Display supplies the pixel density. A nil Display means density 1.
	Display Display `yaml:"-"`

	// DebugGridColor lists the colours used to outline tiles, one per drawn
	// tiled image, cycling. Empty disables the grid.
	DebugGridColor []string `yaml:"debugGridColor,omitempty"`
}

// PositionalOptions supports the older calling convention where the
// viewport and container were passed as arguments rather than inside the
// options. Positional values fill fields left empty in opts.
func PositionalOptions(viewport Viewport, container Container, opts Options) Options {
	if opts.Viewport == nil {
		opts.Viewport = viewport
	}
	if opts.Container == nil {
		opts.Container = container
	}
	return opts
}

// Validate reports the first missing required collaborator.
func (o Options) Validate() error {
	switch {
	case o.Viewer == nil:
		return fmt.Errorf("%w: viewer is required", ErrInvalidOptions)
	case o.Viewport == nil:
		return fmt.Errorf("%w: viewport is required", ErrInvalidOptions)
	case o.Container == nil:
		return fmt.Errorf("%w: container is required", ErrInvalidOptions)
	}
	return nil
}
