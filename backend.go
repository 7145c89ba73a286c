package tiledraw

import (
	"image"
	"sync"

	"github.com/sirupsen/logrus"
)

// Backend is the interface every rendering backend implements. The viewer
// builds one backend per display surface and, on every tick, calls Clear
// followed by one Draw per visible tiled image. Calls are never concurrent.
//
// Concrete backends embed *Base, which supplies the coordinate transforms
// and the IsRenderBackend marker, and implement the five drawing operations
// themselves.
type Backend interface {
	// Draw rasterizes the tiled image onto the surface.
	Draw(img TiledImage) error

	// CanRotate reports whether the backend honours viewport rotation.
	CanRotate() bool

	// Clear resets the surface to blank. Clearing twice is the same as
	// clearing once.
	Clear() error

	// Destroy releases the surface and any other resource. Calling it
	// again does nothing.
	Destroy()

	// SetImageSmoothingEnabled selects interpolated (true) or nearest
	// neighbour (false) scaling for subsequent draws.
	SetImageSmoothingEnabled(enabled bool)

	ViewportToDrawerRectangle(r Rect) Rect
	ViewportCoordToDrawerCoord(p Point) Point

	// IsRenderBackend reports true for a conforming backend.
	IsRenderBackend() bool
}

// Resizer is implemented by backends that can resize their surface after
// the container size or the pixel density changed.
type Resizer interface {
	Resize() error
}

// Presenter is implemented by backends that draw into a back buffer and
// need an explicit flip at the end of a tick.
type Presenter interface {
	Present() error
}

// Base holds the state shared by all backends: the collaborators, the
// construction-time validation and the Constructed/Destroyed state.
type Base struct {
	name           string
	viewer         Viewer
	viewport       Viewport
	container      Container
	display        Display
	debugGridColor []string

	mutex      sync.Mutex
	destroyed  bool
	conforming bool
}

// NewBase validates opts and returns the shared part of a backend.
func NewBase(name string, opts Options) (*Base, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	base := &Base{
		name:           name,
		viewer:         opts.Viewer,
		viewport:       opts.Viewport,
		container:      opts.Container,
		display:        opts.Display,
		debugGridColor: append([]string(nil), opts.DebugGridColor...),
		conforming:     true,
	}
	base.Log().WithField("surface", base.SurfaceSize()).Debug("Backend created")
	return base, nil
}

// Name returns the backend name given at construction.
func (b *Base) Name() string {
	return b.name
}

// Viewer returns the owning viewer.
func (b *Base) Viewer() Viewer {
	return b.viewer
}

// Viewport returns the viewport the backend projects through.
func (b *Base) Viewport() Viewport {
	return b.viewport
}

// Container returns the host container.
func (b *Base) Container() Container {
	return b.container
}

// DebugGridColor returns the configured grid colours.
func (b *Base) DebugGridColor() []string {
	return b.debugGridColor
}

// PixelDensity returns the current pixel density.
func (b *Base) PixelDensity() float64 {
	return densityOf(b.display)
}

// SurfaceSize returns the device-pixel size the surface should have now.
func (b *Base) SurfaceSize() image.Point {
	return SurfaceSize(b.viewport.ContainerSize(), b.PixelDensity())
}

// ViewportToDrawerRectangle converts r to drawer space with the current
// density.
func (b *Base) ViewportToDrawerRectangle(r Rect) Rect {
	return ViewportToDrawerRectangle(b.viewport, b.PixelDensity(), r)
}

// ViewportCoordToDrawerCoord converts p to drawer space with the current
// density.
func (b *Base) ViewportCoordToDrawerCoord(p Point) Point {
	return ViewportCoordToDrawerCoord(b.viewport, b.PixelDensity(), p)
}

// IsRenderBackend reports whether b passed construction.
func (b *Base) IsRenderBackend() bool {
	return b != nil && b.conforming
}

// MarkDestroyed moves the backend to its terminal state. It returns true
// only for the call that made the transition.
func (b *Base) MarkDestroyed() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.destroyed {
		return false
	}
	b.destroyed = true
	b.Log().Debug("Backend destroyed")
	return true
}

// Destroyed reports whether Destroy has been called.
func (b *Base) Destroyed() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.destroyed
}

// Log returns a logger carrying the backend's identity.
func (b *Base) Log() logrus.FieldLogger {
	fields := logrus.Fields{"backend": b.name}
	if b.viewer != nil {
		fields["viewer"] = b.viewer.ViewerID()
	}
	if b.container != nil {
		fields["container"] = b.container.ContainerID()
	}
	return Logger().WithFields(fields)
}
