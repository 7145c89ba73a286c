package tiledraw

// Viewport is the projection capability a backend consumes from the viewer's
// viewport. The viewport owns pan, zoom and rotation; a backend only asks it
// to project.
type Viewport interface {
	// PixelFromPointNoRotate converts a viewport point to logical pixels
	// relative to the container, ignoring the current rotation.
	PixelFromPointNoRotate(p Point, current bool) Point

	// DeltaPixelsFromPointsNoRotate converts a viewport size delta to
	// logical pixels, ignoring the current rotation.
	DeltaPixelsFromPointsNoRotate(delta Point, current bool) Point

	// ContainerSize returns the logical size of the container.
	ContainerSize() Point
}

// Rotator is implemented by viewports that carry a rotation. Rotation is in
// degrees, clockwise.
type Rotator interface {
	Rotation() float64
}

// Viewer identifies the viewer that owns a backend.
type Viewer interface {
	ViewerID() string
}

// Container identifies the host element the drawing surface lives in.
type Container interface {
	ContainerID() string
}

// Display reports the ratio of physical to logical pixels. The host may
// change it at any time, so it is read on every call and never cached.
type Display interface {
	PixelDensity() float64
}

// FixedDensity is a Display with a constant density.
type FixedDensity float64

// PixelDensity implements Display.
func (d FixedDensity) PixelDensity() float64 {
	return float64(d)
}

func densityOf(d Display) float64 {
	if d == nil {
		return 1
	}
	return d.PixelDensity()
}
