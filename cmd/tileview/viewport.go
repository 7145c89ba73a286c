package main

import "github.com/rmcsoft/tiledraw"

// fitViewport shows a fixed region of viewport space stretched to the
// container width, keeping the aspect ratio.
type fitViewport struct {
	bounds    tiledraw.Rect
	container tiledraw.Point
	rotation  float64
}

func (v *fitViewport) scale() float64 {
	if v.bounds.Width == 0 {
		return 0
	}
	return v.container.X / v.bounds.Width
}

func (v *fitViewport) PixelFromPointNoRotate(p tiledraw.Point, current bool) tiledraw.Point {
	return p.Sub(v.bounds.TopLeft()).Mul(v.scale())
}

func (v *fitViewport) DeltaPixelsFromPointsNoRotate(delta tiledraw.Point, current bool) tiledraw.Point {
	return delta.Mul(v.scale())
}

func (v *fitViewport) ContainerSize() tiledraw.Point {
	return v.container
}

func (v *fitViewport) Rotation() float64 {
	return v.rotation
}

type viewerID string

func (id viewerID) ViewerID() string {
	return string(id)
}

type containerID string

func (id containerID) ContainerID() string {
	return string(id)
}
