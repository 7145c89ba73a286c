package tiledraw

// ViewportToDrawerRectangle converts a viewport rectangle to drawer space.
// The corner and the size are projected separately, ignoring rotation, and
// both are scaled by density. Fractions are kept.
func ViewportToDrawerRectangle(vp Viewport, density float64, r Rect) Rect {
	topLeft := vp.PixelFromPointNoRotate(r.TopLeft(), true)
	size := vp.DeltaPixelsFromPointsNoRotate(r.Size(), true)
	return Rect{
		X:      topLeft.X * density,
		Y:      topLeft.Y * density,
		Width:  size.X * density,
		Height: size.Y * density,
	}
}

// ViewportCoordToDrawerCoord converts a viewport point to drawer space,
// ignoring rotation.
func ViewportCoordToDrawerCoord(vp Viewport, density float64, p Point) Point {
	return vp.PixelFromPointNoRotate(p, true).Mul(density)
}
