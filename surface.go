package tiledraw

import (
	"image"
	"math"
)

// SurfaceSize returns the device-pixel size of a surface filling a container
// of the given logical size. Each axis is rounded on its own, half away from
// zero. An axis that is not finite after scaling, or does not fit in an
// int32, yields 0.
func SurfaceSize(container Point, density float64) image.Point {
	return image.Point{
		X: roundAxis(container.X * density),
		Y: roundAxis(container.Y * density),
	}
}

func roundAxis(v float64) int {
	if math.IsNaN(v) || math.Abs(v) > math.MaxInt32 {
		return 0
	}
	return int(math.Round(v))
}
