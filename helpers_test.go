package tiledraw

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// testViewport maps viewport point p to (p - origin) * zoom logical pixels.
type testViewport struct {
	origin    Point
	zoom      float64
	container Point
}

func (v *testViewport) PixelFromPointNoRotate(p Point, current bool) Point {
	return p.Sub(v.origin).Mul(v.zoom)
}

func (v *testViewport) DeltaPixelsFromPointsNoRotate(delta Point, current bool) Point {
	return delta.Mul(v.zoom)
}

func (v *testViewport) ContainerSize() Point {
	return v.container
}

type rotatingViewport struct {
	testViewport
	degrees float64
}

func (v *rotatingViewport) Rotation() float64 {
	return v.degrees
}

// densityVar is a Display whose density the test changes between calls.
type densityVar struct {
	density float64
}

func (d *densityVar) PixelDensity() float64 {
	return d.density
}

type testViewer struct{}

func (testViewer) ViewerID() string { return "viewer" }

type testContainer struct{}

func (testContainer) ContainerID() string { return "container" }

func testOptions(vp Viewport, display Display) Options {
	return Options{
		Viewer:    testViewer{},
		Viewport:  vp,
		Container: testContainer{},
		Display:   display,
	}
}

// squareViewport is a 100x100 container where one viewport unit is 100
// logical pixels.
func squareViewport() *testViewport {
	return &testViewport{zoom: 100, container: Pt(100, 100)}
}

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var red = color.RGBA{0xFF, 0, 0, 0xFF}

func rgbaAt(t *testing.T, img *image.RGBA, x, y int) color.RGBA {
	t.Helper()
	require.True(t, image.Pt(x, y).In(img.Bounds()), "(%d,%d) outside %v", x, y, img.Bounds())
	return img.RGBAAt(x, y)
}
