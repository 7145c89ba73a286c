package tiledraw

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImageBackend(t *testing.T, vp Viewport, display Display, grid ...string) *ImageBackend {
	t.Helper()
	opts := testOptions(vp, display)
	opts.DebugGridColor = grid
	backend, err := NewImageBackend(opts)
	require.NoError(t, err)
	backend.SetImageSmoothingEnabled(false)
	return backend
}

func redTile(bounds Rect) *TileSet {
	return NewTileSet(Tile{Bounds: bounds, Image: solidImage(8, 8, red)})
}

func TestImageBackendSurfaceSize(t *testing.T) {
	vp := &testViewport{zoom: 1, container: Pt(100, 50)}
	backend := newTestImageBackend(t, vp, FixedDensity(2))

	assert.Equal(t, image.Rect(0, 0, 200, 100), backend.Image().Bounds())
	assert.True(t, backend.IsRenderBackend())
	assert.True(t, backend.CanRotate())
}

func TestImageBackendDrawPlacesTile(t *testing.T) {
	backend := newTestImageBackend(t, squareViewport(), nil)

	require.NoError(t, backend.Clear())
	require.NoError(t, backend.Draw(redTile(R(0.1, 0.1, 0.2, 0.2))))

	surface := backend.Image()
	assert.Equal(t, red, rgbaAt(t, surface, 10, 10))
	assert.Equal(t, red, rgbaAt(t, surface, 20, 20))
	assert.Equal(t, red, rgbaAt(t, surface, 29, 29))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, surface, 5, 5))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, surface, 31, 31))
}

func TestImageBackendDrawScalesWithDensity(t *testing.T) {
	backend := newTestImageBackend(t, squareViewport(), FixedDensity(2))

	require.NoError(t, backend.Draw(redTile(R(0.1, 0.1, 0.2, 0.2))))

	surface := backend.Image()
	assert.Equal(t, image.Rect(0, 0, 200, 200), surface.Bounds())
	assert.Equal(t, red, rgbaAt(t, surface, 20, 20))
	assert.Equal(t, red, rgbaAt(t, surface, 59, 59))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, surface, 15, 15))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, surface, 61, 61))
}

func TestImageBackendClearIsIdempotent(t *testing.T) {
	backend := newTestImageBackend(t, squareViewport(), nil)
	require.NoError(t, backend.Draw(redTile(R(0, 0, 1, 1))))

	require.NoError(t, backend.Clear())
	first := append([]byte(nil), backend.Image().Pix...)
	require.NoError(t, backend.Clear())

	assert.Equal(t, first, backend.Image().Pix)
	assert.Equal(t, color.RGBA{}, rgbaAt(t, backend.Image(), 50, 50))
}

func TestImageBackendOpacity(t *testing.T) {
	backend := newTestImageBackend(t, squareViewport(), nil)

	half := redTile(R(0, 0, 1, 1))
	half.Alpha = 0.5
	require.NoError(t, backend.Draw(half))

	c := rgbaAt(t, backend.Image(), 50, 50)
	assert.InDelta(t, 0x80, int(c.A), 1)
	assert.InDelta(t, 0x80, int(c.R), 1)

	require.NoError(t, backend.Clear())
	hidden := redTile(R(0, 0, 1, 1))
	hidden.Alpha = 0
	require.NoError(t, backend.Draw(hidden))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, backend.Image(), 50, 50))
}

func TestImageBackendRotatesAboutCenter(t *testing.T) {
	vp := &rotatingViewport{testViewport: *squareViewport(), degrees: 180}
	backend := newTestImageBackend(t, vp, nil)

	require.NoError(t, backend.Draw(redTile(R(0.1, 0.1, 0.2, 0.2))))

	surface := backend.Image()
	assert.Equal(t, red, rgbaAt(t, surface, 80, 80))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, surface, 20, 20))
}

// assertGreen checks that the pixel is mostly grid green. Outlines are
// antialiased, so the exact value depends on coverage.
func assertGreen(t *testing.T, img *image.RGBA, x, y int) {
	t.Helper()
	c := rgbaAt(t, img, x, y)
	assert.GreaterOrEqual(t, int(c.G), 0x80, "green at (%d,%d): %v", x, y, c)
	assert.LessOrEqual(t, int(c.R), 0x80, "red at (%d,%d): %v", x, y, c)
}

func TestImageBackendDebugGrid(t *testing.T) {
	backend := newTestImageBackend(t, squareViewport(), nil, "notacolor", "#00ff00")
	require.Len(t, backend.gridColors, 1)

	require.NoError(t, backend.Draw(redTile(R(0.1, 0.1, 0.2, 0.2))))

	surface := backend.Image()
	assertGreen(t, surface, 10, 20)
	assertGreen(t, surface, 20, 10)
	assertGreen(t, surface, 29, 20)
	assertGreen(t, surface, 20, 29)
	assert.Equal(t, red, rgbaAt(t, surface, 20, 20))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, surface, 5, 20))
}

func TestImageBackendDebugGridFollowsRotation(t *testing.T) {
	vp := &rotatingViewport{testViewport: *squareViewport(), degrees: 180}
	backend := newTestImageBackend(t, vp, nil, "lime")

	require.NoError(t, backend.Draw(redTile(R(0.1, 0.1, 0.2, 0.2))))

	surface := backend.Image()
	assertGreen(t, surface, 89, 80)
	assertGreen(t, surface, 80, 89)
	assert.Equal(t, red, rgbaAt(t, surface, 80, 80))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, surface, 10, 20))
}

func TestImageBackendNaNOpacityDrawsNothing(t *testing.T) {
	backend := newTestImageBackend(t, squareViewport(), nil)

	item := redTile(R(0, 0, 1, 1))
	item.Alpha = math.NaN()
	require.NoError(t, backend.Draw(item))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, backend.Image(), 50, 50))
}

func TestRotateAbout(t *testing.T) {
	m := rotateAbout(Pt(50, 50), 90)

	p := m.TransformPoint(gg.Pt(60, 50))
	assert.InDelta(t, 50, p.X, 1e-9)
	assert.InDelta(t, 60, p.Y, 1e-9)

	c := m.TransformPoint(gg.Pt(50, 50))
	assert.InDelta(t, 50, c.X, 1e-9)
	assert.InDelta(t, 50, c.Y, 1e-9)
}

func TestPlaceRect(t *testing.T) {
	m := placeRect(image.Rect(2, 2, 10, 6), R(100, 50, 16, 8))

	topLeft := m.TransformPoint(gg.Pt(2, 2))
	bottomRight := m.TransformPoint(gg.Pt(10, 6))
	assert.Equal(t, gg.Pt(100, 50), topLeft)
	assert.Equal(t, gg.Pt(116, 58), bottomRight)
}

func TestImageBackendSkipsDegenerateTiles(t *testing.T) {
	backend := newTestImageBackend(t, squareViewport(), nil)

	items := NewTileSet(
		Tile{Bounds: R(0, 0, 0, 0.5), Image: solidImage(4, 4, red)},
		Tile{Bounds: R(0, 0, 0.5, 0.5)},
	)
	require.NoError(t, backend.Draw(items))
	require.NoError(t, backend.Draw(nil))
	assert.Equal(t, color.RGBA{}, rgbaAt(t, backend.Image(), 10, 10))
}

func TestImageBackendSmoothing(t *testing.T) {
	backend := newTestImageBackend(t, squareViewport(), nil)
	assert.False(t, backend.ImageSmoothingEnabled())

	backend.SetImageSmoothingEnabled(true)
	assert.True(t, backend.ImageSmoothingEnabled())
	require.NoError(t, backend.Draw(redTile(R(0, 0, 1, 1))))
	assert.Equal(t, red, rgbaAt(t, backend.Image(), 50, 50))
}

func TestImageBackendResize(t *testing.T) {
	vp := squareViewport()
	display := &densityVar{density: 1}
	backend := newTestImageBackend(t, vp, display)

	display.density = 2
	require.NoError(t, backend.Resize())
	assert.Equal(t, image.Rect(0, 0, 200, 200), backend.Image().Bounds())

	vp.container = Pt(30.4, 10.5)
	require.NoError(t, backend.Resize())
	assert.Equal(t, image.Rect(0, 0, 61, 21), backend.Image().Bounds())
}

func TestImageBackendDestroy(t *testing.T) {
	backend := newTestImageBackend(t, squareViewport(), nil)

	backend.Destroy()
	assert.Nil(t, backend.Image())
	backend.Destroy()
	assert.True(t, backend.Destroyed())

	assert.ErrorIs(t, backend.Draw(redTile(R(0, 0, 1, 1))), ErrDestroyed)
	assert.ErrorIs(t, backend.Clear(), ErrDestroyed)
	assert.ErrorIs(t, backend.Resize(), ErrDestroyed)
}
