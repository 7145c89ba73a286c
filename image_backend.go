package tiledraw

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ImageBackend draws into an in-memory *image.RGBA surface sized in device
// pixels. It honours viewport rotation.
type ImageBackend struct {
	*Base

	surface    *image.RGBA
	smoothing  bool
	gridColors []color.Color
	// drawn counts Draw calls since the last Clear; it picks the grid colour.
	drawn int
}

// NewImageBackend creates a software backend whose surface fills the
// container.
func NewImageBackend(opts Options) (*ImageBackend, error) {
	base, err := NewBase(BackendImage, opts)
	if err != nil {
		return nil, err
	}

	return &ImageBackend{
		Base:       base,
		surface:    newSurface(base.SurfaceSize()),
		smoothing:  true,
		gridColors: ParseGridColors(opts.DebugGridColor),
	}, nil
}

func newSurface(size image.Point) *image.RGBA {
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	return image.NewRGBA(image.Rectangle{Max: size})
}

// Image returns the surface. It is nil after Destroy.
func (b *ImageBackend) Image() *image.RGBA {
	return b.surface
}

// ImageSmoothingEnabled reports the current smoothing setting.
func (b *ImageBackend) ImageSmoothingEnabled() bool {
	return b.smoothing
}

// Resize reallocates the surface if the container size or the pixel density
// changed. The new surface is blank.
func (b *ImageBackend) Resize() error {
	if b.Destroyed() {
		return ErrDestroyed
	}

	size := b.SurfaceSize()
	if b.surface.Bounds().Size() == size {
		return nil
	}
	b.Log().WithField("surface", size).Debug("Resizing surface")
	b.surface = newSurface(size)
	return nil
}

func (b *ImageBackend) Draw(img TiledImage) error {
	if b.Destroyed() {
		return ErrDestroyed
	}
	if img == nil {
		return nil
	}
	defer func() { b.drawn++ }()

	opacity := img.Opacity()
	if opacity <= 0 || math.IsNaN(opacity) {
		return nil
	}
	var opts *draw.Options
	if opacity < 1 {
		opts = &draw.Options{
			SrcMask: image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 0xFF))}),
		}
	}

	degrees, rotated := b.rotation()
	center := b.surfaceCenter()
	rotate := gg.Identity()
	if rotated {
		rotate = rotateAbout(center, degrees)
	}

	interpolator := b.interpolator()
	var outlines []Rect
	for _, tile := range img.Tiles() {
		if tile.Image == nil {
			continue
		}
		dst := b.ViewportToDrawerRectangle(tile.Bounds)
		if !drawable(dst) {
			continue
		}

		sr := tile.Image.Bounds()
		s2d := rotate.Multiply(placeRect(sr, dst))
		interpolator.Transform(b.surface, aff3(s2d), tile.Image, sr, draw.Over, opts)
		outlines = append(outlines, dst)
	}

	if len(b.gridColors) == 0 || len(outlines) == 0 {
		return nil
	}
	return b.strokeGrid(outlines, degrees, center)
}

// strokeGrid outlines the drawn tiles in the grid colour of the current item,
// rotated like the tiles.
func (b *ImageBackend) strokeGrid(outlines []Rect, degrees float64, center Point) error {
	size := b.surface.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return nil
	}

	dc := gg.NewContext(size.X, size.Y)
	defer dc.Close()

	if degrees != 0 {
		dc.RotateAbout(radians(degrees), center.X, center.Y)
	}
	dc.SetColor(b.gridColors[b.drawn%len(b.gridColors)])
	dc.SetLineWidth(1)
	for _, r := range outlines {
		// Through pixel centres, so the outline covers the tile's edge pixels.
		dc.DrawRectangle(r.X+0.5, r.Y+0.5, r.Width-1, r.Height-1)
	}
	if err := dc.Stroke(); err != nil {
		return err
	}

	draw.Draw(b.surface, b.surface.Bounds(), dc.Image(), image.Point{}, draw.Over)
	return nil
}

func (*ImageBackend) CanRotate() bool {
	return true
}

func (b *ImageBackend) Clear() error {
	if b.Destroyed() {
		return ErrDestroyed
	}
	draw.Draw(b.surface, b.surface.Bounds(), image.Transparent, image.Point{}, draw.Src)
	b.drawn = 0
	return nil
}

func (b *ImageBackend) Destroy() {
	if b.MarkDestroyed() {
		b.surface = nil
	}
}

func (b *ImageBackend) SetImageSmoothingEnabled(enabled bool) {
	b.smoothing = enabled
}

func (b *ImageBackend) interpolator() draw.Interpolator {
	if b.smoothing {
		return draw.BiLinear
	}
	return draw.NearestNeighbor
}

// rotation returns the viewport rotation in degrees, if it has a non-zero one.
func (b *ImageBackend) rotation() (float64, bool) {
	rotator, ok := b.Viewport().(Rotator)
	if !ok {
		return 0, false
	}
	degrees := rotator.Rotation()
	if degrees == 0 || math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return 0, false
	}
	return degrees, true
}

func (b *ImageBackend) surfaceCenter() Point {
	size := b.surface.Bounds().Size()
	return Point{X: float64(size.X) / 2, Y: float64(size.Y) / 2}
}

var _ Backend = (*ImageBackend)(nil)
var _ Resizer = (*ImageBackend)(nil)

func drawable(r Rect) bool {
	for _, v := range [...]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Width > 0 && r.Height > 0
}

// placeRect maps the source rectangle sr onto dst.
func placeRect(sr image.Rectangle, dst Rect) gg.Matrix {
	return gg.Translate(dst.X, dst.Y).
		Multiply(gg.Scale(dst.Width/float64(sr.Dx()), dst.Height/float64(sr.Dy()))).
		Multiply(gg.Translate(-float64(sr.Min.X), -float64(sr.Min.Y)))
}

// rotateAbout returns a clockwise rotation (y axis pointing down) by degrees
// around c.
func rotateAbout(c Point, degrees float64) gg.Matrix {
	return gg.Translate(c.X, c.Y).
		Multiply(gg.Rotate(radians(degrees))).
		Multiply(gg.Translate(-c.X, -c.Y))
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func aff3(m gg.Matrix) f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
