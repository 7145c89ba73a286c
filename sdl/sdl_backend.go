// Package sdl provides a tiledraw backend that draws into an SDL window.
//
// Importing the package registers the "sdl" backend:
//
//	import _ "github.com/rmcsoft/tiledraw/sdl"
package sdl

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"

	"github.com/rmcsoft/tiledraw"
)

var videoInit struct {
	sync.Mutex
	done bool
}

// initVideo starts the SDL video subsystem once per process. After a failure
// the next backend tries again.
func initVideo() error {
	videoInit.Lock()
	defer videoInit.Unlock()

	if videoInit.done {
		return nil
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	videoInit.done = true
	return nil
}

func init() {
	tiledraw.Register(tiledraw.BackendSDL, func(opts tiledraw.Options) (tiledraw.Backend, error) {
		backend, err := NewBackend(opts)
		if err != nil {
			return nil, err
		}
		return backend, nil
	})
}

// windowDisplay reads the pixel density from the window: the ratio between
// the renderer output size and the window's logical size.
type windowDisplay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
}

func (d windowDisplay) PixelDensity() float64 {
	w, _ := d.window.GetSize()
	outW, _, err := d.renderer.GetOutputSize()
	if err != nil || w <= 0 {
		return 1
	}
	return float64(outW) / float64(w)
}

// Backend draws tiles into an SDL window through an accelerated renderer.
type Backend struct {
	*tiledraw.Base

	window     *sdl.Window
	renderer   *sdl.Renderer
	smoothing  bool
	gridColors []color.Color
	drawn      int
}

// NewBackend opens a window the size of the container. When opts has no
// Display, the density is taken from the window.
func NewBackend(opts tiledraw.Options) (*Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := initVideo(); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}

	size := opts.Viewport.ContainerSize()
	window, renderer, err := sdl.CreateWindowAndRenderer(
		int32(math.Round(size.X)), int32(math.Round(size.Y)), sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}
	if opts.Display == nil {
		opts.Display = windowDisplay{window: window, renderer: renderer}
	}

	base, err := tiledraw.NewBase(tiledraw.BackendSDL, opts)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}
	if err := renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		base.Log().WithError(err).Warn("Blending unavailable")
	}

	return &Backend{
		Base:       base,
		window:     window,
		renderer:   renderer,
		smoothing:  true,
		gridColors: tiledraw.ParseGridColors(opts.DebugGridColor),
	}, nil
}

func (p *Backend) Draw(img tiledraw.TiledImage) error {
	if p.Destroyed() {
		return tiledraw.ErrDestroyed
	}
	if img == nil {
		return nil
	}
	defer func() { p.drawn++ }()

	opacity := img.Opacity()
	if opacity <= 0 || math.IsNaN(opacity) {
		return nil
	}
	alpha := uint8(0xFF)
	if opacity < 1 {
		alpha = uint8(math.Round(opacity * 0xFF))
	}

	angle := p.rotation()
	for _, tile := range img.Tiles() {
		if tile.Image == nil {
			continue
		}
		dst := p.ViewportToDrawerRectangle(tile.Bounds)
		sdlRect := toSDLRect(dst)
		if sdlRect.W <= 0 || sdlRect.H <= 0 {
			continue
		}
		if err := p.drawTile(tile.Image, &sdlRect, alpha, angle); err != nil {
			return err
		}
	}

	return p.drawGrid(img, angle)
}

func (p *Backend) drawTile(src image.Image, dst *sdl.Rect, alpha uint8, angle float64) error {
	texture, err := p.upload(src)
	if err != nil {
		return err
	}
	defer texture.Destroy()

	if err := texture.SetAlphaMod(alpha); err != nil {
		return err
	}
	if angle == 0 {
		return p.renderer.Copy(texture, nil, dst)
	}

	center := p.surfaceCenter()
	pivot := sdl.Point{X: center.X - dst.X, Y: center.Y - dst.Y}
	return p.renderer.CopyEx(texture, nil, dst, angle, &pivot, sdl.FLIP_NONE)
}

// upload copies the image into a new streaming texture. The scale quality
// hint is read by SDL when the texture is created.
func (p *Backend) upload(src image.Image) (*sdl.Texture, error) {
	quality := "nearest"
	if p.smoothing {
		quality = "linear"
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, quality)

	bounds := src.Bounds()
	pixmap := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(pixmap, pixmap.Bounds(), src, bounds.Min, draw.Src)

	texture, err := p.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
		int32(bounds.Dx()), int32(bounds.Dy()))
	if err != nil {
		return nil, err
	}

	texturePixels, textureBytePerLine, err := texture.Lock(nil)
	if err != nil {
		texture.Destroy()
		return nil, err
	}

	rowSize := bounds.Dx() * 4
	for rowNum := 0; rowNum < bounds.Dy(); rowNum++ {
		pixmapOffset := rowNum * pixmap.Stride
		pixmapRow := pixmap.Pix[pixmapOffset : pixmapOffset+rowSize]
		textureOffset := rowNum * textureBytePerLine
		textureRow := texturePixels[textureOffset : textureOffset+rowSize]
		copy(textureRow, pixmapRow)
	}
	texture.Unlock()

	if err := texture.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		texture.Destroy()
		return nil, err
	}
	return texture, nil
}

func (p *Backend) drawGrid(img tiledraw.TiledImage, angle float64) error {
	if len(p.gridColors) == 0 {
		return nil
	}
	r, g, b, a := p.gridColors[p.drawn%len(p.gridColors)].RGBA()
	if err := p.renderer.SetDrawColor(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)); err != nil {
		return err
	}

	center := p.surfaceCenter()
	for _, tile := range img.Tiles() {
		if tile.Image == nil {
			continue
		}
		sdlRect := toSDLRect(p.ViewportToDrawerRectangle(tile.Bounds))
		if sdlRect.W <= 0 || sdlRect.H <= 0 {
			continue
		}
		if err := p.renderer.DrawLines(outline(sdlRect, center, angle)); err != nil {
			return err
		}
	}
	return nil
}

// outline returns the closed outline of r rotated clockwise by angle degrees
// about center, the way CopyEx places the tile.
func outline(r sdl.Rect, center sdl.Point, angle float64) []sdl.Point {
	left, top := float64(r.X), float64(r.Y)
	right, bottom := float64(r.X+r.W-1), float64(r.Y+r.H-1)
	corners := []gg.Point{
		gg.Pt(left, top),
		gg.Pt(right, top),
		gg.Pt(right, bottom),
		gg.Pt(left, bottom),
		gg.Pt(left, top),
	}

	c := gg.Pt(float64(center.X), float64(center.Y))
	points := make([]sdl.Point, len(corners))
	for i, corner := range corners {
		if angle != 0 {
			corner = corner.Sub(c).Rotate(angle * math.Pi / 180).Add(c)
		}
		points[i] = sdl.Point{X: int32(math.Round(corner.X)), Y: int32(math.Round(corner.Y))}
	}
	return points
}

func (*Backend) CanRotate() bool {
	return true
}

func (p *Backend) Clear() error {
	if p.Destroyed() {
		return tiledraw.ErrDestroyed
	}
	p.drawn = 0
	if err := p.renderer.SetDrawColor(0, 0, 0, 0); err != nil {
		return err
	}
	return p.renderer.Clear()
}

// Present shows the frame drawn since the last Clear.
func (p *Backend) Present() error {
	if p.Destroyed() {
		return tiledraw.ErrDestroyed
	}
	p.renderer.Present()
	return nil
}

// Resize sets the window to the container size.
func (p *Backend) Resize() error {
	if p.Destroyed() {
		return tiledraw.ErrDestroyed
	}
	size := p.Viewport().ContainerSize()
	p.window.SetSize(int32(math.Round(size.X)), int32(math.Round(size.Y)))
	p.Log().WithField("surface", p.SurfaceSize()).Debug("Window resized")
	return nil
}

func (p *Backend) Destroy() {
	if !p.MarkDestroyed() {
		return
	}
	p.renderer.Destroy()
	p.window.Destroy()
	p.renderer = nil
	p.window = nil
}

func (p *Backend) SetImageSmoothingEnabled(enabled bool) {
	p.smoothing = enabled
}

func (p *Backend) rotation() float64 {
	if rotator, ok := p.Viewport().(tiledraw.Rotator); ok {
		return rotator.Rotation()
	}
	return 0
}

func (p *Backend) surfaceCenter() sdl.Point {
	w, h, err := p.renderer.GetOutputSize()
	if err != nil {
		size := p.SurfaceSize()
		w, h = int32(size.X), int32(size.Y)
	}
	return sdl.Point{X: w / 2, Y: h / 2}
}

func toSDLRect(r tiledraw.Rect) sdl.Rect {
	bounds := image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)),
		int(math.Round(r.Y+r.Height)),
	)
	return sdl.Rect{
		X: int32(bounds.Min.X),
		Y: int32(bounds.Min.Y),
		W: int32(bounds.Dx()),
		H: int32(bounds.Dy()),
	}
}

var (
	_ tiledraw.Backend   = (*Backend)(nil)
	_ tiledraw.Presenter = (*Backend)(nil)
	_ tiledraw.Resizer   = (*Backend)(nil)
)
