//go:build linux

// Package kmsdrm provides a tiledraw backend that scans out through Linux
// KMS/DRM dumb framebuffers, for devices without a window system.
//
// Importing the package registers the "kmsdrm" backend using card 0 and
// RGB16 framebuffers.
package kmsdrm

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	drm "github.com/rmcsoft/godrm"
	"github.com/rmcsoft/godrm/mode"
	"github.com/sirupsen/logrus"

	"github.com/rmcsoft/tiledraw"
)

// Config selects the DRM card and framebuffer format.
type Config struct {
	CardNum   int
	PixFormat PixelFormat
}

// DefaultConfig is used by the registered factory.
var DefaultConfig = Config{CardNum: 0, PixFormat: RGB16}

func init() {
	tiledraw.Register(tiledraw.BackendKMSDRM, func(opts tiledraw.Options) (tiledraw.Backend, error) {
		backend, err := NewBackend(opts, DefaultConfig)
		if err != nil {
			return nil, err
		}
		return backend, nil
	})
}

// dumbBuffer is a scanout framebuffer mapped into our address space.
type dumbBuffer struct {
	handle uint32
	fbID   uint32
	pixels []byte
	pitch  int
}

// allocDumbBuffer creates a dumb buffer of the given size, registers it as a
// framebuffer and maps it for writing.
func allocDumbBuffer(card *os.File, width, height uint16, format PixelFormat) (_ *dumbBuffer, err error) {
	bpp := GetPixelSize(format) * 8
	info, err := mode.CreateFB(card, width, height, uint32(bpp))
	if err != nil {
		return nil, fmt.Errorf("kmsdrm: create dumb buffer: %w", err)
	}

	buf := &dumbBuffer{handle: info.Handle, pitch: int(info.Pitch)}
	defer func() {
		if err != nil {
			buf.free(card)
		}
	}()

	buf.fbID, err = mode.AddFB(card, width, height, uint8(GetPixelDepth(format)), uint8(bpp), info.Pitch, info.Handle)
	if err != nil {
		return nil, fmt.Errorf("kmsdrm: add framebuffer: %w", err)
	}
	offset, err := mode.MapDumb(card, info.Handle)
	if err != nil {
		return nil, fmt.Errorf("kmsdrm: map dumb buffer: %w", err)
	}
	buf.pixels, err = syscall.Mmap(int(card.Fd()), int64(offset), int(info.Size),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("kmsdrm: mmap: %w", err)
	}
	return buf, nil
}

// free undoes whatever part of allocDumbBuffer succeeded.
func (b *dumbBuffer) free(card *os.File) {
	if b.pixels != nil {
		syscall.Munmap(b.pixels)
		b.pixels = nil
	}
	if b.fbID != 0 {
		mode.RmFB(card, b.fbID)
		b.fbID = 0
	}
	if b.handle != 0 {
		mode.DestroyDumb(card, b.handle)
		b.handle = 0
	}
}

// modeDisplay derives the pixel density from the display mode: the mode
// width divided by the container's logical width.
type modeDisplay struct {
	width    int
	viewport tiledraw.Viewport
}

func (d modeDisplay) PixelDensity() float64 {
	logical := d.viewport.ContainerSize().X
	if logical <= 0 {
		return 1
	}
	return float64(d.width) / logical
}

// Backend rasterizes with the image backend and copies each finished frame
// into one of two dumb framebuffers, flipping on Present.
type Backend struct {
	*tiledraw.ImageBackend

	card    *os.File
	modeset mode.Modeset

	pixFormat PixelFormat

	buffers []*dumbBuffer
	front   int
}

// NewBackend opens the card, picks its first modeset and allocates two
// framebuffers. When opts has no Display, the density maps the container
// width onto the mode width.
func NewBackend(opts tiledraw.Options, config Config) (*Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	card, err := drm.OpenCard(config.CardNum)
	if err != nil {
		return nil, fmt.Errorf("kmsdrm: open card %v: %w", config.CardNum, err)
	}

	backend := &Backend{
		card:      card,
		pixFormat: config.PixFormat,
	}
	defer func() {
		if err != nil {
			backend.release()
		}
	}()

	if !drm.HasDumbBuffer(card) {
		err = fmt.Errorf("kmsdrm: drm device %v does not support dumb buffers", config.CardNum)
		return nil, err
	}

	simpleMSet, err := mode.NewSimpleModeset(card)
	if err != nil {
		return nil, err
	}
	if len(simpleMSet.Modesets) == 0 {
		err = errors.New("kmsdrm: modesets is empty")
		return nil, err
	}
	backend.modeset = simpleMSet.Modesets[0]

	if opts.Display == nil {
		opts.Display = modeDisplay{width: int(backend.modeset.Width), viewport: opts.Viewport}
	}
	imageBackend, err := tiledraw.NewImageBackend(opts)
	if err != nil {
		return nil, err
	}
	imageBackend.Log().WithFields(logrus.Fields{
		"width":  backend.modeset.Width,
		"height": backend.modeset.Height,
	}).Debug("Using modeset")

	for len(backend.buffers) < 2 {
		var buf *dumbBuffer
		buf, err = allocDumbBuffer(card, backend.modeset.Width, backend.modeset.Height, config.PixFormat)
		if err != nil {
			return nil, err
		}
		backend.buffers = append(backend.buffers, buf)
	}

	backend.ImageBackend = imageBackend
	return backend, nil
}

// Present copies the surface into the front framebuffer and scans it out.
func (p *Backend) Present() error {
	if p.Destroyed() {
		return tiledraw.ErrDestroyed
	}

	buf := p.buffers[p.front]
	convertRows(buf.pixels, buf.pitch,
		int(p.modeset.Width), int(p.modeset.Height), p.pixFormat, p.Image())

	err := mode.SetCrtc(p.card, p.modeset.Crtc, buf.fbID,
		0, 0, &p.modeset.Conn, 1, &p.modeset.Mode)

	p.front = (p.front + 1) % len(p.buffers)
	return err
}

func (p *Backend) Destroy() {
	if p.Destroyed() {
		return
	}
	p.ImageBackend.Destroy()
	p.release()
}

func (p *Backend) release() {
	if p.card == nil {
		return
	}
	for _, buf := range p.buffers {
		buf.free(p.card)
	}
	p.buffers = nil

	p.card.Close()
	p.card = nil
}

var (
	_ tiledraw.Backend   = (*Backend)(nil)
	_ tiledraw.Presenter = (*Backend)(nil)
)
