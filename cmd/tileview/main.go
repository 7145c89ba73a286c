package main

import (
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/rmcsoft/tiledraw"
	_ "github.com/rmcsoft/tiledraw/kmsdrm"
	_ "github.com/rmcsoft/tiledraw/sdl"
)

const frameRate = 25

func parseCmd() options {
	opts := defaultOptions()
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if opts.Config == "" {
		if err := opts.validate(); err != nil {
			logrus.WithError(err).Fatal("Invalid options")
		}
		return opts
	}

	// Flags given on the command line win over the file.
	fileOpts, err := loadConfig(opts.Config)
	if err != nil {
		logrus.WithError(err).Fatal("Could not load config")
	}
	if _, err := flags.NewParser(&fileOpts, flags.Default).Parse(); err != nil {
		os.Exit(1)
	}
	if err := fileOpts.validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid options")
	}
	return fileOpts
}

func loadImage(opts options) (image.Image, error) {
	if opts.Image == "" {
		return checkerboard(1024, 768, 64), nil
	}

	file, err := os.Open(opts.Image)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}

func checkerboard(width, height, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	light := color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	dark := color.RGBA{0x40, 0x60, 0x90, 0xFF}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}

// splitTiles cuts img into tiles and places them in viewport space, where
// the image is 1 unit wide.
func splitTiles(img image.Image, tileSize int) *tiledraw.TileSet {
	bounds := img.Bounds()
	unit := 1 / float64(bounds.Dx())

	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})

	tiles := make([]tiledraw.Tile, 0)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += tileSize {
		for x := bounds.Min.X; x < bounds.Max.X; x += tileSize {
			r := image.Rect(x, y, x+tileSize, y+tileSize).Intersect(bounds)
			tile := tiledraw.Tile{
				Bounds: tiledraw.R(
					float64(r.Min.X-bounds.Min.X)*unit,
					float64(r.Min.Y-bounds.Min.Y)*unit,
					float64(r.Dx())*unit,
					float64(r.Dy())*unit,
				),
				Image: img,
				X:     (x - bounds.Min.X) / tileSize,
				Y:     (y - bounds.Min.Y) / tileSize,
			}
			if ok {
				tile.Image = sub.SubImage(r)
			}
			tiles = append(tiles, tile)
		}
	}
	return tiledraw.NewTileSet(tiles...)
}

// backendOptions builds the backend options. Without an explicit density the
// Display is left nil, so each backend uses its own: the sdl window, the
// kmsdrm mode, or 1.
func backendOptions(opts options, viewport tiledraw.Viewport) tiledraw.Options {
	backendOpts := tiledraw.Options{
		Viewer:         viewerID("tileview"),
		Viewport:       viewport,
		Container:      containerID("main"),
		DebugGridColor: opts.Grid,
	}
	if opts.Density > 0 {
		backendOpts.Display = tiledraw.FixedDensity(opts.Density)
	}
	return backendOpts
}

func makeBackend(opts options, viewport tiledraw.Viewport) (tiledraw.Backend, error) {
	backendOpts := backendOptions(opts, viewport)
	if opts.Backend == "default" {
		return tiledraw.CreateDefault(backendOpts)
	}
	return tiledraw.Create(opts.Backend, backendOpts)
}

func writeOutput(path string, backend tiledraw.Backend) error {
	surface, ok := backend.(interface{ Image() *image.RGBA })
	if !ok {
		logrus.WithField("output", path).Warn("Backend has no image surface, nothing written")
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, surface.Image()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func run(backend tiledraw.Backend, world tiledraw.World, frames int) error {
	loop := tiledraw.NewRenderLoop(backend, world, tiledraw.WithFrameRate(frameRate))
	if frames <= 1 {
		return loop.Tick()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, time.Duration(frames)*time.Second/frameRate)
	defer cancelTimeout()

	if err := loop.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	loop.Stop()

	logrus.WithField("dropped", loop.DroppedFrames()).Info("Render loop finished")
	return nil
}

func main() {
	opts := parseCmd()
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	img, err := loadImage(opts)
	if err != nil {
		logrus.WithError(err).Fatal("Could not load image")
	}
	tileSet := splitTiles(img, opts.TileSize)

	size := img.Bounds().Size()
	viewport := &fitViewport{
		bounds:    tiledraw.R(0, 0, 1, float64(size.Y)/float64(size.X)),
		container: tiledraw.Pt(opts.Width, opts.Height),
		rotation:  opts.Rotation,
	}

	backend, err := makeBackend(opts, viewport)
	if err != nil {
		logrus.WithError(err).Fatal("Could not create backend")
	}
	defer backend.Destroy()
	backend.SetImageSmoothingEnabled(!opts.NoSmoothing)

	logrus.WithFields(logrus.Fields{
		"available": tiledraw.Available(),
		"tiles":     len(tileSet.Tiles()),
		"rotate":    backend.CanRotate(),
	}).Info("Rendering")

	world := tiledraw.WorldFunc(func() []tiledraw.TiledImage {
		return []tiledraw.TiledImage{tileSet}
	})
	if err := run(backend, world, opts.Frames); err != nil {
		logrus.WithError(err).Fatal("Rendering failed")
	}

	if opts.Output != "" {
		if err := writeOutput(opts.Output, backend); err != nil {
			logrus.WithError(err).Fatal("Could not write output")
		}
	}
}
