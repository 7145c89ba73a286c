package tiledraw

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"
)

const defaultFrameRate = 25

// World supplies the tiled images visible at the current tick, back to
// front.
type World interface {
	VisibleItems() []TiledImage
}

// WorldFunc adapts a function to World.
type WorldFunc func() []TiledImage

// VisibleItems implements World.
func (f WorldFunc) VisibleItems() []TiledImage {
	return f()
}

type surfaceSizer interface {
	SurfaceSize() image.Point
}

// RenderLoop drives a backend one tick at a time. Every tick clears the
// surface, draws each visible item, and presents if the backend needs it.
// When the backend can be resized, the loop also watches the surface size
// and resizes before drawing.
type RenderLoop struct {
	backend   Backend
	world     World
	frameRate int

	tickMutex sync.Mutex
	lastSize  image.Point

	mutex     sync.Mutex
	isRunning bool
	stop      chan struct{}
	done      chan struct{}

	droppedFrameCount int
}

// LoopOption configures a RenderLoop.
type LoopOption func(*RenderLoop)

// WithFrameRate sets the number of ticks per second. Values below 1 are
// ignored.
func WithFrameRate(fps int) LoopOption {
	return func(loop *RenderLoop) {
		if fps > 0 {
			loop.frameRate = fps
		}
	}
}

// NewRenderLoop creates a render loop for backend drawing the items of world.
func NewRenderLoop(backend Backend, world World, opts ...LoopOption) *RenderLoop {
	loop := &RenderLoop{
		backend:   backend,
		world:     world,
		frameRate: defaultFrameRate,
	}
	for _, opt := range opts {
		opt(loop)
	}
	if sizer, ok := backend.(surfaceSizer); ok {
		loop.lastSize = sizer.SurfaceSize()
	}
	return loop
}

// Tick runs a single tick synchronously.
func (loop *RenderLoop) Tick() error {
	loop.tickMutex.Lock()
	defer loop.tickMutex.Unlock()

	if err := loop.resizeIfNeeded(); err != nil {
		return err
	}

	frame := NewFrame(loop.world.VisibleItems())
	if err := frame.Draw(loop.backend); err != nil {
		return err
	}

	if presenter, ok := loop.backend.(Presenter); ok {
		return presenter.Present()
	}
	return nil
}

func (loop *RenderLoop) resizeIfNeeded() error {
	resizer, ok := loop.backend.(Resizer)
	if !ok {
		return nil
	}
	sizer, ok := loop.backend.(surfaceSizer)
	if !ok {
		return nil
	}

	size := sizer.SurfaceSize()
	if size == loop.lastSize {
		return nil
	}
	if err := resizer.Resize(); err != nil {
		return err
	}
	loop.lastSize = size
	return nil
}

// DroppedFrames returns the number of ticks skipped because the loop fell
// behind.
func (loop *RenderLoop) DroppedFrames() int {
	loop.mutex.Lock()
	defer loop.mutex.Unlock()
	return loop.droppedFrameCount
}

// Start runs ticks on a new goroutine until Stop is called or ctx is done.
func (loop *RenderLoop) Start(ctx context.Context) error {
	loop.mutex.Lock()
	defer loop.mutex.Unlock()

	if loop.isRunning {
		return ErrLoopRunning
	}

	loop.isRunning = true
	loop.stop = make(chan struct{})
	loop.done = make(chan struct{})
	go loop.run(ctx, loop.stop, loop.done)
	return nil
}

// Stop stops the loop and waits for the running tick to finish.
func (loop *RenderLoop) Stop() {
	loop.mutex.Lock()
	if !loop.isRunning {
		loop.mutex.Unlock()
		return
	}
	loop.isRunning = false
	close(loop.stop)
	done := loop.done
	loop.mutex.Unlock()

	<-done
}

// IsRunning reports whether the loop goroutine is active.
func (loop *RenderLoop) IsRunning() bool {
	loop.mutex.Lock()
	defer loop.mutex.Unlock()
	return loop.isRunning
}

func (loop *RenderLoop) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)
	defer loop.finish(stop)

	log := Logger().WithField("fps", loop.frameRate)
	log.Debug("Render loop started")
	defer log.Debug("Render loop stopped")

	showFrameDuration := time.Second / time.Duration(loop.frameRate)
	showNextFrameTime := time.Now()
	for {
		showNextFrameTime = showNextFrameTime.Add(showFrameDuration)
		if time.Until(showNextFrameTime) <= 0 {
			loop.mutex.Lock()
			loop.droppedFrameCount++
			dropped := loop.droppedFrameCount
			loop.mutex.Unlock()
			if dropped%100 == 0 {
				log.WithField("dropped", dropped).Warn("Render loop is dropping frames")
			}
			continue
		}

		if err := loop.Tick(); err != nil {
			if errors.Is(err, ErrDestroyed) {
				return
			}
			log.WithError(err).Error("Render tick failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-time.After(time.Until(showNextFrameTime)):
		}
	}
}

// finish marks the loop stopped when it ends on its own.
func (loop *RenderLoop) finish(stop chan struct{}) {
	loop.mutex.Lock()
	defer loop.mutex.Unlock()

	if loop.isRunning && loop.stop == stop {
		loop.isRunning = false
	}
}
