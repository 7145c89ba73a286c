package tiledraw

import "fmt"

// Funcs assembles a backend from functions, for hosts that implement their
// drawing with closures rather than a dedicated type. Every field is
// required.
type Funcs struct {
	Draw                     func(img TiledImage) error
	CanRotate                func() bool
	Clear                    func() error
	Destroy                  func()
	SetImageSmoothingEnabled func(enabled bool)
}

// missing returns the name of the first operation left unset.
func (f Funcs) missing() string {
	switch {
	case f.Draw == nil:
		return "Draw"
	case f.CanRotate == nil:
		return "CanRotate"
	case f.Clear == nil:
		return "Clear"
	case f.Destroy == nil:
		return "Destroy"
	case f.SetImageSmoothingEnabled == nil:
		return "SetImageSmoothingEnabled"
	}
	return ""
}

type funcBackend struct {
	*Base
	funcs Funcs
}

// New builds a backend from funcs. It fails, returning no backend, when opts
// lacks a required collaborator or funcs lacks a required operation.
func New(opts Options, funcs Funcs) (Backend, error) {
	if op := funcs.missing(); op != "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingOperation, op)
	}

	base, err := NewBase("func", opts)
	if err != nil {
		return nil, err
	}
	return &funcBackend{Base: base, funcs: funcs}, nil
}

func (b *funcBackend) Draw(img TiledImage) error {
	if b.Destroyed() {
		return ErrDestroyed
	}
	return b.funcs.Draw(img)
}

func (b *funcBackend) CanRotate() bool {
	return b.funcs.CanRotate()
}

func (b *funcBackend) Clear() error {
	if b.Destroyed() {
		return ErrDestroyed
	}
	return b.funcs.Clear()
}

func (b *funcBackend) Destroy() {
	if b.MarkDestroyed() {
		b.funcs.Destroy()
	}
}

func (b *funcBackend) SetImageSmoothingEnabled(enabled bool) {
	b.funcs.SetImageSmoothingEnabled(enabled)
}
