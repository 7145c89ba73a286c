package tiledraw

// NullBackend accepts every call and draws nothing.
type NullBackend struct {
	*Base
	smoothing bool
}

// NewNullBackend returns null backend
func NewNullBackend(opts Options) (*NullBackend, error) {
	base, err := NewBase(BackendNull, opts)
	if err != nil {
		return nil, err
	}
	return &NullBackend{Base: base, smoothing: true}, nil
}

func (b *NullBackend) Draw(img TiledImage) error {
	if b.Destroyed() {
		return ErrDestroyed
	}
	return nil
}

func (*NullBackend) CanRotate() bool {
	return false
}

func (b *NullBackend) Clear() error {
	if b.Destroyed() {
		return ErrDestroyed
	}
	return nil
}

func (b *NullBackend) Destroy() {
	b.MarkDestroyed()
}

func (b *NullBackend) SetImageSmoothingEnabled(enabled bool) {
	b.smoothing = enabled
}

var _ Backend = (*NullBackend)(nil)
