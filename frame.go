package tiledraw

// Frame contains the operations of one render-loop tick.
type Frame struct {
	DrawOperations []DrawOperation
}

// NewFrame builds the frame for a tick: one clear, then one draw per item
// in the given order.
func NewFrame(items []TiledImage) *Frame {
	ops := make([]DrawOperation, 0, len(items)+1)
	ops = append(ops, NewClearOperation())
	for _, item := range items {
		ops = append(ops, NewDrawTiledImageOperation(item))
	}
	return &Frame{DrawOperations: ops}
}

// Draw plays the frame on the backend, stopping at the first error.
func (frame *Frame) Draw(backend Backend) error {
	for _, drawOperation := range frame.DrawOperations {
		err := drawOperation.Draw(backend)
		if err != nil {
			return err
		}
	}
	return nil
}
