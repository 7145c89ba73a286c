package tiledraw

type clearOperation struct{}

func (clearOperation) Draw(backend Backend) error {
	return backend.Clear()
}

// NewClearOperation creates an operation that clears the whole surface.
func NewClearOperation() DrawOperation {
	return clearOperation{}
}
