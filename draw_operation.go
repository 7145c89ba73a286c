package tiledraw

// DrawOperation is interface to encapsulate one backend call of a tick
type DrawOperation interface {
	Draw(backend Backend) error
}
