package tiledraw

type drawTiledImageOperation struct {
	img TiledImage
}

func (o *drawTiledImageOperation) Draw(backend Backend) error {
	return backend.Draw(o.img)
}

// NewDrawTiledImageOperation creates an operation to draw the tiled image.
func NewDrawTiledImageOperation(img TiledImage) DrawOperation {
	return &drawTiledImageOperation{img: img}
}
