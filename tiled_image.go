package tiledraw

import "image"

// Tile is one loaded tile of a tiled image.
type Tile struct {
	// Bounds is the area the tile covers, in viewport space.
	Bounds Rect
	Image  image.Image

	Level int
	X     int
	Y     int
}

// TiledImage is the drawable item handed to Backend.Draw.
type TiledImage interface {
	// Tiles returns the tiles to draw, back to front.
	Tiles() []Tile

	// Opacity is in [0, 1].
	Opacity() float64
}

// TileSet is a TiledImage backed by a fixed list of tiles.
type TileSet struct {
	TileList []Tile
	Alpha    float64
}

// NewTileSet returns a fully opaque TileSet.
func NewTileSet(tiles ...Tile) *TileSet {
	return &TileSet{TileList: tiles, Alpha: 1}
}

// Tiles implements TiledImage.
func (s *TileSet) Tiles() []Tile {
	return s.TileList
}

// Opacity implements TiledImage.
func (s *TileSet) Opacity() float64 {
	return s.Alpha
}
