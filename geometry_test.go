package tiledraw

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect(t *testing.T) {
	r := R(1.5, 2.25, 10, 4.5)

	assert.Equal(t, Pt(1.5, 2.25), r.TopLeft())
	assert.Equal(t, Pt(10, 4.5), r.Size())
	assert.Equal(t, Pt(6.5, 4.5), r.Center())
	assert.Equal(t, image.Rect(1, 2, 12, 7), r.Bounds())
	assert.Equal(t, "[1.5,2.25 10x4.5]", r.String())
}

func TestPoint(t *testing.T) {
	p := Pt(1, 2)

	assert.Equal(t, Pt(4, 6), p.Add(Pt(3, 4)))
	assert.Equal(t, Pt(-2, -2), p.Sub(Pt(3, 4)))
	assert.Equal(t, Pt(2.5, 5), p.Mul(2.5))
}
