package tiledraw

import (
	"image/color"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#f00", color.NRGBA{0xFF, 0, 0, 0xFF}},
		{"#F80", color.NRGBA{0xFF, 0x88, 0, 0xFF}},
		{"#00ff00", color.NRGBA{0, 0xFF, 0, 0xFF}},
		{"#0000ff80", color.NRGBA{0, 0, 0xFF, 0x80}},
		{"red", colornames.Red},
		{"  SteelBlue ", colornames.Steelblue},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#", "#12345", "#zzzzzz", "notacolor"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestParseGridColorsSkipsInvalid(t *testing.T) {
	logger, hook := test.NewNullLogger()
	SetLogger(logger)
	defer SetLogger(nil)

	colors := ParseGridColors([]string{"red", "bogus", "#00ff00"})

	assert.Equal(t, []color.Color{colornames.Red, color.NRGBA{0, 0xFF, 0, 0xFF}}, colors)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
