package tiledraw

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS style colour: #rgb, #rrggbb, #rrggbbaa or a
// colour name such as "red".
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}

	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return nil, fmt.Errorf("tiledraw: unknown color name %q", s)
	}
	return c, nil
}

func parseHexColor(x string) (color.Color, error) {
	switch len(x) {
	case 3:
		// #rgb expands each digit: #f80 is #ff8800.
		x = string([]byte{x[0], x[0], x[1], x[1], x[2], x[2]})
	case 6, 8:
	default:
		return nil, fmt.Errorf("tiledraw: invalid hex color %q", "#"+x)
	}

	v, err := strconv.ParseUint(x, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("tiledraw: invalid hex color %q: %w", "#"+x, err)
	}
	if len(x) == 6 {
		v = v<<8 | 0xFF
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// ParseGridColors parses the debug grid colours. Invalid entries are logged
// and skipped.
func ParseGridColors(names []string) []color.Color {
	colors := make([]color.Color, 0, len(names))
	for _, name := range names {
		c, err := ParseColor(name)
		if err != nil {
			Logger().WithError(err).Warn("Ignoring debug grid color")
			continue
		}
		colors = append(colors, c)
	}
	return colors
}
