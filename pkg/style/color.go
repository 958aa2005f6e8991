// Package style parses the CSS-flavored property values that design specs
// carry: colors, font weight and style, text alignment, decoration, and
// transform keywords.
package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB color with a fractional alpha.
type Color struct {
	R, G, B uint8
	A       float64
}

var namedColors = map[string]Color{
	"red":         {255, 0, 0, 1},
	"green":       {0, 128, 0, 1},
	"blue":        {0, 0, 255, 1},
	"yellow":      {255, 255, 0, 1},
	"cyan":        {0, 255, 255, 1},
	"magenta":     {255, 0, 255, 1},
	"white":       {255, 255, 255, 1},
	"black":       {0, 0, 0, 1},
	"gray":        {128, 128, 128, 1},
	"grey":        {128, 128, 128, 1},
	"orange":      {255, 165, 0, 1},
	"purple":      {128, 0, 128, 1},
	"pink":        {255, 192, 203, 1},
	"brown":       {165, 42, 42, 1},
	"lime":        {0, 255, 0, 1},
	"navy":        {0, 0, 128, 1},
	"teal":        {0, 128, 128, 1},
	"silver":      {192, 192, 192, 1},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a color value: #RGB, #RRGGBB, #RRGGBBAA, rgb(...),
// rgba(...), or a named color.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, false
	}
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunc(s)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	switch len(hex) {
	case 3:
		// #abc expands to #aabbcc
		var expanded [6]byte
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded[:])
	case 6, 8:
	default:
		return Color{}, false
	}

	v, err := strconv.ParseUint(hex[:6], 16, 32)
	if err != nil {
		return Color{}, false
	}
	c := Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 16)
		if err != nil {
			return Color{}, false
		}
		c.A = float64(a) / 255.0
	}
	return c, true
}

func parseRGBFunc(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close < open {
		return Color{}, false
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}

	var chans [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, false
		}
		chans[i] = uint8(v)
	}
	c := Color{R: chans[0], G: chans[1], B: chans[2], A: 1}
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, false
		}
		c.A = a
	}
	return c, true
}

// CSS returns the color formatted for a stylesheet value.
func (c Color) CSS() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}
