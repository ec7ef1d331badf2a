package graphicsstate

import (
	"fmt"
	"math"
)

// Color is an sRGB color in "#rrggbb" form, or None.
type Color string

const (
	Black Color = "#000000"
	White Color = "#ffffff"
	// None marks a paint that is not applied.
	None Color = "none"
)

// Gray converts a DeviceGray level to a Color.
func Gray(g float64) Color {
	return RGB(g, g, g)
}

// RGB converts DeviceRGB components in [0, 1] to a Color. Components are
// clamped and rounded to 8 bits.
func RGB(r, g, b float64) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b)))
}

// CMYK converts DeviceCMYK components with the naive (1-c)(1-k) formula.
func CMYK(c, m, y, k float64) Color {
	r, g, b := cmykToRGB(c, m, y, k)
	return RGB(r, g, b)
}

// cmykToRGB converts CMYK to RGB (approximate conversion)
func cmykToRGB(c, m, y, k float64) (r, g, b float64) {
	r = (1 - c) * (1 - k)
	g = (1 - m) * (1 - k)
	b = (1 - y) * (1 - k)
	return
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Components parses the color back into 8-bit channels. None and malformed
// values report false.
func (c Color) Components() (r, g, b uint8, ok bool) {
	if len(c) != 7 || c[0] != '#' {
		return 0, 0, 0, false
	}
	var v [3]uint8
	for i := range v {
		hi, ok1 := hexNibble(c[1+2*i])
		lo, ok2 := hexNibble(c[2+2*i])
		if !ok1 || !ok2 {
			return 0, 0, 0, false
		}
		v[i] = hi<<4 | lo
	}
	return v[0], v[1], v[2], true
}

// IsNone reports whether the color is empty or "none".
func (c Color) IsNone() bool {
	return c == None || c == ""
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
