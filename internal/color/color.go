// Package color models an editable color literal. Output keeps the
// notation family of the literal it was parsed from where it can.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

var hex8 = regexp.MustCompile(`(?i)^#[0-9a-f]{8}$`)

// Color is a parsed color with the literal it came from.
type Color struct {
	csscolorparser.Color
	// Original is the literal the color was read from.
	Original string
}

// Parse reads any CSS color csscolorparser understands, including named
// colors. Keywords such as currentcolor have no fixed value and fail.
func Parse(literal string) (*Color, bool) {
	lit := strings.TrimSpace(literal)
	parsed, err := csscolorparser.Parse(lit)
	if err != nil {
		return nil, false
	}
	return &Color{Color: parsed, Original: lit}, true
}

// FromRGBA builds a color from channels in [0, 1], rendered in the
// notation of original.
func FromRGBA(r, g, b, a float64, original string) *Color {
	return &Color{
		Color:    csscolorparser.Color{R: clamp(r), G: clamp(g), B: clamp(b), A: clamp(a)},
		Original: strings.TrimSpace(original),
	}
}

// Bytes returns the red, green and blue channels as 0-255 values.
func (c *Color) Bytes() (r, g, b uint8) {
	return channel(c.R), channel(c.G), channel(c.B)
}

// Hex renders the color as #rrggbb, ignoring alpha.
func (c *Color) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// HasAlpha reports whether the color is not fully opaque.
func (c *Color) HasAlpha() bool {
	return c.A < 1
}

// Recompose renders the color. rgb()/rgba() literals stay in functional
// notation, 8-digit hex literals stay 8-digit hex, and everything else
// becomes #rrggbb, or rgba() when the color is translucent.
func (c *Color) Recompose() string {
	orig := strings.ToLower(c.Original)
	switch {
	case strings.HasPrefix(orig, "rgb"):
		return c.rgb()
	case hex8.MatchString(orig):
		return c.Hex() + fmt.Sprintf("%02x", channel(c.A))
	case c.HasAlpha():
		return c.rgb()
	}
	return c.Hex()
}

func (c *Color) rgb() string {
	r, g, b := c.Bytes()
	if c.HasAlpha() {
		return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, c.A)
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp(v) * 255))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
