// Package theme defines the named color sets substituted into icon assets.
//
// A Palette is immutable once built and safe for concurrent readers. The
// pipeline always receives it as an explicit dependency; there is no global
// theme state.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/khoshbin/icontint/utils"
)

// ErrInvalidColor is returned when a color literal cannot be parsed.
var ErrInvalidColor = errors.New("theme: invalid color literal")

// Color is an 8-bit RGBA theme color.
type Color struct {
	R, G, B, A uint8
}

// ParseColor parses "#rgb", "#rrggbb" and "#rrggbbaa" literals.
// The leading '#' may be omitted. Three digit forms duplicate each digit,
// per the CSS shorthand rule.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	channels := [4]uint8{0, 0, 0, 0xff}
	for i := 0; i*2 < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		channels[i] = uint8(v)
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// Hex renders the color as a lowercase "#rrggbb" value, the form substituted
// into fill and stroke attributes. Alpha is not part of the rendering.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA converts the color for use with the image packages.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Palette is a read-only set of named theme colors.
// The zero value is an empty palette.
type Palette struct {
	colors map[string]Color
}

// normalizeName maps the accepted spellings of a color name to the canonical
// registry key, so "ultra_marine" and "ultraMarine" address the same entry.
func normalizeName(name string) string {
	return utils.SnakeToCamel(strings.TrimSpace(name))
}

// NewPalette builds a palette from the given colors.
// The input map is copied and the names are normalized.
func NewPalette(colors map[string]Color) Palette {
	out := make(map[string]Color, len(colors))
	for name, c := range colors {
		out[normalizeName(name)] = c
	}
	return Palette{colors: out}
}

// ParsePalette builds a palette from hex color literals.
func ParsePalette(colors map[string]string) (Palette, error) {
	out := make(map[string]Color, len(colors))
	for name, literal := range colors {
		c, err := ParseColor(literal)
		if err != nil {
			return Palette{}, fmt.Errorf("color %q: %w", name, err)
		}
		out[normalizeName(name)] = c
	}
	return Palette{colors: out}, nil
}

// Lookup returns the color registered under name.
func (p Palette) Lookup(name string) (Color, bool) {
	c, ok := p.colors[normalizeName(name)]
	return c, ok
}

// Names returns the sorted color names of the palette.
func (p Palette) Names() []string {
	names := make([]string, 0, len(p.colors))
	for name := range p.colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of colors in the palette.
func (p Palette) Len() int {
	return len(p.colors)
}

// Default returns the built-in palette, so the pipeline renders sensibly
// with zero configuration.
func Default() Palette {
	return NewPalette(map[string]Color{
		"primary":   {0xfe, 0x5e, 0x00, 0xff},
		"secondary": {0x4b, 0x59, 0x64, 0xff},
		"accent":    {0x25, 0x9d, 0xab, 0xff},
		"success":   {0x43, 0xa0, 0x47, 0xff},
		"warning":   {0xff, 0xb3, 0x00, 0xff},
		"error":     {0xe5, 0x39, 0x35, 0xff},
		"info":      {0x1e, 0x88, 0xe5, 0xff},
		"light":     {0xf5, 0xf5, 0xf5, 0xff},
		"dark":      {0x21, 0x21, 0x21, 0xff},
	})
}
