package svgicon

import (
	"errors"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown command")
	errZeroLengthID   = errors.New("zero length id")
)

// Pattern groups the kinds of fill and stroke sources:
// plain colors and gradients.
type Pattern interface {
	isPattern()
}

// PlainColor is a solid fill or stroke color.
type PlainColor struct {
	color.NRGBA
}

// NewPlainColor builds an opaque color from its components.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{NRGBA: color.NRGBA{R: r, G: g, B: b, A: a}}
}

func (PlainColor) isPattern() {}
func (Gradient) isPattern()   {}

// optionnalColor is a color which may be invalid, used
// for the "none" fill and stroke values.
type optionnalColor struct {
	color PlainColor
	valid bool
}

// asPattern returns nil for an invalid color
func (o optionnalColor) asPattern() Pattern {
	if !o.valid {
		return nil
	}
	return o.color
}

// asColor returns nil for an invalid color
func (o optionnalColor) asColor() color.Color {
	if !o.valid {
		return nil
	}
	return o.color
}

// parseColorValue reads a component of an rgb() color,
// which may be given as a percentage.
func parseColorValue(v string) (uint8, error) {
	if strings.HasSuffix(v, "%") {
		n, err := strconv.Atoi(strings.TrimSuffix(v, "%"))
		if err != nil {
			return 0, err
		}
		if n > 100 || n < 0 {
			return 0, errParamMismatch
		}
		return uint8(255 * n / 100), nil
	}
	n, err := strconv.Atoi(v)
	if n > 255 {
		n = 255
	} else if n < 0 {
		n = 0
	}
	return uint8(n), err
}

// parseSVGColor parses an SVG color string in all forms
// including all SVG1.1 names, obtained from the colornames package
func parseSVGColor(colorStr string) (optionnalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	if strings.HasPrefix(v, "url(") {
		// gradient references are resolved by the caller;
		// a paint server we cannot resolve falls back to black
		return optionnalColor{color: NewPlainColor(0, 0, 0, 255), valid: true}, nil
	}
	switch v {
	case "none", "":
		// nil signals that the function (fill or stroke) is off
		return optionnalColor{}, nil
	default:
		cn, ok := colornames.Map[v]
		if ok {
			return optionnalColor{color: NewPlainColor(cn.R, cn.G, cn.B, cn.A), valid: true}, nil
		}
	}
	cStr := v
	switch {
	case strings.HasPrefix(v, "rgb("):
		cStr = strings.TrimSuffix(strings.TrimPrefix(v, "rgb("), ")")
		vals := strings.Split(cStr, ",")
		if len(vals) != 3 {
			return optionnalColor{}, errParamMismatch
		}
		var cvals [3]uint8
		var err error
		for i, v := range vals {
			cvals[i], err = parseColorValue(strings.TrimSpace(v))
			if err != nil {
				return optionnalColor{}, err
			}
		}
		return optionnalColor{color: NewPlainColor(cvals[0], cvals[1], cvals[2], 255), valid: true}, nil
	case strings.HasPrefix(v, "#"):
		cStr = strings.TrimPrefix(v, "#")
		if len(cStr) == 3 {
			// expand the short form: #cab to #ccaabb
			cStr = string([]byte{cStr[0], cStr[0], cStr[1], cStr[1], cStr[2], cStr[2]})
		}
		if len(cStr) != 6 {
			return optionnalColor{}, errParamMismatch
		}
		var cvals [3]uint8
		for i := range cvals {
			n, err := strconv.ParseUint(cStr[2*i:2*i+2], 16, 8)
			if err != nil {
				return optionnalColor{}, err
			}
			cvals[i] = uint8(n)
		}
		return optionnalColor{color: NewPlainColor(cvals[0], cvals[1], cvals[2], 255), valid: true}, nil
	}
	return optionnalColor{}, errParamMismatch
}
