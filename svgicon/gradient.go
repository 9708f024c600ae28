package svgicon

import (
	"encoding/xml"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// GradientUnits selects the coordinate space of gradient geometry.
type GradientUnits byte

// Gradient units, ObjectBoundingBox meaning fractions of the painted
// path extent.
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod selects how a gradient continues past its edges.
type SpreadMethod byte

// Spread methods, pad being the svg default.
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop is one color stop along a gradient ramp. A nil StopColor
// stands for the current color, resolved when the gradient is used.
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Gradient is the parsed form of a linearGradient or radialGradient
// element.
type Gradient struct {
	Direction gradientDirection
	Stops     []GradStop
	Bounds    Bounds
	Matrix    Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

// linear or radial
type gradientDirection interface {
	isRadial() bool
}

// Linear holds the x1, y1, x2, y2 direction of a linear gradient.
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// Radial holds the cx, cy, fx, fy, r, fr geometry of a radial
// gradient.
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// getColor returns the first usable color of the pattern, or black.
func getColor(clr Pattern) color.Color {
	switch c := clr.(type) {
	case Gradient:
		for _, s := range c.Stops {
			if s.StopColor != nil {
				return s.StopColor
			}
		}
	case PlainColor:
		return c.NRGBA
	}
	return colornames.Black
}

// localize returns a copy of the gradient with nil stop colors
// resolved against the current pattern. The stops are copied so the
// shared gradient under defs stays untouched.
func (g Gradient) localize(current Pattern) Gradient {
	grad := g
	grad.Stops = append([]GradStop(nil), g.Stops...)
	for i, s := range grad.Stops {
		if s.StopColor == nil {
			grad.Stops[i].StopColor = getColor(current)
		}
	}
	return grad
}

// readGradURL resolves a url(#id) paint value against the gradients
// seen so far, current standing in for stops without an explicit
// color.
func (c *iconCursor) readGradURL(v string, current Pattern) (grad Gradient, ok bool) {
	if !strings.HasPrefix(v, "url(") || !strings.HasSuffix(v, ")") {
		return grad, false
	}
	ref := strings.TrimSpace(v[4 : len(v)-1])
	if !strings.HasPrefix(ref, "#") {
		return grad, false
	}
	g, ok := c.icon.grads[ref[1:]]
	if ok {
		grad = g.localize(current)
	}
	return grad, ok
}

// readGradAttr reads the attributes shared by linear and radial
// gradient elements.
func (c *iconCursor) readGradAttr(attr xml.Attr) (err error) {
	switch attr.Name.Local {
	case "gradientTransform":
		c.grad.Matrix, err = c.parseTransform(attr.Value)
	case "gradientUnits":
		switch strings.TrimSpace(attr.Value) {
		case "userSpaceOnUse":
			c.grad.Units = UserSpaceOnUse
		case "objectBoundingBox":
			c.grad.Units = ObjectBoundingBox
		}
	case "spreadMethod":
		switch strings.TrimSpace(attr.Value) {
		case "pad":
			c.grad.Spread = PadSpread
		case "reflect":
			c.grad.Spread = ReflectSpread
		case "repeat":
			c.grad.Spread = RepeatSpread
		}
	}
	return
}
