package svgicon

import (
	"encoding/xml"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

// iconCursor carries the document level parsing state: the icon under
// construction, the style stack and the gradient and defs collectors.
// The embedded pathCursor compiles path data and shape geometry.
type iconCursor struct {
	pathCursor
	icon                                    *SvgIcon
	styleStack                              []PathStyle
	grad                                    *Gradient
	inTitleText, inDescText, inGrad, inDefs bool
	currentDef                              []definition
}

// definition is one element collected under a defs tag, replayed by use.
type definition struct {
	ID, Tag string
	Attrs   []xml.Attr
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

// readTransformAttr applies the transform command k, with its
// arguments already parsed into c.points, onto m.
func (c *iconCursor) readTransformAttr(m Matrix2D, k string) (Matrix2D, error) {
	switch k {
	case "rotate":
		switch len(c.points) {
		case 1:
			m = m.Rotate(c.points[0] * math.Pi / 180)
		case 3:
			m = m.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		default:
			return m, errParamMismatch
		}
	case "translate":
		switch len(c.points) {
		case 1:
			m = m.Translate(c.points[0], 0)
		case 2:
			m = m.Translate(c.points[0], c.points[1])
		default:
			return m, errParamMismatch
		}
	case "skewx":
		if len(c.points) != 1 {
			return m, errParamMismatch
		}
		m = m.SkewX(c.points[0] * math.Pi / 180)
	case "skewy":
		if len(c.points) != 1 {
			return m, errParamMismatch
		}
		m = m.SkewY(c.points[0] * math.Pi / 180)
	case "scale":
		switch len(c.points) {
		case 1:
			// an omitted second factor means uniform scaling
			m = m.Scale(c.points[0], c.points[0])
		case 2:
			m = m.Scale(c.points[0], c.points[1])
		default:
			return m, errParamMismatch
		}
	case "matrix":
		if len(c.points) != 6 {
			return m, errParamMismatch
		}
		m = m.Mult(Matrix2D{
			A: c.points[0], B: c.points[1],
			C: c.points[2], D: c.points[3],
			E: c.points[4], F: c.points[5],
		})
	default:
		return m, errParamMismatch
	}
	return m, nil
}

// parseTransform reads a whole transform attribute, a sequence of
// command(arguments) groups composed left to right.
func (c *iconCursor) parseTransform(v string) (Matrix2D, error) {
	m := c.styleStack[len(c.styleStack)-1].transform
	for _, cmd := range strings.Split(v, ")") {
		cmd = strings.TrimSpace(cmd)
		if cmd == "" {
			continue
		}
		parts := strings.Split(cmd, "(")
		if len(parts) != 2 || len(parts[1]) < 1 {
			return m, errParamMismatch // badly formed transformation
		}
		if err := c.getPoints(parts[1]); err != nil {
			return m, err
		}
		var err error
		m, err = c.readTransformAttr(m, strings.ToLower(strings.TrimSpace(parts[0])))
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func parseCapMode(v string) CapMode {
	switch v {
	case "butt":
		return ButtCap
	case "round":
		return RoundCap
	case "square":
		return SquareCap
	case "cubic":
		return CubicCap
	case "quadratic":
		return QuadraticCap
	}
	return NilCap
}

func parseGapMode(v string) GapMode {
	switch v {
	case "flat":
		return FlatGap
	case "round":
		return RoundGap
	case "cubic":
		return CubicGap
	case "quadratic":
		return QuadraticGap
	}
	return NilGap
}

func parseJoinMode(v string) (JoinMode, bool) {
	switch v {
	case "miter":
		return Miter, true
	case "miter-clip":
		return MiterClip, true
	case "arc-clip":
		return ArcClip, true
	case "round":
		return Round, true
	case "arc":
		return Arc, true
	case "bevel":
		return Bevel, true
	}
	return 0, false
}

// readStyleAttr updates style with one declaration. Unknown keys and
// unknown enumeration values are skipped, so the inherited values
// survive.
func (c *iconCursor) readStyleAttr(style *PathStyle, k, v string) error {
	switch k {
	case "fill":
		if grad, ok := c.readGradURL(v, style.FillerColor); ok {
			style.FillerColor = grad
			break
		}
		optCol, err := parseSVGColor(v)
		style.FillerColor = optCol.asPattern()
		return err
	case "stroke":
		if grad, ok := c.readGradURL(v, style.LinerColor); ok {
			style.LinerColor = grad
			break
		}
		col, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		style.LinerColor = col.asPattern()
	case "stroke-linegap":
		if mode := parseGapMode(v); mode != NilGap {
			style.Join.LineGap = mode
		}
	case "stroke-leadlinecap":
		if mode := parseCapMode(v); mode != NilCap {
			style.Join.LeadLineCap = mode
		}
	case "stroke-linecap":
		if mode := parseCapMode(v); mode != NilCap {
			style.Join.TrailLineCap = mode
		}
	case "stroke-linejoin":
		if mode, ok := parseJoinMode(v); ok {
			style.Join.LineJoin = mode
		}
	case "stroke-miterlimit":
		limit, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		style.Join.MiterLimit = fToFixed(limit)
	case "stroke-width":
		width, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		style.LineWidth = width
	case "stroke-dashoffset":
		offset, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		style.Dash.DashOffset = offset
	case "stroke-dasharray":
		if v == "none" {
			break
		}
		fields := splitOnCommaOrSpace(v)
		dashes := make([]float64, len(fields))
		for i, field := range fields {
			d, err := parseBasicFloat(field)
			if err != nil {
				return err
			}
			dashes[i] = d
		}
		style.Dash.Dash = dashes
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		// plain opacity compounds into both passes
		if k != "stroke-opacity" {
			style.FillOpacity *= op
		}
		if k != "fill-opacity" {
			style.LineOpacity *= op
		}
	case "transform":
		m, err := c.parseTransform(v)
		if err != nil {
			return err
		}
		style.transform = m
	}
	return nil
}

// pushStyle collects the declarations of a start tag, both inside a
// style attribute and as direct presentation attributes, applies them
// over a copy of the inherited style and pushes the result.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	var decls []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			decls = append(decls, strings.Split(attr.Value, ";")...)
		default:
			decls = append(decls, attr.Name.Local+":"+attr.Value)
		}
	}
	style := c.styleStack[len(c.styleStack)-1] // copy of the top
	for _, decl := range decls {
		kv := strings.Split(decl, ":")
		if len(kv) < 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		if err := c.readStyleAttr(&style, k, strings.TrimSpace(kv[1])); err != nil {
			return err
		}
	}
	c.styleStack = append(c.styleStack, style)
	return nil
}

// splitOnCommaOrSpace splits the value lists accepted with either
// separator, like dash arrays and point lists.
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

func (c *iconCursor) readStartElement(se xml.StartElement) error {
	// gradients are read even inside defs, they register themselves
	inGradient := c.inGrad || se.Name.Local == "linearGradient" || se.Name.Local == "radialGradient"
	if c.inDefs && !inGradient {
		c.collectDefinition(se)
		return nil
	}
	read, ok := elementReaders[se.Name.Local]
	if !ok {
		return c.handleError("cannot process svg element %q", se.Name.Local)
	}
	err := read(c, se.Attr)
	if len(c.path) > 0 {
		// the element compiled geometry, bind it to its style
		ops := append(Path{}, c.path...)
		c.icon.SVGPaths = append(c.icon.SVGPaths,
			SvgPath{Path: ops, Style: c.styleStack[len(c.styleStack)-1]})
		c.path = c.path[:0]
	}
	return err
}

// collectDefinition stores an element found under defs for later
// replay by use. A fresh id closes the previous definition group.
func (c *iconCursor) collectDefinition(se xml.StartElement) {
	var id string
	for _, attr := range se.Attr {
		if attr.Name.Local == "id" {
			id = attr.Value
		}
	}
	if id != "" && len(c.currentDef) > 0 {
		c.icon.defs[c.currentDef[0].ID] = c.currentDef
		c.currentDef = make([]definition, 0)
	}
	c.currentDef = append(c.currentDef, definition{ID: id, Tag: se.Name.Local, Attrs: se.Attr})
}

// readEndElement pops the element style and closes the scopes opened
// by the start tag.
func (c *iconCursor) readEndElement(name string) {
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
	switch name {
	case "g":
		if c.inDefs {
			c.currentDef = append(c.currentDef, definition{Tag: "endg"})
		}
	case "title":
		c.inTitleText = false
	case "desc":
		c.inDescText = false
	case "defs":
		if len(c.currentDef) > 0 {
			c.icon.defs[c.currentDef[0].ID] = c.currentDef
			c.currentDef = make([]definition, 0)
		}
		c.inDefs = false
	case "linearGradient", "radialGradient":
		c.inGrad = false
	}
}

// readCharData collects the text content of title and desc elements.
func (c *iconCursor) readCharData(data xml.CharData) {
	if c.inTitleText {
		c.icon.Titles[len(c.icon.Titles)-1] += string(data)
	}
	if c.inDescText {
		c.icon.Descriptions[len(c.icon.Descriptions)-1] += string(data)
	}
}
