package svgicon

import (
	"encoding/xml"
	"errors"
	"strings"

	"golang.org/x/image/math/fixed"
)

// elementReader reads the attributes of one svg element kind into the
// cursor state.
type elementReader func(c *iconCursor, attrs []xml.Attr) error

var elementReaders = map[string]elementReader{
	"svg":            readSvg,
	"g":              readGroup,
	"path":           readPath,
	"rect":           readRect,
	"circle":         readEllipse,
	"ellipse":        readEllipse, // a circle is an ellipse with one radius
	"line":           readLine,
	"polyline":       readPolyline,
	"polygon":        readPolygon,
	"title":          readTitle,
	"desc":           readDesc,
	"defs":           readDefs,
	"linearGradient": readLinearGradient,
	"radialGradient": readRadialGradient,
	"stop":           readStop,
}

func init() {
	// readUse looks elements up in the map, a static entry would cycle
	elementReaders["use"] = readUse
}

// readSvg reads the root attributes. A missing viewBox falls back to
// the width and height attributes.
func readSvg(c *iconCursor, attrs []xml.Attr) error {
	c.icon.ViewBox = Bounds{}
	var width, height float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			err = c.getPoints(attr.Value)
			if len(c.points) != 4 {
				return errParamMismatch
			}
			c.icon.ViewBox = Bounds{X: c.points[0], Y: c.points[1], W: c.points[2], H: c.points[3]}
		case "width":
			c.icon.Width = attr.Value
			width, err = parseBasicFloat(attr.Value)
		case "height":
			c.icon.Height = attr.Value
			height, err = parseBasicFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if c.icon.ViewBox.W == 0 {
		c.icon.ViewBox.W = width
	}
	if c.icon.ViewBox.H == 0 {
		c.icon.ViewBox.H = height
	}
	return nil
}

// groups only exist to push their style, already done by the caller
func readGroup(*iconCursor, []xml.Attr) error { return nil }

func readPath(c *iconCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			if err := c.compilePath(attr.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func readRect(c *iconCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		case "width":
			w, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			h, err = c.parseUnit(attr.Value, heightPercentage)
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if w == 0 || h == 0 {
		// zero sized rectangles are legal and invisible
		return nil
	}
	c.path.addRoundRect(x+c.curX, y+c.curY, w+x+c.curX, h+y+c.curY, rx, ry, 0)
	return nil
}

// readEllipse covers both circle and ellipse tags, r standing for
// both radii.
func readEllipse(c *iconCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = c.parseUnit(attr.Value, widthPercentage)
		case "cy":
			cy, err = c.parseUnit(attr.Value, heightPercentage)
		case "r":
			rx, err = c.parseUnit(attr.Value, diagPercentage)
			ry = rx
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	c.ellipseAt(cx+c.curX, cy+c.curY, rx, ry)
	return nil
}

func readLine(c *iconCursor, attrs []xml.Attr) error {
	var x1, y1, x2, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = c.parseUnit(attr.Value, widthPercentage)
		case "y1":
			y1, err = c.parseUnit(attr.Value, heightPercentage)
		case "x2":
			x2, err = c.parseUnit(attr.Value, widthPercentage)
		case "y2":
			y2, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	c.path.Start(fixed.Point26_6{X: fToFixed(x1 + c.curX), Y: fToFixed(y1 + c.curY)})
	c.path.Line(fixed.Point26_6{X: fToFixed(x2 + c.curX), Y: fToFixed(y2 + c.curY)})
	return nil
}

func readPolyline(c *iconCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		err := c.getPoints(attr.Value)
		if len(c.points)%2 != 0 {
			return errors.New("polygon has odd number of points")
		}
		if err != nil {
			return err
		}
	}
	if len(c.points) > 4 {
		c.path.Start(fixed.Point26_6{
			X: fToFixed(c.points[0] + c.curX),
			Y: fToFixed(c.points[1] + c.curY)})
		for i := 2; i+1 < len(c.points); i += 2 {
			c.path.Line(fixed.Point26_6{
				X: fToFixed(c.points[i] + c.curX),
				Y: fToFixed(c.points[i+1] + c.curY)})
		}
	}
	return nil
}

// readPolygon closes the polyline outline
func readPolygon(c *iconCursor, attrs []xml.Attr) error {
	err := readPolyline(c, attrs)
	if len(c.points) > 4 {
		c.path.Stop(true)
	}
	return err
}

func readTitle(c *iconCursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.icon.Titles = append(c.icon.Titles, "")
	return nil
}

func readDesc(c *iconCursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.icon.Descriptions = append(c.icon.Descriptions, "")
	return nil
}

func readDefs(c *iconCursor, attrs []xml.Attr) error {
	c.inDefs = true
	return nil
}

func readLinearGradient(c *iconCursor, attrs []xml.Attr) error {
	c.inGrad = true
	direction := Linear{0, 0, 1, 0}
	c.grad = &Gradient{Direction: direction, Bounds: c.icon.ViewBox, Matrix: Identity}
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			if id := attr.Value; len(id) >= 0 {
				c.icon.grads[id] = c.grad
			} else {
				return errZeroLengthID
			}
		case "x1":
			direction[0], err = readFraction(attr.Value)
		case "y1":
			direction[1], err = readFraction(attr.Value)
		case "x2":
			direction[2], err = readFraction(attr.Value)
		case "y2":
			direction[3], err = readFraction(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	c.grad.Direction = direction
	return nil
}

func readRadialGradient(c *iconCursor, attrs []xml.Attr) error {
	c.inGrad = true
	direction := Radial{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	c.grad = &Gradient{Direction: direction, Bounds: c.icon.ViewBox, Matrix: Identity}
	var haveFx, haveFy bool
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			if id := attr.Value; len(id) >= 0 {
				c.icon.grads[id] = c.grad
			} else {
				return errZeroLengthID
			}
		case "cx":
			direction[0], err = readFraction(attr.Value)
		case "cy":
			direction[1], err = readFraction(attr.Value)
		case "fx":
			haveFx = true
			direction[2], err = readFraction(attr.Value)
		case "fy":
			haveFy = true
			direction[3], err = readFraction(attr.Value)
		case "r":
			direction[4], err = readFraction(attr.Value)
		case "fr":
			direction[5], err = readFraction(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	// the focal point follows the center unless given
	if !haveFx {
		direction[2] = direction[0]
	}
	if !haveFy {
		direction[3] = direction[1]
	}
	c.grad.Direction = direction
	return nil
}

func readStop(c *iconCursor, attrs []xml.Attr) error {
	if !c.inGrad {
		return nil
	}
	stop := GradStop{Opacity: 1.0}
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "offset":
			stop.Offset, err = readFraction(attr.Value)
		case "stop-color":
			//todo: add current color inherit
			var optColor optionnalColor
			optColor, err = parseSVGColor(attr.Value)
			stop.StopColor = optColor.asColor()
		case "stop-opacity":
			stop.Opacity, err = parseBasicFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.grad.Stops = append(c.grad.Stops, stop)
	return nil
}

// readUse replays a definition collected under defs, with an optional
// x, y offset applying to the whole subtree.
func readUse(c *iconCursor, attrs []xml.Attr) error {
	var (
		href string
		x, y float64
		err  error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "href":
			href = attr.Value
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	c.curX, c.curY = x, y
	defer func() {
		c.curX, c.curY = 0, 0
	}()
	if href == "" {
		return errors.New("use tag requires an href attribute")
	}
	if !strings.HasPrefix(href, "#") {
		return errors.New("only the ID css selector is supported in use tags")
	}
	defs, ok := c.icon.defs[href[1:]]
	if !ok {
		return errors.New("use references an id not found in defs")
	}
	for _, def := range defs {
		if def.Tag == "endg" {
			// pop style
			c.styleStack = c.styleStack[:len(c.styleStack)-1]
			continue
		}
		if err = c.pushStyle(def.Attrs); err != nil {
			return err
		}
		read, ok := elementReaders[def.Tag]
		if !ok {
			return c.handleError("cannot process svg element %q", def.Tag)
		}
		if err := read(c, def.Attrs); err != nil {
			return err
		}
		if def.Tag != "g" {
			// pop style
			c.styleStack = c.styleStack[:len(c.styleStack)-1]
		}
	}
	return nil
}
