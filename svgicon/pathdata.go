package svgicon

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// pathCursor holds the state needed to compile SVG path data
// and basic shapes into a drawable Path.
type pathCursor struct {
	path                   Path
	placeX, placeY         float64
	curX, curY             float64
	cntlPtX, cntlPtY       float64
	pathStartX, pathStartY float64
	points                 []float64
	lastKey                uint8
	errorMode              ErrorMode
	inPath                 bool
}

func (c *pathCursor) init() {
	c.placeX = 0.0
	c.placeY = 0.0
	c.points = c.points[0:0]
	c.lastKey = ' '
	c.path.Clear()
	c.inPath = false
}

// pathCommands are the bytes at which path data splits into segments
const pathCommands = "MLHVCSQTAZmlhvcsqtaz"

// compilePath translates the svgPath description string into a Path.
// All valid SVG path elements are interpreted to draw commands.
func (c *pathCursor) compilePath(svgPath string) error {
	c.init()
	lastIndex := -1
	for i := 0; i < len(svgPath); i++ {
		if strings.IndexByte(pathCommands, svgPath[i]) >= 0 {
			if lastIndex != -1 {
				if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgPath[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

// readFloat reads a floating point value and adds it to the cursor's
// points slice. SVG allows the compressed form 1.5.6, meaning 1.5 and 0.6.
func (c *pathCursor) readFloat(numStr string) error {
	last := 0
	isFirst := true
	for i, n := range numStr {
		if n == '.' {
			if isFirst {
				isFirst = false
				continue
			}
			f, err := strconv.ParseFloat(numStr[last:i], 64)
			if err != nil {
				return err
			}
			c.points = append(c.points, f)
			last = i
		}
	}
	f, err := strconv.ParseFloat(numStr[last:], 64)
	if err != nil {
		return err
	}
	c.points = append(c.points, f)
	return nil
}

// getPoints reads a set of floating point values from the SVG format
// number string, and adds them to the cursor's points slice.
func (c *pathCursor) getPoints(dataPoints string) error {
	lastIndex := -1
	c.points = c.points[0:0]
	lr := ' '
	for i, r := range dataPoints {
		if !unicode.IsNumber(r) && r != '.' && !(r == '-' && lr == 'e') && r != 'e' {
			if lastIndex != -1 {
				if err := c.readFloat(dataPoints[lastIndex:i]); err != nil {
					return err
				}
			}
			if r == '-' {
				lastIndex = i
			} else {
				lastIndex = -1
			}
		} else if lastIndex == -1 {
			lastIndex = i
		}
		lr = r
	}
	if lastIndex != -1 && lastIndex != len(dataPoints) {
		if err := c.readFloat(dataPoints[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

// hasSetsOrPoints returns true if the number of points is a positive
// multiple of the set size mn
func (c *pathCursor) hasSetsOrPoints(l, mn int) bool {
	return l%mn == 0 && l >= mn
}

// valsToAbs turns a sequence of relative offsets into absolute values
func (c *pathCursor) valsToAbs(last float64) {
	for i := 0; i < len(c.points); i++ {
		last += c.points[i]
		c.points[i] = last
	}
}

// pointsToAbs turns sets of sl relative coordinates into absolute
// values, each set relative to the end point of the previous one
func (c *pathCursor) pointsToAbs(sl int) {
	lastX := c.placeX
	lastY := c.placeY
	for j := 0; j < len(c.points); j += sl {
		for i := 0; i < sl; i += 2 {
			c.points[i+j] += lastX
			c.points[i+1+j] += lastY
		}
		lastX = c.points[(j+sl)-2]
		lastY = c.points[(j+sl)-1]
	}
}

// reflectControlQuad reflects the control point around the current
// place if the last segment was a quadratic bezier
func (c *pathCursor) reflectControlQuad() {
	switch c.lastKey {
	case 'q', 'Q', 'T', 't':
		c.cntlPtX = c.placeX - (c.cntlPtX - c.placeX)
		c.cntlPtY = c.placeY - (c.cntlPtY - c.placeY)
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

// reflectControlCube reflects the control point around the current
// place if the last segment was a cubic bezier
func (c *pathCursor) reflectControlCube() {
	switch c.lastKey {
	case 'c', 'C', 's', 'S':
		c.cntlPtX = c.placeX - (c.cntlPtX - c.placeX)
		c.cntlPtY = c.placeY - (c.cntlPtY - c.placeY)
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

// addSeg decodes an SVG segment string into equivalent path commands
func (c *pathCursor) addSeg(segString string) error {
	// Parse the string describing the numeric points
	err := c.getPoints(segString[1:])
	if err != nil {
		return err
	}
	l := len(c.points)
	k := segString[0]
	switch k {
	case 'z', 'Z':
		if l != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX = c.pathStartX
			c.placeY = c.pathStartY
			c.inPath = false
		}
	case 'm':
		c.pointsToAbs(2)
		fallthrough
	case 'M':
		if !c.hasSetsOrPoints(l, 2) {
			return errParamMismatch
		}
		for i := 0; i < l; i += 2 {
			c.placeX = c.points[i]
			c.placeY = c.points[i+1]
			if i == 0 {
				c.pathStartX, c.pathStartY = c.placeX, c.placeY
				c.path.Start(toFixedP(c.placeX, c.placeY))
				c.inPath = true
			} else {
				// subsequent pairs are implicit line-to commands
				c.path.Line(toFixedP(c.placeX, c.placeY))
			}
		}
	case 'l':
		c.pointsToAbs(2)
		fallthrough
	case 'L':
		if !c.hasSetsOrPoints(l, 2) {
			return errParamMismatch
		}
		for i := 0; i < l; i += 2 {
			c.placeX = c.points[i]
			c.placeY = c.points[i+1]
			c.path.Line(toFixedP(c.placeX, c.placeY))
		}
	case 'v':
		c.valsToAbs(c.placeY)
		fallthrough
	case 'V':
		if !c.hasSetsOrPoints(l, 1) {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.placeY = p
			c.path.Line(toFixedP(c.placeX, c.placeY))
		}
	case 'h':
		c.valsToAbs(c.placeX)
		fallthrough
	case 'H':
		if !c.hasSetsOrPoints(l, 1) {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.placeX = p
			c.path.Line(toFixedP(c.placeX, c.placeY))
		}
	case 'q':
		c.pointsToAbs(4)
		fallthrough
	case 'Q':
		if !c.hasSetsOrPoints(l, 4) {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			c.path.QuadBezier(
				toFixedP(c.points[i], c.points[i+1]),
				toFixedP(c.points[i+2], c.points[i+3]))
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX = c.points[i+2]
			c.placeY = c.points[i+3]
		}
	case 't':
		c.pointsToAbs(2)
		fallthrough
	case 'T':
		if !c.hasSetsOrPoints(l, 2) {
			return errParamMismatch
		}
		for i := 0; i < l-1; i += 2 {
			c.reflectControlQuad()
			c.path.QuadBezier(
				toFixedP(c.cntlPtX, c.cntlPtY),
				toFixedP(c.points[i], c.points[i+1]))
			c.lastKey = k
			c.placeX = c.points[i]
			c.placeY = c.points[i+1]
		}
	case 'c':
		c.pointsToAbs(6)
		fallthrough
	case 'C':
		if !c.hasSetsOrPoints(l, 6) {
			return errParamMismatch
		}
		for i := 0; i < l-5; i += 6 {
			c.path.CubeBezier(
				toFixedP(c.points[i], c.points[i+1]),
				toFixedP(c.points[i+2], c.points[i+3]),
				toFixedP(c.points[i+4], c.points[i+5]))
			c.cntlPtX, c.cntlPtY = c.points[i+2], c.points[i+3]
			c.placeX = c.points[i+4]
			c.placeY = c.points[i+5]
		}
	case 's':
		c.pointsToAbs(4)
		fallthrough
	case 'S':
		if !c.hasSetsOrPoints(l, 4) {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			c.reflectControlCube()
			c.path.CubeBezier(
				toFixedP(c.cntlPtX, c.cntlPtY),
				toFixedP(c.points[i], c.points[i+1]),
				toFixedP(c.points[i+2], c.points[i+3]))
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX = c.points[i+2]
			c.placeY = c.points[i+3]
		}
	case 'a', 'A':
		if !c.hasSetsOrPoints(l, 7) {
			return errParamMismatch
		}
		for i := 0; i < l-6; i += 7 {
			if k == 'a' {
				c.points[i+5] += c.placeX
				c.points[i+6] += c.placeY
			}
			c.addArcFromA(c.points[i:])
		}
	default:
		return errCommandUnknown
	}
	// remembered for the smooth bezier forms
	c.lastKey = k
	return nil
}

// addArcFromA adds an arc command to the cursor's path
func (c *pathCursor) addArcFromA(points []float64) {
	cx, cy := findEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180, c.placeX,
		c.placeY, points[5], points[6], points[4] == 0, points[3] == 0)
	c.placeX, c.placeY = c.path.addArc(points, cx, cy, c.placeX, c.placeY)
}

// ellipseAt adds a closed elliptical path centered at cx, cy with
// radii rx, ry, built from two arc halves.
func (c *pathCursor) ellipseAt(cx, cy, rx, ry float64) {
	c.placeX, c.placeY = cx+rx, cy
	c.points = c.points[0:0]
	c.points = append(c.points, rx, ry, 0, 0, 0, cx-rx, cy)
	c.path.Start(toFixedP(c.placeX, c.placeY))
	c.path.addArc(c.points, cx, cy, c.placeX, c.placeY)
	c.points[5], c.points[6] = c.placeX, c.placeY
	c.path.addArc(c.points, cx, cy, cx-rx, cy)
	c.path.Stop(true)
}

// unitSuffixes may trail the width and height attributes of the
// svg element.
var unitSuffixes = [...]string{"cm", "mm", "px", "pt"}

// trimSuffixes strips a trailing unit from a numeric value.
func trimSuffixes(a string) string {
	if a == "" || (a[len(a)-1] >= '0' && a[len(a)-1] <= '9') {
		return a
	}
	for _, suffix := range unitSuffixes {
		a = strings.TrimSuffix(a, suffix)
	}
	return a
}

// parseBasicFloat parses a float value, units allowed.
func parseBasicFloat(s string) (float64, error) {
	value := trimSuffixes(strings.TrimSpace(s))
	return strconv.ParseFloat(value, 64)
}

// readFraction reads a number, a trailing % meaning hundredths.
func readFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	div := 1.0
	if strings.HasSuffix(v, "%") {
		div = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := parseBasicFloat(v)
	return f / div, err
}

// percentageReference selects the dimension against which
// percentage units resolve.
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// parseUnit resolves a numeric attribute, with percentages
// resolved against the view box.
func (c *iconCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		perc, err := parseBasicFloat(strings.TrimSuffix(s, "%"))
		if err != nil {
			return 0, err
		}
		var ref float64
		switch asPerc {
		case widthPercentage:
			ref = c.icon.ViewBox.W
		case heightPercentage:
			ref = c.icon.ViewBox.H
		case diagPercentage:
			w, h := c.icon.ViewBox.W, c.icon.ViewBox.H
			ref = math.Sqrt(w*w+h*h) / math.Sqrt2
		}
		return perc / 100 * ref, nil
	}
	return parseBasicFloat(s)
}
