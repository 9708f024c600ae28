// Parses a useful subset of SVG documents into an abstract scene of
// styled paths, which painting drivers then turn into concrete output.
// See the svgraster package for the pixel backend.
package svgicon

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// PathStyle is the style state in effect for one path: paint sources,
// opacities and stroke parameters, plus the transform accumulated from
// the enclosing elements.
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	UseNonZeroWinding        bool

	Join                    JoinOptions
	Dash                    DashOptions
	FillerColor, LinerColor Pattern // PlainColor or Gradient, nil disables the pass

	transform Matrix2D
}

// SvgPath binds a style to a path.
type SvgPath struct {
	Path  Path
	Style PathStyle
}

// Bounds is a rectangle, such as a view box or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// SvgIcon is a parsed SVG document, replayable with the Draw methods.
type SvgIcon struct {
	ViewBox      Bounds
	Titles       []string // the text content of title elements
	Descriptions []string // the text content of desc elements
	SVGPaths     []SvgPath
	Transform    Matrix2D

	Width, Height string // the raw width and height attributes of the root

	grads map[string]*Gradient
	defs  map[string][]definition
}

// ReadIconStream parses SVG content into an icon. The supported subset
// covers common icon files. errMode selects how content the parser
// does not handle is reported: skipped, logged, or failing the parse.
func ReadIconStream(stream io.Reader, errMode ErrorMode) (*SvgIcon, error) {
	icon := &SvgIcon{defs: make(map[string][]definition), grads: make(map[string]*Gradient), Transform: Identity}
	cur := &iconCursor{styleStack: []PathStyle{DefaultStyle}, icon: icon}
	cur.errorMode = errMode

	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenElement := false
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			if !seenElement {
				return nil, errors.New("invalid svg xml icon")
			}
			return icon, nil
		}
		if err != nil {
			return icon, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			seenElement = true
			// the style of the element goes on top of the stack,
			// its end element pops it
			if err := cur.pushStyle(se.Attr); err != nil {
				return icon, err
			}
			if err := cur.readStartElement(se); err != nil {
				return icon, err
			}
		case xml.EndElement:
			cur.readEndElement(se.Name.Local)
		case xml.CharData:
			cur.readCharData(se)
		}
	}
}

// ReadIcon parses the named SVG file, with the same support and error
// modes as ReadIconStream.
func ReadIcon(iconFile string, errMode ErrorMode) (*SvgIcon, error) {
	f, err := os.Open(iconFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIconStream(f, errMode)
}
