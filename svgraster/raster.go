// Package svgraster renders parsed icons into in-memory images,
// with rasterx doing the scan conversion.
package svgraster

import (
	"bytes"
	"image"
	"io"
	"math"

	"github.com/khoshbin/icontint/svgicon"
	"github.com/pkg/errors"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var (
	// ErrInvalidViewBox means the icon does not carry a usable view box.
	ErrInvalidViewBox = errors.New("svgraster: invalid view box")
	// ErrBufferSize means the view box rounds down to an empty pixel buffer.
	ErrBufferSize = errors.New("svgraster: empty raster buffer")
)

// Renderer drives the rasterx backends, one filler and one dasher,
// kept as separate instances so fill state never leaks into strokes.
type Renderer struct {
	filler *rasterx.Filler
	dasher *rasterx.Dasher
}

var _ svgicon.Driver = (*Renderer)(nil)

// NewRenderer returns a renderer drawing on the given scanner, sized
// for a width by height pixel target.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		filler: rasterx.NewFiller(width, height, scanner),
		dasher: rasterx.NewDasher(width, height, scanner),
	}
}

// SetupDrawers implements svgicon.Driver, handing out the backends
// requested for the coming path.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgicon.Filler, svgicon.Stroker) {
	var (
		f svgicon.Filler
		s svgicon.Stroker
	)
	if willFill {
		f = fillAdapter{rd.filler}
	}
	if willStroke {
		s = strokeAdapter{rd.dasher}
	}
	return f, s
}

// Rasterize parses the svg content and renders it into a freshly
// allocated image, sized from the floor of the view box dimensions.
// The returned image starts out fully transparent; only the icon's
// own drawing instructions paint into it.
func Rasterize(svg []byte) (*image.RGBA, error) {
	return RasterSVGIconToImage(bytes.NewReader(svg))
}

// RasterSVGIconToImage reads an icon from the stream and renders
// it at its natural size.
func RasterSVGIconToImage(icon io.Reader) (*image.RGBA, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg scene")
	}
	return RasterIcon(parsedIcon)
}

// RasterIcon renders an already parsed icon at its natural
// view box size.
func RasterIcon(icon *svgicon.SvgIcon) (*image.RGBA, error) {
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, errors.Wrapf(ErrInvalidViewBox, "%g x %g", icon.ViewBox.W, icon.ViewBox.H)
	}
	w, h := int(math.Floor(icon.ViewBox.W)), int(math.Floor(icon.ViewBox.H))
	if w < 1 || h < 1 {
		return nil, errors.Wrapf(ErrBufferSize, "%d x %d", w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(NewRenderer(w, h, scanner), 1.0)
	return img, nil
}

// RasterIconSized renders an already parsed icon into a w by h
// image, scaling the view box to fit the target.
func RasterIconSized(icon *svgicon.SvgIcon, w, h int) (*image.RGBA, error) {
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, errors.Wrapf(ErrInvalidViewBox, "%g x %g", icon.ViewBox.W, icon.ViewBox.H)
	}
	if w < 1 || h < 1 {
		return nil, errors.Wrapf(ErrBufferSize, "%d x %d", w, h)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(NewRenderer(w, h, scanner), 1.0)
	return img, nil
}

// fillAdapter bridges the rasterx filler to the svgicon.Filler
// interface, all drawing methods coming from the embedded type.
type fillAdapter struct {
	*rasterx.Filler
}

func (a fillAdapter) SetColor(pattern svgicon.Pattern, opacity float64) {
	applyPattern(pattern, opacity, a.Filler.Scanner)
}

// strokeAdapter bridges the rasterx dasher to the svgicon.Stroker
// interface.
type strokeAdapter struct {
	*rasterx.Dasher
}

func (a strokeAdapter) SetColor(pattern svgicon.Pattern, opacity float64) {
	applyPattern(pattern, opacity, a.Dasher.Scanner)
}

func (a strokeAdapter) SetStrokeOptions(opts svgicon.StrokeOptions) {
	a.Dasher.SetStroke(
		opts.LineWidth, opts.Join.MiterLimit,
		capFuncs[opts.Join.LeadLineCap], capFuncs[opts.Join.TrailLineCap],
		gapFuncs[opts.Join.LineGap], joinModes[opts.Join.LineJoin],
		opts.Dash.Dash, opts.Dash.DashOffset,
	)
}

// applyPattern resolves a fill or stroke pattern into a concrete
// color or color function on the scanner.
func applyPattern(pattern svgicon.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch p := pattern.(type) {
	case svgicon.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(p, opacity))
	case svgicon.Gradient:
		if p.Units == svgicon.ObjectBoundingBox {
			// gradient coordinates are fractions of the path extent
			p.Bounds = extentBounds(scanner.GetPathExtent())
		}
		grad := asRasterxGradient(p)
		scanner.SetColor(grad.GetColorFunction(opacity))
	}
}

// extentBounds converts a fixed point path extent to a float rectangle.
func extentBounds(r fixed.Rectangle26_6) svgicon.Bounds {
	minX, minY := float64(r.Min.X)/64, float64(r.Min.Y)/64
	maxX, maxY := float64(r.Max.X)/64, float64(r.Max.Y)/64
	return svgicon.Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func asRasterxGradient(grad svgicon.Gradient) rasterx.Gradient {
	var points [5]float64
	radial := false
	switch dir := grad.Direction.(type) {
	case svgicon.Linear:
		copy(points[:4], dir[:])
	case svgicon.Radial:
		copy(points[:], dir[:5]) // rasterx has no use for fr
		radial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i, s := range grad.Stops {
		stops[i] = rasterx.GradStop(s)
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   grad.Bounds,
		Matrix:   rasterx.Matrix2D(grad.Matrix),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: radial,
	}
}

var (
	joinModes = [...]rasterx.JoinMode{
		svgicon.Round:     rasterx.Round,
		svgicon.Bevel:     rasterx.Bevel,
		svgicon.Miter:     rasterx.Miter,
		svgicon.MiterClip: rasterx.MiterClip,
		svgicon.Arc:       rasterx.Arc,
		svgicon.ArcClip:   rasterx.ArcClip,
	}

	capFuncs = [...]rasterx.CapFunc{
		svgicon.ButtCap:      rasterx.ButtCap,
		svgicon.SquareCap:    rasterx.SquareCap,
		svgicon.RoundCap:     rasterx.RoundCap,
		svgicon.CubicCap:     rasterx.CubicCap,
		svgicon.QuadraticCap: rasterx.QuadraticCap,
	}

	gapFuncs = [...]rasterx.GapFunc{
		svgicon.NilGap:       rasterx.FlatGap, // unset gaps stroke flat
		svgicon.FlatGap:      rasterx.FlatGap,
		svgicon.RoundGap:     rasterx.RoundGap,
		svgicon.CubicGap:     rasterx.CubicGap,
		svgicon.QuadraticGap: rasterx.QuadraticGap,
	}
)
