package svgicon

import (
	"golang.org/x/image/math/fixed"
)

// The draw pass replays a parsed icon into a Driver, which supplies the
// backend painters. The svgraster package implements the contract over
// a rasterizer; any other paint target can plug in the same way.

// JoinMode specifies how stroke segments bridge the gap at a join.
type JoinMode uint8

const (
	Arc JoinMode = iota // New in SVG2
	Round
	Bevel
	Miter
	MiterClip // New in SVG2
	ArcClip   // MiterClip applied to arcs; not part of the SVG2.0 standard.
)

var joinNames = [...]string{"Arc", "Round", "Bevel", "Miter", "MiterClip", "ArcClip"}

func (j JoinMode) String() string {
	if int(j) < len(joinNames) {
		return joinNames[j]
	}
	return "<unknown JoinMode>"
}

// CapMode specifies how line ends are drawn.
type CapMode uint8

const (
	NilCap CapMode = iota // zero value, resolved against the defaults when stroking
	ButtCap
	SquareCap
	RoundCap
	CubicCap     // Not part of the SVG2.0 standard.
	QuadraticCap // Not part of the SVG2.0 standard.
)

var capNames = [...]string{"NilCap", "ButtCap", "SquareCap", "RoundCap", "CubicCap", "QuadraticCap"}

func (c CapMode) String() string {
	if int(c) < len(capNames) {
		return capNames[c]
	}
	return "<unknown CapMode>"
}

// GapMode specifies how to bridge the convex gap left when the miter
// limit is exceeded. Not part of the SVG2.0 standard.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

var gapNames = [...]string{"NilGap", "FlatGap", "RoundGap", "CubicGap", "QuadraticGap"}

func (g GapMode) String() string {
	if int(g) < len(gapNames) {
		return gapNames[g]
	}
	return "<unknown GapMode>"
}

// DashOptions describes the dash pattern of a stroke.
type DashOptions struct {
	Dash       []float64 // dash lengths, nil or empty for a solid stroke
	DashOffset float64   // starting offset into the pattern
}

// JoinOptions groups the stroke joining parameters.
type JoinOptions struct {
	MiterLimit   fixed.Int26_6 // cutoff for the miter, arc, miterclip and arcClip join modes
	LineJoin     JoinMode
	TrailLineCap CapMode // used for both ends unless LeadLineCap overrides

	LeadLineCap CapMode // extension beyond the svg standard
	LineGap     GapMode // extension beyond the svg standard, fills the convex side of a join
}

// StrokeOptions is the resolved stroke state handed to a Stroker.
type StrokeOptions struct {
	LineWidth fixed.Int26_6
	Join      JoinOptions
	Dash      DashOptions
}

// Drawer receives the path geometry, with the transformation matrix
// already applied to the points. It carries no SVG knowledge of its
// own.
type Drawer interface {
	// Clear resets the accumulated path before a new painting.
	Clear()

	// Start begins a new subpath at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to b.
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path.
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path.
	CubeBezier(b, c, d fixed.Point26_6)

	// Stop ends the current subpath, closing it to its start point
	// if closeLoop is true.
	Stop(closeLoop bool)

	// SetColor sets the pattern painted by the next Draw call.
	SetColor(color Pattern, opacity float64)

	// Draw paints the accumulated path with the current settings.
	Draw()
}

// Filler fills the inside of paths.
type Filler interface {
	Drawer

	// SetWinding selects the non zero winding rule (or, when false,
	// the even odd rule) for the current path.
	SetWinding(useNonZeroWinding bool)
}

// Stroker paints the outline of paths.
type Stroker interface {
	Drawer

	// SetStrokeOptions parametrizes the stroking of the current path.
	SetStrokeOptions(options StrokeOptions)
}

// Driver is a paint backend. SetupDrawers is called once per path;
// when a pass is not wanted the corresponding boolean is false and the
// returned drawer must be nil, so the pass is skipped entirely. When
// both are wanted, the exact same geometry is replayed into the Filler
// first and then into the Stroker, which lets an implementation share
// the flattened path between the two.
type Driver interface {
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// DefaultStyle is the state of the style attributes before any
// element sets them: an opaque black fill under the non zero winding
// rule, no stroke, butt caps and bevel joins.
var DefaultStyle = PathStyle{
	FillOpacity:       1.0,
	LineOpacity:       1.0,
	LineWidth:         2.0,
	UseNonZeroWinding: true,
	Join: JoinOptions{
		MiterLimit:   fToFixed(4.),
		LineJoin:     Bevel,
		TrailLineCap: ButtCap,
	},
	FillerColor: NewPlainColor(0x00, 0x00, 0x00, 0xff),
	transform:   Identity,
}

// SetTarget updates the icon transform so the view box maps onto the
// given rectangle.
func (s *SvgIcon) SetTarget(x, y, w, h float64) {
	sx := w / s.ViewBox.W
	sy := h / s.ViewBox.H
	s.Transform = Identity.Translate(x-s.ViewBox.X, y-s.ViewBox.Y).Scale(sx, sy)
}

// Draw replays the icon into the driver d. opacity multiplies the
// fill and stroke opacities of every path.
func (s *SvgIcon) Draw(d Driver, opacity float64) {
	for i := range s.SVGPaths {
		s.SVGPaths[i].drawTransformed(d, opacity, s.Transform)
	}
}

// drawTransformed replays one path into the driver, with t composed
// onto the path's own transform.
func (p *SvgPath) drawTransformed(d Driver, opacity float64, t Matrix2D) {
	saved := p.Style.transform
	p.Style.transform = t.Mult(saved)
	defer func() { p.Style.transform = saved }()

	// a nil pattern disables the corresponding pass
	filler, stroker := d.SetupDrawers(p.Style.FillerColor != nil, p.Style.LinerColor != nil)

	if filler != nil {
		filler.Clear()
		filler.SetWinding(p.Style.UseNonZeroWinding)
		for _, op := range p.Path {
			op.drawTo(filler, p.Style.transform)
		}
		filler.Stop(false)
		filler.SetColor(p.Style.FillerColor, p.Style.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // leave the filler on the default rule
	}

	if stroker != nil {
		stroker.Clear()
		stroker.SetStrokeOptions(p.strokeOptions())
		for _, op := range p.Path {
			op.drawTo(stroker, p.Style.transform)
		}
		stroker.Stop(false)
		stroker.SetColor(p.Style.LinerColor, p.Style.LineOpacity*opacity)
		stroker.Draw()
	}
}

// strokeOptions resolves the zero cap and gap values against the
// defaults before handing the style to the stroker.
func (p *SvgPath) strokeOptions() StrokeOptions {
	join := p.Style.Join
	if join.LineGap == NilGap {
		join.LineGap = DefaultStyle.Join.LineGap
	}
	if join.TrailLineCap == NilCap {
		join.TrailLineCap = DefaultStyle.Join.TrailLineCap
	}
	if join.LeadLineCap == NilCap {
		join.LeadLineCap = join.TrailLineCap
	}
	return StrokeOptions{
		LineWidth: fixed.Int26_6(p.Style.LineWidth * 64),
		Join:      join,
		Dash:      p.Style.Dash,
	}
}
