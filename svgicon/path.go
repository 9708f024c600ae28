package svgicon

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Operation is one svg path command. The interface is closed, a path
// only ever holds the five primitives below.
type Operation interface {
	// drawTo replays the command on d, the transform applying first
	drawTo(d Drawer, M Matrix2D)
	// svgCommand prints the command in svg path data syntax
	svgCommand() string
}

// MoveTo starts a new subpath at the given point.
type MoveTo fixed.Point26_6

func (op MoveTo) drawTo(d Drawer, M Matrix2D) {
	d.Stop(false) // implicit close of the subpath in progress
	d.Start(M.trMove(op))
}

func (op MoveTo) svgCommand() string {
	return fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
}

// LineTo draws a line from the current point.
type LineTo fixed.Point26_6

func (op LineTo) drawTo(d Drawer, M Matrix2D) {
	d.Line(M.trLine(op))
}

func (op LineTo) svgCommand() string {
	return fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
}

// QuadTo draws a quadratic bezier curve, the control point first.
type QuadTo [2]fixed.Point26_6

func (op QuadTo) drawTo(d Drawer, M Matrix2D) {
	p1, p2 := M.trQuad(op)
	d.QuadBezier(p1, p2)
}

func (op QuadTo) svgCommand() string {
	return fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f",
		float32(op[0].X)/64, float32(op[0].Y)/64,
		float32(op[1].X)/64, float32(op[1].Y)/64)
}

// CubicTo draws a cubic bezier curve, the two control points first.
type CubicTo [3]fixed.Point26_6

func (op CubicTo) drawTo(d Drawer, M Matrix2D) {
	p1, p2, p3 := M.trCubic(op)
	d.CubeBezier(p1, p2, p3)
}

func (op CubicTo) svgCommand() string {
	return fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f",
		float32(op[0].X)/64, float32(op[0].Y)/64,
		float32(op[1].X)/64, float32(op[1].Y)/64,
		float32(op[2].X)/64, float32(op[2].Y)/64)
}

// Close joins the current subpath back to its start.
type Close struct{}

func (op Close) drawTo(d Drawer, _ Matrix2D) {
	d.Stop(true)
}

func (op Close) svgCommand() string { return "Z" }

// Path is a sequence of basic operations. Higher level shapes are
// reduced to a path at parsing time.
type Path []Operation

// ToSVGPath writes the path back in svg path data syntax.
func (p Path) ToSVGPath() string {
	var sb strings.Builder
	for i, op := range p {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(op.svgCommand())
	}
	return sb.String()
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear resets the path, keeping the storage.
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start opens a new subpath at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current subpath.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current subpath.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current subpath.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop ends the current subpath, joining the ends when closeLoop is
// set.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}
