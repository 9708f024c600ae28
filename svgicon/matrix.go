package svgicon

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D represents an SVG style matrix of the form
//
//	[A C E]
//	[B D F]
//
// The translation components E and F are expressed in scene units.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity matrix
var Identity = Matrix2D{A: 1, D: 1}

// Mult returns a times b
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate translates a by x, y
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

// Scale scales a by x, y
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: x, D: y})
}

// Rotate rotates a by theta radians
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	cos, sin := math.Cos(theta), math.Sin(theta)
	return a.Mult(Matrix2D{A: cos, B: sin, C: -sin, D: cos})
}

// SkewX skews a by theta radians along the x axis
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, C: math.Tan(theta), D: 1})
}

// SkewY skews a by theta radians along the y axis
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, B: math.Tan(theta), D: 1})
}

// trPoint maps a point already in fixed coordinates through the matrix
func (a Matrix2D) trPoint(p fixed.Point26_6) fixed.Point26_6 {
	x, y := float64(p.X), float64(p.Y)
	return fixed.Point26_6{
		X: fixed.Int26_6(x*a.A + y*a.C + a.E*64),
		Y: fixed.Int26_6(x*a.B + y*a.D + a.F*64),
	}
}

func (a Matrix2D) trMove(op MoveTo) fixed.Point26_6 {
	return a.trPoint(fixed.Point26_6(op))
}

func (a Matrix2D) trLine(op LineTo) fixed.Point26_6 {
	return a.trPoint(fixed.Point26_6(op))
}

func (a Matrix2D) trQuad(op QuadTo) (b, c fixed.Point26_6) {
	return a.trPoint(op[0]), a.trPoint(op[1])
}

func (a Matrix2D) trCubic(op CubicTo) (b, c, d fixed.Point26_6) {
	return a.trPoint(op[0]), a.trPoint(op[1]), a.trPoint(op[2])
}

// matrixAdder applies the matrix M to the points
// before adding them to the underlying path
type matrixAdder struct {
	M    Matrix2D
	path *Path
}

func (q *matrixAdder) Start(a fixed.Point26_6) {
	q.path.Start(q.M.trPoint(a))
}

func (q *matrixAdder) Line(b fixed.Point26_6) {
	q.path.Line(q.M.trPoint(b))
}

func (q *matrixAdder) QuadBezier(b, c fixed.Point26_6) {
	q.path.QuadBezier(q.M.trPoint(b), q.M.trPoint(c))
}

func (q *matrixAdder) CubeBezier(b, c, d fixed.Point26_6) {
	q.path.CubeBezier(q.M.trPoint(b), q.M.trPoint(c), q.M.trPoint(d))
}

func (q *matrixAdder) Stop(closeLoop bool) {
	q.path.Stop(closeLoop)
}
