package svgicon

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Shape elements compile to the same primitives as path data. The
// elliptical pieces follow the cubic bezier approximation of
// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
// or cubic Bezier curves", 2003,
// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf

// maxDx is the widest parametric span a single cubic is allowed to
// cover when approximating an ellipse.
const maxDx float64 = math.Pi / 8

// cubicsPerHalfCircle bounds the span of the cubics sweeping round
// rect corners.
const cubicsPerHalfCircle = 8

// toFixedP converts a coordinate pair to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// length is the distance of the point from the origin
func length(v fixed.Point26_6) fixed.Int26_6 {
	vx, vy := float64(v.X), float64(v.Y)
	return fixed.Int26_6(math.Sqrt(vx*vx + vy*vy))
}

// addRect adds a rectangle, rotated around its center by rot degrees.
func (p *Path) addRect(minX, minY, maxX, maxY, rot float64) {
	rot *= math.Pi / 180
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	m := Identity.Translate(cx, cy).Rotate(rot).Translate(-cx, -cy)
	adder := &matrixAdder{M: m, path: p}
	adder.Start(toFixedP(minX, minY))
	adder.Line(toFixedP(maxX, minY))
	adder.Line(toFixedP(maxX, maxY))
	adder.Line(toFixedP(minX, maxY))
	adder.path.Stop(true)
}

// addRoundRect adds a rectangle with elliptical corners of radius rx
// by ry, rotated around the center by rot degrees. The corners are
// swept as circular arcs in a vertically stretched frame, the matrix
// scaling them back to ellipses.
func (p *Path) addRoundRect(minX, minY, maxX, maxY, rx, ry, rot float64) {
	if rx <= 0 || ry <= 0 {
		p.addRect(minX, minY, maxX, maxY, rot)
		return
	}
	rot *= math.Pi / 180

	w := maxX - minX
	if w < rx*2 {
		rx = w / 2
	}
	h := maxY - minY
	if h < ry*2 {
		ry = h / 2
	}
	stretch := rx / ry
	midY := minY + h/2
	m := Identity.Translate(minX+w/2, midY).Rotate(rot).Scale(1, 1/stretch).Translate(-minX-w/2, -minY-h/2)
	maxY = midY + h/2*stretch
	minY = midY - h/2*stretch

	adder := &matrixAdder{M: m, path: p}

	adder.Start(toFixedP(minX+rx, minY))
	adder.Line(toFixedP(maxX-rx, minY))
	roundCorner(adder, toFixedP(maxX-rx, minY+rx), toFixedP(0, -rx), toFixedP(rx, 0))
	adder.Line(toFixedP(maxX, maxY-rx))
	roundCorner(adder, toFixedP(maxX-rx, maxY-rx), toFixedP(rx, 0), toFixedP(0, rx))
	adder.Line(toFixedP(minX+rx, maxY))
	roundCorner(adder, toFixedP(minX+rx, maxY-rx), toFixedP(0, rx), toFixedP(-rx, 0))
	adder.Line(toFixedP(minX, minY+rx))
	roundCorner(adder, toFixedP(minX+rx, minY+rx), toFixedP(-rx, 0), toFixedP(0, -rx))
	adder.path.Stop(true)
}

// roundCorner bridges the gap between the current point and a+lNorm
// with a circular arc around a, entering at a+tNorm.
func roundCorner(adder *matrixAdder, a, tNorm, lNorm fixed.Point26_6) {
	cornerArc(adder, a, a.Add(tNorm), a.Add(lNorm))
	// the last arc point carries roundoff, land exactly on the end
	adder.Line(a.Add(lNorm))
}

// cornerArc sweeps a clockwise circular arc centered on a from s1 to
// s2 as a run of cubic beziers.
func cornerArc(adder *matrixAdder, a, s1, s2 fixed.Point26_6) {
	theta1 := math.Atan2(float64(s1.Y-a.Y), float64(s1.X-a.X))
	theta2 := math.Atan2(float64(s2.Y-a.Y), float64(s2.X-a.X))
	for theta2 < theta1 {
		theta2 += math.Pi * 2
	}
	deltaTheta := theta2 - theta1

	segs := int(math.Abs(deltaTheta)/(math.Pi/cubicsPerHalfCircle)) + 1
	dTheta := deltaTheta / float64(segs)
	tde := math.Tan(dTheta / 2)
	alpha := fixed.Int26_6(math.Sin(dTheta) * (math.Sqrt(4+3*tde*tde) - 1) * (64.0 / 3.0))
	r := float64(length(s1.Sub(a))) // in fixed units, times 64
	ldp := fixed.Point26_6{X: -fixed.Int26_6(r * math.Sin(theta1)), Y: fixed.Int26_6(r * math.Cos(theta1))}
	cur := fixed.Point26_6{X: a.X + ldp.Y, Y: a.Y - ldp.X}
	adder.Line(cur)
	for i := 1; i <= segs; i++ {
		eta := theta1 + dTheta*float64(i)
		dp := fixed.Point26_6{X: -fixed.Int26_6(r * math.Sin(eta)), Y: fixed.Int26_6(r * math.Cos(eta))}
		// on a circle the rotated derivative points at the next sample
		next := fixed.Point26_6{X: a.X + dp.Y, Y: a.Y - dp.X}
		adder.CubeBezier(cur.Add(ldp.Mul(alpha)), next.Sub(dp.Mul(alpha)), next)
		cur, ldp = next, dp
	}
}

// addArc appends the elliptical arc of a path A command, points
// holding its seven parameters. px, py is the current position and
// cx, cy the ellipse center located by findEllipseCenter. Returns the
// final position.
func (p *Path) addArc(points []float64, cx, cy, px, py float64) (lx, ly float64) {
	rotX := points[2] * math.Pi / 180 // x axis rotation, given in degrees
	largeArc := points[3] != 0
	sweep := points[4] != 0
	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(points[6]-cy, points[5]-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	// switch to the ellipse parameter eta before splitting the sweep
	etaStart := math.Atan2(math.Sin(startAngle)/points[1], math.Cos(startAngle)/points[0])
	etaEnd := math.Atan2(math.Sin(endAngle)/points[1], math.Cos(endAngle)/points[0])
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// needed when the ellipse center sits at the midpoint of the
	// start and end points
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly = px, py
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(points[0], points[1], sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var nx, ny float64
		if i == segs {
			// land exactly on the arc end point, avoiding roundoff
			nx, ny = points[5], points[6]
		} else {
			nx, ny = ellipsePointAt(points[0], points[1], sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(points[0], points[1], sinTheta, cosTheta, eta)
		p.CubeBezier(toFixedP(lx+alpha*ldx, ly+alpha*ldy),
			toFixedP(nx-alpha*dx, ny-alpha*dy), toFixedP(nx, ny))
		lx, ly, ldx, ldy = nx, ny, dx, dy
	}
	return lx, ly
}

// ellipsePrime is the tangent vector of the ellipse of radii a, b
// rotated by theta, at parameter eta.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt is the point of the ellipse of radii a, b rotated by
// theta and centered on cx, cy, at parameter eta.
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the arc ellipse. When the
// requested radii cannot span the chord they are grown, preserving
// their ratio, so ra and rb are passed as pointers and may come back
// changed. The work happens in a frame where the ellipse is a circle
// through the origin, the center transforming back at the end.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// move the origin to the start point
	nx, ny := endX-startX, endY-startY

	// rotate the ellipse x axis onto the coordinate x axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// scale so that ra equals rb, making the ellipse a circle of
	// radius rb whose foci and center coincide
	nx *= *rb / *ra

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// the chord is longer than the ellipse can span, grow the radii
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// when hr is zero both candidate centers coincide
	if sweep == smallArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// undo the scale, then the rotation and translation
	cx *= *ra / *rb
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
