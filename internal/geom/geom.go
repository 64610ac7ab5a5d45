// Package geom provides the pure math used by the board editor: point
// arithmetic, cubic Bézier sampling, polyline simplification and the
// world/screen camera transform.
package geom

import "math"

// Point is a location in either world or screen space, depending on context.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns pt translated by o.
func (pt Point) Add(o Point) Point {
	return Point{X: pt.X + o.X, Y: pt.Y + o.Y}
}

// Sub returns pt - o.
func (pt Point) Sub(o Point) Point {
	return Point{X: pt.X - o.X, Y: pt.Y - o.Y}
}

// Mul returns the point scaled by f.
func (pt Point) Mul(f float64) Point {
	return Point{X: pt.X * f, Y: pt.Y * f}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// IsFinite reports whether both coordinates are finite numbers.
func (pt Point) IsFinite() bool {
	return !math.IsNaN(pt.X) && !math.IsInf(pt.X, 0) &&
		!math.IsNaN(pt.Y) && !math.IsInf(pt.Y, 0)
}

// DefaultBezierSegments is the number of line segments used when flattening a
// cubic curve description into a point list.
const DefaultBezierSegments = 24

// SampleCubicBezier evaluates the cubic Bernstein polynomial for the curve
// (p0, c1, c2, p3) at segments+1 uniformly spaced parameter values, including
// both endpoints. segments values below 1 are treated as 1.
func SampleCubicBezier(p0, c1, c2, p3 Point, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	out := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		out = append(out, Point{
			X: a*p0.X + b*c1.X + c*c2.X + d*p3.X,
			Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p3.Y,
		})
	}
	return out
}

// DefaultSimplifyEpsilon is the minimum spacing kept between consecutive
// points of a freehand curve.
const DefaultSimplifyEpsilon = 0.75

// SimplifyPolyline thins pts left to right. A point is kept only when it is
// more than epsilon away from the last kept point; otherwise it replaces the
// last kept point, so the output always tracks the most recent input ("drag
// to latest"). Overwrites can pull a kept point back within epsilon of its
// predecessor, so the pass repeats until the spacing holds everywhere and
// running the function on its own output is a no-op. When the input has at
// least two points the output is guaranteed to have at least two as well,
// falling back to the first two raw points if simplification collapses
// everything.
func SimplifyPolyline(pts []Point, epsilon float64) []Point {
	if len(pts) < 2 {
		out := make([]Point, len(pts))
		copy(out, pts)
		return out
	}
	out := simplifyPass(pts, epsilon)
	for {
		next := simplifyPass(out, epsilon)
		if len(next) == len(out) {
			// A pass that merges nothing copies its input unchanged.
			return next
		}
		out = next
	}
}

func simplifyPass(pts []Point, epsilon float64) []Point {
	out := make([]Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if p.Distance(out[len(out)-1]) > epsilon {
			out = append(out, p)
		} else {
			out[len(out)-1] = p
		}
	}
	if len(out) < 2 {
		return []Point{pts[0], pts[1]}
	}
	return out
}

// DistToSegment returns the distance from p to the segment ab.
func DistToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
