package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSampleCubicBezierEndpoints(t *testing.T) {
	p0 := Pt(0, 0)
	p3 := Pt(100, 50)
	pts := SampleCubicBezier(p0, Pt(30, 80), Pt(70, -20), p3, DefaultBezierSegments)

	if got := len(pts); got != DefaultBezierSegments+1 {
		t.Fatalf("len = %d, want %d", got, DefaultBezierSegments+1)
	}
	if pts[0] != p0 {
		t.Errorf("first point = %v, want %v", pts[0], p0)
	}
	if pts[len(pts)-1].Distance(p3) > 1e-9 {
		t.Errorf("last point = %v, want %v", pts[len(pts)-1], p3)
	}
}

func TestSampleCubicBezierStraightLine(t *testing.T) {
	// Control points on the chord produce uniformly spaced chord samples.
	pts := SampleCubicBezier(Pt(0, 0), Pt(0, 0), Pt(90, 0), Pt(90, 0), 3)
	for _, p := range pts {
		if p.Y != 0 {
			t.Errorf("sample off chord: %v", p)
		}
	}
	if pts[0].X != 0 || pts[len(pts)-1].X != 90 {
		t.Errorf("endpoints = %v .. %v", pts[0], pts[len(pts)-1])
	}
}

func TestSimplifyPolylineDropsDensePoints(t *testing.T) {
	in := []Point{{0, 0}, {0.1, 0}, {0.2, 0}, {5, 0}, {5.1, 0}, {10, 0}}
	got := SimplifyPolyline(in, DefaultSimplifyEpsilon)
	want := []Point{{0.2, 0}, {5.1, 0}, {10, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("simplify mismatch (-want +got):\n%s", diff)
	}
}

func TestSimplifyPolylineTracksLatest(t *testing.T) {
	// Points within epsilon replace the last kept point rather than being
	// discarded, so the tail always follows the most recent input.
	in := []Point{{0, 0}, {10, 0}, {10.2, 0}}
	got := SimplifyPolyline(in, DefaultSimplifyEpsilon)
	want := []Point{{0, 0}, {10.2, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("simplify mismatch (-want +got):\n%s", diff)
	}
}

func TestSimplifyPolylineMinimumTwoPoints(t *testing.T) {
	cases := [][]Point{
		{{0, 0}, {0.1, 0.1}},
		{{0, 0}, {0.1, 0}, {0.2, 0}, {0.3, 0}},
		{{5, 5}, {5, 5}},
	}
	for _, in := range cases {
		got := SimplifyPolyline(in, DefaultSimplifyEpsilon)
		if len(got) < 2 {
			t.Errorf("simplify(%v) = %v, want >= 2 points", in, got)
		}
	}
}

func TestSimplifyPolylineIdempotent(t *testing.T) {
	cases := [][]Point{
		{{0, 0}, {0.1, 0}, {0.2, 0}, {5, 0}, {5.1, 0}, {10, 0}},
		{{0, 0}, {0.5, 0}},
		{{0, 0}, {10, 0}, {10.2, 0}},
		{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		// An overwrite can drag the tail back within epsilon of the
		// previous kept point.
		{{0, 0}, {1, 0}, {1.8, 0}, {1.5, 0}},
		// It can do the same to an interior point before the stroke
		// moves on.
		{{0, 0}, {1, 0}, {0.5, 0}, {2, 0}},
	}
	for _, in := range cases {
		once := SimplifyPolyline(in, DefaultSimplifyEpsilon)
		twice := SimplifyPolyline(once, DefaultSimplifyEpsilon)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("simplify not idempotent for %v (-once +twice):\n%s", in, diff)
		}
	}
}

func TestSimplifyPolylineShortInput(t *testing.T) {
	if got := SimplifyPolyline(nil, DefaultSimplifyEpsilon); len(got) != 0 {
		t.Errorf("simplify(nil) = %v", got)
	}
	if got := SimplifyPolyline([]Point{{1, 2}}, DefaultSimplifyEpsilon); len(got) != 1 {
		t.Errorf("simplify(single) = %v", got)
	}
}

func TestDistToSegment(t *testing.T) {
	tests := []struct {
		p, a, b Point
		want    float64
	}{
		{Pt(5, 5), Pt(0, 0), Pt(10, 0), 5},    // perpendicular foot inside
		{Pt(-3, 4), Pt(0, 0), Pt(10, 0), 5},   // clamped to start
		{Pt(13, -4), Pt(0, 0), Pt(10, 0), 5},  // clamped to end
		{Pt(3, 4), Pt(2, 2), Pt(2, 2), 2.236}, // degenerate segment
	}
	for _, tt := range tests {
		got := DistToSegment(tt.p, tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("DistToSegment(%v, %v, %v) = %v, want %v", tt.p, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !Pt(1, 2).IsFinite() {
		t.Error("finite point reported non-finite")
	}
	for _, p := range []Point{
		{math.NaN(), 0},
		{0, math.Inf(1)},
		{math.Inf(-1), math.NaN()},
	} {
		if p.IsFinite() {
			t.Errorf("%v reported finite", p)
		}
	}
}
