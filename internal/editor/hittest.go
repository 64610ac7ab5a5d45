package editor

import (
	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/geom"
)

// hitTest returns the topmost element under a world point, honoring document
// order as z-order (later elements sit on top). Stroke tolerance for arrows
// is a fixed screen-pixel width, so it shrinks in world units as the camera
// zooms in.
func hitTest(elems []board.Element, world geom.Point, scale float64) board.Element {
	tol := arrowHitPx
	if scale > 0 {
		tol = arrowHitPx / scale
	}
	for i := len(elems) - 1; i >= 0; i-- {
		if hitElement(elems[i], world, tol) {
			return elems[i]
		}
	}
	return nil
}

func hitElement(el board.Element, world geom.Point, tol float64) bool {
	switch e := el.(type) {
	case *board.Player:
		return world.Distance(geom.Pt(e.X, e.Y)) <= PlayerRadius
	case *board.Ball:
		return world.Distance(geom.Pt(e.X, e.Y)) <= BallRadius
	case *board.StraightArrow:
		d := geom.DistToSegment(world, geom.Pt(e.X1, e.Y1), geom.Pt(e.X2, e.Y2))
		return d <= tol
	case *board.CurveArrow:
		for i := 1; i < len(e.Points); i++ {
			if geom.DistToSegment(world, e.Points[i-1], e.Points[i]) <= tol {
				return true
			}
		}
		return false
	default:
		// Unknown elements have no geometry the editor understands.
		return false
	}
}

// anchorOf returns the position a move gesture drags by. Arrows move as a
// whole, so any fixed reference point works; the first endpoint is used.
func anchorOf(el board.Element) geom.Point {
	switch e := el.(type) {
	case *board.Player:
		return geom.Pt(e.X, e.Y)
	case *board.Ball:
		return geom.Pt(e.X, e.Y)
	case *board.StraightArrow:
		return geom.Pt(e.X1, e.Y1)
	case *board.CurveArrow:
		if len(e.Points) > 0 {
			return e.Points[0]
		}
	}
	return geom.Pt(0, 0)
}

// moveElementTo places el so its anchor lands on pos, translating every
// coordinate the element carries by the same delta.
func moveElementTo(el board.Element, pos geom.Point) {
	delta := pos.Sub(anchorOf(el))
	switch e := el.(type) {
	case *board.Player:
		e.X += delta.X
		e.Y += delta.Y
	case *board.Ball:
		e.X += delta.X
		e.Y += delta.Y
	case *board.StraightArrow:
		e.X1 += delta.X
		e.Y1 += delta.Y
		e.X2 += delta.X
		e.Y2 += delta.Y
	case *board.CurveArrow:
		for i := range e.Points {
			e.Points[i] = e.Points[i].Add(delta)
		}
	}
}
