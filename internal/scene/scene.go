// Package scene flattens a board into an ordered list of screen-space draw
// operations. Renderers consume the op list front to back; document order is
// z-order, the background comes first and an in-progress preview element is
// always last. The scene carries semantic tags (team, arrow color) rather
// than pixel colors so each backend can resolve them against its theme.
package scene

import (
	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/geom"
)

// Base sizes in world units; ops carry them already multiplied by the camera
// scale.
const (
	playerRadius  = 15.0
	ballRadius    = 8.0
	strokeWidth   = 2.5
	highlightPad  = 4.0
	arrowHeadSize = 9.0
)

// Op is one draw operation. Concrete types are Background, HighlightRing,
// Token, BallDot and Polyline.
type Op interface{ isOp() }

// Background places the field. URL is nil for the procedurally drawn pitch.
// Rect is the field's screen-space bounding box.
type Background struct {
	URL  *string
	Rect Rect
}

// Rect is an axis-aligned screen-space rectangle.
type Rect struct {
	X, Y, W, H float64
}

// HighlightRing marks the selected element. It is emitted immediately before
// the element it belongs to so the element draws on top of it.
type HighlightRing struct {
	Center geom.Point
	Radius float64
}

// Token is a player circle with an optional short label inside and an
// optional name underneath.
type Token struct {
	ID     string
	Center geom.Point
	Radius float64
	Team   board.Team
	Label  string
	Name   string
}

// BallDot is the ball marker.
type BallDot struct {
	ID     string
	Center geom.Point
	Radius float64
}

// Polyline is a directional stroke with an arrowhead at the last point.
// Ghost marks an uncommitted preview stroke.
type Polyline struct {
	ID       string
	Points   []geom.Point
	Color    board.ArrowColor
	Width    float64
	HeadSize float64
	Dashed   bool
	Ghost    bool
}

func (Background) isOp()    {}
func (HighlightRing) isOp() {}
func (Token) isOp()         {}
func (BallDot) isOp()       {}
func (Polyline) isOp()      {}

// Build flattens b for a viewport of the given size. selection is the id of
// the highlighted element ("" for none); preview is an uncommitted element
// drawn last as a ghost, or nil.
func Build(b *board.Board, viewport geom.Point, selection string, preview board.Element) []Op {
	cam := b.Camera
	ops := make([]Op, 0, len(b.Elements)+2)

	topLeft := cam.WorldToScreen(geom.Pt(-b.Background.Width/2, -b.Background.Height/2), viewport)
	ops = append(ops, Background{
		URL: b.Background.URL,
		Rect: Rect{
			X: topLeft.X,
			Y: topLeft.Y,
			W: b.Background.Width * cam.Scale,
			H: b.Background.Height * cam.Scale,
		},
	})

	for _, el := range b.Elements {
		ops = appendElement(ops, el, cam, viewport, el.ID() == selection, false)
	}
	if preview != nil {
		ops = appendElement(ops, preview, cam, viewport, false, true)
	}
	return ops
}

func appendElement(ops []Op, el board.Element, cam geom.Camera, viewport geom.Point, selected, ghost bool) []Op {
	switch e := el.(type) {
	case *board.Player:
		center := cam.WorldToScreen(geom.Pt(e.X, e.Y), viewport)
		if selected {
			ops = append(ops, HighlightRing{Center: center, Radius: (playerRadius + highlightPad) * cam.Scale})
		}
		return append(ops, Token{
			ID:     e.Id,
			Center: center,
			Radius: playerRadius * cam.Scale,
			Team:   e.Team,
			Label:  e.Label,
			Name:   e.Name,
		})
	case *board.Ball:
		center := cam.WorldToScreen(geom.Pt(e.X, e.Y), viewport)
		if selected {
			ops = append(ops, HighlightRing{Center: center, Radius: (ballRadius + highlightPad) * cam.Scale})
		}
		return append(ops, BallDot{ID: e.Id, Center: center, Radius: ballRadius * cam.Scale})
	case *board.StraightArrow:
		pts := []geom.Point{
			cam.WorldToScreen(geom.Pt(e.X1, e.Y1), viewport),
			cam.WorldToScreen(geom.Pt(e.X2, e.Y2), viewport),
		}
		return append(ops, stroke(e.Id, pts, e.Color, e.Dashed, cam.Scale, selected, ghost))
	case *board.CurveArrow:
		pts := make([]geom.Point, len(e.Points))
		for i, p := range e.Points {
			pts[i] = cam.WorldToScreen(p, viewport)
		}
		return append(ops, stroke(e.Id, pts, e.Color, e.Dashed, cam.Scale, selected, ghost))
	default:
		// Unknown elements are carried in the document but never drawn.
		return ops
	}
}

func stroke(id string, pts []geom.Point, color board.ArrowColor, dashed bool, scale float64, selected, ghost bool) Polyline {
	width := strokeWidth * scale
	if selected {
		width = (strokeWidth + 1.5) * scale
	}
	return Polyline{
		ID:       id,
		Points:   pts,
		Color:    color,
		Width:    width,
		HeadSize: arrowHeadSize * scale,
		Dashed:   dashed,
		Ghost:    ghost,
	}
}
