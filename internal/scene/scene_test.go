package scene

import (
	"encoding/json"
	"testing"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/geom"
)

var viewport = geom.Pt(800, 600)

func TestBackgroundIsFirstOp(t *testing.T) {
	b := board.New()
	b.Elements = []board.Element{&board.Ball{Id: "b1"}}
	ops := Build(b, viewport, "", nil)

	bg, ok := ops[0].(Background)
	if !ok {
		t.Fatalf("first op is %T, want Background", ops[0])
	}
	if bg.URL != nil {
		t.Errorf("default pitch has url %v", *bg.URL)
	}
	// Field centered at world origin with a unit camera.
	if bg.Rect.X != 400-board.DefaultFieldWidth/2 || bg.Rect.W != board.DefaultFieldWidth {
		t.Errorf("rect = %+v", bg.Rect)
	}
}

func TestDocumentOrderIsZOrder(t *testing.T) {
	b := board.New()
	b.Elements = []board.Element{
		&board.Player{Id: "p1", Team: board.TeamRed},
		&board.Ball{Id: "b1"},
		&board.StraightArrow{Id: "a1", X2: 10, Y2: 10, Color: board.ArrowYellow},
	}
	ops := Build(b, viewport, "", nil)

	ids := []string{}
	for _, op := range ops {
		switch o := op.(type) {
		case Token:
			ids = append(ids, o.ID)
		case BallDot:
			ids = append(ids, o.ID)
		case Polyline:
			ids = append(ids, o.ID)
		}
	}
	want := []string{"p1", "b1", "a1"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestHighlightRingPrecedesSelectedElement(t *testing.T) {
	b := board.New()
	b.Elements = []board.Element{
		&board.Player{Id: "p1", X: 10, Y: 20, Team: board.TeamBlue},
	}
	ops := Build(b, viewport, "p1", nil)

	ring, ok := ops[1].(HighlightRing)
	if !ok {
		t.Fatalf("op[1] is %T, want HighlightRing", ops[1])
	}
	tok, ok := ops[2].(Token)
	if !ok {
		t.Fatalf("op[2] is %T, want Token", ops[2])
	}
	if ring.Center != tok.Center {
		t.Errorf("ring at %v, token at %v", ring.Center, tok.Center)
	}
	if ring.Radius <= tok.Radius {
		t.Errorf("ring radius %v not larger than token radius %v", ring.Radius, tok.Radius)
	}
}

func TestPreviewIsLastAndGhost(t *testing.T) {
	b := board.New()
	b.Elements = []board.Element{&board.Ball{Id: "b1"}}
	preview := &board.StraightArrow{X2: 50, Y2: 50, Color: board.ArrowYellow, Dashed: true}

	ops := Build(b, viewport, "", preview)
	last, ok := ops[len(ops)-1].(Polyline)
	if !ok {
		t.Fatalf("last op is %T, want Polyline", ops[len(ops)-1])
	}
	if !last.Ghost {
		t.Error("preview stroke not marked ghost")
	}
	if !last.Dashed {
		t.Error("preview lost dash flag")
	}
}

func TestCameraScaleAppliedToSizes(t *testing.T) {
	b := board.New()
	b.Camera.Scale = 2
	b.Elements = []board.Element{
		&board.Player{Id: "p1", Team: board.TeamRed},
		&board.CurveArrow{Id: "c1", Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, Color: board.ArrowRed},
	}
	ops := Build(b, viewport, "", nil)

	tok := ops[1].(Token)
	if tok.Radius != playerRadius*2 {
		t.Errorf("token radius = %v, want %v", tok.Radius, playerRadius*2)
	}
	line := ops[2].(Polyline)
	if line.Width != strokeWidth*2 {
		t.Errorf("stroke width = %v, want %v", line.Width, strokeWidth*2)
	}
	// World distance 10 spans 20 screen pixels at scale 2.
	if d := line.Points[0].Distance(line.Points[1]); d != 20 {
		t.Errorf("screen span = %v, want 20", d)
	}
}

func TestUnknownElementsAreNotDrawn(t *testing.T) {
	b := board.New()
	b.Elements = append(b.Elements, mustUnknown(t))
	ops := Build(b, viewport, "", nil)
	if len(ops) != 1 {
		t.Errorf("ops = %d, want background only", len(ops))
	}
}

func mustUnknown(t *testing.T) board.Element {
	t.Helper()
	raws := []json.RawMessage{json.RawMessage(`{"kind":"cone","id":"k1"}`)}
	elems := board.NormalizeElements(raws)
	if len(elems) != 1 {
		t.Fatal("unknown element did not normalize")
	}
	return elems[0]
}
