package editor

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/geom"
)

// HandleMouse feeds one pointer event into the gesture machine. Coordinates
// are canvas-local screen pixels.
func (s *Session) HandleMouse(e mouse.Event) {
	screen := geom.Pt(float64(e.X), float64(e.Y))

	switch e.Button {
	case mouse.ButtonWheelUp:
		if e.Direction != mouse.DirRelease {
			s.ZoomAt(screen, s.board.Camera.Scale*wheelZoomStep)
		}
		return
	case mouse.ButtonWheelDown:
		if e.Direction != mouse.DirRelease {
			s.ZoomAt(screen, s.board.Camera.Scale/wheelZoomStep)
		}
		return
	}

	switch e.Direction {
	case mouse.DirPress:
		switch e.Button {
		case mouse.ButtonLeft:
			s.press(screen)
		case mouse.ButtonMiddle:
			// Middle button pans regardless of the active tool.
			s.contextTarget = ""
			s.active = &panGesture{last: screen}
		case mouse.ButtonRight:
			s.contextPress(screen)
		}
	case mouse.DirNone:
		s.drag(screen)
	case mouse.DirRelease:
		switch e.Button {
		case mouse.ButtonLeft:
			s.release(screen)
		case mouse.ButtonMiddle:
			if _, ok := s.active.(*panGesture); ok {
				s.active = nil
			}
		}
	}
}

func (s *Session) press(screen geom.Point) {
	s.contextTarget = ""
	world := s.board.Camera.ScreenToWorld(screen, s.viewport)

	if s.spaceHeld {
		s.active = &panGesture{last: screen}
		return
	}

	switch s.tool {
	case ToolSelect:
		if el := hitTest(s.board.Elements, world, s.board.Camera.Scale); el != nil {
			s.selection = el.ID()
			s.active = &moveGesture{
				id:    el.ID(),
				grab:  world.Sub(anchorOf(el)),
				prior: board.CloneElements(s.board.Elements),
			}
			return
		}
		s.active = &panGesture{last: screen}
	case ToolPlayer:
		s.SpawnPlayer(world, s.team)
	case ToolBall:
		s.SpawnBall(world)
	case ToolStraightArrow:
		s.active = &straightGesture{start: world, cur: world}
	case ToolCurveArrow:
		s.active = &curveGesture{points: []geom.Point{world}}
	}
}

func (s *Session) contextPress(screen geom.Point) {
	world := s.board.Camera.ScreenToWorld(screen, s.viewport)
	if el := hitTest(s.board.Elements, world, s.board.Camera.Scale); el != nil {
		s.selection = el.ID()
		s.contextTarget = el.ID()
		return
	}
	s.contextTarget = ""
}

func (s *Session) drag(screen geom.Point) {
	switch g := s.active.(type) {
	case *panGesture:
		s.board.Camera = s.board.Camera.Pan(screen.Sub(g.last))
		g.last = screen
	case *moveGesture:
		idx := board.FindIndex(s.board.Elements, g.id)
		if idx == -1 {
			s.active = nil
			return
		}
		if !g.recorded {
			s.hist.Record(g.prior)
			g.recorded = true
		}
		world := s.board.Camera.ScreenToWorld(screen, s.viewport)
		moveElementTo(s.board.Elements[idx], world.Sub(g.grab))
	case *straightGesture:
		g.cur = s.board.Camera.ScreenToWorld(screen, s.viewport)
	case *curveGesture:
		g.extend(s.board.Camera.ScreenToWorld(screen, s.viewport), s.curveGap())
	}
}

func (s *Session) release(screen geom.Point) {
	world := s.board.Camera.ScreenToWorld(screen, s.viewport)

	switch g := s.active.(type) {
	case *straightGesture:
		g.cur = world
		if g.start != g.cur {
			s.commitStraight(g.start, g.cur)
		}
	case *curveGesture:
		g.extend(world, s.curveGap())
		s.commitCurve(g.points)
	}
	s.active = nil
}

// extend applies the live sampling rule: points closer than gap to the last
// accepted one overwrite it, so the stroke always ends under the pointer.
func (g *curveGesture) extend(world geom.Point, gap float64) {
	n := len(g.points)
	if n == 0 {
		g.points = append(g.points, world)
		return
	}
	if n >= 2 && g.points[n-2].Distance(world) < gap {
		g.points[n-1] = world
		return
	}
	if g.points[n-1].Distance(world) < gap {
		g.points[n-1] = world
		return
	}
	g.points = append(g.points, world)
}

// curveGap is the live sampling distance in world units.
func (s *Session) curveGap() float64 {
	if s.board.Camera.Scale > 0 {
		return curveMinGapPx / s.board.Camera.Scale
	}
	return curveMinGapPx
}

func (s *Session) commitStraight(from, to geom.Point) {
	a := &board.StraightArrow{
		Id: board.NewID(),
		X1: from.X, Y1: from.Y,
		X2: to.X, Y2: to.Y,
		Color:  s.arrowColor,
		Dashed: s.dashed,
	}
	s.mutate(func(elems []board.Element) []board.Element {
		return append(elems, a)
	})
	s.selection = a.Id
}

func (s *Session) commitCurve(raw []geom.Point) {
	pts := geom.SimplifyPolyline(raw, geom.DefaultSimplifyEpsilon)
	if len(pts) < 2 {
		return
	}
	a := &board.CurveArrow{
		Id:     board.NewID(),
		Points: pts,
		Color:  s.arrowColor,
		Dashed: s.dashed,
	}
	s.mutate(func(elems []board.Element) []board.Element {
		return append(elems, a)
	})
	s.selection = a.Id
}

// HandleKey feeds one keyboard event into the session.
func (s *Session) HandleKey(e key.Event) {
	if e.Code == key.CodeSpacebar {
		switch e.Direction {
		case key.DirPress:
			s.spaceHeld = true
		case key.DirRelease:
			s.spaceHeld = false
		}
		return
	}
	if e.Direction != key.DirPress {
		return
	}

	switch e.Code {
	case key.CodeDeleteBackspace, key.CodeDeleteForward:
		s.DeleteSelection()
		return
	}

	if e.Modifiers&(key.ModControl|key.ModMeta) != 0 {
		if e.Rune == 'z' || e.Rune == 'Z' {
			s.Undo()
		}
		return
	}

	if e.Rune >= '1' && e.Rune <= '5' {
		s.ZoomPreset(int(e.Rune - '1'))
	}
}

// ZoomAt rescales the camera, keeping the world point under the given screen
// point fixed. The scale is clamped to the camera's legal range.
func (s *Session) ZoomAt(screen geom.Point, newScale float64) {
	s.board.Camera = s.board.Camera.ZoomAround(screen, newScale, s.viewport)
}

// ZoomPreset jumps to one of the fixed scales bound to the digit keys,
// anchored at the viewport center.
func (s *Session) ZoomPreset(i int) {
	if i < 0 || i >= len(zoomPresets) {
		return
	}
	center := geom.Pt(s.viewport.X/2, s.viewport.Y/2)
	s.ZoomAt(center, zoomPresets[i])
}
