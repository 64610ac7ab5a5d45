// Package editor interprets pointer and keyboard events into document edits.
// It owns the board, the undo history, the current selection and the active
// pointer gesture; it is the only writer of the document. Everything here is
// synchronous: one input event produces at most one atomic mutation plus its
// history record.
package editor

import (
	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/geom"
	"github.com/bfleague/haxfootball-board/internal/history"
)

// Tool is the externally selected editing mode.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPlayer
	ToolBall
	ToolStraightArrow
	ToolCurveArrow
)

// Token radii and hit tolerances, in world units unless noted.
const (
	PlayerRadius = 15.0
	BallRadius   = 8.0

	// arrowHitPx is the pick tolerance around arrow strokes, in screen
	// pixels; it is divided by the camera scale during hit testing.
	arrowHitPx = 6.0

	// curveMinGapPx is the minimum pointer travel, in screen pixels,
	// before a new point is appended to an in-progress curve. Closer
	// samples overwrite the last point instead.
	curveMinGapPx = 4.0

	// wheelZoomStep is the multiplicative zoom factor per wheel notch.
	wheelZoomStep = 1.05
)

// zoomPresets are the absolute scales bound to the digit keys 1-5.
var zoomPresets = [...]float64{0.5, 0.75, 1.0, 1.5, 2.0}

// The active pointer gesture, a tagged variant. nil means idle.
type gesture interface{ isGesture() }

type panGesture struct {
	last geom.Point // screen space
}

type straightGesture struct {
	start geom.Point // world space
	cur   geom.Point
}

type curveGesture struct {
	points []geom.Point // raw accumulated world points
}

type moveGesture struct {
	id       string
	grab     geom.Point // world offset from element anchor to pointer
	prior    []board.Element
	recorded bool
}

func (*panGesture) isGesture()      {}
func (*straightGesture) isGesture() {}
func (*curveGesture) isGesture()    {}
func (*moveGesture) isGesture()     {}

// Session is the interaction state machine for one editing session.
type Session struct {
	board *board.Board
	hist  *history.History

	viewport geom.Point

	tool       Tool
	team       board.Team
	arrowColor board.ArrowColor
	dashed     bool

	selection     string
	contextTarget string
	spaceHeld     bool

	active gesture
}

// NewSession wraps b in a fresh session. A nil b starts an empty board.
func NewSession(b *board.Board) *Session {
	if b == nil {
		b = board.New()
	}
	return &Session{
		board:      b,
		hist:       history.New(),
		tool:       ToolSelect,
		team:       board.TeamRed,
		arrowColor: board.ArrowYellow,
	}
}

// Board returns the live document.
func (s *Session) Board() *board.Board { return s.board }

// Elements returns the live element sequence.
func (s *Session) Elements() []board.Element { return s.board.Elements }

// Camera returns the current camera.
func (s *Session) Camera() geom.Camera { return s.board.Camera }

// History exposes the undo stack, mainly for tests and status display.
func (s *Session) History() *history.History { return s.hist }

// SetViewport records the canvas size in pixels. All screen/world
// conversions depend on it.
func (s *Session) SetViewport(w, h float64) { s.viewport = geom.Pt(w, h) }

// Viewport returns the canvas size last given to SetViewport.
func (s *Session) Viewport() geom.Point { return s.viewport }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// SetTool switches tools and abandons any in-progress gesture.
func (s *Session) SetTool(t Tool) {
	s.tool = t
	s.active = nil
}

// SetSpawnTeam selects the team new players spawn with.
func (s *Session) SetSpawnTeam(t board.Team) { s.team = t }

// SpawnTeam returns the team new players spawn with.
func (s *Session) SpawnTeam() board.Team { return s.team }

// SetArrowStyle selects the stroke style for newly drawn arrows.
func (s *Session) SetArrowStyle(c board.ArrowColor, dashed bool) {
	s.arrowColor = board.NormalizeArrowColor(string(c))
	s.dashed = dashed
}

// ArrowStyle returns the stroke style for newly drawn arrows.
func (s *Session) ArrowStyle() (board.ArrowColor, bool) { return s.arrowColor, s.dashed }

// Selection returns the id of the selected element, or "".
func (s *Session) Selection() string { return s.selection }

// ContextTarget returns the id the property panel is open for, or "".
func (s *Session) ContextTarget() string { return s.contextTarget }

// CloseContext dismisses the property panel.
func (s *Session) CloseContext() { s.contextTarget = "" }

// PressOutside reports a press outside both the canvas and any open context
// panel: selection is cleared and the panel closed.
func (s *Session) PressOutside() {
	s.selection = ""
	s.contextTarget = ""
}

// mutate records the pre-mutation snapshot and applies fn to the element
// sequence. Every user-visible document change funnels through here exactly
// once.
func (s *Session) mutate(fn func([]board.Element) []board.Element) {
	s.hist.Record(s.board.Elements)
	s.board.Elements = fn(s.board.Elements)
	s.healSelection()
}

// healSelection clears a selection whose element no longer exists.
func (s *Session) healSelection() {
	if s.selection != "" && board.FindIndex(s.board.Elements, s.selection) == -1 {
		s.selection = ""
	}
	if s.contextTarget != "" && board.FindIndex(s.board.Elements, s.contextTarget) == -1 {
		s.contextTarget = ""
	}
}

// Undo restores the element sequence from the most recent snapshot. It is a
// no-op when the history is empty. Selection is not part of history; it is
// only healed if it dangles afterwards.
func (s *Session) Undo() bool {
	snap, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.hist.Restoring(func() {
		s.board.Elements = board.CloneElements(snap)
	})
	s.active = nil
	s.healSelection()
	return true
}

// SpawnPlayer creates a player token at a world position and selects it.
func (s *Session) SpawnPlayer(at geom.Point, team board.Team) string {
	p := &board.Player{Id: board.NewID(), X: at.X, Y: at.Y, Team: team}
	s.mutate(func(elems []board.Element) []board.Element {
		return append(elems, p)
	})
	s.selection = p.Id
	return p.Id
}

// SpawnBall creates a ball token at a world position and selects it.
func (s *Session) SpawnBall(at geom.Point) string {
	b := &board.Ball{Id: board.NewID(), X: at.X, Y: at.Y}
	s.mutate(func(elems []board.Element) []board.Element {
		return append(elems, b)
	})
	s.selection = b.Id
	return b.Id
}

// DropSpawn handles a drag-and-drop from the external palette. typeTag is
// the palette's "player" or "ball"; client is the drop position in screen
// coordinates.
func (s *Session) DropSpawn(typeTag string, client geom.Point) string {
	world := s.board.Camera.ScreenToWorld(client, s.viewport)
	switch typeTag {
	case "ball":
		return s.SpawnBall(world)
	case "player":
		return s.SpawnPlayer(world, s.team)
	default:
		return ""
	}
}

// Delete removes the element with the given id. Unknown ids are a no-op.
func (s *Session) Delete(id string) {
	idx := board.FindIndex(s.board.Elements, id)
	if idx == -1 {
		return
	}
	s.mutate(func(elems []board.Element) []board.Element {
		return append(elems[:idx:idx], elems[idx+1:]...)
	})
}

// DeleteSelection removes the selected element, leaving selection empty.
func (s *Session) DeleteSelection() {
	if s.selection == "" {
		return
	}
	s.Delete(s.selection)
}

// SetPlayerLabel patches a player's short label. Values identical to the
// current one do not record history.
func (s *Session) SetPlayerLabel(id, label string) {
	label = board.TruncateLabel(label)
	p, ok := s.findPlayer(id)
	if !ok || p.Label == label {
		return
	}
	s.mutate(func(elems []board.Element) []board.Element {
		if p, ok := s.findPlayer(id); ok {
			p.Label = label
		}
		return elems
	})
}

// SetPlayerName patches a player's name.
func (s *Session) SetPlayerName(id, name string) {
	p, ok := s.findPlayer(id)
	if !ok || p.Name == name {
		return
	}
	s.mutate(func(elems []board.Element) []board.Element {
		if p, ok := s.findPlayer(id); ok {
			p.Name = name
		}
		return elems
	})
}

// SetPlayerTeam patches a player's team.
func (s *Session) SetPlayerTeam(id string, team board.Team) {
	team = board.NormalizeTeam(string(team))
	p, ok := s.findPlayer(id)
	if !ok || p.Team == team {
		return
	}
	s.mutate(func(elems []board.Element) []board.Element {
		if p, ok := s.findPlayer(id); ok {
			p.Team = team
		}
		return elems
	})
}

// SetArrowColor patches the stroke color of either arrow kind.
func (s *Session) SetArrowColor(id string, c board.ArrowColor) {
	c = board.NormalizeArrowColor(string(c))
	cur, ok := arrowColorOf(s.board.Elements, id)
	if !ok || cur == c {
		return
	}
	s.mutate(func(elems []board.Element) []board.Element {
		setArrowColor(elems, id, c)
		return elems
	})
}

// SetArrowDashed patches the dash flag of either arrow kind.
func (s *Session) SetArrowDashed(id string, dashed bool) {
	cur, ok := arrowDashedOf(s.board.Elements, id)
	if !ok || cur == dashed {
		return
	}
	s.mutate(func(elems []board.Element) []board.Element {
		setArrowDashed(elems, id, dashed)
		return elems
	})
}

// ApplyImport replaces the whole document with an imported board: history is
// recorded first, elements are deep-cloned on the way in, the camera scale
// is clamped and the selection cleared.
func (s *Session) ApplyImport(b *board.Board) {
	s.mutate(func([]board.Element) []board.Element {
		return board.CloneElements(b.Elements)
	})
	s.board.Camera = b.Camera
	s.board.Camera.Scale = geom.ClampScale(s.board.Camera.Scale)
	s.board.Background = b.Background
	s.selection = ""
	s.contextTarget = ""
	s.active = nil
}

// Preview returns the uncommitted element for an in-progress draw gesture,
// or nil. The returned element is not part of the document and carries no id.
func (s *Session) Preview() board.Element {
	switch g := s.active.(type) {
	case *straightGesture:
		return &board.StraightArrow{
			X1: g.start.X, Y1: g.start.Y,
			X2: g.cur.X, Y2: g.cur.Y,
			Color: s.arrowColor, Dashed: s.dashed,
		}
	case *curveGesture:
		if len(g.points) < 2 {
			return nil
		}
		pts := make([]geom.Point, len(g.points))
		copy(pts, g.points)
		return &board.CurveArrow{Points: pts, Color: s.arrowColor, Dashed: s.dashed}
	default:
		return nil
	}
}

func (s *Session) findPlayer(id string) (*board.Player, bool) {
	idx := board.FindIndex(s.board.Elements, id)
	if idx == -1 {
		return nil, false
	}
	p, ok := s.board.Elements[idx].(*board.Player)
	return p, ok
}

func arrowColorOf(elems []board.Element, id string) (board.ArrowColor, bool) {
	switch el := elementByID(elems, id).(type) {
	case *board.StraightArrow:
		return el.Color, true
	case *board.CurveArrow:
		return el.Color, true
	default:
		return "", false
	}
}

func setArrowColor(elems []board.Element, id string, c board.ArrowColor) {
	switch el := elementByID(elems, id).(type) {
	case *board.StraightArrow:
		el.Color = c
	case *board.CurveArrow:
		el.Color = c
	}
}

func arrowDashedOf(elems []board.Element, id string) (bool, bool) {
	switch el := elementByID(elems, id).(type) {
	case *board.StraightArrow:
		return el.Dashed, true
	case *board.CurveArrow:
		return el.Dashed, true
	default:
		return false, false
	}
}

func setArrowDashed(elems []board.Element, id string, dashed bool) {
	switch el := elementByID(elems, id).(type) {
	case *board.StraightArrow:
		el.Dashed = dashed
	case *board.CurveArrow:
		el.Dashed = dashed
	}
}

func elementByID(elems []board.Element, id string) board.Element {
	idx := board.FindIndex(elems, id)
	if idx == -1 {
		return nil
	}
	return elems[idx]
}
