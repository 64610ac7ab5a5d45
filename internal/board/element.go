// Package board holds the in-memory document model for a tactics board: the
// element variants, the board itself and the normalization routine that
// repairs externally supplied element data.
package board

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/bfleague/haxfootball-board/internal/geom"
)

// Kind discriminates the element variants on the wire.
type Kind string

const (
	KindPlayer   Kind = "player"
	KindBall     Kind = "ball"
	KindStraight Kind = "arrow-straight"
	KindCurve    Kind = "arrow-curve"
)

// Team identifies which side a player token belongs to.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// NormalizeTeam maps arbitrary input to a canonical team, defaulting to red.
func NormalizeTeam(s string) Team {
	switch Team(s) {
	case TeamBlue:
		return TeamBlue
	default:
		return TeamRed
	}
}

// ArrowColor is the stroke color of an arrow element.
type ArrowColor string

const (
	ArrowRed    ArrowColor = "red"
	ArrowBlue   ArrowColor = "blue"
	ArrowYellow ArrowColor = "yellow"
)

// NormalizeArrowColor maps arbitrary input to one of the three canonical
// arrow colors. Unrecognized and legacy values coerce to yellow.
func NormalizeArrowColor(s string) ArrowColor {
	switch ArrowColor(s) {
	case ArrowRed, ArrowBlue, ArrowYellow:
		return ArrowColor(s)
	default:
		return ArrowYellow
	}
}

// MaxLabelLen is the glyph limit for a player's short label.
const MaxLabelLen = 2

// TruncateLabel cuts a label to MaxLabelLen glyphs.
func TruncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxLabelLen {
		return s
	}
	return string(runes[:MaxLabelLen])
}

var idCounter atomic.Uint64

// NewID returns an element id that is unique for the lifetime of the process.
// Ids are assigned once at creation and never change.
func NewID() string {
	return fmt.Sprintf("el-%d", idCounter.Add(1))
}

// Element is the polymorphic board element. Implementations are Player,
// Ball, StraightArrow, CurveArrow and Unknown.
type Element interface {
	Kind() Kind
	ID() string
	// Clone returns a deep copy; nested point slices never alias.
	Clone() Element
}

// Player is a team token with an optional two-glyph label and name.
type Player struct {
	Id    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Team  Team    `json:"team"`
	Label string  `json:"label,omitempty"`
	Name  string  `json:"name,omitempty"`
}

func (p *Player) Kind() Kind { return KindPlayer }
func (p *Player) ID() string { return p.Id }
func (p *Player) Clone() Element {
	c := *p
	return &c
}

// Ball is the ball token.
type Ball struct {
	Id string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func (b *Ball) Kind() Kind { return KindBall }
func (b *Ball) ID() string { return b.Id }
func (b *Ball) Clone() Element {
	c := *b
	return &c
}

// StraightArrow is a directional arrow between two world points.
type StraightArrow struct {
	Id     string     `json:"id"`
	X1     float64    `json:"x1"`
	Y1     float64    `json:"y1"`
	X2     float64    `json:"x2"`
	Y2     float64    `json:"y2"`
	Color  ArrowColor `json:"color"`
	Dashed bool       `json:"dashed"`
}

func (a *StraightArrow) Kind() Kind { return KindStraight }
func (a *StraightArrow) ID() string { return a.Id }
func (a *StraightArrow) Clone() Element {
	c := *a
	return &c
}

// CurveArrow is a freehand directional polyline. It always carries at least
// two points; normalization discards anything shorter.
type CurveArrow struct {
	Id     string       `json:"id"`
	Points []geom.Point `json:"points"`
	Color  ArrowColor   `json:"color"`
	Dashed bool         `json:"dashed"`
}

func (a *CurveArrow) Kind() Kind { return KindCurve }
func (a *CurveArrow) ID() string { return a.Id }
func (a *CurveArrow) Clone() Element {
	c := *a
	c.Points = make([]geom.Point, len(a.Points))
	copy(c.Points, a.Points)
	return &c
}

// Unknown carries an element of an unrecognized kind through import/export
// untouched so newer board files survive a round trip.
type Unknown struct {
	kind Kind
	id   string
	raw  json.RawMessage
}

func (u *Unknown) Kind() Kind { return u.kind }
func (u *Unknown) ID() string { return u.id }
func (u *Unknown) Clone() Element {
	c := *u
	c.raw = append(json.RawMessage(nil), u.raw...)
	return &c
}

// Raw returns the verbatim JSON record the element was imported from.
func (u *Unknown) Raw() json.RawMessage { return u.raw }

// MarshalJSON emits the kind discriminator alongside the variant fields.

func (p *Player) MarshalJSON() ([]byte, error) {
	type alias Player
	return marshalWithKind(KindPlayer, (*alias)(p))
}

func (b *Ball) MarshalJSON() ([]byte, error) {
	type alias Ball
	return marshalWithKind(KindBall, (*alias)(b))
}

func (a *StraightArrow) MarshalJSON() ([]byte, error) {
	type alias StraightArrow
	return marshalWithKind(KindStraight, (*alias)(a))
}

func (a *CurveArrow) MarshalJSON() ([]byte, error) {
	type alias CurveArrow
	return marshalWithKind(KindCurve, (*alias)(a))
}

func (u *Unknown) MarshalJSON() ([]byte, error) {
	return append(json.RawMessage(nil), u.raw...), nil
}

func marshalWithKind(k Kind, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(struct {
		Kind Kind `json:"kind"`
	}{k})
	if err != nil {
		return nil, err
	}
	if string(body) == "{}" {
		return head, nil
	}
	// Splice the kind field in front of the variant fields.
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head[:len(head)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}

// CloneElements deep-copies a whole element sequence. History snapshots and
// import replacement both go through here so the live document never aliases
// a snapshot.
func CloneElements(elems []Element) []Element {
	if elems == nil {
		return nil
	}
	out := make([]Element, len(elems))
	for i, el := range elems {
		out[i] = el.Clone()
	}
	return out
}

// FindIndex returns the position of the element with the given id, or -1.
func FindIndex(elems []Element, id string) int {
	for i, el := range elems {
		if el.ID() == id {
			return i
		}
	}
	return -1
}
