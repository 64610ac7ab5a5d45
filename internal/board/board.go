package board

import "github.com/bfleague/haxfootball-board/internal/geom"

// Default pitch dimensions in world units, matching the classic small-sided
// field the editor ships with.
const (
	DefaultFieldWidth  = 840
	DefaultFieldHeight = 410
)

// Background describes the field drawn behind the elements. URL is nil when
// the procedurally drawn pitch is used.
type Background struct {
	URL    *string `json:"url"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Board is the unit of editing and of export/import: the ordered element
// sequence (document order is z-order), the camera and the background.
type Board struct {
	Elements   []Element
	Camera     geom.Camera
	Background Background
}

// New returns an empty board with the default pitch and a unit camera.
func New() *Board {
	return &Board{
		Camera: geom.NewCamera(),
		Background: Background{
			Width:  DefaultFieldWidth,
			Height: DefaultFieldHeight,
		},
	}
}

// Clone deep-copies the board.
func (b *Board) Clone() *Board {
	c := *b
	c.Elements = CloneElements(b.Elements)
	if b.Background.URL != nil {
		u := *b.Background.URL
		c.Background.URL = &u
	}
	return &c
}
