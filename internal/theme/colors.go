package theme

import (
	"image/color"

	"github.com/bfleague/haxfootball-board/internal/board"
)

// TeamColor resolves a team tag against the palette.
func (t *Theme) TeamColor(team board.Team) color.RGBA {
	if team == board.TeamBlue {
		return t.TeamBlue
	}
	return t.TeamRed
}

// ArrowRGBA resolves an arrow color tag against the palette.
func (t *Theme) ArrowRGBA(c board.ArrowColor) color.RGBA {
	switch c {
	case board.ArrowRed:
		return t.ArrowRed
	case board.ArrowBlue:
		return t.ArrowBlue
	default:
		return t.ArrowYellow
	}
}
