package theme

import (
	"image/color"
)

// Theme defines the color palette for the board UI and renderers.
type Theme struct {
	Name string

	// General chrome
	Background color.RGBA // Window background behind the canvas
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Field
	Pitch     color.RGBA // Grass fill
	PitchLine color.RGBA // Halfway line, boxes, border

	// Elements
	TeamRed     color.RGBA
	TeamBlue    color.RGBA
	TokenText   color.RGBA
	Ball        color.RGBA
	BallOutline color.RGBA
	ArrowRed    color.RGBA
	ArrowBlue   color.RGBA
	ArrowYellow color.RGBA

	// Interaction
	Selection color.RGBA // Highlight ring around the selected element
	Ghost     color.RGBA // In-progress stroke preview
}

// Default returns the hardcoded pitch theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{30, 34, 40, 255},
		Foreground:            color.RGBA{235, 235, 235, 255},
		ToolbarBackground:     color.RGBA{44, 49, 58, 255},
		ButtonBackground:      color.RGBA{58, 64, 74, 255},
		ButtonBackgroundHover: color.RGBA{74, 81, 92, 255},
		ButtonBackgroundPress: color.RGBA{94, 102, 114, 255},
		ButtonText:            color.RGBA{235, 235, 235, 255},
		ButtonBorder:          color.RGBA{20, 22, 26, 255},
		Pitch:                 color.RGBA{55, 126, 67, 255},
		PitchLine:             color.RGBA{235, 235, 235, 255},
		TeamRed:               color.RGBA{229, 70, 61, 255},
		TeamBlue:              color.RGBA{86, 137, 229, 255},
		TokenText:             color.RGBA{255, 255, 255, 255},
		Ball:                  color.RGBA{245, 245, 245, 255},
		BallOutline:           color.RGBA{30, 30, 30, 255},
		ArrowRed:              color.RGBA{229, 70, 61, 255},
		ArrowBlue:             color.RGBA{86, 137, 229, 255},
		ArrowYellow:           color.RGBA{240, 200, 60, 255},
		Selection:             color.RGBA{255, 255, 255, 200},
		Ghost:                 color.RGBA{255, 255, 255, 110},
	}
}
