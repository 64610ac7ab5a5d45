package ui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/bfleague/haxfootball-board/internal/editor"
	"github.com/bfleague/haxfootball-board/internal/theme"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// chrome holds the palette the widgets draw with. App.Main swaps it for the
// configured theme before the first frame.
var chrome = theme.Default()

func buttonFill(state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return chrome.ButtonBackgroundHover
	case StatePressed:
		return chrome.ButtonBackgroundPress
	}
	return chrome.ButtonBackground
}

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
// It delegates all interface methods to the wrapped Button while
// caching the result of Draw for each state.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// Shortcut is an entry in the bottom bar: a label plus the action it fires.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{buttonFill(state)}, image.Point{}, draw.Src)
	drawRectOutline(dst, s.rect, chrome.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(chrome.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
	}
}
func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

// ToolButton represents a toolbar button that selects an editing tool.
type ToolButton struct {
	label string
	tool  editor.Tool
	rect  image.Rectangle
	// onSelect is called when the button is activated.
	onSelect func()
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, tb.rect, &image.Uniform{buttonFill(state)}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(chrome.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}
func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}

// StyleButton is a toolbar toggle for spawn team and arrow style. The swatch
// color is drawn next to the label so the current palette is visible at a
// glance.
type StyleButton struct {
	label string
	// key identifies the style the button toggles, for example "team:red" or
	// "dash". The toolbar uses it to decide the pressed state per frame.
	key      string
	swatch   color.RGBA
	rect     image.Rectangle
	onSelect func()
}

func (sb *StyleButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, sb.rect, &image.Uniform{buttonFill(state)}, image.Point{}, draw.Src)
	x := sb.rect.Min.X + 4
	if sb.swatch.A > 0 {
		sw := image.Rect(x, sb.rect.Min.Y+6, x+12, sb.rect.Min.Y+18)
		draw.Draw(dst, sw, &image.Uniform{sb.swatch}, image.Point{}, draw.Src)
		drawRectOutline(dst, sw, chrome.ButtonBorder, 1)
		x = sw.Max.X + 4
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(chrome.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(x, sb.rect.Min.Y+16)}
	d.DrawString(sb.label)
}

func (sb *StyleButton) Rect() image.Rectangle { return sb.rect }

func (sb *StyleButton) SetRect(r image.Rectangle) {
	if r != sb.rect {
		sb.rect = r
	}
}
func (sb *StyleButton) Activate() {
	if sb.onSelect != nil {
		sb.onSelect()
	}
}
