package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/editor"
	"github.com/bfleague/haxfootball-board/internal/geom"
	"github.com/bfleague/haxfootball-board/internal/render"
	"github.com/bfleague/haxfootball-board/internal/scene"
)

const (
	titleHeight  = 24
	bottomHeight = 24
)

var toolbarWidth = 96

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var (
	toolButtons  []*CacheButton
	styleButtons []*StyleButton

	shortcutRects []Shortcut
	hoverShortcut = -1
	hoverTool     = -1
	hoverStyle    = -1
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 48, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// paintState carries everything a single frame needs. The board is a deep
// clone so the paint goroutine never reads editor state that the event loop
// is mutating.
type paintState struct {
	width, height  int
	board          *board.Board
	selection      string
	preview        board.Element
	tool           editor.Tool
	team           board.Team
	arrowColor     board.ArrowColor
	dashed         bool
	zoom           float64
	title          string
	message        string
	messageUntil   time.Time
	handleShortcut func(string)
	renderer       *render.Renderer
}

// canvasRect returns the screen area occupied by the board canvas.
func canvasRect(width, height int) image.Rectangle {
	return image.Rect(toolbarWidth, titleHeight, width, height-bottomHeight)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	dst := b.RGBA()
	draw.Draw(dst, dst.Bounds(), &image.Uniform{chrome.Background}, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}

	canvas := canvasRect(st.width, st.height)
	if canvas.Dx() > 0 && canvas.Dy() > 0 {
		viewport := geom.Pt(float64(canvas.Dx()), float64(canvas.Dy()))
		ops := scene.Build(st.board, viewport, st.selection, st.preview)
		img, err := st.renderer.Render(ops, canvas.Dx(), canvas.Dy())
		if err != nil {
			log.Printf("render frame: %v", err)
			return
		}
		draw.Draw(dst, canvas, img, image.Point{}, draw.Src)
	}
	if ctx.Err() != nil {
		return
	}

	drawTitleBar(dst, st.width, st.title)
	drawToolbar(dst, st)
	drawShortcuts(dst, st.width, st.height, st.zoom, st.handleShortcut)
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(chrome.Foreground), Face: messageFace}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		draw.Draw(dst, rect, &image.Uniform{chrome.ToolbarBackground}, image.Point{}, draw.Over)
		drawRectOutline(dst, rect, chrome.ButtonBorder, 2)
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawTitleBar(dst *image.RGBA, width int, title string) {
	draw.Draw(dst, image.Rect(0, 0, width, titleHeight),
		&image.Uniform{chrome.ToolbarBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(chrome.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	d.DrawString(title)
}

// styleActive reports whether a style button's key matches the current
// editing style.
func styleActive(key string, st paintState) bool {
	switch key {
	case "team:red":
		return st.team == board.TeamRed
	case "team:blue":
		return st.team == board.TeamBlue
	case "arrow:yellow":
		return st.arrowColor == board.ArrowYellow
	case "arrow:red":
		return st.arrowColor == board.ArrowRed
	case "arrow:blue":
		return st.arrowColor == board.ArrowBlue
	case "dash":
		return st.dashed
	}
	return false
}

func drawToolbar(dst *image.RGBA, st paintState) {
	draw.Draw(dst, image.Rect(0, titleHeight, toolbarWidth, st.height-bottomHeight),
		&image.Uniform{chrome.ToolbarBackground}, image.Point{}, draw.Src)

	y := titleHeight
	for i, cb := range toolButtons {
		r := image.Rect(0, y, toolbarWidth, y+24)
		cb.SetRect(r)
		tb := cb.Button.(*ToolButton)
		state := StateDefault
		if tb.tool == st.tool {
			state = StatePressed
		} else if i == hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
		y += 24
	}

	// team and arrow style toggles below the tools
	y += 8
	for i, sb := range styleButtons {
		r := image.Rect(0, y, toolbarWidth, y+24)
		sb.SetRect(r)
		state := StateDefault
		if styleActive(sb.key, st) {
			state = StatePressed
		} else if i == hoverStyle {
			state = StateHover
		}
		sb.Draw(dst, state)
		y += 24
	}
}

func drawShortcuts(dst *image.RGBA, width, height int, zoom float64, trigger func(string)) {
	rect := image.Rect(0, height-bottomHeight, width, height)
	draw.Draw(dst, rect, &image.Uniform{chrome.ToolbarBackground}, image.Point{}, draw.Src)
	shortcutRects = shortcutRects[:0]
	zoomStr := fmt.Sprintf("1-5:zoom (%.0f%%)", zoom*100)
	shortcuts := []Shortcut{
		{label: "^S:save", action: func() { trigger("save") }},
		{label: "^E:export", action: func() { trigger("export") }},
		{label: "^C:copy", action: func() { trigger("copy") }},
		{label: "^J:copy json", action: func() { trigger("copyjson") }},
		{label: "^Z:undo", action: func() { trigger("undo") }},
		{label: "Del:delete", action: func() { trigger("delete") }},
		{label: zoomStr, action: nil},
		{label: "Q:quit", action: func() { trigger("quit") }},
	}
	x := toolbarWidth + 4
	y := height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range shortcuts {
		sc := &shortcuts[i]
		w := meas.MeasureString(sc.label).Ceil()
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		state := StateDefault
		if i == hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		shortcutRects = append(shortcutRects, *sc)
		x = sc.rect.Max.X + 8
	}
}

func drawRectOutline(img *image.RGBA, rect image.Rectangle, col color.RGBA, thick int) {
	src := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), src, image.Point{}, draw.Src)
}
