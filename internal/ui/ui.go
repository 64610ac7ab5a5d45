// Package ui runs the interactive board editor window. It owns the shiny
// event loop, the toolbar and shortcut chrome, and forwards canvas input to
// the editing session.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/boardio"
	"github.com/bfleague/haxfootball-board/internal/clipboard"
	"github.com/bfleague/haxfootball-board/internal/editor"
	"github.com/bfleague/haxfootball-board/internal/notify"
	"github.com/bfleague/haxfootball-board/internal/render"
	"github.com/bfleague/haxfootball-board/internal/theme"
)

// App holds the editor window configuration.
type App struct {
	Board      *board.Board
	Output     string
	ExportPath string
	Theme      *theme.Theme
	Width      int
	Height     int
	Shadow     bool

	notifier *notify.Notifier
	updateCh chan struct{}

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithBoard sets the board opened in the editor.
func WithBoard(b *board.Board) Option { return func(a *App) { a.Board = b } }

// WithOutput sets the file path used when saving the board.
func WithOutput(out string) Option { return func(a *App) { a.Output = out } }

// WithExportPath sets the PNG path used by the export shortcut.
func WithExportPath(p string) Option { return func(a *App) { a.ExportPath = p } }

// WithTheme sets the color theme for both the chrome and the canvas.
func WithTheme(th *theme.Theme) Option { return func(a *App) { a.Theme = th } }

// WithWindowSize sets the initial window dimensions in pixels.
func WithWindowSize(w, h int) Option { return func(a *App) { a.Width, a.Height = w, h } }

// WithExportShadow composites exported images over a drop shadow.
func WithExportShadow(on bool) Option { return func(a *App) { a.Shadow = on } }

// WithNotifier sets the desktop notifier used after save, export and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{
		Width:    960,
		Height:   600,
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Board == nil {
		a.Board = board.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Output == "" {
		a.Output = "board.json"
	}
	if a.ExportPath == "" {
		a.ExportPath = "board.png"
	}
	return a
}

// quitEvent asks the event loop to shut down. It is delivered through the
// window's event queue so shortcut callbacks can trigger it safely.
type quitEvent struct{}

// NotifyBoardChanged requests a repaint when the board mutates outside the
// event loop.
func (a *App) NotifyBoardChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	chrome = a.Theme
	session := editor.NewSession(a.Board)
	renderer := render.New(a.Theme)
	title := "TacticsBoard - " + filepath.Base(a.Output)

	// Ensure the toolbar is wide enough to fit all tool button labels so the
	// UI contents are not clipped on start up.
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString(title).Ceil() + 8 // padding
	toolLabels := []string{"V:Select", "P:Player", "B:Ball", "A:Arrow", "C:Curve", "Dashed"}
	for _, lbl := range toolLabels {
		w := d.MeasureString(lbl).Ceil() + 24 // room for the swatch
		if w > max {
			max = w
		}
	}
	if max > toolbarWidth {
		toolbarWidth = max
	}

	width := a.Width
	height := a.Height
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	if a.updateCh != nil {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-a.updateCh:
					w.Send(paint.Event{})
				case <-done:
					return
				}
			}
		}()
		defer close(done)
	}

	canvas := canvasRect(width, height)
	session.SetViewport(float64(canvas.Dx()), float64(canvas.Dy()))

	var message string
	var messageUntil time.Time
	var dragging bool

	flash := func(msg string) {
		message = msg
		log.Print(msg)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()

	keyboardAction := map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}

	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() {
		if err := boardio.Save(a.Output, session.Board()); err != nil {
			log.Printf("save: %v", err)
			flash("save failed")
			return
		}
		if a.notifier != nil {
			a.notifier.Save(a.Output)
		}
		flash(fmt.Sprintf("saved %s", a.Output))
	})

	register("export", shortcutList{{Rune: 'e', Modifiers: key.ModControl}}, func() {
		c := canvasRect(width, height)
		img, err := renderer.RenderBoard(session.Board(), c.Dx(), c.Dy())
		if err != nil {
			log.Printf("export: %v", err)
			flash("export failed")
			return
		}
		out, err := render.ExportPNG(a.ExportPath, img, a.Shadow)
		if err != nil {
			log.Printf("export: %v", err)
			flash("export failed")
			return
		}
		if a.notifier != nil {
			a.notifier.Export(a.ExportPath, out)
		}
		flash(fmt.Sprintf("exported %s", a.ExportPath))
	})

	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		c := canvasRect(width, height)
		img, err := renderer.RenderBoard(session.Board(), c.Dx(), c.Dy())
		if err != nil {
			log.Printf("copy: %v", err)
			return
		}
		if err := clipboard.WriteImage(img); err != nil {
			log.Printf("copy: %v", err)
			flash("copy failed")
			return
		}
		if a.notifier != nil {
			a.notifier.Copy("board image")
		}
		flash("board copied to clipboard")
	})

	register("copyjson", shortcutList{{Rune: 'j', Modifiers: key.ModControl}}, func() {
		data, err := boardio.Encode(session.Board())
		if err != nil {
			log.Printf("copy json: %v", err)
			return
		}
		if err := clipboard.WriteText(string(data)); err != nil {
			log.Printf("copy json: %v", err)
			flash("copy failed")
			return
		}
		if a.notifier != nil {
			a.notifier.Copy("board JSON")
		}
		flash("board JSON copied to clipboard")
	})

	register("undo", nil, func() { session.Undo() })
	register("delete", nil, func() { session.DeleteSelection() })
	register("quit", shortcutList{{Rune: 'q'}}, func() { w.Send(quitEvent{}) })

	handleShortcut := func(action string) {
		if fn, ok := actions[action]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	toolButtons = nil
	for _, def := range []struct {
		label string
		tool  editor.Tool
	}{
		{"V:Select", editor.ToolSelect},
		{"P:Player", editor.ToolPlayer},
		{"B:Ball", editor.ToolBall},
		{"A:Arrow", editor.ToolStraightArrow},
		{"C:Curve", editor.ToolCurveArrow},
	} {
		t := def.tool
		toolButtons = append(toolButtons, &CacheButton{Button: &ToolButton{
			label:    def.label,
			tool:     t,
			onSelect: func() { session.SetTool(t) },
		}})
	}

	styleButtons = []*StyleButton{
		{label: "Red", key: "team:red", swatch: a.Theme.TeamRed,
			onSelect: func() { session.SetSpawnTeam(board.TeamRed) }},
		{label: "Blue", key: "team:blue", swatch: a.Theme.TeamBlue,
			onSelect: func() { session.SetSpawnTeam(board.TeamBlue) }},
		{label: "Yellow", key: "arrow:yellow", swatch: a.Theme.ArrowYellow,
			onSelect: func() { setArrowColor(session, board.ArrowYellow) }},
		{label: "Red", key: "arrow:red", swatch: a.Theme.ArrowRed,
			onSelect: func() { setArrowColor(session, board.ArrowRed) }},
		{label: "Blue", key: "arrow:blue", swatch: a.Theme.ArrowBlue,
			onSelect: func() { setArrowColor(session, board.ArrowBlue) }},
		{label: "Dashed", key: "dash",
			onSelect: func() { toggleDashed(session) }},
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case quitEvent:
			paintMu.Lock()
			if paintCancel != nil {
				paintCancel()
			}
			paintMu.Unlock()
			return
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			c := canvasRect(width, height)
			session.SetViewport(float64(c.Dx()), float64(c.Dy()))
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			color, dashed := session.ArrowStyle()
			st := paintState{
				width:          width,
				height:         height,
				board:          session.Board().Clone(),
				selection:      session.Selection(),
				preview:        session.Preview(),
				tool:           session.Tool(),
				team:           session.SpawnTeam(),
				arrowColor:     color,
				dashed:         dashed,
				zoom:           session.Camera().Scale,
				title:          title,
				message:        message,
				messageUntil:   messageUntil,
				handleShortcut: handleShortcut,
				renderer:       renderer,
			}
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			if int(e.Y) >= height-bottomHeight {
				p := image.Point{int(e.X), int(e.Y)}
				hoverShortcut = -1
				for i, sc := range shortcutRects {
					if p.In(sc.rect) {
						hoverShortcut = i
						if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
							sc.Activate()
						}
						break
					}
				}
				if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}
			if int(e.X) < toolbarWidth && int(e.Y) >= titleHeight {
				pos := int(e.Y) - titleHeight
				idx := pos / 24
				if idx < len(toolButtons) {
					hoverTool = idx
					hoverStyle = -1
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						toolButtons[idx].Activate()
						w.Send(paint.Event{})
					}
					if e.Direction == mouse.DirNone {
						w.Send(paint.Event{})
					}
					continue
				}
				pos -= len(toolButtons) * 24
				pos -= 8
				sidx := pos / 24
				hoverTool = -1
				if pos >= 0 && sidx < len(styleButtons) {
					hoverStyle = sidx
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						styleButtons[sidx].Activate()
						w.Send(paint.Event{})
					}
				} else {
					hoverStyle = -1
				}
				if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}
			if int(e.Y) < titleHeight {
				continue
			}

			// Canvas input goes to the editing session in canvas-local
			// coordinates.
			hoverTool = -1
			hoverStyle = -1
			hoverShortcut = -1
			ce := e
			ce.X -= float32(toolbarWidth)
			ce.Y -= float32(titleHeight)
			session.HandleMouse(ce)
			switch {
			case e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft:
				dragging = true
				w.Send(paint.Event{})
			case e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft:
				dragging = false
				w.Send(paint.Event{})
			case e.Button == mouse.ButtonWheelUp || e.Button == mouse.ButtonWheelDown:
				w.Send(paint.Event{})
			case e.Direction == mouse.DirPress || e.Direction == mouse.DirRelease:
				w.Send(paint.Event{})
			case dragging && e.Direction == mouse.DirNone:
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction == key.DirPress {
				ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
				action, ok := keyboardAction[ks]
				if !ok {
					// Rune-registered shortcuts leave the code unset.
					action, ok = keyboardAction[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}]
				}
				if ok {
					handleShortcut(action)
					continue
				}
				switch e.Rune {
				case 'v', 'V':
					session.SetTool(editor.ToolSelect)
					w.Send(paint.Event{})
					continue
				case 'p', 'P':
					session.SetTool(editor.ToolPlayer)
					w.Send(paint.Event{})
					continue
				case 'b', 'B':
					session.SetTool(editor.ToolBall)
					w.Send(paint.Event{})
					continue
				case 'a', 'A':
					session.SetTool(editor.ToolStraightArrow)
					w.Send(paint.Event{})
					continue
				case 'c', 'C':
					if e.Modifiers == 0 {
						session.SetTool(editor.ToolCurveArrow)
						w.Send(paint.Event{})
						continue
					}
				}
			}
			session.HandleKey(e)
			if e.Direction == key.DirPress {
				w.Send(paint.Event{})
			}
		}
	}
}

func setArrowColor(s *editor.Session, c board.ArrowColor) {
	_, dashed := s.ArrowStyle()
	s.SetArrowStyle(c, dashed)
	if sel := s.Selection(); sel != "" {
		s.SetArrowColor(sel, c)
	}
}

func toggleDashed(s *editor.Session) {
	c, dashed := s.ArrowStyle()
	s.SetArrowStyle(c, !dashed)
	if sel := s.Selection(); sel != "" {
		s.SetArrowDashed(sel, !dashed)
	}
}
