package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/boardio"
	"github.com/bfleague/haxfootball-board/internal/ui"
)

// editCmd opens a board file in the interactive editor window.
type editCmd struct {
	file   string
	export string
	width  int
	height int
	shadow bool
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.export, "export", "", "PNG path for the export shortcut (defaults next to the board file)")
	fs.IntVar(&e.width, "width", 960, "initial window width in pixels")
	fs.IntVar(&e.height, "height", 600, "initial window height in pixels")
	fs.BoolVar(&e.shadow, "shadow", false, "composite exported images over a drop shadow")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: e}
	}
	e.file = fs.Arg(0)
	return e, nil
}

func (e *editCmd) Run() error {
	path := resolveBoardPath(e.file, e.root)
	b, err := boardio.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("opening board %s: %w", path, err)
		}
		b = board.New()
		applyFieldConfig(b, e.root)
	}

	export := e.export
	if export == "" {
		export = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	app := ui.New(
		ui.WithBoard(b),
		ui.WithOutput(path),
		ui.WithExportPath(export),
		ui.WithTheme(e.root.activeTheme),
		ui.WithWindowSize(e.width, e.height),
		ui.WithExportShadow(e.shadow),
		ui.WithNotifier(e.root.notifier),
	)
	app.Run()
	return nil
}

// resolveBoardPath prefixes relative board paths with the configured save
// directory.
func resolveBoardPath(file string, r *root) string {
	if r == nil || r.config == nil || r.config.SaveDir == "" {
		return file
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(r.config.SaveDir, file)
}

// applyFieldConfig sizes a fresh board's pitch from the [field] section.
func applyFieldConfig(b *board.Board, r *root) {
	if r == nil || r.config == nil {
		return
	}
	if r.config.Field.Width > 0 {
		b.Background.Width = r.config.Field.Width
	}
	if r.config.Field.Height > 0 {
		b.Background.Height = r.config.Field.Height
	}
}
