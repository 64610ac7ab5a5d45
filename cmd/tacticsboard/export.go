package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bfleague/haxfootball-board/internal/boardio"
	"github.com/bfleague/haxfootball-board/internal/render"
)

// exportCmd produces a presentation-ready PNG: same rasterization as render
// but composited over a drop shadow by default, with a notification.
type exportCmd struct {
	file   string
	output string
	width  int
	height int
	shadow bool
	*root
	fs *flag.FlagSet
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.StringVar(&e.output, "output", "", "PNG output path (defaults next to the board file)")
	fs.IntVar(&e.width, "width", 960, "image width in pixels")
	fs.IntVar(&e.height, "height", 540, "image height in pixels")
	fs.BoolVar(&e.shadow, "shadow", true, "composite the image over a drop shadow")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: e}
	}
	if e.width <= 0 || e.height <= 0 {
		return nil, fmt.Errorf("image size %dx%d is not positive", e.width, e.height)
	}
	e.file = fs.Arg(0)
	return e, nil
}

func (e *exportCmd) Run() error {
	path := resolveBoardPath(e.file, e.root)
	b, err := boardio.Load(path)
	if err != nil {
		return fmt.Errorf("opening board %s: %w", path, err)
	}

	output := e.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	renderer := render.New(e.root.activeTheme)
	img, err := renderer.RenderBoard(b, e.width, e.height)
	if err != nil {
		return fmt.Errorf("rendering board: %w", err)
	}
	out, err := render.ExportPNG(output, img, e.shadow)
	if err != nil {
		return err
	}
	if e.root.notifier != nil {
		e.root.notifier.Export(output, out)
	}
	return nil
}
