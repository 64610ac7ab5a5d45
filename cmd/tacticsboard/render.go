package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bfleague/haxfootball-board/internal/boardio"
	"github.com/bfleague/haxfootball-board/internal/render"
)

// renderCmd rasterizes a board file to a PNG without opening the editor.
type renderCmd struct {
	file   string
	output string
	width  int
	height int
	shadow bool
	*root
	fs *flag.FlagSet
}

func (rc *renderCmd) FlagSet() *flag.FlagSet {
	return rc.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	rc := &renderCmd{root: r, fs: fs}
	fs.StringVar(&rc.output, "output", "", "PNG output path (defaults next to the board file)")
	fs.IntVar(&rc.width, "width", 960, "image width in pixels")
	fs.IntVar(&rc.height, "height", 540, "image height in pixels")
	fs.BoolVar(&rc.shadow, "shadow", false, "composite the image over a drop shadow")
	fs.Usage = usageFunc(rc)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: rc}
	}
	if rc.width <= 0 || rc.height <= 0 {
		return nil, fmt.Errorf("image size %dx%d is not positive", rc.width, rc.height)
	}
	rc.file = fs.Arg(0)
	return rc, nil
}

func (rc *renderCmd) Run() error {
	path := resolveBoardPath(rc.file, rc.root)
	b, err := boardio.Load(path)
	if err != nil {
		return fmt.Errorf("opening board %s: %w", path, err)
	}

	output := rc.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	renderer := render.New(rc.root.activeTheme)
	img, err := renderer.RenderBoard(b, rc.width, rc.height)
	if err != nil {
		return fmt.Errorf("rendering board: %w", err)
	}
	out, err := render.ExportPNG(output, img, rc.shadow)
	if err != nil {
		return err
	}
	if rc.root.notifier != nil {
		rc.root.notifier.Export(output, out)
	}
	return nil
}
