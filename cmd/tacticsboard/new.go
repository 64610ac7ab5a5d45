package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/boardio"
)

// newCmd writes a fresh board file with a kickoff lineup.
type newCmd struct {
	file    string
	players int
	force   bool
	*root
	fs *flag.FlagSet
}

func (n *newCmd) FlagSet() *flag.FlagSet {
	return n.fs
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	n := &newCmd{root: r, fs: fs}
	fs.IntVar(&n.players, "players", 5, "players per team in the starting lineup")
	fs.BoolVar(&n.force, "force", false, "overwrite the board file if it exists")
	fs.Usage = usageFunc(n)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: n}
	}
	if n.players < 1 || n.players > 11 {
		return nil, fmt.Errorf("players per team must be between 1 and 11, got %d", n.players)
	}
	n.file = fs.Arg(0)
	return n, nil
}

func (n *newCmd) Run() error {
	path := resolveBoardPath(n.file, n.root)
	if !n.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use -force to overwrite", path)
		}
	}

	width, height := fieldConfig(n.root)
	b := KickoffBoard(width, height, n.players)
	if err := boardio.Save(path, b); err != nil {
		return err
	}
	n.root.notifySave(path)
	fmt.Fprintf(os.Stderr, "created %s\n", path)
	return nil
}

func fieldConfig(r *root) (width, height float64) {
	width, height = board.DefaultFieldWidth, board.DefaultFieldHeight
	if r != nil && r.config != nil {
		if r.config.Field.Width > 0 {
			width = r.config.Field.Width
		}
		if r.config.Field.Height > 0 {
			height = r.config.Field.Height
		}
	}
	return width, height
}

// KickoffBoard builds a board with the ball on the kickoff spot and both
// teams spread evenly along a vertical line inside their own half.
func KickoffBoard(width, height float64, perTeam int) *board.Board {
	b := board.New()
	b.Background.Width = width
	b.Background.Height = height

	b.Elements = append(b.Elements, &board.Ball{Id: board.NewID(), X: 0, Y: 0})

	lineX := width * 0.25
	for i := 0; i < perTeam; i++ {
		y := lineupY(height, perTeam, i)
		b.Elements = append(b.Elements,
			&board.Player{Id: board.NewID(), X: -lineX, Y: y, Team: board.TeamRed, Label: fmt.Sprintf("%d", i+1)},
			&board.Player{Id: board.NewID(), X: lineX, Y: y, Team: board.TeamBlue, Label: fmt.Sprintf("%d", i+1)},
		)
	}
	return b
}

// lineupY spreads n players across the middle 80% of the field height.
func lineupY(height float64, n, i int) float64 {
	if n == 1 {
		return 0
	}
	span := height * 0.8
	return -span/2 + span*float64(i)/float64(n-1)
}
