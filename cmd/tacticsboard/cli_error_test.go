package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/boardio"
	"github.com/bfleague/haxfootball-board/internal/config"
)

func testRoot() *root {
	return &root{program: "tacticsboard", config: config.New()}
}

func TestParseNewRejectsBadPlayerCount(t *testing.T) {
	_, err := parseNewCmd([]string{"-players", "0", "out.json"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "between 1 and 11"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseRenderRejectsBadSize(t *testing.T) {
	_, err := parseRenderCmd([]string{"-width", "0", "board.json"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "not positive"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestNewRunRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, err := parseNewCmd([]string{path}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "already exists"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestNewThenRenderProducesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kickoff.json")

	newCmd, err := parseNewCmd([]string{"-players", "3", path}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := newCmd.Run(); err != nil {
		t.Fatalf("new: %v", err)
	}

	b, err := boardio.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, want := len(b.Elements), 1+2*3; got != want {
		t.Fatalf("element count = %d, want %d", got, want)
	}

	out := filepath.Join(dir, "kickoff.png")
	renderCmd, err := parseRenderCmd([]string{"-output", out, path}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := renderCmd.Run(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output image: %v", err)
	}
}

func TestRenderRunMissingBoard(t *testing.T) {
	cmd, err := parseRenderCmd([]string{filepath.Join(t.TempDir(), "missing.json")}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "opening board"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestResolveBoardPathUsesSaveDir(t *testing.T) {
	r := testRoot()
	r.config.SaveDir = "/boards"
	if got := resolveBoardPath("match.json", r); got != filepath.Join("/boards", "match.json") {
		t.Fatalf("resolveBoardPath = %q", got)
	}
	if got := resolveBoardPath("/abs/match.json", r); got != "/abs/match.json" {
		t.Fatalf("absolute path rewritten to %q", got)
	}
}

func TestKickoffBoardLineup(t *testing.T) {
	b := KickoffBoard(840, 410, 2)
	if got, want := len(b.Elements), 5; got != want {
		t.Fatalf("element count = %d, want %d", got, want)
	}
	ball, ok := b.Elements[0].(*board.Ball)
	if !ok {
		t.Fatalf("first element is %T, want ball", b.Elements[0])
	}
	if ball.X != 0 || ball.Y != 0 {
		t.Fatalf("ball at (%v,%v), want kickoff spot", ball.X, ball.Y)
	}
	// Teams mirror each other across the halfway line.
	for i := 1; i < len(b.Elements); i += 2 {
		red := b.Elements[i].(*board.Player)
		blue := b.Elements[i+1].(*board.Player)
		if red.Team != board.TeamRed || blue.Team != board.TeamBlue {
			t.Fatalf("pair %d teams = %v/%v", i, red.Team, blue.Team)
		}
		if red.X != -blue.X || red.Y != blue.Y {
			t.Fatalf("pair %d not mirrored: red (%v,%v) blue (%v,%v)", i, red.X, red.Y, blue.X, blue.Y)
		}
	}
}
