package theme

import (
	"image/color"
	"strings"
	"testing"

	"github.com/bfleague/haxfootball-board/internal/board"
)

func TestParseOverridesAndDefaults(t *testing.T) {
	in := `
# comment
Name: Test
Pitch: #112233
Selection: #445566AA
PitchLine: white
NotAField: #000000
`
	th, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Test" {
		t.Errorf("name = %q", th.Name)
	}
	if th.Pitch != (color.RGBA{0x11, 0x22, 0x33, 255}) {
		t.Errorf("pitch = %v", th.Pitch)
	}
	if th.Selection != (color.RGBA{0x44, 0x55, 0x66, 0xAA}) {
		t.Errorf("selection = %v", th.Selection)
	}
	if th.PitchLine != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("pitch line = %v", th.PitchLine)
	}
	// Untouched keys keep the default palette.
	if th.TeamRed != Default().TeamRed {
		t.Errorf("team red = %v", th.TeamRed)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	for _, in := range []string{"Pitch: 112233", "Pitch: #11223", "Pitch: #GGHHII"} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) succeeded", in)
		}
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	l := NewLoader()
	for _, name := range []string{"default", "chalkboard"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if th.Name == "" {
			t.Errorf("%s: empty theme name", name)
		}
	}
	if _, err := l.Load("no-such-theme"); err == nil {
		t.Error("unknown theme loaded")
	}
}

func TestSemanticColorResolution(t *testing.T) {
	th := Default()
	if th.TeamColor(board.TeamBlue) != th.TeamBlue {
		t.Error("blue team resolution")
	}
	if th.TeamColor(board.TeamRed) != th.TeamRed {
		t.Error("red team resolution")
	}
	if th.ArrowRGBA(board.ArrowYellow) != th.ArrowYellow {
		t.Error("yellow arrow resolution")
	}
	if th.ArrowRGBA(board.ArrowColor("odd")) != th.ArrowYellow {
		t.Error("fallback arrow resolution")
	}
}
