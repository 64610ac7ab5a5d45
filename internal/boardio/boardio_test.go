package boardio

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/geom"
)

func sampleBoard() *board.Board {
	b := board.New()
	b.Elements = []board.Element{
		&board.Player{Id: "p1", X: -100, Y: 40, Team: board.TeamBlue, Label: "10", Name: "Alex"},
		&board.Ball{Id: "b1", X: 0, Y: 0},
		&board.StraightArrow{Id: "a1", X1: 0, Y1: 0, X2: 100, Y2: 50, Color: board.ArrowYellow, Dashed: true},
		&board.CurveArrow{Id: "c1", Points: []geom.Point{{X: 0, Y: 0}, {X: 20, Y: 5}, {X: 40, Y: -5}}, Color: board.ArrowRed},
	}
	b.Camera = geom.Camera{X: 12, Y: -8, Scale: 1.5}
	return b
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode(sampleBoard())
	if err != nil {
		t.Fatal(err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"elements", "camera", "bg"} {
		if _, ok := top[field]; !ok {
			t.Errorf("missing top-level field %q", field)
		}
	}
	if len(top) != 3 {
		t.Errorf("top-level fields = %d, want 3", len(top))
	}

	var cam map[string]float64
	if err := json.Unmarshal(top["camera"], &cam); err != nil {
		t.Fatal(err)
	}
	if cam["x"] != 12 || cam["y"] != -8 || cam["scale"] != 1.5 {
		t.Errorf("camera = %v", cam)
	}

	var bg map[string]any
	if err := json.Unmarshal(top["bg"], &bg); err != nil {
		t.Fatal(err)
	}
	if bg["url"] != nil {
		t.Errorf("bg.url = %v, want null", bg["url"])
	}
	if bg["width"] != float64(board.DefaultFieldWidth) || bg["height"] != float64(board.DefaultFieldHeight) {
		t.Errorf("bg dims = %vx%v", bg["width"], bg["height"])
	}
}

func TestStraightArrowWireShape(t *testing.T) {
	b := board.New()
	b.Elements = []board.Element{
		&board.StraightArrow{Id: "a1", X1: 0, Y1: 0, X2: 100, Y2: 50, Color: board.ArrowYellow, Dashed: true},
	}
	data, err := Encode(b)
	if err != nil {
		t.Fatal(err)
	}
	var top struct {
		Elements []map[string]any `json:"elements"`
	}
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatal(err)
	}
	got := top.Elements[0]
	want := map[string]any{
		"kind": "arrow-straight", "id": "a1",
		"x1": float64(0), "y1": float64(0), "x2": float64(100), "y2": float64(50),
		"color": "yellow", "dashed": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wire shape mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	orig := sampleBoard()
	data, err := Encode(orig)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	opts := cmpopts.IgnoreUnexported(board.Unknown{})
	if diff := cmp.Diff(orig.Elements, back.Elements, opts); diff != "" {
		t.Errorf("elements mismatch (-orig +back):\n%s", diff)
	}
	if orig.Camera != back.Camera {
		t.Errorf("camera %v != %v", orig.Camera, back.Camera)
	}
	if diff := cmp.Diff(orig.Background, back.Background); diff != "" {
		t.Errorf("background mismatch:\n%s", diff)
	}
}

func TestRoundTripPreservesUnknownKinds(t *testing.T) {
	in := `{"elements":[{"kind":"cone","id":"k1","radius":3}],"camera":{"x":0,"y":0,"scale":1},"bg":{"url":null,"width":840,"height":410}}`
	b, err := Decode([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Elements) != 1 {
		t.Fatalf("elements = %d, want 1", len(b.Elements))
	}
	data, err := Encode(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `{"kind":"cone","id":"k1","radius":3}`) {
		t.Errorf("unknown element not preserved: %s", data)
	}
}

func TestDecodeDefaults(t *testing.T) {
	b, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Elements) != 0 {
		t.Errorf("elements = %d, want 0", len(b.Elements))
	}
	if b.Camera != geom.NewCamera() {
		t.Errorf("camera = %+v, want default", b.Camera)
	}
	if b.Background.Width != board.DefaultFieldWidth || b.Background.Height != board.DefaultFieldHeight {
		t.Errorf("background = %+v, want default pitch", b.Background)
	}
}

func TestDecodeClampsCameraScale(t *testing.T) {
	b, err := Decode([]byte(`{"camera":{"x":0,"y":0,"scale":50}}`))
	if err != nil {
		t.Fatal(err)
	}
	if b.Camera.Scale != geom.MaxScale {
		t.Errorf("scale = %v, want %v", b.Camera.Scale, geom.MaxScale)
	}
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	for _, in := range []string{``, `{`, `[1,2,3]`, `"nope"`} {
		if b, err := Decode([]byte(in)); err == nil {
			t.Errorf("Decode(%q) = %+v, want error", in, b)
		}
	}
}

func TestDecodeDropsInvalidElements(t *testing.T) {
	in := `{"elements":[
		{"kind":"ball","x":1,"y":2},
		{"kind":"arrow-curve","points":[{"x":0,"y":0}]},
		{"kind":"arrow-straight","x1":0,"y1":0}
	]}`
	b, err := Decode([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Elements) != 1 {
		t.Fatalf("elements = %d, want 1", len(b.Elements))
	}
	if _, ok := b.Elements[0].(*board.Ball); !ok {
		t.Errorf("survivor is %T, want *Ball", b.Elements[0])
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards", "counter.board.json")
	orig := sampleBoard()
	if err := Save(path, orig); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig.Elements, back.Elements); diff != "" {
		t.Errorf("elements mismatch after save/load:\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load of missing file returned nil error")
	}
}
