package board

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bfleague/haxfootball-board/internal/geom"
)

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestNormalizeTeam(t *testing.T) {
	tests := []struct {
		in   string
		want Team
	}{
		{"red", TeamRed},
		{"blue", TeamBlue},
		{"", TeamRed},
		{"green", TeamRed},
	}
	for _, tt := range tests {
		if got := NormalizeTeam(tt.in); got != tt.want {
			t.Errorf("NormalizeTeam(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeArrowColor(t *testing.T) {
	tests := []struct {
		in   string
		want ArrowColor
	}{
		{"red", ArrowRed},
		{"blue", ArrowBlue},
		{"yellow", ArrowYellow},
		{"", ArrowYellow},
		{"white", ArrowYellow},
	}
	for _, tt := range tests {
		if got := NormalizeArrowColor(tt.in); got != tt.want {
			t.Errorf("NormalizeArrowColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"7", "7"},
		{"10", "10"},
		{"100", "10"},
		{"éàü", "éà"},
	}
	for _, tt := range tests {
		if got := TruncateLabel(tt.in); got != tt.want {
			t.Errorf("TruncateLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarshalCarriesKindFirst(t *testing.T) {
	a := &StraightArrow{Id: "el-1", X1: 0, Y1: 0, X2: 100, Y2: 50, Color: ArrowYellow, Dashed: true}
	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"kind":"arrow-straight","id":"el-1","x1":0,"y1":0,"x2":100,"y2":50,"color":"yellow","dashed":true}`
	if string(raw) != want {
		t.Errorf("marshal = %s\nwant      %s", raw, want)
	}
}

func TestCloneElementsDeepCopiesCurvePoints(t *testing.T) {
	orig := []Element{
		&Player{Id: "p1", X: 1, Y: 2, Team: TeamRed, Label: "10"},
		&CurveArrow{Id: "c1", Points: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, Color: ArrowBlue},
	}
	clone := CloneElements(orig)

	clone[0].(*Player).X = 99
	clone[1].(*CurveArrow).Points[0].X = 99

	if orig[0].(*Player).X != 1 {
		t.Error("player clone aliased the original")
	}
	if orig[1].(*CurveArrow).Points[0].X != 0 {
		t.Error("curve points aliased the original")
	}
}

func TestNormalizeKeepsSpacedCurvePoints(t *testing.T) {
	raws := rawElements(t, `[{"kind":"arrow-curve","points":[{"x":0,"y":0},{"x":1,"y":0}]}]`)
	elems := NormalizeElements(raws)
	if len(elems) != 1 {
		t.Fatalf("got %d elements, want 1", len(elems))
	}
	c := elems[0].(*CurveArrow)
	want := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	if diff := cmp.Diff(want, c.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if c.Id == "" {
		t.Error("no fresh id assigned")
	}
}

func TestNormalizeDropsSinglePointCurve(t *testing.T) {
	raws := rawElements(t, `[{"kind":"arrow-curve","points":[{"x":0,"y":0}]}]`)
	if elems := NormalizeElements(raws); len(elems) != 0 {
		t.Errorf("got %d elements, want 0", len(elems))
	}
}

func TestNormalizeLegacyCubicCurve(t *testing.T) {
	raws := rawElements(t, `[{"kind":"arrow-curve","x1":0,"y1":0,"cx1":30,"cy1":80,"cx2":70,"cy2":-20,"x2":100,"y2":50}]`)
	elems := NormalizeElements(raws)
	if len(elems) != 1 {
		t.Fatalf("got %d elements, want 1", len(elems))
	}
	c := elems[0].(*CurveArrow)
	if len(c.Points) < 2 {
		t.Fatalf("sampled curve has %d points", len(c.Points))
	}
	first, last := c.Points[0], c.Points[len(c.Points)-1]
	if first != (geom.Point{X: 0, Y: 0}) {
		t.Errorf("first point = %v, want origin", first)
	}
	if last.Distance(geom.Pt(100, 50)) > 1e-9 {
		t.Errorf("last point = %v, want (100,50)", last)
	}
}

func TestNormalizeLegacyCubicMissingCoordDropped(t *testing.T) {
	raws := rawElements(t, `[{"kind":"arrow-curve","x1":0,"y1":0,"x2":100,"y2":50}]`)
	if elems := NormalizeElements(raws); len(elems) != 0 {
		t.Errorf("got %d elements, want 0", len(elems))
	}
}

func TestNormalizePlayerCoercions(t *testing.T) {
	raws := rawElements(t, `[{"kind":"player","x":"12.5","y":null,"team":"purple","label":"GOALIE","name":"Sam"}]`)
	elems := NormalizeElements(raws)
	if len(elems) != 1 {
		t.Fatalf("got %d elements, want 1", len(elems))
	}
	p := elems[0].(*Player)
	if p.X != 12.5 || p.Y != 0 {
		t.Errorf("coords = (%v,%v), want (12.5,0)", p.X, p.Y)
	}
	if p.Team != TeamRed {
		t.Errorf("team = %q, want red", p.Team)
	}
	if p.Label != "GO" {
		t.Errorf("label = %q, want GO", p.Label)
	}
	if p.Name != "Sam" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Id == "" {
		t.Error("no id assigned")
	}
}

func TestNormalizeStraightRequiresAllEndpoints(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"complete", `[{"kind":"arrow-straight","x1":0,"y1":0,"x2":1,"y2":1}]`, 1},
		{"missing y2", `[{"kind":"arrow-straight","x1":0,"y1":0,"x2":1}]`, 0},
		{"non-numeric", `[{"kind":"arrow-straight","x1":"a","y1":0,"x2":1,"y2":1}]`, 0},
	}
	for _, tt := range tests {
		elems := NormalizeElements(rawElements(t, tt.in))
		if len(elems) != tt.want {
			t.Errorf("%s: got %d elements, want %d", tt.name, len(elems), tt.want)
		}
	}
}

func TestNormalizePreservesExistingID(t *testing.T) {
	raws := rawElements(t, `[{"kind":"ball","id":"keep-me","x":1,"y":2}]`)
	elems := NormalizeElements(raws)
	if got := elems[0].ID(); got != "keep-me" {
		t.Errorf("id = %q, want keep-me", got)
	}
}

func TestNormalizeUnknownKindPassesThrough(t *testing.T) {
	in := `{"kind":"cone","id":"k1","x":7,"flavor":"orange"}`
	raws := rawElements(t, `[`+in+`]`)
	elems := NormalizeElements(raws)
	if len(elems) != 1 {
		t.Fatalf("got %d elements, want 1", len(elems))
	}
	u, ok := elems[0].(*Unknown)
	if !ok {
		t.Fatalf("element is %T, want *Unknown", elems[0])
	}
	out, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != in {
		t.Errorf("round trip changed record:\n in %s\nout %s", in, out)
	}
}

func TestNormalizeSkipsMalformedRecords(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`"just a string"`),
		json.RawMessage(`{"kind":"ball","x":1,"y":2}`),
	}
	elems := NormalizeElements(raws)
	if len(elems) != 1 {
		t.Fatalf("got %d elements, want 1", len(elems))
	}
	if _, ok := elems[0].(*Ball); !ok {
		t.Errorf("element is %T, want *Ball", elems[0])
	}
}

func TestBoardClone(t *testing.T) {
	url := "https://example.com/pitch.png"
	b := New()
	b.Elements = []Element{&Ball{Id: "b1", X: 1, Y: 2}}
	b.Background.URL = &url

	c := b.Clone()
	c.Elements[0].(*Ball).X = 99
	*c.Background.URL = "changed"

	if b.Elements[0].(*Ball).X != 1 {
		t.Error("clone aliased elements")
	}
	if *b.Background.URL != url {
		t.Error("clone aliased background url")
	}
}

func rawElements(t *testing.T, s string) []json.RawMessage {
	t.Helper()
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raws); err != nil {
		t.Fatal(err)
	}
	return raws
}
