package history

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/geom"
)

func ballAt(id string, x float64) []board.Element {
	return []board.Element{&board.Ball{Id: id, X: x}}
}

func TestUndoRestoresExactSnapshot(t *testing.T) {
	h := New()
	prior := []board.Element{
		&board.Player{Id: "p1", X: 1, Y: 2, Team: board.TeamRed, Label: "7"},
		&board.CurveArrow{Id: "c1", Points: []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}, Color: board.ArrowBlue, Dashed: true},
	}
	h.Record(prior)

	// Mutating the source after recording must not affect the snapshot.
	prior[0].(*board.Player).X = 999
	prior[1].(*board.CurveArrow).Points[1].Y = 999

	snap, ok := h.Undo()
	if !ok {
		t.Fatal("Undo returned false")
	}
	want := []board.Element{
		&board.Player{Id: "p1", X: 1, Y: 2, Team: board.TeamRed, Label: "7"},
		&board.CurveArrow{Id: "c1", Points: []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}, Color: board.ArrowBlue, Dashed: true},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoEmpty(t *testing.T) {
	h := New()
	if snap, ok := h.Undo(); ok || snap != nil {
		t.Errorf("Undo on empty = (%v, %v), want (nil, false)", snap, ok)
	}
}

func TestUndoOrderIsLIFO(t *testing.T) {
	h := New()
	for i := 0; i < 3; i++ {
		h.Record(ballAt(fmt.Sprintf("b%d", i), float64(i)))
	}
	for i := 2; i >= 0; i-- {
		snap, ok := h.Undo()
		if !ok {
			t.Fatalf("Undo %d returned false", i)
		}
		if got := snap[0].ID(); got != fmt.Sprintf("b%d", i) {
			t.Errorf("popped %s, want b%d", got, i)
		}
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	h := New()
	for i := 0; i < Capacity+20; i++ {
		h.Record(ballAt(fmt.Sprintf("b%d", i), float64(i)))
	}
	if got := h.Len(); got != Capacity {
		t.Fatalf("Len = %d, want %d", got, Capacity)
	}

	// Newest first; the 20 oldest entries are gone.
	for i := Capacity + 19; i >= 20; i-- {
		snap, ok := h.Undo()
		if !ok {
			t.Fatalf("Undo for b%d returned false", i)
		}
		if got := snap[0].ID(); got != fmt.Sprintf("b%d", i) {
			t.Errorf("popped %s, want b%d", got, i)
		}
	}
	if _, ok := h.Undo(); ok {
		t.Error("evicted entries still poppable")
	}
}

func TestRestoringSuppressesRecording(t *testing.T) {
	h := New()
	h.Record(ballAt("b0", 0))
	h.Restoring(func() {
		h.Record(ballAt("b1", 1))
	})
	if got := h.Len(); got != 1 {
		t.Errorf("Len = %d, want 1", got)
	}
	h.Record(ballAt("b2", 2))
	if got := h.Len(); got != 2 {
		t.Errorf("recording after Restoring broken, Len = %d", got)
	}
}

func TestRecordEmptySnapshot(t *testing.T) {
	h := New()
	h.Record(nil)
	snap, ok := h.Undo()
	if !ok {
		t.Fatal("empty snapshot not recorded")
	}
	if len(snap) != 0 {
		t.Errorf("snapshot = %v, want empty", snap)
	}
}
