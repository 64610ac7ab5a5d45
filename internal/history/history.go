// Package history implements the bounded undo stack over document snapshots.
package history

import "github.com/bfleague/haxfootball-board/internal/board"

// Capacity is the maximum number of snapshots retained. The structure is a
// ring buffer: pushing past capacity evicts the oldest entry, popping always
// returns the newest.
const Capacity = 50

// History owns deep-cloned snapshots of the element sequence taken just
// before each mutation. The live document never aliases an entry.
type History struct {
	entries  [Capacity][]board.Element
	start    int
	size     int
	suppress bool
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Len reports the number of stored snapshots.
func (h *History) Len() int { return h.size }

// Record clones prior and pushes it. Recording is skipped while an undo
// restore is in flight so the restore is not itself recorded.
func (h *History) Record(prior []board.Element) {
	if h.suppress {
		return
	}
	snap := board.CloneElements(prior)
	if h.size == Capacity {
		h.entries[h.start] = snap
		h.start = (h.start + 1) % Capacity
		return
	}
	h.entries[(h.start+h.size)%Capacity] = snap
	h.size++
}

// Undo pops the most recent snapshot. The second return is false when the
// history is empty.
func (h *History) Undo() ([]board.Element, bool) {
	if h.size == 0 {
		return nil, false
	}
	h.size--
	idx := (h.start + h.size) % Capacity
	snap := h.entries[idx]
	h.entries[idx] = nil
	return snap, true
}

// Restoring runs fn with recording suppressed. The interaction layer wraps
// its undo-restore mutation in this so restoring does not push a new entry.
func (h *History) Restoring(fn func()) {
	h.suppress = true
	defer func() { h.suppress = false }()
	fn()
}
