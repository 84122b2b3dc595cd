package editor

import (
	"github.com/alebedeva/cardforge/internal/domain"
)

// History is a linear undo/redo log of customization snapshots with a cursor.
// Invariants: len(snapshots) >= 1, 0 <= index < len(snapshots), snapshots[0]
// is the card's placeholder state, and the live editing state is always
// snapshots[index]. Commits happen on discrete user actions (blur, mouse-up,
// explicit selection), never per keystroke.
type History struct {
	cardID    string
	snapshots []domain.Customization
	index     int
}

// NewHistory starts an editing log for the card, seeded with its placeholder
// snapshot.
func NewHistory(card *domain.Card) *History {
	return &History{
		cardID:    card.ID,
		snapshots: []domain.Customization{domain.PlaceholderCustomization(card)},
	}
}

func (h *History) CardID() string {
	return h.cardID
}

// Current is the live editing state.
func (h *History) Current() domain.Customization {
	return h.snapshots[h.index]
}

// Commit records a new snapshot. Any entries after the cursor are discarded
// first, so a commit after one or more undos invalidates the redo stack.
func (h *History) Commit(c domain.Customization) {
	h.snapshots = append(h.snapshots[:h.index+1], c)
	h.index = len(h.snapshots) - 1
}

// Undo steps the cursor back one snapshot. At the initial snapshot it is a
// no-op and reports false.
func (h *History) Undo() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Redo steps the cursor forward one snapshot. At the tail it is a no-op and
// reports false.
func (h *History) Redo() bool {
	if h.index == len(h.snapshots)-1 {
		return false
	}
	h.index++
	return true
}

// Reset truncates the log back to the single placeholder snapshot.
func (h *History) Reset() {
	h.snapshots = h.snapshots[:1]
	h.index = 0
}

// Len reports how many snapshots the log holds, placeholder included.
func (h *History) Len() int {
	return len(h.snapshots)
}

// CanUndo and CanRedo expose cursor position for UI state.
func (h *History) CanUndo() bool { return h.index > 0 }
func (h *History) CanRedo() bool { return h.index < len(h.snapshots)-1 }
