package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alebedeva/cardforge/internal/domain"
)

func birthdayCard() *domain.Card {
	return &domain.Card{
		ID:    "card-bday",
		Title: "Birthday Balloons",
		Zones: []domain.TextZone{
			{Name: "front", Placeholder: "Write your message", FontFamily: "serif", TextColor: "#222222", Customizable: true},
			{Name: "inside", Placeholder: "Add a personal note", Customizable: true},
		},
	}
}

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(birthdayCard())

	snapshots := []domain.Customization{
		{FrontText: "s1"},
		{FrontText: "s2"},
		{FrontText: "s3"},
	}
	for _, s := range snapshots {
		h.Commit(s)
	}

	for i := len(snapshots) - 1; i >= 0; i-- {
		assert.Equal(t, snapshots[i].FrontText, h.Current().FrontText)
		h.Undo()
	}
	assert.Equal(t, "Write your message", h.Current().FrontText)

	for range snapshots {
		assert.True(t, h.Redo())
	}
	assert.Equal(t, "s3", h.Current().FrontText)
}

func TestHistory_UndoNeverUnderflows(t *testing.T) {
	h := NewHistory(birthdayCard())
	h.Commit(domain.Customization{FrontText: "edit"})

	assert.True(t, h.Undo())
	for i := 0; i < 10; i++ {
		assert.False(t, h.Undo())
	}
	assert.Equal(t, "Write your message", h.Current().FrontText)
	assert.Equal(t, 2, h.Len())
}

func TestHistory_RedoNoopAtTail(t *testing.T) {
	h := NewHistory(birthdayCard())
	h.Commit(domain.Customization{FrontText: "edit"})

	assert.False(t, h.Redo())
	assert.Equal(t, "edit", h.Current().FrontText)
}

func TestHistory_CommitAfterUndoDiscardsFuture(t *testing.T) {
	h := NewHistory(birthdayCard())
	h.Commit(domain.Customization{FrontText: "a"})
	h.Commit(domain.Customization{FrontText: "b"})
	h.Commit(domain.Customization{FrontText: "c"})

	require.True(t, h.Undo())
	require.True(t, h.Undo())
	assert.Equal(t, "a", h.Current().FrontText)

	h.Commit(domain.Customization{FrontText: "d"})
	assert.Equal(t, "d", h.Current().FrontText)
	assert.Equal(t, 3, h.Len()) // placeholder, a, d

	assert.False(t, h.Redo(), "redo stack is gone after a fresh commit")
	assert.Equal(t, "d", h.Current().FrontText)
}

func TestHistory_EditorScenario(t *testing.T) {
	// Placeholder -> "Happy Birthday!" -> "Happy Birthday, Sam!" -> undo -> reset.
	h := NewHistory(birthdayCard())
	assert.Equal(t, "Write your message", h.Current().FrontText)

	h.Commit(domain.Customization{FrontText: "Happy Birthday!"})
	h.Commit(domain.Customization{FrontText: "Happy Birthday, Sam!"})

	require.True(t, h.Undo())
	assert.Equal(t, "Happy Birthday!", h.Current().FrontText)

	h.Reset()
	assert.Equal(t, "Write your message", h.Current().FrontText)
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistory_PlaceholderFromZones(t *testing.T) {
	h := NewHistory(birthdayCard())
	cur := h.Current()
	assert.Equal(t, "Write your message", cur.FrontText)
	assert.Equal(t, "Add a personal note", cur.InsideText)
	assert.Equal(t, "serif", cur.FontFamily)
	assert.Equal(t, "#222222", cur.TextColor)
}

func TestSessionManager(t *testing.T) {
	m := NewSessionManager()
	card := birthdayCard()

	id := m.Open(card)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, m.Count())

	err := m.With(id, func(h *History) {
		h.Commit(domain.Customization{FrontText: "hello"})
	})
	require.NoError(t, err)

	var got domain.Customization
	require.NoError(t, m.With(id, func(h *History) { got = h.Current() }))
	assert.Equal(t, "hello", got.FrontText)

	t.Run("unknown session", func(t *testing.T) {
		err := m.With("nope", func(*History) {})
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	m.Close(id)
	assert.Equal(t, 0, m.Count())
	assert.ErrorIs(t, m.With(id, func(*History) {}), ErrSessionNotFound)
}
