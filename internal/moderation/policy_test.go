package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlocklistPolicy(t *testing.T) {
	policy := NewBlocklistPolicy([]string{"Gore", " explicit ", ""})

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"clean text", "Happy birthday to my favourite person", false},
		{"exact term", "some gore here", true},
		{"case insensitive", "GORE everywhere", true},
		{"term inside a sentence", "make it explicit please", true},
		{"empty text", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Check(tc.text)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrContentPolicy)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultBlocklist(t *testing.T) {
	policy := NewBlocklistPolicy(DefaultBlocklist)
	assert.Error(t, policy.Check("a card about violence"))
	assert.NoError(t, policy.Check("a card about violets"))
}
