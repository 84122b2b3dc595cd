package moderation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContentPolicy marks prompts rejected before any external call is made.
var ErrContentPolicy = errors.New("content policy violation")

// Policy decides whether user-supplied text may be sent to the generation
// service. Implementations must be side-effect free so the gate can run
// synchronously on every request.
type Policy interface {
	Check(text string) error
}

// BlocklistPolicy rejects text containing any listed term, case-insensitive.
// A placeholder for a real moderation service; call sites only see Policy.
type BlocklistPolicy struct {
	terms []string
}

func NewBlocklistPolicy(terms []string) *BlocklistPolicy {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	return &BlocklistPolicy{terms: lowered}
}

func (p *BlocklistPolicy) Check(text string) error {
	lowered := strings.ToLower(text)
	for _, term := range p.terms {
		if strings.Contains(lowered, term) {
			return fmt.Errorf("%w: prompt contains disallowed content", ErrContentPolicy)
		}
	}
	return nil
}

// DefaultBlocklist is used when the config does not supply one.
var DefaultBlocklist = []string{
	"violence",
	"gore",
	"hate speech",
	"self-harm",
	"explicit",
}
