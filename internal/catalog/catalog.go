package catalog

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/alebedeva/cardforge/internal/domain"
)

var ErrCardNotFound = errors.New("card not found")

// Catalog is the keyed collection of card designs. Reads return copies so
// callers cannot mutate shared state behind the lock.
type Catalog struct {
	mu    sync.RWMutex
	cards map[string]*domain.Card
}

func New() *Catalog {
	return &Catalog{
		cards: make(map[string]*domain.Card),
	}
}

func (c *Catalog) Get(id string) (*domain.Card, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	card, found := c.cards[id]
	if !found {
		return nil, ErrCardNotFound
	}
	cardCopy := *card
	cardCopy.Zones = append([]domain.TextZone(nil), card.Zones...)
	return &cardCopy, nil
}

// List returns all cards sorted by title.
func (c *Catalog) List() []domain.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Card, 0, len(c.cards))
	for _, card := range c.cards {
		cardCopy := *card
		cardCopy.Zones = append([]domain.TextZone(nil), card.Zones...)
		out = append(out, cardCopy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (c *Catalog) Insert(card domain.Card) {
	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cards[card.ID] = &card
}

func (c *Catalog) Update(card domain.Card) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, found := c.cards[card.ID]
	if !found {
		return ErrCardNotFound
	}
	card.CreatedAt = existing.CreatedAt
	card.UpdatedAt = time.Now().UTC()
	c.cards[card.ID] = &card
	return nil
}

func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.cards[id]; !found {
		return ErrCardNotFound
	}
	delete(c.cards, id)
	return nil
}

func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}
