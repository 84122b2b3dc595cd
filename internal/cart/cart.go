package cart

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/alebedeva/cardforge/internal/domain"
)

// Cart is the ordered collection of line items a shopper intends to buy.
// It is a view over the store slot named by its key: every mutation is a
// read-modify-write cycle serialized per key by the store, so two requests
// opening the same cart cannot lose each other's updates. Each add is a
// distinct line even for identical card+customization pairs: customized
// cards are treated as unique artifacts, so quantities are never merged
// across lines.
type Cart struct {
	mu    sync.Mutex
	key   string
	store Store
	items []domain.LineItem
}

func Open(store Store, key string) (*Cart, error) {
	items, err := store.Load(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &Cart{key: key, store: store, items: items}, nil
}

// mutate runs fn through the store's per-key update and refreshes the cached
// snapshot from the persisted result.
func (c *Cart) mutate(fn func(items []domain.LineItem) []domain.LineItem) error {
	items, err := c.store.Update(c.key, fn)
	if err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// AddItem appends item as a new line, assigning it a unique id. Quantity is
// clamped to at least 1.
func (c *Cart) AddItem(item domain.LineItem) (domain.LineItem, error) {
	item.ID = uuid.NewString()
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	err := c.mutate(func(items []domain.LineItem) []domain.LineItem {
		return append(items, item)
	})
	if err != nil {
		return domain.LineItem{}, err
	}
	return item, nil
}

// RemoveItem removes the matching line. A missing id is not an error.
func (c *Cart) RemoveItem(id string) error {
	return c.mutate(func(items []domain.LineItem) []domain.LineItem {
		return removeLine(items, id)
	})
}

func removeLine(items []domain.LineItem, id string) []domain.LineItem {
	for i, it := range items {
		if it.ID == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less is a
// removal request. The unit price is fixed at add time and never re-derived.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	return c.mutate(func(items []domain.LineItem) []domain.LineItem {
		if quantity <= 0 {
			return removeLine(items, id)
		}
		for i := range items {
			if items[i].ID == id {
				items[i].Quantity = quantity
				break
			}
		}
		return items
	})
}

// UpdateCustomization replaces the line's customization wholesale; callers
// must pass the full object, there is no partial merge here.
func (c *Cart) UpdateCustomization(id string, cust domain.Customization) error {
	return c.mutate(func(items []domain.LineItem) []domain.LineItem {
		for i := range items {
			if items[i].ID == id {
				items[i].Customization = cust
				break
			}
		}
		return items
	})
}

func (c *Cart) Clear() error {
	return c.mutate(func([]domain.LineItem) []domain.LineItem {
		return nil
	})
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is Σ unitPrice×quantity over all lines, in minor units.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, it := range c.items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// ItemCount is Σ quantity over all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, it := range c.items {
		count += it.Quantity
	}
	return count
}
