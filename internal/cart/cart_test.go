package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alebedeva/cardforge/internal/domain"
)

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	c, err := Open(store, "test-cart")
	require.NoError(t, err)
	return c
}

func TestCart_AddItem(t *testing.T) {
	c := newTestCart(t)

	item, err := c.AddItem(domain.LineItem{CardID: "card-1", UnitPrice: 499, Quantity: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 2, item.Quantity)

	t.Run("quantity clamped to one", func(t *testing.T) {
		item, err := c.AddItem(domain.LineItem{CardID: "card-2", UnitPrice: 799, Quantity: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("duplicate adds stay distinct lines", func(t *testing.T) {
		before := len(c.Items())
		first, err := c.AddItem(domain.LineItem{CardID: "card-1", UnitPrice: 499, Quantity: 1})
		require.NoError(t, err)
		second, err := c.AddItem(domain.LineItem{CardID: "card-1", UnitPrice: 499, Quantity: 1})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Len(t, c.Items(), before+2)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	c := newTestCart(t)

	item, err := c.AddItem(domain.LineItem{CardID: "card-1", UnitPrice: 499, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, c.RemoveItem(item.ID))
	assert.Empty(t, c.Items())

	t.Run("missing id is a no-op", func(t *testing.T) {
		assert.NoError(t, c.RemoveItem("nonexistent"))
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := newTestCart(t)

	item, err := c.AddItem(domain.LineItem{CardID: "card-1", UnitPrice: 499, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, c.UpdateQuantity(item.ID, 5))
	assert.Equal(t, 5, c.Items()[0].Quantity)
	assert.Equal(t, int64(499), c.Items()[0].UnitPrice, "price must not re-derive on quantity change")

	t.Run("zero quantity removes the line", func(t *testing.T) {
		require.NoError(t, c.UpdateQuantity(item.ID, 0))
		assert.Empty(t, c.Items())
	})

	t.Run("negative quantity removes too", func(t *testing.T) {
		item, err := c.AddItem(domain.LineItem{CardID: "card-1", UnitPrice: 499, Quantity: 3})
		require.NoError(t, err)
		require.NoError(t, c.UpdateQuantity(item.ID, -5))
		assert.Empty(t, c.Items())
	})
}

func TestCart_UpdateCustomization(t *testing.T) {
	c := newTestCart(t)

	item, err := c.AddItem(domain.LineItem{
		CardID:        "card-1",
		UnitPrice:     499,
		Quantity:      1,
		Customization: domain.Customization{FrontText: "old", FontFamily: "serif"},
	})
	require.NoError(t, err)

	require.NoError(t, c.UpdateCustomization(item.ID, domain.Customization{FrontText: "new"}))

	got := c.Items()[0].Customization
	assert.Equal(t, "new", got.FrontText)
	assert.Empty(t, got.FontFamily, "replacement is wholesale, not a merge")
}

func TestCart_Totals(t *testing.T) {
	c := newTestCart(t)

	_, err := c.AddItem(domain.LineItem{CardID: "card-1", UnitPrice: 499, Quantity: 3})
	require.NoError(t, err)
	_, err = c.AddItem(domain.LineItem{CardID: "card-2", UnitPrice: 799, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(499*3+799*2), c.Total())
	assert.Equal(t, 5, c.ItemCount())

	require.NoError(t, c.Clear())
	assert.Equal(t, int64(0), c.Total())
	assert.Equal(t, 0, c.ItemCount())
}

func TestCart_InvariantUnderOpSequence(t *testing.T) {
	c := newTestCart(t)

	check := func() {
		var wantTotal int64
		var wantCount int
		for _, it := range c.Items() {
			wantTotal += it.UnitPrice * int64(it.Quantity)
			wantCount += it.Quantity
		}
		assert.Equal(t, wantTotal, c.Total())
		assert.Equal(t, wantCount, c.ItemCount())
	}

	a, err := c.AddItem(domain.LineItem{CardID: "a", UnitPrice: 250, Quantity: 2})
	require.NoError(t, err)
	check()
	b, err := c.AddItem(domain.LineItem{CardID: "b", UnitPrice: 1000, Quantity: 1})
	require.NoError(t, err)
	check()
	require.NoError(t, c.UpdateQuantity(a.ID, 7))
	check()
	require.NoError(t, c.RemoveItem(b.ID))
	check()
	require.NoError(t, c.UpdateQuantity(a.ID, 0))
	check()
	assert.Empty(t, c.Items())
}

func TestCart_ConcurrentAddsOnSharedKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := Open(store, "shared")
			if err != nil {
				errs <- err
				return
			}
			if _, err := c.AddItem(domain.LineItem{CardID: "card-1", UnitPrice: 499, Quantity: 1}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := store.Load("shared")
	require.NoError(t, err)
	assert.Len(t, items, workers, "every add must survive concurrent writers")
}

func TestCart_RehydratesFromStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	c, err := Open(store, "persisted")
	require.NoError(t, err)
	item, err := c.AddItem(domain.LineItem{CardID: "card-1", UnitPrice: 499, Quantity: 2})
	require.NoError(t, err)

	reopened, err := Open(store, "persisted")
	require.NoError(t, err)
	items := reopened.Items()
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)

	other, err := Open(store, "other-key")
	require.NoError(t, err)
	assert.Empty(t, other.Items())
}
