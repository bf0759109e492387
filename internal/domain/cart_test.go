package domain_test

import (
	"testing"

	"github.com/abdidvp/storekraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func widget() *domain.Product {
	return domain.NewProduct("widget", "Widget", 10.00, 5, nil)
}

func TestCart_AddItem(t *testing.T) {
	w := widget()
	cart := domain.NewCart()

	require.NoError(t, cart.AddItem(w, 2))
	assert.Equal(t, 3, w.Stock())
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
	assert.InDelta(t, 20.00, cart.Total(), 0.0001)

	err := cart.AddItem(w, 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, w.Stock())
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
}

func TestCart_AddItemAggregatesByProductID(t *testing.T) {
	w := widget()
	cart := domain.NewCart()

	require.NoError(t, cart.AddItem(w, 2))
	require.NoError(t, cart.AddItem(w, 3))

	require.Equal(t, 1, cart.Len(), "same product must aggregate even after its stock changed")
	assert.Equal(t, 5, cart.Lines()[0].Quantity)
	assert.Equal(t, 0, w.Stock())
}

func TestCart_AddItemInvalidQuantity(t *testing.T) {
	w := widget()
	cart := domain.NewCart()

	for _, q := range []int{0, -1} {
		err := cart.AddItem(w, q)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 5, w.Stock())
}

func TestCart_PriceFreeze(t *testing.T) {
	w := widget()
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem(w, 2))

	w.Price = 99.99
	require.NoError(t, cart.AddItem(w, 1))

	line := cart.Lines()[0]
	assert.Equal(t, 10.00, line.UnitPrice)
	assert.InDelta(t, 30.00, line.Total(), 0.0001)
}

func TestCart_RemoveItem(t *testing.T) {
	w := widget()
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem(w, 2))

	require.NoError(t, cart.RemoveItem(0, intPtr(1)))
	assert.Equal(t, 1, cart.Lines()[0].Quantity)
	assert.Equal(t, 4, w.Stock())
	assert.InDelta(t, 10.00, cart.Total(), 0.0001)

	require.NoError(t, cart.RemoveItem(0, nil))
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 5, w.Stock())
}

func TestCart_RemoveItemReachingZeroDropsLine(t *testing.T) {
	w := widget()
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem(w, 2))

	require.NoError(t, cart.RemoveItem(0, intPtr(2)))
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 5, w.Stock())
}

func TestCart_RemoveItemFailures(t *testing.T) {
	w := widget()
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem(w, 2))

	tests := []struct {
		name     string
		index    int
		quantity *int
		want     error
	}{
		{"index past end", 1, nil, domain.ErrInvalidIndex},
		{"negative index", -1, intPtr(1), domain.ErrInvalidIndex},
		{"zero quantity", 0, intPtr(0), domain.ErrInvalidQuantity},
		{"negative quantity", 0, intPtr(-3), domain.ErrInvalidQuantity},
		{"more than line holds", 0, intPtr(3), domain.ErrExceedsLineQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cart.RemoveItem(tt.index, tt.quantity)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 2, cart.Lines()[0].Quantity)
			assert.Equal(t, 3, w.Stock())
		})
	}
}

func TestCart_ClearRestock(t *testing.T) {
	a := domain.NewProduct("a", "A", 5.0, 10, nil)
	b := domain.NewProduct("b", "B", 2.0, 10, nil)
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem(a, 2))
	require.NoError(t, cart.AddItem(b, 3))

	require.NoError(t, cart.Clear(true))
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 10, a.Stock())
	assert.Equal(t, 10, b.Stock())
}

func TestCart_ClearWithoutRestock(t *testing.T) {
	a := domain.NewProduct("a", "A", 5.0, 10, nil)
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem(a, 4))

	require.NoError(t, cart.Clear(false))
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 6, a.Stock())
}

func TestCart_StockConservation(t *testing.T) {
	w := domain.NewProduct("w", "Widget", 3.0, 20, nil)
	cart := domain.NewCart()
	const initial = 20

	steps := []func(){
		func() { _ = cart.AddItem(w, 4) },
		func() { _ = cart.AddItem(w, 7) },
		func() { _ = cart.AddItem(w, 50) },
		func() { _ = cart.RemoveItem(0, intPtr(3)) },
		func() { _ = cart.RemoveItem(0, intPtr(30)) },
		func() { _ = cart.AddItem(w, 1) },
		func() { _ = cart.RemoveItem(0, nil) },
		func() { _ = cart.AddItem(w, 9) },
	}
	for i, step := range steps {
		step()
		assert.Equal(t, initial, w.Stock()+cart.Reserved(w.ID), "after step %d", i)
	}
}

func TestCart_ShippingTotal(t *testing.T) {
	phone := domain.NewPhysicalProduct("iPhone 15", 900, 10, 0.2)
	ebook := domain.NewDigitalProduct("Python Ebook", 29.9, 1000, 15)
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem(phone, 3))
	require.NoError(t, cart.AddItem(ebook, 2))

	assert.InDelta(t, 3.00, cart.ShippingTotal(), 0.0001)
}

func TestCart_AddItemRejectsWithoutReserving(t *testing.T) {
	w := domain.NewProduct("w", "Widget", 3.0, 2, nil)
	cart := domain.NewCart()

	assert.ErrorIs(t, cart.AddItem(w, 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddItem(w, 3), domain.ErrInsufficientStock)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 2, w.Stock())
}
