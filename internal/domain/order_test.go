package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/abdidvp/storekraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	t1 = t0.Add(5 * time.Minute)
)

func newOrder(t *testing.T) *domain.Order {
	t.Helper()
	o, err := domain.NewOrder("  Ana  ", t0)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newOrder(t)
	assert.Equal(t, "Ana", o.CustomerName)
	assert.Equal(t, domain.StatusOpen, o.Status())
	assert.Equal(t, t0, o.CreatedAt)
	assert.True(t, o.IsEmpty())
}

func TestNewOrder_BlankName(t *testing.T) {
	_, err := domain.NewOrder("   ", t0)
	assert.ErrorIs(t, err, domain.ErrInvalidCustomerName)
}

func TestOrder_AddItemAggregates(t *testing.T) {
	p := domain.NewProduct("", "Test", 10.0, 10, nil)
	o := newOrder(t)

	require.NoError(t, o.AddItem(p, 2))
	require.NoError(t, o.AddItem(p, 3))

	lines := o.Cart().Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestOrder_Total(t *testing.T) {
	a := domain.NewProduct("", "A", 5.0, 10, nil)
	b := domain.NewProduct("", "B", 2.0, 10, nil)
	o := newOrder(t)
	require.NoError(t, o.AddItem(a, 2))
	require.NoError(t, o.AddItem(b, 3))

	assert.InDelta(t, 5.0*2+2.0*3, o.Total(), 0.0001)
}

func TestOrder_CancelRestocksEverything(t *testing.T) {
	a := domain.NewProduct("", "A", 15.0, 4, nil)
	b := domain.NewProduct("", "B", 7.5, 6, nil)
	o := newOrder(t)
	require.NoError(t, o.AddItem(a, 2))
	require.NoError(t, o.AddItem(b, 2))
	require.InDelta(t, 45.00, o.Total(), 0.0001)

	require.NoError(t, o.Cancel(t1))
	assert.Equal(t, domain.StatusCanceled, o.Status())
	assert.Equal(t, 4, a.Stock())
	assert.Equal(t, 6, b.Stock())
	assert.Equal(t, t1, o.FinishedAt)

	err := o.AddItem(a, 1)
	assert.ErrorIs(t, err, domain.ErrOrderClosed)
	assert.Equal(t, 4, a.Stock())
}

func TestOrder_FinishEmpty(t *testing.T) {
	o := newOrder(t)
	err := o.Finish(t1)
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	assert.Equal(t, domain.StatusOpen, o.Status())
}

func TestOrder_FinishAndRecord(t *testing.T) {
	p := domain.NewProduct("", "Widget", 10.0, 5, nil)
	o := newOrder(t)
	require.NoError(t, o.AddItem(p, 2))
	totalAtFinish := o.Total()

	require.NoError(t, o.Finish(t1))
	assert.Equal(t, domain.StatusPaid, o.Status())

	rec := o.ToRecord()
	assert.Equal(t, "Ana", rec.CustomerName)
	assert.Equal(t, domain.StatusPaid, rec.Status)
	assert.Equal(t, t0, rec.CreatedAt)
	assert.Equal(t, t1, rec.FinishedAt)
	assert.Equal(t, totalAtFinish, rec.Total)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, domain.LineSnapshot{Name: "Widget", Quantity: 2, UnitPrice: 10.0, Subtotal: 20.0}, rec.Items[0])
}

func TestOrder_RecordUsesFrozenPrice(t *testing.T) {
	p := domain.NewProduct("", "Widget", 10.0, 5, nil)
	o := newOrder(t)
	require.NoError(t, o.AddItem(p, 1))
	p.Price = 50

	require.NoError(t, o.Finish(t1))
	rec := o.ToRecord()
	assert.Equal(t, 10.0, rec.Items[0].UnitPrice)
	assert.Equal(t, 10.0, rec.Total)
}

func TestOrder_TerminalStatesRejectEverything(t *testing.T) {
	setups := map[string]func(t *testing.T, o *domain.Order, p *domain.Product){
		"paid": func(t *testing.T, o *domain.Order, p *domain.Product) {
			require.NoError(t, o.AddItem(p, 1))
			require.NoError(t, o.Finish(t1))
		},
		"canceled": func(t *testing.T, o *domain.Order, p *domain.Product) {
			require.NoError(t, o.AddItem(p, 1))
			require.NoError(t, o.Cancel(t1))
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			p := domain.NewProduct("", "Widget", 10.0, 5, nil)
			o := newOrder(t)
			setup(t, o, p)

			status := o.Status()
			stock := p.Stock()
			lines := o.Cart().Len()

			checks := []struct {
				err  error
				want error
			}{
				{o.AddItem(p, 1), domain.ErrOrderClosed},
				{o.RemoveItem(0, nil), domain.ErrOrderClosed},
				{o.Cancel(t1), domain.ErrNotCancelable},
				{o.Finish(t1), domain.ErrNotFinishable},
			}
			for _, c := range checks {
				assert.True(t, errors.Is(c.err, c.want), "got %v, want %v", c.err, c.want)
			}

			assert.Equal(t, status, o.Status())
			assert.Equal(t, stock, p.Stock())
			assert.Equal(t, lines, o.Cart().Len())
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StatusOpen.IsTerminal())
	assert.True(t, domain.StatusPaid.IsTerminal())
	assert.True(t, domain.StatusCanceled.IsTerminal())
}
