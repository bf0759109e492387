package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order. PAID and CANCELED are
// terminal.
type OrderStatus string

const (
	StatusOpen     OrderStatus = "OPEN"
	StatusPaid     OrderStatus = "PAID"
	StatusCanceled OrderStatus = "CANCELED"
)

func (s OrderStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusCanceled
}

// Order wraps a cart with a customer and a status. The cart may only change
// while the order is OPEN.
type Order struct {
	CustomerName string
	CreatedAt    time.Time
	FinishedAt   time.Time

	cart   *Cart
	status OrderStatus
}

// NewOrder opens an order for customerName. Surrounding whitespace is
// trimmed and a blank name is rejected.
func NewOrder(customerName string, now time.Time) (*Order, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return nil, ErrInvalidCustomerName
	}
	return &Order{
		CustomerName: name,
		CreatedAt:    now.UTC(),
		cart:         NewCart(),
		status:       StatusOpen,
	}, nil
}

func (o *Order) Status() OrderStatus { return o.status }

func (o *Order) Cart() *Cart { return o.cart }

func (o *Order) Total() float64 { return o.cart.Total() }

func (o *Order) IsEmpty() bool { return o.cart.IsEmpty() }

func (o *Order) AddItem(product *Product, quantity int) error {
	if o.status != StatusOpen {
		return o.closedError()
	}
	return o.cart.AddItem(product, quantity)
}

func (o *Order) RemoveItem(index int, quantity *int) error {
	if o.status != StatusOpen {
		return o.closedError()
	}
	return o.cart.RemoveItem(index, quantity)
}

// Cancel restocks every line and moves the order to CANCELED.
func (o *Order) Cancel(now time.Time) error {
	if o.status != StatusOpen {
		return newError(CodeNotCancelable, "only OPEN orders can be canceled (order is %s)", o.status)
	}
	if err := o.cart.Clear(true); err != nil {
		return err
	}
	o.status = StatusCanceled
	o.FinishedAt = now.UTC()
	return nil
}

// Finish moves a non-empty OPEN order to PAID. Recording the sale is left
// to the caller.
func (o *Order) Finish(now time.Time) error {
	if o.status != StatusOpen {
		return newError(CodeNotFinishable, "only OPEN orders can be finished (order is %s)", o.status)
	}
	if o.cart.IsEmpty() {
		return ErrEmptyOrder
	}
	o.status = StatusPaid
	o.FinishedAt = now.UTC()
	return nil
}

// ToRecord projects the order into its history record.
func (o *Order) ToRecord() OrderRecord {
	lines := o.cart.Lines()
	items := make([]LineSnapshot, len(lines))
	for i, line := range lines {
		items[i] = line.Snapshot()
	}
	return OrderRecord{
		CustomerName: o.CustomerName,
		Status:       o.status,
		CreatedAt:    o.CreatedAt,
		FinishedAt:   o.FinishedAt,
		Items:        items,
		Total:        o.cart.Total(),
	}
}

// View projects the order's current cart for presentation.
func (o *Order) View() CartView {
	rec := o.ToRecord()
	return CartView{
		CustomerName: rec.CustomerName,
		Status:       rec.Status,
		CreatedAt:    rec.CreatedAt,
		Items:        rec.Items,
		Total:        rec.Total,
		Shipping:     o.cart.ShippingTotal(),
	}
}

func (o *Order) String() string {
	return fmt.Sprintf("Order for %s | Items: %d | Total: $%.2f", o.CustomerName, o.cart.Len(), o.Total())
}

func (o *Order) closedError() error {
	return newError(CodeOrderClosed, "you cannot modify a closed order (order is %s)", o.status)
}
