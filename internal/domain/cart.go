package domain

import "fmt"

// CartLine is one product entry in a cart. UnitPrice is frozen when the line
// is created and never follows later catalog price changes.
type CartLine struct {
	ProductID string
	Product   *Product
	Quantity  int
	UnitPrice float64
}

func (l CartLine) Total() float64 { return l.UnitPrice * float64(l.Quantity) }

func (l CartLine) Snapshot() LineSnapshot {
	return LineSnapshot{
		Name:      l.Product.Name,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Subtotal:  l.Total(),
	}
}

func (l CartLine) String() string {
	return fmt.Sprintf("%s | Qty: %d | Unit: $%.2f | Subtotal: $%.2f",
		l.Product.Name, l.Quantity, l.UnitPrice, l.Total())
}

// Cart holds order lines in insertion order and keeps product stock in step
// with them: every unit on a line has been reserved from its product.
type Cart struct {
	lines []*CartLine
}

func NewCart() *Cart { return &Cart{} }

// AddItem reserves quantity units of product and records them on the line
// for that product, creating the line (and freezing its price) on first add.
// On failure neither the cart nor the stock changes.
func (c *Cart) AddItem(product *Product, quantity int) error {
	if err := product.Reserve(quantity); err != nil {
		return err
	}

	if line := c.lineFor(product.ID); line != nil {
		line.Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, &CartLine{
		ProductID: product.ID,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})
	return nil
}

// RemoveItem returns stock from the line at index. A nil quantity removes
// the whole line; otherwise that many units are removed and the line is
// dropped once it reaches zero.
func (c *Cart) RemoveItem(index int, quantity *int) error {
	if index < 0 || index >= len(c.lines) {
		return newError(CodeInvalidIndex, "invalid cart item number %d (cart has %d)", index+1, len(c.lines))
	}
	line := c.lines[index]

	if quantity == nil {
		if err := line.Product.Release(line.Quantity); err != nil {
			return err
		}
		c.deleteLine(index)
		return nil
	}

	q := *quantity
	if q <= 0 {
		return newError(CodeInvalidQuantity, "quantity must be positive (got %d)", q)
	}
	if q > line.Quantity {
		return newError(CodeExceedsLineQuantity,
			"you only have %d of %s in the cart", line.Quantity, line.Product.Name)
	}

	if err := line.Product.Release(q); err != nil {
		return err
	}
	line.Quantity -= q
	if line.Quantity == 0 {
		c.deleteLine(index)
	}
	return nil
}

// Clear drops every line, first returning each line's quantity to its
// product when restock is set. Lines are kept if a release fails.
func (c *Cart) Clear(restock bool) error {
	if restock {
		for _, line := range c.lines {
			if err := line.Product.Release(line.Quantity); err != nil {
				return err
			}
		}
	}
	c.lines = nil
	return nil
}

func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Total()
	}
	return total
}

// ShippingTotal is the flat per-unit shipping fee summed over every unit.
func (c *Cart) ShippingTotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Product.ShippingCost() * float64(line.Quantity)
	}
	return total
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Len() int { return len(c.lines) }

// Lines returns copies of the cart lines in order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	for i, line := range c.lines {
		out[i] = *line
	}
	return out
}

// Reserved is the quantity held across all lines for one product.
func (c *Cart) Reserved(productID string) int {
	if line := c.lineFor(productID); line != nil {
		return line.Quantity
	}
	return 0
}

func (c *Cart) lineFor(productID string) *CartLine {
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line
		}
	}
	return nil
}

func (c *Cart) deleteLine(index int) {
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
}
