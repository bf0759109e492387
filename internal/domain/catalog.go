package domain

// Catalog is the ordered product list. Insertion order is display order and
// indices stay stable until the whole list is replaced.
type Catalog struct {
	products []*Product
}

func NewCatalog(products []*Product) *Catalog {
	c := &Catalog{}
	c.Replace(products)
	return c
}

// Replace swaps in a new product list wholesale. Cart lines are keyed by
// product ID, so a repeated ID is given a fresh one.
func (c *Catalog) Replace(products []*Product) {
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if seen[p.ID] {
			p.ID = NewProductID()
		}
		seen[p.ID] = true
	}
	c.products = append([]*Product(nil), products...)
}

func (c *Catalog) Len() int { return len(c.products) }

// Get returns the product at a 0-based index.
func (c *Catalog) Get(index int) (*Product, error) {
	if index < 0 || index >= len(c.products) {
		return nil, newError(CodeInvalidIndex, "invalid product number %d (catalog has %d)", index+1, len(c.products))
	}
	return c.products[index], nil
}

// ByID looks a product up by its catalog identifier.
func (c *Catalog) ByID(id string) (*Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Products returns the live products in catalog order. The slice is a copy;
// the products are not.
func (c *Catalog) Products() []*Product {
	return append([]*Product(nil), c.products...)
}
