package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ProductKind tags the variant carried by a Product. The values are the
// "type" discriminator used in the catalog snapshot.
type ProductKind string

const (
	KindGeneric  ProductKind = "generic"
	KindPhysical ProductKind = "physical"
	KindDigital  ProductKind = "digital"
)

// ShippingRatePerKg is the flat shipping fee charged per kilogram of a
// physical product, per unit.
const ShippingRatePerKg = 5.00

// Variant is the capability set shared by every product variant.
type Variant interface {
	Kind() ProductKind
	ShippingCost() float64
	Describe() string
}

// Generic is a product with no variant attribute.
type Generic struct{}

func (Generic) Kind() ProductKind     { return KindGeneric }
func (Generic) ShippingCost() float64 { return 0 }
func (Generic) Describe() string      { return "" }

// Physical is a shippable product with a weight in kilograms.
type Physical struct {
	WeightKg float64
}

func (Physical) Kind() ProductKind { return KindPhysical }

func (p Physical) ShippingCost() float64 { return p.WeightKg * ShippingRatePerKg }

func (p Physical) Describe() string {
	return fmt.Sprintf("Weight: %gkg | Shipping: $%.2f", p.WeightKg, p.ShippingCost())
}

// Digital is a downloadable product with a file size in megabytes.
type Digital struct {
	SizeMB float64
}

func (Digital) Kind() ProductKind     { return KindDigital }
func (Digital) ShippingCost() float64 { return 0 }

func (d Digital) Describe() string { return fmt.Sprintf("Size: %gMB", d.SizeMB) }

// Product is a catalog entry. Stock is the live available-to-sell quantity:
// reservations decrement it and releases increment it.
type Product struct {
	ID      string
	Name    string
	Price   float64
	Variant Variant

	stock int
}

// NewProductID returns a fresh catalog identifier.
func NewProductID() string {
	return uuid.NewString()
}

// NewProduct builds a product, clamping a non-positive price to 0 and a
// negative stock to 0. A nil variant means Generic. An empty id is replaced
// by a generated one.
func NewProduct(id, name string, price float64, stock int, variant Variant) *Product {
	if price <= 0 {
		price = 0
	}
	if stock < 0 {
		stock = 0
	}
	if variant == nil {
		variant = Generic{}
	}
	if id == "" {
		id = NewProductID()
	}
	return &Product{ID: id, Name: name, Price: price, Variant: variant, stock: stock}
}

// NewPhysicalProduct is NewProduct with a Physical variant and a generated ID.
func NewPhysicalProduct(name string, price float64, stock int, weightKg float64) *Product {
	return NewProduct("", name, price, stock, Physical{WeightKg: weightKg})
}

// NewDigitalProduct is NewProduct with a Digital variant and a generated ID.
func NewDigitalProduct(name string, price float64, stock int, sizeMB float64) *Product {
	return NewProduct("", name, price, stock, Digital{SizeMB: sizeMB})
}

func (p *Product) Stock() int { return p.stock }

func (p *Product) Kind() ProductKind { return p.Variant.Kind() }

func (p *Product) ShippingCost() float64 { return p.Variant.ShippingCost() }

// SetStock sets stock to an absolute value. Negative values are rejected
// with ErrInvalidAmount and the previous value is kept.
func (p *Product) SetStock(value int) error {
	if value < 0 {
		return newError(CodeInvalidAmount, "stock of %s cannot be negative (got %d)", p.Name, value)
	}
	p.stock = value
	return nil
}

// AdjustStock adds delta (which may be negative) to the stock.
func (p *Product) AdjustStock(delta int) error {
	return p.SetStock(p.stock + delta)
}

// Reserve takes quantity units out of stock.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return newError(CodeInvalidQuantity, "quantity must be positive (got %d)", quantity)
	}
	if p.stock < quantity {
		return newError(CodeInsufficientStock,
			"stock unavailable for %s: available %d, requested %d", p.Name, p.stock, quantity)
	}
	return p.AdjustStock(-quantity)
}

// Release puts quantity units back into stock.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return newError(CodeInvalidQuantity, "quantity must be positive (got %d)", quantity)
	}
	return p.AdjustStock(quantity)
}

// Clone returns a detached copy carrying the same ID.
func (p *Product) Clone() *Product {
	c := *p
	return &c
}

// Equal reports structural equality: name, price, stock and variant
// attribute. The catalog ID is not compared.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Name == other.Name &&
		p.Price == other.Price &&
		p.stock == other.stock &&
		p.Variant == other.Variant
}

func (p *Product) String() string {
	s := fmt.Sprintf("Product: %s | Price: $%.2f | Stock: %d", p.Name, p.Price, p.stock)
	if d := p.Variant.Describe(); d != "" {
		s += " | " + d
	}
	return s
}
