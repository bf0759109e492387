package domain

import (
	"errors"
	"fmt"
)

// ProductRecord is the serialized shape of a product, shared by the catalog
// snapshot and the configured seed. Pointer fields distinguish "missing"
// from zero values.
type ProductRecord struct {
	Type   ProductKind `json:"type"              yaml:"type"`
	ID     string      `json:"id,omitempty"      yaml:"id,omitempty"`
	Name   string      `json:"name"              yaml:"name"`
	Price  *float64    `json:"price"             yaml:"price"`
	Stock  *int        `json:"stock"             yaml:"stock"`
	Weight *float64    `json:"weight,omitempty"  yaml:"weight,omitempty"`
	SizeMB *float64    `json:"size_mb,omitempty" yaml:"size_mb,omitempty"`
}

// RecordFromProduct serializes a product.
func RecordFromProduct(p *Product) ProductRecord {
	price := p.Price
	stock := p.Stock()
	rec := ProductRecord{
		Type:  p.Kind(),
		ID:    p.ID,
		Name:  p.Name,
		Price: &price,
		Stock: &stock,
	}
	switch v := p.Variant.(type) {
	case Physical:
		w := v.WeightKg
		rec.Weight = &w
	case Digital:
		s := v.SizeMB
		rec.SizeMB = &s
	}
	return rec
}

// ToProduct rebuilds a product, applying the construction clamps. An empty
// type is read as generic.
func (r ProductRecord) ToProduct() (*Product, error) {
	if r.Name == "" {
		return nil, errors.New("missing name")
	}
	if r.Price == nil {
		return nil, errors.New("missing price")
	}
	if r.Stock == nil {
		return nil, errors.New("missing stock")
	}

	var variant Variant
	switch r.Type {
	case KindGeneric, "":
		variant = Generic{}
	case KindPhysical:
		if r.Weight == nil {
			return nil, errors.New("physical product missing weight")
		}
		if *r.Weight < 0 {
			return nil, fmt.Errorf("negative weight %g", *r.Weight)
		}
		variant = Physical{WeightKg: *r.Weight}
	case KindDigital:
		if r.SizeMB == nil {
			return nil, errors.New("digital product missing size_mb")
		}
		if *r.SizeMB < 0 {
			return nil, fmt.Errorf("negative size_mb %g", *r.SizeMB)
		}
		variant = Digital{SizeMB: *r.SizeMB}
	default:
		return nil, fmt.Errorf("unknown product type %q", r.Type)
	}

	return NewProduct(r.ID, r.Name, *r.Price, *r.Stock, variant), nil
}

// DefaultSeed is the sample catalog used when no catalog data exists.
func DefaultSeed() []*Product {
	return []*Product{
		NewPhysicalProduct("iPhone 15", 900.00, 10, 0.2),
		NewPhysicalProduct("Notebook Dell", 1500.00, 5, 2.5),
		NewDigitalProduct("Python Ebook", 29.90, 1000, 15.0),
	}
}
