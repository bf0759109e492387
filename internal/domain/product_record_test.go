package domain_test

import (
	"testing"

	"github.com/abdidvp/storekraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRecord_RoundTrip(t *testing.T) {
	products := []*domain.Product{
		domain.NewProduct("g", "Gift Card", 25, 40, nil),
		domain.NewPhysicalProduct("Notebook Dell", 1500, 5, 2.5),
		domain.NewDigitalProduct("Python Ebook", 29.9, 1000, 15),
	}

	for _, p := range products {
		t.Run(string(p.Kind()), func(t *testing.T) {
			back, err := domain.RecordFromProduct(p).ToProduct()
			require.NoError(t, err)
			assert.True(t, p.Equal(back))
			assert.Equal(t, p.ID, back.ID)
		})
	}
}

func TestProductRecord_ToProductRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.ProductRecord
		want string
	}{
		{"missing name", domain.ProductRecord{Price: floatPtr(1), Stock: intPtr(1)}, "missing name"},
		{"missing stock", domain.ProductRecord{Name: "X", Price: floatPtr(1)}, "missing stock"},
		{"physical without weight", domain.ProductRecord{Type: domain.KindPhysical, Name: "X", Price: floatPtr(1), Stock: intPtr(1)}, "missing weight"},
		{"digital without size", domain.ProductRecord{Type: domain.KindDigital, Name: "X", Price: floatPtr(1), Stock: intPtr(1)}, "missing size_mb"},
		{"negative weight", domain.ProductRecord{Type: domain.KindPhysical, Name: "X", Price: floatPtr(1), Stock: intPtr(1), Weight: floatPtr(-1)}, "negative weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rec.ToProduct()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestProductRecord_ToProductClamps(t *testing.T) {
	p, err := domain.ProductRecord{Name: "Odd", Price: floatPtr(-4), Stock: intPtr(-9)}.ToProduct()
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, 0, p.Stock())
	assert.Equal(t, domain.KindGeneric, p.Kind())
}
