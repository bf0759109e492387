package domain

import "fmt"

// DefaultHistoryLimit is how many orders the history view shows by default.
const DefaultHistoryLimit = 10

// StoreConfig holds store settings loaded from .storekraft.yaml.
type StoreConfig struct {
	DataDir      string          `yaml:"data_dir"      json:"data_dir,omitempty"`
	HistoryLimit int             `yaml:"history_limit" json:"history_limit,omitempty"`
	Seed         []ProductRecord `yaml:"seed"          json:"seed,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() StoreConfig {
	return StoreConfig{
		DataDir:      ".",
		HistoryLimit: DefaultHistoryLimit,
	}
}

// SeedProducts returns the configured seed, or DefaultSeed when none is set.
// Validate must have passed first.
func (c StoreConfig) SeedProducts() []*Product {
	if len(c.Seed) == 0 {
		return DefaultSeed()
	}
	products := make([]*Product, 0, len(c.Seed))
	for _, rec := range c.Seed {
		p, err := rec.ToProduct()
		if err != nil {
			continue
		}
		products = append(products, p)
	}
	return products
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c StoreConfig) Validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must be >= 0 (got %d)", c.HistoryLimit)
	}

	// seed entries must round-trip into products with distinct ids
	ids := make(map[string]int, len(c.Seed))
	for i, rec := range c.Seed {
		if _, err := rec.ToProduct(); err != nil {
			return fmt.Errorf("seed[%d]: %w", i, err)
		}
		if rec.ID == "" {
			continue
		}
		if first, dup := ids[rec.ID]; dup {
			return fmt.Errorf("seed[%d]: id %q already used by seed[%d]", i, rec.ID, first)
		}
		ids[rec.ID] = i
	}

	return nil
}
