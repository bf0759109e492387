package domain

// CatalogRepository loads and saves full catalog snapshots.
type CatalogRepository interface {
	// Exists reports whether a snapshot has ever been written.
	Exists() bool
	// Load reads the snapshot. A missing or non-array snapshot yields an
	// empty result, not an error; malformed records are skipped and listed.
	Load() (*CatalogSnapshot, error)
	// Save rewrites the whole snapshot.
	Save(products []*Product) error
}

// OrderHistory is the append-only order log.
type OrderHistory interface {
	Append(record OrderRecord) error
	Load() ([]OrderRecord, error)
}

// ConfigLoader reads store configuration from a directory.
type ConfigLoader interface {
	Load(dir string) (StoreConfig, error)
}

// CatalogSnapshot is the result of loading the catalog.
type CatalogSnapshot struct {
	Products []*Product
	Skipped  []SkippedRecord
}

// SkippedRecord describes a malformed snapshot entry that was not loaded.
// Index is 1-based.
type SkippedRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}
