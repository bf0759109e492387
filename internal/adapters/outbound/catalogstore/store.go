package catalogstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/storekraft/internal/domain"
)

const fileName = "inventory.json"

// Store is a file-based implementation of domain.CatalogRepository.
type Store struct {
	dir string
}

// New creates a catalog store that keeps inventory.json in dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path is the snapshot file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// Load reads the snapshot. A missing file or a top-level value that is not
// an array yields an empty snapshot. Records that fail to decode or validate
// are skipped and reported with their 1-based position.
func (s *Store) Load() (*domain.CatalogSnapshot, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.CatalogSnapshot{}, nil // no catalog is not an error
		}
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	if _, ok := top.([]any); !ok {
		return &domain.CatalogSnapshot{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	snap := &domain.CatalogSnapshot{}
	seen := make(map[string]int, len(raw))
	for i, item := range raw {
		p, err := decodeProduct(item)
		if err != nil {
			snap.Skipped = append(snap.Skipped, domain.SkippedRecord{Index: i + 1, Reason: err.Error()})
			continue
		}
		if first, dup := seen[p.ID]; dup {
			snap.Skipped = append(snap.Skipped, domain.SkippedRecord{
				Index:  i + 1,
				Reason: fmt.Sprintf("duplicate id %q (first used by record %d)", p.ID, first),
			})
			continue
		}
		seen[p.ID] = i + 1
		snap.Products = append(snap.Products, p)
	}
	return snap, nil
}

// Save rewrites the whole snapshot, creating the directory as needed.
func (s *Store) Save(products []*domain.Product) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	records := make([]domain.ProductRecord, len(products))
	for i, p := range products {
		records[i] = domain.RecordFromProduct(p)
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.Path(), data, 0644)
}

func decodeProduct(item json.RawMessage) (*domain.Product, error) {
	var rec domain.ProductRecord
	if err := json.Unmarshal(item, &rec); err != nil {
		return nil, err
	}
	return rec.ToProduct()
}
