package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/storekraft/internal/domain"
)

const historyFile = "orders.json"

// FileHistory implements domain.OrderHistory using JSON file storage.
type FileHistory struct {
	dir string
}

func New(dir string) *FileHistory {
	return &FileHistory{dir: dir}
}

func (h *FileHistory) Path() string {
	return filepath.Join(h.dir, historyFile)
}

// Append adds record to the end of the file. Existing entries are copied
// through as-is, so an entry this version cannot decode never blocks a sale.
func (h *FileHistory) Append(record domain.OrderRecord) error {
	records, err := h.loadRaw()
	if err != nil {
		return err
	}

	entry, err := json.Marshal(record)
	if err != nil {
		return err
	}
	records = append(records, entry)

	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(h.Path(), data, 0644)
}

// Load returns every record in append order. A missing file or a non-array
// top-level value is an empty history.
func (h *FileHistory) Load() ([]domain.OrderRecord, error) {
	data, err := os.ReadFile(h.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", historyFile, err)
	}

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}
	if _, ok := top.([]any); !ok {
		return nil, nil
	}

	var records []domain.OrderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}

	return records, nil
}

// loadRaw returns the stored entries undecoded. A non-array file starts a
// fresh history.
func (h *FileHistory) loadRaw() ([]json.RawMessage, error) {
	data, err := os.ReadFile(h.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", historyFile, err)
	}

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}
	if _, ok := top.([]any); !ok {
		return nil, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}
	return records, nil
}
