package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// OrderRecord is an immutable order-history entry.
type OrderRecord struct {
	CustomerName string         `json:"customer_name"`
	Status       OrderStatus    `json:"status"`
	CreatedAt    time.Time      `json:"created_at_utc"`
	FinishedAt   time.Time      `json:"finished_at_utc"`
	Items        []LineSnapshot `json:"items"`
	Total        float64        `json:"total"`
}

// naiveTimestamp is an ISO-8601 time without a zone, as older order logs
// wrote it. Such times are UTC.
const naiveTimestamp = "2006-01-02T15:04:05.999999999"

// UnmarshalJSON accepts RFC 3339 timestamps and zone-less ISO ones.
func (r *OrderRecord) UnmarshalJSON(data []byte) error {
	type plain OrderRecord
	aux := struct {
		*plain
		CreatedAt  string `json:"created_at_utc"`
		FinishedAt string `json:"finished_at_utc"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if r.CreatedAt, err = parseTimestamp(aux.CreatedAt); err != nil {
		return fmt.Errorf("created_at_utc: %w", err)
	}
	if r.FinishedAt, err = parseTimestamp(aux.FinishedAt); err != nil {
		return fmt.Errorf("finished_at_utc: %w", err)
	}
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(naiveTimestamp, s)
}

// LineSnapshot is a cart line frozen into an order record.
type LineSnapshot struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// CartView is a detached projection of an order for presentation.
type CartView struct {
	CustomerName string         `json:"customer_name"`
	Status       OrderStatus    `json:"status"`
	CreatedAt    time.Time      `json:"created_at_utc"`
	Items        []LineSnapshot `json:"items"`
	Total        float64        `json:"total"`
	Shipping     float64        `json:"shipping"`
}

// IsEmpty reports whether the cart has no lines.
func (v CartView) IsEmpty() bool { return len(v.Items) == 0 }
