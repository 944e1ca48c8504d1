package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InvoiceLine is one charge line on an invoice
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// InvoiceLines represents the line items of an invoice
type InvoiceLines []InvoiceLine

// Value implements driver.Valuer for JSONB
func (l InvoiceLines) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB
func (l *InvoiceLines) Scan(value interface{}) error {
	if value == nil {
		*l = make(InvoiceLines, 0)
		return nil
	}

	// Handle different types that pgx might return for JSONB
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*l = make(InvoiceLines, 0)
		return nil
	}

	if len(bytes) == 0 {
		*l = make(InvoiceLines, 0)
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Invoice represents an invoice or receipt raised for a completed work
// order. GSTAmount is zero when the assigned team is not GST-registered.
type Invoice struct {
	ID          uuid.UUID    `json:"id"`
	WorkOrderID uuid.UUID    `json:"work_order_id"`
	Number      string       `json:"number"`
	Lines       InvoiceLines `json:"lines"`
	Subtotal    float64      `json:"subtotal"`
	GSTAmount   float64      `json:"gst_amount"`
	Total       float64      `json:"total"`
	DocumentKey *string      `json:"document_key,omitempty"`
	IssuedAt    time.Time    `json:"issued_at"`
	CreatedAt   time.Time    `json:"created_at"`
}
