package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
)

// InvoiceItem references a product or a service; at least one of the two
// must be set. Service items may carry the pet whose weight priced them.
type InvoiceItem struct {
	ProductID string  `json:"product_id,omitempty"`
	ServiceID string  `json:"service_id,omitempty"`
	PetID     string  `json:"pet_id,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// InvoiceItems is stored as a jsonb column.
type InvoiceItems []InvoiceItem

func (i InvoiceItems) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(i)
}

func (i *InvoiceItems) Scan(src interface{}) error {
	if src == nil {
		*i = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for invoice items", src)
	}
	return json.Unmarshal(b, i)
}

type Invoice struct {
	ID        string        `json:"id" db:"id"`
	ClientID  string        `json:"client_id" db:"client_id"`
	Date      time.Time     `json:"date" db:"date"`
	Items     InvoiceItems  `json:"items" db:"items"`
	Status    InvoiceStatus `json:"status" db:"status"`
	Total     float64       `json:"total" db:"total"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateInvoiceRequest struct {
	ClientID string        `json:"client_id" binding:"required"`
	Items    []InvoiceItem `json:"items" binding:"required,min=1"`
}

type UpdateInvoiceRequest struct {
	ClientID string        `json:"client_id" binding:"required"`
	Items    []InvoiceItem `json:"items" binding:"required,min=1"`
	Status   InvoiceStatus `json:"status" binding:"required,oneof=PENDING CANCELLED PAID"`
}
