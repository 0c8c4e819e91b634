package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// InvoicePaymentStatus tracks whether the customer-facing invoice was settled
type InvoicePaymentStatus string

// Invoice payment status constants
const (
	InvoicePaymentPending InvoicePaymentStatus = "pending"
	InvoicePaymentPaid    InvoicePaymentStatus = "paid"
	InvoicePaymentOverdue InvoicePaymentStatus = "overdue"
)

// InvoiceTaxRate is the fixed tax rate applied to every invoice subtotal
const InvoiceTaxRate = 0.18

// InvoiceItem is a single billed line on an invoice
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Invoice is the customer-facing billing document generated exactly
// once when a job completes. It is a value object owned by its job and
// stored inline rather than as a separate table.
type Invoice struct {
	Number        string               `json:"number"`
	Items         []InvoiceItem        `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Tax           float64              `json:"tax"`
	Total         float64              `json:"total"`
	PaymentStatus InvoicePaymentStatus `json:"payment_status"`
	IssuedAt      time.Time            `json:"issued_at"`
}

// Value implements the driver.Valuer interface
func (i *Invoice) Value() (driver.Value, error) {
	if i == nil {
		return nil, nil
	}
	return json.Marshal(i)
}

// Scan implements the sql.Scanner interface
func (i *Invoice) Scan(value interface{}) error {
	if value == nil {
		*i = Invoice{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	var temp Invoice
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return fmt.Errorf("failed to unmarshal invoice: %w", err)
	}
	*i = temp
	return nil
}
