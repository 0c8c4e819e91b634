package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CashDisputeStatus tracks the review state of a disputed cash settlement
type CashDisputeStatus string

// Cash dispute status constants
const (
	CashDisputePending     CashDisputeStatus = "pending"
	CashDisputeUnderReview CashDisputeStatus = "under_review"
	CashDisputeResolved    CashDisputeStatus = "resolved"
)

// CashDispute records a disagreement over an off-platform cash payment.
// It can only be raised by one of the two parties to the transaction
// and only an admin can move it to resolved.
type CashDispute struct {
	Raised     bool              `json:"raised"`
	RaisedBy   ActorRef          `json:"raised_by"`
	Reason     string            `json:"reason"`
	RaisedAt   time.Time         `json:"raised_at"`
	Status     CashDisputeStatus `json:"status"`
	Resolution string            `json:"resolution,omitempty"`
	ResolvedBy *ActorRef         `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time        `json:"resolved_at,omitempty"`
}

// Open reports whether the dispute is raised and not yet resolved
func (d *CashDispute) Open() bool {
	return d != nil && d.Raised && d.Status != CashDisputeResolved
}

// ReceiptPhoto is one entry in the append-only receipt evidence list
type ReceiptPhoto struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	UploadedBy ActorRef  `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// CashPaymentDetails holds the two-party confirmation state for a cash
// settlement. Verification is an AND-gate: both the professional's
// received flag and the customer's confirmation must be set, and no
// dispute may be open, before the payment counts as verified.
type CashPaymentDetails struct {
	Amount                     float64        `json:"amount"`
	VerificationCode           string         `json:"verification_code,omitempty"`
	ProfessionalMarkedReceived bool           `json:"professional_marked_received"`
	ReceivedAt                 *time.Time     `json:"received_at,omitempty"`
	CustomerConfirmed          bool           `json:"customer_confirmed"`
	ConfirmedAt                *time.Time     `json:"confirmed_at,omitempty"`
	Dispute                    *CashDispute   `json:"dispute,omitempty"`
	ReceiptPhotos              []ReceiptPhoto `json:"receipt_photos,omitempty"`
}

// BothConfirmed reports whether the two independent confirmations are set
func (c *CashPaymentDetails) BothConfirmed() bool {
	return c != nil && c.ProfessionalMarkedReceived && c.CustomerConfirmed
}

// Verifiable reports whether the settlement may advance to cash_verified
func (c *CashPaymentDetails) Verifiable() bool {
	return c.BothConfirmed() && !c.Dispute.Open()
}

// Value implements the driver.Valuer interface
func (c *CashPaymentDetails) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface
func (c *CashPaymentDetails) Scan(value interface{}) error {
	if value == nil {
		*c = CashPaymentDetails{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	var temp CashPaymentDetails
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return fmt.Errorf("failed to unmarshal cash payment details: %w", err)
	}
	*c = temp
	return nil
}
