package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PayoutStatus represents the processing state of a payout
type PayoutStatus string

// Payout status constants
const (
	// PayoutStatusUnknown represents an unknown or invalid payout status
	PayoutStatusUnknown PayoutStatus = "unknown"
	// PayoutStatusPending indicates the payout is queued for processing
	PayoutStatusPending PayoutStatus = "pending"
	// PayoutStatusProcessing indicates the payout was handed to the bank
	PayoutStatusProcessing PayoutStatus = "processing"
	// PayoutStatusCompleted indicates the money reached the professional
	PayoutStatusCompleted PayoutStatus = "completed"
	// PayoutStatusFailed indicates the transfer was rejected
	PayoutStatusFailed PayoutStatus = "failed"
	// PayoutStatusCancelled indicates the payout was withdrawn before processing
	PayoutStatusCancelled PayoutStatus = "cancelled"
)

// ParsePayoutStatus converts a string to a PayoutStatus
func ParsePayoutStatus(str string) (PayoutStatus, error) {
	switch str {
	case string(PayoutStatusUnknown):
		return PayoutStatusUnknown, nil
	case string(PayoutStatusPending):
		return PayoutStatusPending, nil
	case string(PayoutStatusProcessing):
		return PayoutStatusProcessing, nil
	case string(PayoutStatusCompleted):
		return PayoutStatusCompleted, nil
	case string(PayoutStatusFailed):
		return PayoutStatusFailed, nil
	case string(PayoutStatusCancelled):
		return PayoutStatusCancelled, nil
	default:
		return PayoutStatusUnknown, fmt.Errorf("invalid payout status: %s", str)
	}
}

// String returns the string representation of the payout status
func (s PayoutStatus) String() string {
	return string(s)
}

// Payout is a transfer of accumulated provider earnings to a
// professional's bank account.
type Payout struct {
	gorm.Model
	ProfessionalID uint         `json:"professional_id" gorm:"not null;index"`
	Amount         float64      `json:"amount" gorm:"not null"`
	ProcessingFee  float64      `json:"processing_fee" gorm:"not null;default:0"`
	NetAmount      float64      `json:"net_amount" gorm:"not null"`
	Status         PayoutStatus `json:"status" gorm:"not null;index;default:'pending'"`
	Reference      string       `json:"reference" gorm:"uniqueIndex"`
	BankAccount    BankAccount  `json:"bank_account" gorm:"type:jsonb"`
	ProcessedAt    *time.Time   `json:"processed_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at" gorm:"index"`
}

// Validate ensures the payout data is valid
func (p *Payout) Validate() error {
	if p.ProfessionalID == 0 {
		return fmt.Errorf("payout professional_id cannot be empty")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("payout amount must be positive")
	}
	if p.ProcessingFee < 0 {
		return fmt.Errorf("payout processing fee cannot be negative")
	}
	return nil
}

// BeforeSave is a GORM hook that recomputes the net amount whenever the
// amount or processing fee changes, so the derived value can never go
// stale in the database.
func (p *Payout) BeforeSave(_ *gorm.DB) error {
	p.NetAmount = p.Amount - p.ProcessingFee
	return nil
}

// BeforeCreate is a GORM hook that runs before inserting a new payout
func (p *Payout) BeforeCreate(_ *gorm.DB) error {
	if p.Status == "" {
		p.Status = PayoutStatusPending
	}
	return p.Validate()
}
