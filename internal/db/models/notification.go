package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// NotificationType labels what a notification is about
type NotificationType string

// Notification type constants
const (
	NotificationJobAccepted     NotificationType = "job_accepted"
	NotificationJobStarted      NotificationType = "job_started"
	NotificationJobCompleted    NotificationType = "job_completed"
	NotificationJobCancelled    NotificationType = "job_cancelled"
	NotificationCashReceived    NotificationType = "cash_received"
	NotificationCashConfirmed   NotificationType = "cash_confirmed"
	NotificationCashDisputed    NotificationType = "cash_disputed"
	NotificationPaymentVerified NotificationType = "payment_verified"
	NotificationPayoutUpdated   NotificationType = "payout_updated"
)

// Notification is a persisted, best-effort message to a customer or
// professional. Delivery is fire-and-forget; creation failures never
// block the operation that triggered them.
type Notification struct {
	gorm.Model
	RecipientID   uint             `json:"recipient_id" gorm:"not null;index"`
	RecipientRole ActorRole        `json:"recipient_role" gorm:"not null;index"`
	Type          NotificationType `json:"type" gorm:"not null"`
	Payload       json.RawMessage  `json:"payload,omitempty" gorm:"type:jsonb"`
	Read          bool             `json:"read" gorm:"not null;default:false;index"`
	CreatedAt     time.Time        `json:"created_at" gorm:"index"`
}
