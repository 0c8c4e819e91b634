package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// JobCreatedAtField is the database field name for the job creation timestamp
const (
	// JobCreatedAtField is the database field name for the job creation timestamp
	JobCreatedAtField = "created_at"
	// JobUpdatedAtField is the database field name for the job update timestamp
	JobUpdatedAtField = "updated_at"
)

// JobStatus represents the current state of a job in the system
type JobStatus string

// Job status constants
const (
	// JobStatusUnknown represents an unknown or invalid job status
	JobStatusUnknown JobStatus = "unknown"
	// JobStatusPending indicates the job is waiting for a professional to accept it
	JobStatusPending JobStatus = "pending"
	// JobStatusAccepted indicates a professional has taken the job
	JobStatusAccepted JobStatus = "accepted"
	// JobStatusInProgress indicates work on the job has started
	JobStatusInProgress JobStatus = "in_progress"
	// JobStatusCompleted indicates the job has finished successfully
	JobStatusCompleted JobStatus = "completed"
	// JobStatusCancelled indicates the job was called off before completion
	JobStatusCancelled JobStatus = "cancelled"
)

// ParseJobStatus converts a string representation of a job status to JobStatus type
func ParseJobStatus(str string) (JobStatus, error) {
	switch str {
	case string(JobStatusUnknown):
		return JobStatusUnknown, nil
	case string(JobStatusPending):
		return JobStatusPending, nil
	case string(JobStatusAccepted):
		return JobStatusAccepted, nil
	case string(JobStatusInProgress):
		return JobStatusInProgress, nil
	case string(JobStatusCompleted):
		return JobStatusCompleted, nil
	case string(JobStatusCancelled):
		return JobStatusCancelled, nil
	default:
		return JobStatusUnknown, fmt.Errorf("invalid job status: %s", str)
	}
}

// String returns the string representation of the job status
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further status transitions are allowed
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// UnmarshalJSON implements json.Unmarshaler for JobStatus
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseJobStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// CanTransitionTo reports whether the state machine permits moving from
// s to next. Forward-only through pending, accepted, in_progress and
// completed; cancelled is reachable from any non-terminal state.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case JobStatusAccepted:
		return s == JobStatusPending
	case JobStatusInProgress:
		return s == JobStatusAccepted
	case JobStatusCompleted:
		return s == JobStatusInProgress
	case JobStatusCancelled:
		return true
	default:
		return false
	}
}

// JobPriority represents how urgently a job needs attention
type JobPriority string

// Job priority constants
const (
	JobPriorityLow    JobPriority = "low"
	JobPriorityMedium JobPriority = "medium"
	JobPriorityHigh   JobPriority = "high"
	JobPriorityUrgent JobPriority = "urgent"
)

// ParseJobPriority converts a string to a JobPriority
func ParseJobPriority(str string) (JobPriority, error) {
	switch str {
	case string(JobPriorityLow), string(JobPriorityMedium), string(JobPriorityHigh), string(JobPriorityUrgent):
		return JobPriority(str), nil
	default:
		return "", fmt.Errorf("invalid job priority: %s", str)
	}
}

// ServiceCategories is the closed set of service types a job may belong to
var ServiceCategories = []string{
	"Plumbing",
	"Electrical",
	"Carpentry",
	"Painting",
	"Cleaning",
	"Appliance Repair",
	"AC Repair",
	"Pest Control",
	"Gardening",
	"Other",
}

// ValidServiceCategory reports whether category is a known service type
func ValidServiceCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}

// PaymentStatus tracks how far a job's payment has progressed
type PaymentStatus string

// Payment status constants
const (
	// PaymentStatusUnpaid indicates no payment activity yet
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	// PaymentStatusOnlinePending indicates an online payment was initiated but not verified
	PaymentStatusOnlinePending PaymentStatus = "online_pending"
	// PaymentStatusPaid indicates a verified online payment
	PaymentStatusPaid PaymentStatus = "paid"
	// PaymentStatusRefunded indicates the payment was returned to the customer
	PaymentStatusRefunded PaymentStatus = "refunded"
	// PaymentStatusCashPending indicates a cash settlement awaiting two-party confirmation
	PaymentStatusCashPending PaymentStatus = "cash_pending"
	// PaymentStatusCashVerified indicates both parties confirmed the cash settlement
	PaymentStatusCashVerified PaymentStatus = "cash_verified"
)

// PaymentMethod is how the customer settles the job
type PaymentMethod string

// Payment method constants
const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
)

// StatusHistoryEntry is a single record in a job's audit trail
type StatusHistoryEntry struct {
	Status    JobStatus `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy ActorRef  `json:"changed_by"`
	Notes     string    `json:"notes,omitempty"`
}

// StatusHistory is the append-only sequence of every status a job has held
type StatusHistory []StatusHistoryEntry

// Value implements the driver.Valuer interface
func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

// Scan implements the sql.Scanner interface
func (h *StatusHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	var temp []StatusHistoryEntry
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return fmt.Errorf("failed to unmarshal status history: %w", err)
	}
	*h = temp
	return nil
}

// Budget is the customer's acceptable price range for a job
type Budget struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Value implements the driver.Valuer interface
func (b Budget) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements the sql.Scanner interface
func (b *Budget) Scan(value interface{}) error {
	if value == nil {
		*b = Budget{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, b)
}

// Commission is the platform's cut of the settlement amount, computed
// once at completion. Tip is excluded; it passes through to the
// professional in full.
type Commission struct {
	Total            float64 `json:"total"`
	CompanyFee       float64 `json:"company_fee"`
	ProviderEarnings float64 `json:"provider_earnings"`
	CommissionRate   float64 `json:"commission_rate"`
}

// Value implements the driver.Valuer interface
func (c *Commission) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface
func (c *Commission) Scan(value interface{}) error {
	if value == nil {
		*c = Commission{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, c)
}

// DeclinedBy is the set of professional IDs who passed on a job
type DeclinedBy []uint

// Value implements the driver.Valuer interface
func (d DeclinedBy) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface
func (d *DeclinedBy) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, d)
}

// Contains reports whether the professional already declined the job
func (d DeclinedBy) Contains(professionalID uint) bool {
	for _, id := range d {
		if id == professionalID {
			return true
		}
	}
	return false
}

// Job represents a single requested-and-fulfilled service engagement
// between a customer and a professional.
type Job struct {
	gorm.Model
	// Version guards read-modify-write cycles; every lifecycle save is
	// conditional on the version read, so racing writers cannot silently
	// drop each other's changes.
	Version int `json:"version" gorm:"not null;default:0"`

	CustomerID     uint   `json:"customer_id" gorm:"not null;index"`
	ProfessionalID *uint  `json:"professional_id,omitempty" gorm:"index"`
	Title          string `json:"title" gorm:"not null"`
	Description    string `json:"description" gorm:"type:text"`
	Category       string `json:"category" gorm:"not null;index"`

	Priority          JobPriority `json:"priority" gorm:"not null;default:'medium'"`
	ScheduledAt       *time.Time  `json:"scheduled_at,omitempty"`
	EstimatedDuration int         `json:"estimated_duration,omitempty"` // minutes

	Status        JobStatus     `json:"status" gorm:"not null;index"`
	StatusHistory StatusHistory `json:"status_history" gorm:"type:jsonb"`

	Budget     Budget      `json:"budget" gorm:"type:jsonb"`
	FixedRate  *float64    `json:"fixed_rate,omitempty"`
	FinalPrice *float64    `json:"final_price,omitempty"`
	TipAmount  float64     `json:"tip_amount" gorm:"not null;default:0"`
	Commission *Commission `json:"commission,omitempty" gorm:"type:jsonb"`
	Invoice    *Invoice    `json:"invoice,omitempty" gorm:"type:jsonb"`

	PaymentStatus      PaymentStatus       `json:"payment_status" gorm:"not null;default:'unpaid';index"`
	PaymentMethod      PaymentMethod       `json:"payment_method" gorm:"not null;default:'cash'"`
	GatewayOrderID     string              `json:"gateway_order_id,omitempty"`
	GatewayPaymentID   string              `json:"gateway_payment_id,omitempty"`
	GatewaySignature   string              `json:"-"`
	CashPaymentDetails *CashPaymentDetails `json:"cash_payment_details,omitempty" gorm:"type:jsonb"`

	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	LocationPoint *GeoPoint `json:"location_point,omitempty" gorm:"type:jsonb"`

	DeclinedBy DeclinedBy `json:"declined_by,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
}

// Validate ensures the job data is well-formed before persistence
func (j *Job) Validate() error {
	if j.Title == "" {
		return fmt.Errorf("job title cannot be empty")
	}
	if j.CustomerID == 0 {
		return fmt.Errorf("job customer_id cannot be empty")
	}
	if !ValidServiceCategory(j.Category) {
		return fmt.Errorf("invalid service category: %s", j.Category)
	}
	return nil
}

// SeedHistory forces a freshly-created job into the pending state with a
// single synthetic history entry, discarding any caller-supplied status
// or history.
func (j *Job) SeedHistory(at time.Time) {
	j.Status = JobStatusPending
	j.StatusHistory = StatusHistory{{
		Status:    JobStatusPending,
		ChangedAt: at,
		ChangedBy: CustomerRef(j.CustomerID),
		Notes:     "job created",
	}}
}

// AppendHistory records a status change in the audit trail
func (j *Job) AppendHistory(status JobStatus, actor ActorRef, notes string, at time.Time) {
	j.StatusHistory = append(j.StatusHistory, StatusHistoryEntry{
		Status:    status,
		ChangedAt: at,
		ChangedBy: actor,
		Notes:     notes,
	})
}

// SettlementBase resolves the amount a settlement is computed from:
// final price, then fixed rate, then the budget ceiling, then zero.
func (j *Job) SettlementBase() float64 {
	if j.FinalPrice != nil {
		return *j.FinalPrice
	}
	if j.FixedRate != nil {
		return *j.FixedRate
	}
	return j.Budget.Max
}

// BeforeSave is a GORM hook that strips malformed location points so a
// partial point is never persisted and a cleared point is unset.
func (j *Job) BeforeSave(_ *gorm.DB) error {
	j.LocationPoint = SanitizePoint(j.LocationPoint)
	return nil
}

// BeforeCreate is a GORM hook that runs before inserting a new job
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.Priority == "" {
		j.Priority = JobPriorityMedium
	}
	return j.Validate()
}
