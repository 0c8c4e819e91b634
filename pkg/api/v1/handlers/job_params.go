package handlers

import (
	"fmt"
	"time"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// CreateJobParams is the request body for posting a new job
type CreateJobParams struct {
	CustomerID        uint             `json:"customer_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Category          string           `json:"category"`
	Priority          string           `json:"priority"`
	ScheduledAt       *time.Time       `json:"scheduled_at"`
	EstimatedDuration int              `json:"estimated_duration"`
	Budget            models.Budget    `json:"budget"`
	FixedRate         *float64         `json:"fixed_rate"`
	PaymentMethod     string           `json:"payment_method"`
	Address           string           `json:"address"`
	City              string           `json:"city"`
	PostalCode        string           `json:"postal_code"`
	LocationPoint     *models.GeoPoint `json:"location_point"`
}

// Validate ensures the create request is well-formed
func (p *CreateJobParams) Validate() error {
	if p.CustomerID == 0 {
		return fmt.Errorf("customer_id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.Category == "" {
		return fmt.Errorf("category is required")
	}
	return nil
}

// UpdateJobParams is the request body for a partial job update
type UpdateJobParams struct {
	Title             *string          `json:"title"`
	Description       *string          `json:"description"`
	Priority          *string          `json:"priority"`
	ScheduledAt       *time.Time       `json:"scheduled_at"`
	EstimatedDuration *int             `json:"estimated_duration"`
	Budget            *models.Budget   `json:"budget"`
	FixedRate         *float64         `json:"fixed_rate"`
	Address           *string          `json:"address"`
	City              *string          `json:"city"`
	PostalCode        *string          `json:"postal_code"`
	LocationPoint     *models.GeoPoint `json:"location_point"`
	ClearLocation     bool             `json:"clear_location"`
}

// ActorParams identifies the account performing an operation
type ActorParams struct {
	ActorID   uint   `json:"actor_id"`
	ActorRole string `json:"actor_role"`
	Notes     string `json:"notes"`
}

// Ref resolves the params into an ActorRef
func (p *ActorParams) Ref() (models.ActorRef, error) {
	if p.ActorID == 0 && p.ActorRole != string(models.ActorRoleAdmin) {
		return models.ActorRef{}, fmt.Errorf("actor_id is required")
	}
	role, err := models.ParseActorRole(p.ActorRole)
	if err != nil {
		return models.ActorRef{}, err
	}
	return models.ActorRef{Role: role, ID: p.ActorID}, nil
}

// AcceptJobParams is the request body for accepting a job
type AcceptJobParams struct {
	ProfessionalID uint   `json:"professional_id"`
	Notes          string `json:"notes"`
}

// Validate ensures the accept request is well-formed
func (p *AcceptJobParams) Validate() error {
	if p.ProfessionalID == 0 {
		return fmt.Errorf("professional_id is required")
	}
	return nil
}

// CompleteJobParams is the request body for completing a job
type CompleteJobParams struct {
	ProfessionalID uint     `json:"professional_id"`
	FinalPrice     *float64 `json:"final_price"`
	Notes          string   `json:"notes"`
}

// Validate ensures the complete request is well-formed
func (p *CompleteJobParams) Validate() error {
	if p.ProfessionalID == 0 {
		return fmt.Errorf("professional_id is required")
	}
	return nil
}

// TransitionParams is the request body for a raw status transition
type TransitionParams struct {
	Status string `json:"status"`
	ActorParams
}

// TipParams is the request body for setting a tip
type TipParams struct {
	CustomerID uint    `json:"customer_id"`
	Amount     float64 `json:"amount"`
}

// CashReceivedParams is the professional's side of the cash handshake
type CashReceivedParams struct {
	ProfessionalID uint    `json:"professional_id"`
	Amount         float64 `json:"amount"`
}

// CashConfirmParams is the customer's side of the cash handshake
type CashConfirmParams struct {
	CustomerID uint `json:"customer_id"`
}

// CashDisputeParams is the request body for raising a dispute
type CashDisputeParams struct {
	ActorParams
	Reason string `json:"reason"`
}

// CashResolveParams is the request body for resolving a dispute
type CashResolveParams struct {
	AdminID    uint   `json:"admin_id"`
	Resolution string `json:"resolution"`
}

// ReceiptPhotoParams is the request body for appending receipt evidence
type ReceiptPhotoParams struct {
	ActorParams
	URL string `json:"url"`
}

// VerifyPaymentParams is the gateway-verified payment signal
type VerifyPaymentParams struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	SignatureValid   bool   `json:"signature_valid"`
}
