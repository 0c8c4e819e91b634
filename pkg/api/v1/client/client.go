// Package client provides the API client for interacting with the FixItNow API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/types"
	"github.com/fixitnow/fixitnow/pkg/api/v1/handlers"
	"github.com/fixitnow/fixitnow/pkg/api/v1/routes"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Job Endpoints
	GetJobs(ctx context.Context, query url.Values) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (models.Job, error)
	CreateJob(ctx context.Context, params handlers.CreateJobParams) (models.Job, error)
	UpdateJob(ctx context.Context, id string, params handlers.UpdateJobParams) (models.Job, error)
	AcceptJob(ctx context.Context, id string, params handlers.AcceptJobParams) (models.Job, error)
	StartJob(ctx context.Context, id string, params handlers.AcceptJobParams) (models.Job, error)
	CompleteJob(ctx context.Context, id string, params handlers.CompleteJobParams) (models.Job, error)
	CancelJob(ctx context.Context, id string, params handlers.ActorParams) (models.Job, error)
	DeclineJob(ctx context.Context, id string, params handlers.AcceptJobParams) (models.Job, error)
	TransitionJob(ctx context.Context, id string, params handlers.TransitionParams) (models.Job, error)
	AddTip(ctx context.Context, id string, params handlers.TipParams) (models.Job, error)
	GenerateInvoice(ctx context.Context, id string) (models.Invoice, error)
	GetInvoice(ctx context.Context, id string) (models.Invoice, error)

	// Payment Endpoints
	MarkCashReceived(ctx context.Context, id string, params handlers.CashReceivedParams) (models.Job, error)
	ConfirmCashPayment(ctx context.Context, id string, params handlers.CashConfirmParams) (models.Job, error)
	RaiseCashDispute(ctx context.Context, id string, params handlers.CashDisputeParams) (models.Job, error)
	ResolveCashDispute(ctx context.Context, id string, params handlers.CashResolveParams) (models.Job, error)
	AddReceiptPhoto(ctx context.Context, id string, params handlers.ReceiptPhotoParams) (models.Job, error)
	VerifyPayment(ctx context.Context, id string, params handlers.VerifyPaymentParams) (models.Job, error)

	// Payout Endpoints
	GetPayouts(ctx context.Context, query url.Values) ([]models.Payout, error)
	GetPayout(ctx context.Context, id string) (models.Payout, error)
	CreatePayout(ctx context.Context, params handlers.CreatePayoutParams) (models.Payout, error)
	UpdatePayoutStatus(ctx context.Context, id string, params handlers.UpdatePayoutStatusParams) (models.Payout, error)

	// Review Endpoints
	GetReviews(ctx context.Context, query url.Values) ([]models.Review, error)
	CreateReview(ctx context.Context, params handlers.CreateReviewParams) (models.Review, error)

	// User Endpoints
	GetUsers(ctx context.Context, query url.Values) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error

	// Professional Endpoints
	GetProfessionals(ctx context.Context, query url.Values) ([]models.Professional, error)
	GetProfessional(ctx context.Context, id string) (models.Professional, error)
	CreateProfessional(ctx context.Context, pro models.Professional) error

	// Notification Endpoints
	GetNotifications(ctx context.Context, query url.Values) ([]models.Notification, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	_, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// envelope mirrors the server response wrapper with the data left raw
// so callers can decode into their own types.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	// Resolve the endpoint URL
	fullURL := c.baseURL + endpoint

	// Create a new agent based on the HTTP method
	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	// Set common headers
	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")

	// Add body if provided
	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// executeRequest sends the request, unwraps the response envelope, and
// decodes the data field into v if provided.
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, v interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	statusCode, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	var env envelope
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	if statusCode < 200 || statusCode >= 300 || !env.Success {
		message := env.Message
		if message == "" {
			message = string(respBody)
		}
		return &fiber.Error{
			Code:    statusCode,
			Message: message,
		}
	}

	if v != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, v); err != nil {
			return fmt.Errorf("error decoding response data: %w", err)
		}
	}

	return nil
}

// Health check implementation

// HealthCheck checks the health of the API
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	agent, err := c.createAgent(ctx, http.MethodGet, routes.HealthCheckURL(), nil)
	if err != nil {
		return nil, err
	}

	// The health endpoint is the one route that skips the envelope
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("error sending request: %w", errs[0])
	}
	if statusCode != http.StatusOK {
		return nil, &fiber.Error{Code: statusCode, Message: string(body)}
	}

	var response map[string]string
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	return response, nil
}

// Job methods implementation

// GetJobs lists jobs with optional filtering
func (c *APIClient) GetJobs(ctx context.Context, query url.Values) ([]models.Job, error) {
	var response types.ListResponse[models.Job]
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetJobsURL(query), nil, &response); err != nil {
		return []models.Job{}, err
	}
	return response.Rows, nil
}

// GetJob retrieves a job by ID
func (c *APIClient) GetJob(ctx context.Context, id string) (models.Job, error) {
	var job models.Job
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetJobURL(id), nil, &job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

// CreateJob posts a new job
func (c *APIClient) CreateJob(ctx context.Context, params handlers.CreateJobParams) (models.Job, error) {
	var job models.Job
	if err := c.executeRequest(ctx, http.MethodPost, routes.CreateJobURL(), params, &job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

// UpdateJob applies a partial update to a job
func (c *APIClient) UpdateJob(ctx context.Context, id string, params handlers.UpdateJobParams) (models.Job, error) {
	var job models.Job
	if err := c.executeRequest(ctx, http.MethodPut, routes.UpdateJobURL(id), params, &job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

// jobAction posts a lifecycle action against a job and decodes the
// updated job from the response.
func (c *APIClient) jobAction(ctx context.Context, routeName, id string, params interface{}) (models.Job, error) {
	var job models.Job
	if err := c.executeRequest(ctx, http.MethodPost, routes.JobActionURL(routeName, id), params, &job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

// AcceptJob claims a pending job for a professional
func (c *APIClient) AcceptJob(ctx context.Context, id string, params handlers.AcceptJobParams) (models.Job, error) {
	return c.jobAction(ctx, routes.AcceptJob, id, params)
}

// StartJob moves an accepted job into progress
func (c *APIClient) StartJob(ctx context.Context, id string, params handlers.AcceptJobParams) (models.Job, error) {
	return c.jobAction(ctx, routes.StartJob, id, params)
}

// CompleteJob finishes an in-progress job
func (c *APIClient) CompleteJob(ctx context.Context, id string, params handlers.CompleteJobParams) (models.Job, error) {
	return c.jobAction(ctx, routes.CompleteJob, id, params)
}

// CancelJob cancels a job on behalf of a party
func (c *APIClient) CancelJob(ctx context.Context, id string, params handlers.ActorParams) (models.Job, error) {
	return c.jobAction(ctx, routes.CancelJob, id, params)
}

// DeclineJob records a professional declining a pending job
func (c *APIClient) DeclineJob(ctx context.Context, id string, params handlers.AcceptJobParams) (models.Job, error) {
	return c.jobAction(ctx, routes.DeclineJob, id, params)
}

// TransitionJob applies a raw status transition to a job
func (c *APIClient) TransitionJob(ctx context.Context, id string, params handlers.TransitionParams) (models.Job, error) {
	return c.jobAction(ctx, routes.TransitionJob, id, params)
}

// AddTip sets the tip amount on a job
func (c *APIClient) AddTip(ctx context.Context, id string, params handlers.TipParams) (models.Job, error) {
	return c.jobAction(ctx, routes.AddJobTip, id, params)
}

// GenerateInvoice generates (or returns the existing) invoice for a job
func (c *APIClient) GenerateInvoice(ctx context.Context, id string) (models.Invoice, error) {
	var invoice models.Invoice
	if err := c.executeRequest(ctx, http.MethodPost, routes.JobActionURL(routes.GenerateInvoice, id), nil, &invoice); err != nil {
		return models.Invoice{}, err
	}
	return invoice, nil
}

// GetInvoice fetches the invoice attached to a job
func (c *APIClient) GetInvoice(ctx context.Context, id string) (models.Invoice, error) {
	var invoice models.Invoice
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetJobInvoiceURL(id), nil, &invoice); err != nil {
		return models.Invoice{}, err
	}
	return invoice, nil
}

// Payment methods implementation

// MarkCashReceived records the professional's side of the cash handshake
func (c *APIClient) MarkCashReceived(ctx context.Context, id string, params handlers.CashReceivedParams) (models.Job, error) {
	return c.jobAction(ctx, routes.MarkCashReceived, id, params)
}

// ConfirmCashPayment records the customer's side of the cash handshake
func (c *APIClient) ConfirmCashPayment(ctx context.Context, id string, params handlers.CashConfirmParams) (models.Job, error) {
	return c.jobAction(ctx, routes.ConfirmCashPayment, id, params)
}

// RaiseCashDispute opens a dispute on a cash payment
func (c *APIClient) RaiseCashDispute(ctx context.Context, id string, params handlers.CashDisputeParams) (models.Job, error) {
	return c.jobAction(ctx, routes.RaiseCashDispute, id, params)
}

// ResolveCashDispute resolves an open cash dispute
func (c *APIClient) ResolveCashDispute(ctx context.Context, id string, params handlers.CashResolveParams) (models.Job, error) {
	return c.jobAction(ctx, routes.ResolveCashDispute, id, params)
}

// AddReceiptPhoto appends receipt evidence to a cash payment
func (c *APIClient) AddReceiptPhoto(ctx context.Context, id string, params handlers.ReceiptPhotoParams) (models.Job, error) {
	return c.jobAction(ctx, routes.AddReceiptPhoto, id, params)
}

// VerifyPayment applies a gateway-verified online payment to a job
func (c *APIClient) VerifyPayment(ctx context.Context, id string, params handlers.VerifyPaymentParams) (models.Job, error) {
	return c.jobAction(ctx, routes.VerifyPayment, id, params)
}

// Payout methods implementation

// GetPayouts lists payouts for a professional
func (c *APIClient) GetPayouts(ctx context.Context, query url.Values) ([]models.Payout, error) {
	var response types.ListResponse[models.Payout]
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetPayoutsURL(query), nil, &response); err != nil {
		return []models.Payout{}, err
	}
	return response.Rows, nil
}

// GetPayout retrieves a payout by ID
func (c *APIClient) GetPayout(ctx context.Context, id string) (models.Payout, error) {
	var payout models.Payout
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetPayoutURL(id), nil, &payout); err != nil {
		return models.Payout{}, err
	}
	return payout, nil
}

// CreatePayout queues a payout for a professional
func (c *APIClient) CreatePayout(ctx context.Context, params handlers.CreatePayoutParams) (models.Payout, error) {
	var payout models.Payout
	if err := c.executeRequest(ctx, http.MethodPost, routes.CreatePayoutURL(), params, &payout); err != nil {
		return models.Payout{}, err
	}
	return payout, nil
}

// UpdatePayoutStatus moves a payout through its processing states
func (c *APIClient) UpdatePayoutStatus(ctx context.Context, id string, params handlers.UpdatePayoutStatusParams) (models.Payout, error) {
	var payout models.Payout
	if err := c.executeRequest(ctx, http.MethodPut, routes.UpdatePayoutStatusURL(id), params, &payout); err != nil {
		return models.Payout{}, err
	}
	return payout, nil
}

// Review methods implementation

// GetReviews lists reviews for a professional
func (c *APIClient) GetReviews(ctx context.Context, query url.Values) ([]models.Review, error) {
	var response types.ListResponse[models.Review]
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetReviewsURL(query), nil, &response); err != nil {
		return []models.Review{}, err
	}
	return response.Rows, nil
}

// CreateReview rates a completed job
func (c *APIClient) CreateReview(ctx context.Context, params handlers.CreateReviewParams) (models.Review, error) {
	var review models.Review
	if err := c.executeRequest(ctx, http.MethodPost, routes.CreateReviewURL(), params, &review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// User methods implementation

// GetUsers lists users
func (c *APIClient) GetUsers(ctx context.Context, query url.Values) ([]models.User, error) {
	var response types.ListResponse[models.User]
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetUsersURL(query), nil, &response); err != nil {
		return []models.User{}, err
	}
	return response.Rows, nil
}

// GetUserByID retrieves a user by id
func (c *APIClient) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetUserByIDURL(id), nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a new user
func (c *APIClient) CreateUser(ctx context.Context, user models.User) error {
	return c.executeRequest(ctx, http.MethodPost, routes.CreateUserURL(), user, nil)
}

// DeleteUser deletes a user
func (c *APIClient) DeleteUser(ctx context.Context, id string) error {
	return c.executeRequest(ctx, http.MethodDelete, routes.DeleteUserURL(id), nil, nil)
}

// Professional methods implementation

// GetProfessionals lists professionals
func (c *APIClient) GetProfessionals(ctx context.Context, query url.Values) ([]models.Professional, error) {
	var response types.ListResponse[models.Professional]
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetProfessionalsURL(query), nil, &response); err != nil {
		return []models.Professional{}, err
	}
	return response.Rows, nil
}

// GetProfessional retrieves a professional by id
func (c *APIClient) GetProfessional(ctx context.Context, id string) (models.Professional, error) {
	var pro models.Professional
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetProfessionalURL(id), nil, &pro); err != nil {
		return models.Professional{}, err
	}
	return pro, nil
}

// CreateProfessional registers a new professional
func (c *APIClient) CreateProfessional(ctx context.Context, pro models.Professional) error {
	return c.executeRequest(ctx, http.MethodPost, routes.CreateProfessionalURL(), pro, nil)
}

// Notification methods implementation

// GetNotifications lists notifications for an account
func (c *APIClient) GetNotifications(ctx context.Context, query url.Values) ([]models.Notification, error) {
	var response types.ListResponse[models.Notification]
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetNotificationsURL(query), nil, &response); err != nil {
		return []models.Notification{}, err
	}
	return response.Rows, nil
}
