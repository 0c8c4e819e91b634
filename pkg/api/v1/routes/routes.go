// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/pkg/api/v1/handlers"
)

/*

To keep this file organized, routes should be organized in the following way:

1. Smallest scope first (i.e. job routes before payout routes)
2. For similar scopes, put the endpoints in alphabetical order
3. Order routes in GET, POST, PUT, DELETE order.
	a. Within this ordering, param urls (ie /:id) should go last, otherwise fiber will interpret the route slug as that param.
	b. After param considerations, order alphabetically.
4. For clarity, naming should match the action (i.e. GetJob, CancelJob)

*/

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Job routes
	GetJobs         = "GetJobs"
	GetJob          = "GetJob"
	GetJobInvoice   = "GetJobInvoice"
	CreateJob       = "CreateJob"
	UpdateJob       = "UpdateJob"
	TransitionJob   = "TransitionJob"
	AcceptJob       = "AcceptJob"
	StartJob        = "StartJob"
	CompleteJob     = "CompleteJob"
	CancelJob       = "CancelJob"
	DeclineJob      = "DeclineJob"
	AddJobTip       = "AddJobTip"
	GenerateInvoice = "GenerateInvoice"

	// Payment routes
	MarkCashReceived   = "MarkCashReceived"
	ConfirmCashPayment = "ConfirmCashPayment"
	RaiseCashDispute   = "RaiseCashDispute"
	ResolveCashDispute = "ResolveCashDispute"
	AddReceiptPhoto    = "AddReceiptPhoto"
	VerifyPayment      = "VerifyPayment"

	// Payout routes
	GetPayouts         = "GetPayouts"
	GetPayout          = "GetPayout"
	CreatePayout       = "CreatePayout"
	UpdatePayoutStatus = "UpdatePayoutStatus"

	// Review routes
	GetReviews   = "GetReviews"
	CreateReview = "CreateReview"

	// User routes
	GetUsers    = "GetUsers"
	GetUserByID = "GetUserByID"
	CreateUser  = "CreateUser"
	UpdateUser  = "UpdateUser"
	DeleteUser  = "DeleteUser"

	// Professional routes
	GetProfessionals   = "GetProfessionals"
	GetProfessional    = "GetProfessional"
	CreateProfessional = "CreateProfessional"
	UpdateProfessional = "UpdateProfessional"

	// Notification routes
	GetNotifications     = "GetNotifications"
	MarkNotificationRead = "MarkNotificationRead"
)

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheMu   sync.RWMutex
	routeCacheInit sync.Once
)

// RegisterRoutes configures all the v1 routes
//
// NOTE: route ordering is important because routes will try and match in the order they are registered.
func RegisterRoutes(
	app *fiber.App,
	jobHandler *handlers.JobHandler,
	paymentHandler *handlers.PaymentHandler,
	payoutHandler *handlers.PayoutHandler,
	reviewHandler *handlers.ReviewHandler,
	userHandler *handlers.UserHandler,
	professionalHandler *handlers.ProfessionalHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	// API v1 routes
	v1 := app.Group(APIv1Prefix)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// Job endpoints
	jobs := v1.Group("/jobs")
	jobs.Get("/", jobHandler.ListJobs).Name(GetJobs)
	jobs.Get("/:id", jobHandler.GetJob).Name(GetJob)
	jobs.Get("/:id/invoice", jobHandler.GetInvoice).Name(GetJobInvoice)
	jobs.Post("/", jobHandler.CreateJob).Name(CreateJob)
	jobs.Post("/:id/accept", jobHandler.AcceptJob).Name(AcceptJob)
	jobs.Post("/:id/cancel", jobHandler.CancelJob).Name(CancelJob)
	jobs.Post("/:id/complete", jobHandler.CompleteJob).Name(CompleteJob)
	jobs.Post("/:id/decline", jobHandler.DeclineJob).Name(DeclineJob)
	jobs.Post("/:id/invoice", jobHandler.GenerateInvoice).Name(GenerateInvoice)
	jobs.Post("/:id/start", jobHandler.StartJob).Name(StartJob)
	jobs.Post("/:id/tip", jobHandler.AddTip).Name(AddJobTip)
	jobs.Post("/:id/transition", jobHandler.TransitionJob).Name(TransitionJob)
	jobs.Put("/:id", jobHandler.UpdateJob).Name(UpdateJob)

	// Payment endpoints, nested under the job they settle
	jobs.Post("/:id/payment/cash/confirm", paymentHandler.ConfirmCashPayment).Name(ConfirmCashPayment)
	jobs.Post("/:id/payment/cash/dispute", paymentHandler.RaiseCashDispute).Name(RaiseCashDispute)
	jobs.Post("/:id/payment/cash/received", paymentHandler.MarkCashReceived).Name(MarkCashReceived)
	jobs.Post("/:id/payment/cash/receipt", paymentHandler.AddReceiptPhoto).Name(AddReceiptPhoto)
	jobs.Post("/:id/payment/cash/resolve", paymentHandler.ResolveCashDispute).Name(ResolveCashDispute)
	jobs.Post("/:id/payment/verify", paymentHandler.VerifyOnlinePayment).Name(VerifyPayment)

	// Payout endpoints
	payouts := v1.Group("/payouts")
	payouts.Get("/", payoutHandler.ListPayouts).Name(GetPayouts)
	payouts.Get("/:id", payoutHandler.GetPayout).Name(GetPayout)
	payouts.Post("/", payoutHandler.CreatePayout).Name(CreatePayout)
	payouts.Put("/:id/status", payoutHandler.UpdatePayoutStatus).Name(UpdatePayoutStatus)

	// Review endpoints
	reviews := v1.Group("/reviews")
	reviews.Get("/", reviewHandler.ListReviews).Name(GetReviews)
	reviews.Post("/", reviewHandler.CreateReview).Name(CreateReview)

	// User endpoints
	users := v1.Group("/users")
	users.Get("/", userHandler.GetUsers).Name(GetUsers)
	users.Get("/:id", userHandler.GetUserByID).Name(GetUserByID)
	users.Post("/", userHandler.CreateUser).Name(CreateUser)
	users.Put("/:id", userHandler.UpdateUser).Name(UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser).Name(DeleteUser)

	// Professional endpoints
	professionals := v1.Group("/professionals")
	professionals.Get("/", professionalHandler.ListProfessionals).Name(GetProfessionals)
	professionals.Get("/:id", professionalHandler.GetProfessional).Name(GetProfessional)
	professionals.Post("/", professionalHandler.CreateProfessional).Name(CreateProfessional)
	professionals.Put("/:id", professionalHandler.UpdateProfessional).Name(UpdateProfessional)

	// Notification endpoints
	notifications := v1.Group("/notifications")
	notifications.Get("/", notificationHandler.ListNotifications).Name(GetNotifications)
	notifications.Put("/:id/read", notificationHandler.MarkNotificationRead).Name(MarkNotificationRead)
}

// initRouteCache initializes the route cache by creating a mock app and extracting routes
func initRouteCache() {
	routeCacheInit.Do(func() {
		routeCache = make(map[string]string)

		// Create a mock app
		app := fiber.New()

		// Create empty handlers for route registration
		RegisterRoutes(app,
			&handlers.JobHandler{},
			&handlers.PaymentHandler{},
			&handlers.PayoutHandler{},
			&handlers.ReviewHandler{},
			&handlers.UserHandler{},
			&handlers.ProfessionalHandler{},
			&handlers.NotificationHandler{},
		)

		// Extract routes from the app
		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				routeCache[route.Name] = route.Path
			}
		}
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	routeCacheMu.RLock()
	defer routeCacheMu.RUnlock()

	// Initialize cache if needed
	if routeCache == nil {
		routeCacheMu.RUnlock()
		initRouteCache()
		routeCacheMu.RLock()
	}

	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	// Replace parameters in the route
	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, value)
	}

	// Remove trailing slash if it's a base endpoint with no parameters
	if strings.HasSuffix(route, "/") && !strings.Contains(route, ":") {
		route = strings.TrimSuffix(route, "/")
	}

	// Add query parameters if any
	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

// Health check route helper

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil, nil)
}

// Job route helpers

// GetJobsURL returns the URL for listing jobs
func GetJobsURL(queryParams url.Values) string {
	return BuildURL(GetJobs, nil, queryParams)
}

// GetJobURL returns the URL for getting a job by ID
func GetJobURL(id string) string {
	return BuildURL(GetJob, map[string]string{"id": id}, nil)
}

// GetJobInvoiceURL returns the URL for fetching a job's invoice
func GetJobInvoiceURL(id string) string {
	return BuildURL(GetJobInvoice, map[string]string{"id": id}, nil)
}

// CreateJobURL returns the URL for creating a job
func CreateJobURL() string {
	return BuildURL(CreateJob, nil, nil)
}

// UpdateJobURL returns the URL for updating a job
func UpdateJobURL(id string) string {
	return BuildURL(UpdateJob, map[string]string{"id": id}, nil)
}

// JobActionURL returns the URL for a named job lifecycle action
// (AcceptJob, StartJob, CompleteJob, CancelJob, DeclineJob, AddJobTip,
// TransitionJob, GenerateInvoice and the payment routes).
func JobActionURL(routeName, id string) string {
	return BuildURL(routeName, map[string]string{"id": id}, nil)
}

// Payout route helpers

// GetPayoutsURL returns the URL for listing payouts
func GetPayoutsURL(queryParams url.Values) string {
	return BuildURL(GetPayouts, nil, queryParams)
}

// GetPayoutURL returns the URL for getting a payout by ID
func GetPayoutURL(id string) string {
	return BuildURL(GetPayout, map[string]string{"id": id}, nil)
}

// CreatePayoutURL returns the URL for creating a payout
func CreatePayoutURL() string {
	return BuildURL(CreatePayout, nil, nil)
}

// UpdatePayoutStatusURL returns the URL for updating a payout's status
func UpdatePayoutStatusURL(id string) string {
	return BuildURL(UpdatePayoutStatus, map[string]string{"id": id}, nil)
}

// Review route helpers

// GetReviewsURL returns the URL for listing reviews
func GetReviewsURL(queryParams url.Values) string {
	return BuildURL(GetReviews, nil, queryParams)
}

// CreateReviewURL returns the URL for creating a review
func CreateReviewURL() string {
	return BuildURL(CreateReview, nil, nil)
}

// User route helpers

// GetUsersURL returns the URL for getting users
func GetUsersURL(queryParams url.Values) string {
	return BuildURL(GetUsers, nil, queryParams)
}

// GetUserByIDURL returns the URL for getting a user by ID
func GetUserByIDURL(id string) string {
	return BuildURL(GetUserByID, map[string]string{"id": id}, nil)
}

// CreateUserURL returns the URL for creating a user
func CreateUserURL() string {
	return BuildURL(CreateUser, nil, nil)
}

// UpdateUserURL returns the URL for updating a user
func UpdateUserURL(id string) string {
	return BuildURL(UpdateUser, map[string]string{"id": id}, nil)
}

// DeleteUserURL returns the URL for deleting a user
func DeleteUserURL(id string) string {
	return BuildURL(DeleteUser, map[string]string{"id": id}, nil)
}

// Professional route helpers

// GetProfessionalsURL returns the URL for listing professionals
func GetProfessionalsURL(queryParams url.Values) string {
	return BuildURL(GetProfessionals, nil, queryParams)
}

// GetProfessionalURL returns the URL for getting a professional by ID
func GetProfessionalURL(id string) string {
	return BuildURL(GetProfessional, map[string]string{"id": id}, nil)
}

// CreateProfessionalURL returns the URL for creating a professional
func CreateProfessionalURL() string {
	return BuildURL(CreateProfessional, nil, nil)
}

// UpdateProfessionalURL returns the URL for updating a professional
func UpdateProfessionalURL(id string) string {
	return BuildURL(UpdateProfessional, map[string]string{"id": id}, nil)
}

// Notification route helpers

// GetNotificationsURL returns the URL for listing notifications
func GetNotificationsURL(queryParams url.Values) string {
	return BuildURL(GetNotifications, nil, queryParams)
}

// MarkNotificationReadURL returns the URL for marking a notification read
func MarkNotificationReadURL(id string) string {
	return BuildURL(MarkNotificationRead, map[string]string{"id": id}, nil)
}
