// Package handlers provides HTTP request handling
package handlers

import "github.com/fixitnow/fixitnow/internal/services"

// APIHandler is a handler for the API
type APIHandler struct {
	job          *services.Job
	payout       *services.Payout
	review       *services.Review
	user         *services.User
	professional *services.ProfessionalService
	notifier     *services.Notifier
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(
	job *services.Job,
	payout *services.Payout,
	review *services.Review,
	user *services.User,
	professional *services.ProfessionalService,
	notifier *services.Notifier,
) *APIHandler {
	return &APIHandler{
		job:          job,
		payout:       payout,
		review:       review,
		user:         user,
		professional: professional,
		notifier:     notifier,
	}
}
