package handlers

import "github.com/fixitnow/fixitnow/internal/db/models"

// getPaginationOptions returns a ListOptions struct with validated pagination parameters
func getPaginationOptions(page int, includeDeleted ...bool) *models.ListOptions {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * models.DefaultLimit
	options := &models.ListOptions{
		Limit:  models.DefaultLimit,
		Offset: offset,
	}

	if len(includeDeleted) > 0 {
		options.IncludeDeleted = includeDeleted[0]
	}

	return options
}
