package handlers

// Common error messages
const (
	ErrMsgInvalidReqBody = "Invalid request body"
	ErrMsgInvalidJobID   = "Invalid job id"
)

// Job error messages
const (
	ErrMsgJobCreateFailed  = "Failed to create job"
	ErrMsgJobListFailed    = "Failed to list jobs"
	ErrMsgJobUpdateFailed  = "Failed to update job"
	ErrMsgInvalidJobStatus = "Invalid job status"
)

// Payout error messages
const (
	ErrMsgPayoutCreateFailed = "Failed to create payout"
	ErrMsgPayoutListFailed   = "Failed to list payouts"
	ErrMsgInvalidPayoutID    = "Invalid payout id"
)

// User and professional error messages
const (
	ErrMsgInvalidUserID         = "Invalid user id"
	ErrMsgCreateUserFailed      = "Failed to create user"
	ErrMsgGetUsersFailed        = "Failed to get users"
	ErrMsgInvalidProfessionalID = "Invalid professional id"
	ErrMsgCreateProFailed       = "Failed to create professional"
	ErrMsgListProsFailed        = "Failed to list professionals"
)

// Review and notification error messages
const (
	ErrMsgReviewCreateFailed  = "Failed to create review"
	ErrMsgReviewListFailed    = "Failed to list reviews"
	ErrMsgNotificationList    = "Failed to list notifications"
	ErrMsgInvalidNotification = "Invalid notification id"
)
