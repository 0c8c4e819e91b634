// Package services provides business logic for marketplace operations
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy for lifecycle operations. Handlers map these to HTTP
// status codes with errors.Is; services wrap them with %w and context.
var (
	// ErrValidation indicates malformed input; no mutation occurred
	ErrValidation = errors.New("validation failed")
	// ErrIllegalState indicates the operation is incompatible with the
	// job's current status; no mutation occurred
	ErrIllegalState = errors.New("operation not allowed in current state")
	// ErrNotFound indicates a referenced record does not resolve
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a competing write invalidated the operation's
	// precondition after all retries; the caller may retry the request
	ErrConflict = errors.New("conflicting concurrent update")
)

// mapNotFound converts a gorm record-not-found error into the service
// taxonomy, annotated with the resource that failed to resolve.
func mapNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
	}
	return err
}
