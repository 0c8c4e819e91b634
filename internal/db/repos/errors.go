// Package repos provides access to marketplace database operations
package repos

import "errors"

// ErrVersionConflict is returned when a versioned update finds that a
// competing write already bumped the row's version. Callers should
// re-read and retry the read-modify-write cycle.
var ErrVersionConflict = errors.New("job was modified by a concurrent request")
