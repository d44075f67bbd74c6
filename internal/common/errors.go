package common

import (
	"context"
	"errors"
)

// ErrNotFound marks an unknown category or product-group slug. Handlers map
// it to 404. Zero filter matches is NOT a not-found condition.
var ErrNotFound = errors.New("not found")

// ErrStoreUnavailable marks a timeout or connection failure against the
// data store. Handlers map it to 503; callers may retry.
var ErrStoreUnavailable = errors.New("store unavailable")

// IsRetryable reports whether err should surface as a retryable service
// error rather than a caller mistake.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}
