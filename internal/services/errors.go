package services

import "errors"

// Error taxonomy for the checkout engine. All three propagate unmodified to
// the HTTP layer, which maps ErrInvalidInput to a 400 and the other two to a
// 500.
var (
	// ErrInvalidInput is a caller error. Nothing has been queried or
	// persisted; retrying the same request will not help.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable is a transient infrastructure fault. Safe to retry
	// with backoff; the engine itself never retries.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPersistence is a constraint or integrity failure. The transaction
	// has been rolled back; no partial rows survive.
	ErrPersistence = errors.New("persistence error")
)
