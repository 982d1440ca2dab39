package catalog

import "errors"

// Failure kinds surfaced by stores. Callers branch with errors.Is; the
// HTTP layer maps each to a status code.
var (
	// ErrValidation means the candidate had a missing or malformed field.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateTitle means an existing record already holds the
	// case-folded title.
	ErrDuplicateTitle = errors.New("duplicate title")

	// ErrNotFound means no record matched the requested title.
	ErrNotFound = errors.New("project not found")

	// ErrCorruptData means the backing document exists but does not parse
	// as a catalog.
	ErrCorruptData = errors.New("corrupt catalog data")

	// ErrStorageUnavailable means an I/O failure other than "file
	// absent".
	ErrStorageUnavailable = errors.New("storage unavailable")
)
