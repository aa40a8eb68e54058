package storage

import "errors"

var (
	// ErrStorageUnavailable reports that the underlying store could not be
	// opened, upgraded or reached. Callers surface it and allow a manual
	// retry; nothing here retries automatically.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound reports that no record exists for the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrValidation reports caller input that violates a precondition.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateID reports a generated id colliding with an existing
	// record. Fatal to the operation; the caller may reissue with a fresh id.
	ErrDuplicateID = errors.New("duplicate record id")
)
