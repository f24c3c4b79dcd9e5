package tui

import "errors"

// Port validation errors.
var (
	// ErrMissingDocumentManager indicates no document manager was provided.
	ErrMissingDocumentManager = errors.New("tui: document manager is required")

	// ErrMissingContentResolver indicates no content resolver was provided.
	ErrMissingContentResolver = errors.New("tui: content resolver is required")
)
