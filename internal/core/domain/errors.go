package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingID indicates an operation was attempted without a
	// document identifier. Caught locally; no network call is made.
	ErrMissingID = errors.New("no document ID provided")

	// ErrDeclined indicates the user declined a confirmation prompt.
	ErrDeclined = errors.New("declined by user")

	// ErrExtractionFailed indicates the backend ran extraction but
	// reported no extractable content.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrNoDownloadURL indicates no download reference is available.
	ErrNoDownloadURL = errors.New("no download URL available")

	// ErrNotText indicates edit mode was requested for non-text content.
	ErrNotText = errors.New("content is not editable text")

	// ErrAuthFailed indicates the backend rejected the credentials.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrGatewayUnavailable indicates the backend gateway is not configured.
	ErrGatewayUnavailable = errors.New("gateway unavailable")
)
