// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDocuments lists the stored documents.
	ViewDocuments ViewType = iota
	// ViewContent shows a single document's content.
	ViewContent
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDocuments:
		return "documents"
	case ViewContent:
		return "content"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DocumentsLoaded signals the document collection was refreshed.
type DocumentsLoaded struct {
	Err error
}

// DocumentSelected signals a document was chosen for viewing.
type DocumentSelected struct {
	ID string
}

// ContentResolved carries a document's resolved content.
type ContentResolved struct {
	ID      string
	Payload *domain.ContentPayload
	Err     error
}

// DocumentDeleted signals a delete completed.
type DocumentDeleted struct {
	ID  string
	Err error
}

// EditSaved signals an edited draft was stored.
type EditSaved struct {
	ID  string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
