// Package tui provides an interactive terminal user interface for
// DocDeck. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Document maintains the client-side document collection.
	Document driving.DocumentManager

	// Content derives viewable content for a document.
	Content driving.ContentResolver
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(document driving.DocumentManager, content driving.ContentResolver) *Ports {
	return &Ports{
		Document: document,
		Content:  content,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentManager
	}
	if p.Content == nil {
		return ErrMissingContentResolver
	}
	return nil
}
