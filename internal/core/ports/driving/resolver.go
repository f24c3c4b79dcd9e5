package driving

import (
	"context"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
)

// ContentResolver produces a document's viewable content, choosing the
// strategy by declared or inferred type, and caches the result on the
// summary so repeat views are free.
type ContentResolver interface {
	// Resolve determines and fetches the content for the document
	// identified by id, patches it into the manager's collection, and
	// returns it. Resolution failures degrade to an error content kind
	// rather than a returned error wherever a fallback rendering exists.
	Resolve(ctx context.Context, id string) (*domain.ContentPayload, error)

	// SaveEdited stores user-edited text for a document whose current
	// content kind is text, overwrites the cached content with the
	// draft, marks it edited, and reconciles the manager.
	SaveEdited(ctx context.Context, id, text string) error
}
