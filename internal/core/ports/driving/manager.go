package driving

import (
	"context"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
)

// DocumentManager maintains the authoritative client-side view of which
// documents exist and reconciles it with backend truth after each
// mutating action.
type DocumentManager interface {
	// Load fetches the file list and replaces the in-memory collection.
	// On failure the existing collection is left untouched and the load
	// error message is recorded; the error is returned for callers that
	// want it.
	Load(ctx context.Context) error

	// Upload stores the given files, appends all successes to the
	// collection in one batch, then triggers best-effort text extraction
	// for each extraction-eligible upload. Returns the appended summaries.
	Upload(ctx context.Context, files []domain.FileUpload) ([]domain.DocumentSummary, error)

	// Delete removes the document identified by id after an explicit
	// confirmation gate. A declined confirmation is a no-op.
	Delete(ctx context.Context, id string) error

	// Reconcile refreshes the collection from the backend while
	// preserving client-side extraction flags and cached content for
	// documents that survive the refresh.
	Reconcile(ctx context.Context) error

	// Documents returns a snapshot of the current collection.
	Documents() []domain.DocumentSummary

	// Get returns a copy of the document identified by id.
	Get(id string) (domain.DocumentSummary, bool)

	// Patch applies fn to the document identified by id and reports
	// whether a matching document was found. A missing target is
	// tolerated: in-flight completions for deleted documents are
	// discarded without error.
	Patch(id string, fn func(*domain.DocumentSummary)) bool

	// Select marks the document identified by id as the open document.
	Select(id string)

	// Selected returns a copy of the currently selected document.
	Selected() (domain.DocumentSummary, bool)

	// ClearSelection clears the open document.
	ClearSelection()

	// ErrorMessage returns the last category-level error message.
	ErrorMessage() string

	// SuccessMessage returns the last success message.
	SuccessMessage() string

	// ClearMessages resets both messages.
	ClearMessages()
}
