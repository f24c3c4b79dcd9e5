package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driving"
	"github.com/docdeck-io/docdeck-cli/internal/logger"
)

// Ensure DocumentManager implements the interface.
var _ driving.DocumentManager = (*DocumentManager)(nil)

// User-facing message categories. The view layer receives these short
// strings rather than structured error codes.
const (
	msgLoadFailed    = "Failed to load files from storage"
	msgUploadFailed  = "Error uploading documents. Please try again."
	msgDeleteFailed  = "Failed to delete document"
	msgDeleteNoID    = "Cannot delete: no document ID provided"
	msgDeleteSuccess = "Document deleted successfully"
)

// DocumentManager holds the single authoritative document collection.
// All mutations are replace, filter-by-id, or patch-by-id operations so
// last-writer-wins state is always well defined.
type DocumentManager struct {
	mu        sync.Mutex
	gateway   driven.Gateway
	confirmer driven.Confirmer
	folder    string

	documents  []domain.DocumentSummary
	selectedID string
	errMsg     string
	successMsg string
}

// NewDocumentManager creates a document manager backed by the given
// gateway. The confirmer gates deletes; folder scopes every backend
// call in the SharePoint variant and is ignored by the plain backend.
func NewDocumentManager(gateway driven.Gateway, confirmer driven.Confirmer, folder string) *DocumentManager {
	return &DocumentManager{
		gateway:   gateway,
		confirmer: confirmer,
		folder:    folder,
	}
}

// summaryFromEntry maps a raw backend entry into a DocumentSummary,
// applying the defaulting rules for absent fields.
func summaryFromEntry(e driven.FileEntry) domain.DocumentSummary {
	docType := e.Type
	if docType == "" {
		docType = domain.DefaultContentType
	}
	lastModified := e.LastModified
	if lastModified == "" {
		lastModified = e.UploadedAt
	}
	return domain.DocumentSummary{
		ID:               domain.Identify(e.Name, e.ID, e.OriginalName),
		Name:             domain.Identify(e.Name, e.OriginalName),
		OriginalName:     domain.Identify(e.OriginalName, e.Name),
		Size:             e.Size,
		Type:             docType,
		Folder:           e.Folder,
		BlobURL:          e.BlobURL,
		UploadedAt:       e.UploadedAt,
		LastModified:     lastModified,
		HasExtractedText: false,
		Content:          nil,
	}
}

// summaryFromUpload maps an upload response into a DocumentSummary.
// Storage may have renamed the file on conflict, so the stored name is
// taken from the response and the original name from the local file.
func summaryFromUpload(res *driven.UploadResult, file domain.FileUpload, folder string) domain.DocumentSummary {
	stored := domain.Identify(res.Filename, res.BlobName, res.Name)
	size := res.Size
	if size == 0 {
		size = int64(len(file.Data))
	}
	docType := file.ContentType
	if docType == "" {
		docType = domain.DefaultContentType
	}
	resFolder := res.Folder
	if resFolder == "" {
		resFolder = folder
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return domain.DocumentSummary{
		ID:               stored,
		Name:             stored,
		OriginalName:     domain.Identify(res.OriginalName, file.Name),
		Size:             size,
		Type:             docType,
		Folder:           resFolder,
		UploadedAt:       now,
		LastModified:     now,
		HasExtractedText: false,
		Content:          nil,
	}
}

// Load fetches the file list and replaces the entire in-memory
// collection. On failure the existing collection stays untouched
// (stale but available) and the load error message is recorded.
// Concurrent calls are not de-duplicated; last write wins.
func (m *DocumentManager) Load(ctx context.Context) error {
	if m.gateway == nil {
		return domain.ErrGatewayUnavailable
	}

	entries, err := m.gateway.ListFiles(ctx, m.folder)
	if err != nil {
		m.setError(msgLoadFailed)
		return fmt.Errorf("list files: %w", err)
	}

	mapped := make([]domain.DocumentSummary, 0, len(entries))
	for _, e := range entries {
		mapped = append(mapped, summaryFromEntry(e))
	}

	m.mu.Lock()
	m.documents = mapped
	m.mu.Unlock()
	return nil
}

// Upload stores each file, appends all successes to the collection in
// one batch, then triggers best-effort auto-extraction for every
// extraction-eligible upload. A failed extraction is logged and never
// fails the upload; a failure on one file never aborts the others.
func (m *DocumentManager) Upload(ctx context.Context, files []domain.FileUpload) ([]domain.DocumentSummary, error) {
	if m.gateway == nil {
		return nil, domain.ErrGatewayUnavailable
	}
	m.ClearMessages()

	var (
		uploaded []domain.DocumentSummary
		failures []error
	)
	for _, file := range files {
		res, err := m.gateway.Upload(ctx, file.Name, file.ContentType, bytes.NewReader(file.Data), m.folder)
		if err != nil {
			logger.Warn("upload failed for %s: %v", file.Name, err)
			failures = append(failures, fmt.Errorf("upload %s: %w", file.Name, err))
			continue
		}
		uploaded = append(uploaded, summaryFromUpload(res, file, m.folder))
	}

	if len(uploaded) > 0 {
		m.mu.Lock()
		m.documents = append(m.documents, uploaded...)
		m.mu.Unlock()
		m.setSuccess(fmt.Sprintf("%d document(s) uploaded successfully", len(uploaded)))
	}
	if len(failures) > 0 {
		m.setError(msgUploadFailed)
	}

	m.autoExtract(ctx, uploaded)

	return uploaded, errors.Join(failures...)
}

// autoExtract runs extraction for each eligible upload, flagging both
// the collection entry and the caller's slice. Completions are applied
// idempotently by document id, so arrival order does not matter and a
// deleted target is silently tolerated.
func (m *DocumentManager) autoExtract(ctx context.Context, uploaded []domain.DocumentSummary) {
	for i := range uploaded {
		if !uploaded[i].SupportsExtraction() {
			continue
		}
		id := uploaded[i].Identity()
		res, err := m.gateway.ExtractText(ctx, id, m.folder)
		if err != nil {
			logger.Warn("auto-extraction failed for %s: %v", id, err)
			continue
		}
		if !res.Success {
			logger.Warn("auto-extraction reported failure for %s: %s", id, res.Error)
			continue
		}
		uploaded[i].HasExtractedText = true
		m.Patch(id, func(d *domain.DocumentSummary) {
			d.HasExtractedText = true
		})
		logger.Debug("auto-extraction completed for %s", id)
	}
}

// Delete removes the document identified by id. A missing id is a local
// validation error; a declined confirmation is a no-op with no backend
// call. On backend success the entry is removed immediately and a
// reconciliation reload repairs any remaining divergence.
func (m *DocumentManager) Delete(ctx context.Context, id string) error {
	if id == "" {
		m.setError(msgDeleteNoID)
		return domain.ErrMissingID
	}
	if m.gateway == nil {
		return domain.ErrGatewayUnavailable
	}

	if m.confirmer != nil && !m.confirmer.Confirm(fmt.Sprintf("Are you sure you want to delete %q?", id)) {
		return domain.ErrDeclined
	}

	if err := m.gateway.Delete(ctx, id, m.folder); err != nil {
		m.setError(msgDeleteFailed)
		return fmt.Errorf("delete %s: %w", id, err)
	}

	m.mu.Lock()
	filtered := m.documents[:0:0]
	for _, d := range m.documents {
		if !d.Matches(id) {
			filtered = append(filtered, d)
		}
	}
	m.documents = filtered
	if m.selectedID == id {
		m.selectedID = ""
	}
	m.mu.Unlock()
	m.setSuccess(msgDeleteSuccess)

	if err := m.Reconcile(ctx); err != nil {
		logger.Warn("post-delete reconcile failed: %v", err)
	}
	return nil
}

// Reconcile refreshes the collection from backend truth while carrying
// over client-side state (extraction flags, cached content, download
// references) for documents that survive the refresh. On failure the
// existing collection stays untouched.
func (m *DocumentManager) Reconcile(ctx context.Context) error {
	if m.gateway == nil {
		return domain.ErrGatewayUnavailable
	}

	entries, err := m.gateway.ListFiles(ctx, m.folder)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	previous := make(map[string]domain.DocumentSummary, len(m.documents))
	for _, d := range m.documents {
		previous[d.Identity()] = d
	}

	merged := make([]domain.DocumentSummary, 0, len(entries))
	selectionAlive := false
	for _, e := range entries {
		doc := summaryFromEntry(e)
		if prev, ok := previous[doc.ID]; ok {
			doc.HasExtractedText = prev.HasExtractedText
			doc.Content = prev.Content
			if doc.BlobURL == "" {
				doc.BlobURL = prev.BlobURL
			}
		}
		if doc.ID == m.selectedID {
			selectionAlive = true
		}
		merged = append(merged, doc)
	}

	m.documents = merged
	if !selectionAlive {
		m.selectedID = ""
	}
	return nil
}

// Documents returns a snapshot copy of the collection.
func (m *DocumentManager) Documents() []domain.DocumentSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.DocumentSummary, len(m.documents))
	copy(out, m.documents)
	return out
}

// Get returns a copy of the document identified by id.
func (m *DocumentManager) Get(id string) (domain.DocumentSummary, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.documents {
		if d.Matches(id) {
			return d, true
		}
	}
	return domain.DocumentSummary{}, false
}

// Patch applies fn to the matching document and reports whether one was
// found. Missing targets are tolerated so late completions for deleted
// documents are discarded without error.
func (m *DocumentManager) Patch(id string, fn func(*domain.DocumentSummary)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.documents {
		if m.documents[i].Matches(id) {
			fn(&m.documents[i])
			return true
		}
	}
	return false
}

// Select marks the document identified by id as the open document.
func (m *DocumentManager) Select(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectedID = id
}

// Selected returns a copy of the currently selected document.
func (m *DocumentManager) Selected() (domain.DocumentSummary, bool) {
	m.mu.Lock()
	id := m.selectedID
	m.mu.Unlock()
	if id == "" {
		return domain.DocumentSummary{}, false
	}
	return m.Get(id)
}

// ClearSelection clears the open document.
func (m *DocumentManager) ClearSelection() {
	m.Select("")
}

// ErrorMessage returns the last category-level error message.
func (m *DocumentManager) ErrorMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

// SuccessMessage returns the last success message.
func (m *DocumentManager) SuccessMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.successMsg
}

// ClearMessages resets both messages.
func (m *DocumentManager) ClearMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = ""
	m.successMsg = ""
}

func (m *DocumentManager) setError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = msg
}

func (m *DocumentManager) setSuccess(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successMsg = msg
}
