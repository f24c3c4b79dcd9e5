package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driving"
	"github.com/docdeck-io/docdeck-cli/internal/logger"
)

// Ensure ContentResolver implements the interface.
var _ driving.ContentResolver = (*ContentResolver)(nil)

// ContentResolver derives a document's viewable content and caches it
// on the summary through the manager's patch operations, so the list
// and any open viewer observe the same state.
type ContentResolver struct {
	store   driving.DocumentManager
	gateway driven.Gateway
	fetcher driven.BlobFetcher
	folder  string
}

// NewContentResolver creates a content resolver. The fetcher downloads
// raw bytes at blob references, which may live outside the API base URL.
func NewContentResolver(store driving.DocumentManager, gateway driven.Gateway, fetcher driven.BlobFetcher, folder string) *ContentResolver {
	return &ContentResolver{
		store:   store,
		gateway: gateway,
		fetcher: fetcher,
		folder:  folder,
	}
}

// Resolve determines the content for the document identified by id,
// patches it into the collection, selects the document, and returns the
// payload. First matching rule wins; failures degrade into error or
// fallback kinds rather than crashing the caller.
func (r *ContentResolver) Resolve(ctx context.Context, id string) (*domain.ContentPayload, error) {
	if r.store == nil || r.gateway == nil {
		return nil, domain.ErrGatewayUnavailable
	}

	doc, ok := r.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("resolve %s: %w", id, domain.ErrNotFound)
	}

	// Attach a download reference if missing. Failure here is non-fatal:
	// downstream branches proceed with whatever reference exists.
	if doc.BlobURL == "" {
		url, err := r.gateway.DownloadURL(ctx, doc.Identity())
		if err != nil {
			logger.Warn("failed to get download URL for %s: %v", id, err)
		} else {
			doc.BlobURL = url
			r.store.Patch(id, func(d *domain.DocumentSummary) {
				d.BlobURL = url
			})
		}
	}

	payload := r.resolveByType(ctx, &doc)

	r.store.Patch(id, func(d *domain.DocumentSummary) {
		d.Content = payload
	})
	r.store.Select(doc.Identity())
	return payload, nil
}

// resolveByType applies the per-type decision procedure.
func (r *ContentResolver) resolveByType(ctx context.Context, doc *domain.DocumentSummary) *domain.ContentPayload {
	switch {
	// MIME types inferred from extensions may carry a charset parameter.
	case strings.HasPrefix(doc.Type, "text/plain"):
		return r.resolvePlainText(ctx, doc)

	case doc.Type == "application/pdf":
		fallback := &domain.ContentPayload{Kind: domain.ContentPDF, Data: doc.BlobURL}
		return r.resolveExtractable(ctx, doc, fallback)

	case doc.IsImage():
		// Rendering is delegated to the presentation layer; no fetch.
		return &domain.ContentPayload{Kind: domain.ContentImage, Data: doc.BlobURL}

	case doc.IsSpreadsheet():
		return &domain.ContentPayload{Kind: domain.ContentSpreadsheet, Data: domain.SpreadsheetPlaceholder}

	case doc.IsWord():
		fallback := &domain.ContentPayload{Kind: domain.ContentWord, Data: domain.WordPlaceholder}
		return r.resolveExtractable(ctx, doc, fallback)

	default:
		return &domain.ContentPayload{Kind: domain.ContentUnknown, Data: domain.UnknownPlaceholder}
	}
}

// resolvePlainText fetches the raw bytes at the download reference.
func (r *ContentResolver) resolvePlainText(ctx context.Context, doc *domain.DocumentSummary) *domain.ContentPayload {
	if doc.BlobURL == "" || r.fetcher == nil {
		return &domain.ContentPayload{Kind: domain.ContentError, Data: domain.ErrNoDownloadURL.Error()}
	}
	text, err := r.fetcher.FetchText(ctx, doc.BlobURL)
	if err != nil {
		logger.Warn("failed to fetch text for %s: %v", doc.Identity(), err)
		return &domain.ContentPayload{Kind: domain.ContentError, Data: "Failed to load document content"}
	}
	return &domain.ContentPayload{Kind: domain.ContentText, Data: text}
}

// resolveExtractable runs the cached/fresh extraction dance shared by
// PDF and Word documents. The extraction endpoint is idempotent: when
// text was extracted before it returns the stored copy.
func (r *ContentResolver) resolveExtractable(ctx context.Context, doc *domain.DocumentSummary, fallback *domain.ContentPayload) *domain.ContentPayload {
	id := doc.Identity()

	res, err := r.gateway.ExtractText(ctx, id, r.folder)
	if err != nil {
		logger.Warn("text extraction failed for %s, using fallback: %v", id, err)
		return fallback
	}
	if !res.Success {
		logger.Warn("text extraction reported failure for %s: %s", id, res.Error)
		return fallback
	}

	source := domain.TextSource(res.Source)
	if source == "" {
		if doc.HasExtractedText {
			source = domain.SourceCached
		} else {
			source = domain.SourceExtracted
		}
	}

	if !doc.HasExtractedText {
		r.store.Patch(id, func(d *domain.DocumentSummary) {
			d.HasExtractedText = true
		})
		if err := r.store.Reconcile(ctx); err != nil {
			logger.Warn("post-extraction reconcile failed: %v", err)
		}
	}

	return &domain.ContentPayload{
		Kind:   domain.ContentText,
		Data:   res.Text,
		Source: source,
	}
}

// SaveEdited stores user-edited text for a document whose current
// content kind is text, then overwrites the cached content with the
// draft, marks it edited, and reconciles against backend truth.
func (r *ContentResolver) SaveEdited(ctx context.Context, id, text string) error {
	if r.store == nil || r.gateway == nil {
		return domain.ErrGatewayUnavailable
	}

	doc, ok := r.store.Get(id)
	if !ok {
		return fmt.Errorf("save %s: %w", id, domain.ErrNotFound)
	}
	if doc.Content == nil || doc.Content.Kind != domain.ContentText {
		return domain.ErrNotText
	}

	if err := r.gateway.SaveEditedText(ctx, doc.Identity(), text, r.folder); err != nil {
		return fmt.Errorf("save edited text for %s: %w", id, err)
	}

	r.store.Patch(id, func(d *domain.DocumentSummary) {
		d.Content = &domain.ContentPayload{
			Kind:   domain.ContentText,
			Data:   text,
			Source: domain.SourceEdited,
		}
		d.HasExtractedText = true
	})

	if err := r.store.Reconcile(ctx); err != nil {
		logger.Warn("post-save reconcile failed: %v", err)
	}
	return nil
}
