package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdeck-io/docdeck-cli/internal/adapters/driven/gateway/memory"
	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
)

func newResolverFixture(t *testing.T, entries ...driven.FileEntry) (*memory.Gateway, *DocumentManager, *ContentResolver) {
	t.Helper()
	gw := memory.NewGateway()
	for _, e := range entries {
		gw.Seed(e, []byte(e.Name+" body"))
	}
	mgr := NewDocumentManager(gw, alwaysConfirm(), "")
	require.NoError(t, mgr.Load(context.Background()))
	return gw, mgr, NewContentResolver(mgr, gw, gw, "")
}

func TestResolve_PlainText(t *testing.T) {
	ctx := context.Background()
	_, mgr, res := newResolverFixture(t, driven.FileEntry{
		ID: "notes.txt", Name: "notes.txt", Type: "text/plain", BlobURL: "memory://notes.txt",
	})

	payload, err := res.Resolve(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentText, payload.Kind)
	assert.Equal(t, "notes.txt body", payload.Data)

	selected, ok := mgr.Selected()
	require.True(t, ok, "resolving must select the document")
	assert.Equal(t, "notes.txt", selected.ID)
	assert.Equal(t, payload, selected.Content)
}

func TestResolve_PlainTextWithoutDownloadURL(t *testing.T) {
	ctx := context.Background()
	_, _, res := newResolverFixture(t, driven.FileEntry{
		ID: "orphan.txt", Name: "orphan.txt", Type: "text/plain",
	})

	payload, err := res.Resolve(ctx, "orphan.txt")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentError, payload.Kind)
}

func TestResolve_AttachesDownloadURL(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	require.NoError(t, func() error {
		_, err := gw.Upload(ctx, "late.txt", "text/plain", stringReader("late body"), "")
		return err
	}())

	mgr := NewDocumentManager(gw, alwaysConfirm(), "")
	require.NoError(t, mgr.Load(ctx))
	doc, ok := mgr.Get("late.txt")
	require.True(t, ok)
	require.NotEmpty(t, doc.BlobURL)

	// Strip the reference to force the resolver to fetch one.
	mgr.Patch("late.txt", func(d *domain.DocumentSummary) { d.BlobURL = "" })

	res := NewContentResolver(mgr, gw, gw, "")
	payload, err := res.Resolve(ctx, "late.txt")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentText, payload.Kind)
	assert.Equal(t, "late body", payload.Data)

	doc, ok = mgr.Get("late.txt")
	require.True(t, ok)
	assert.Equal(t, "memory://late.txt", doc.BlobURL)
}

func TestResolve_PDFExtractionThenCached(t *testing.T) {
	ctx := context.Background()
	_, mgr, res := newResolverFixture(t, driven.FileEntry{
		ID: "doc.pdf", Name: "doc.pdf", Type: "application/pdf", BlobURL: "memory://doc.pdf",
	})

	payload, err := res.Resolve(ctx, "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentText, payload.Kind)
	assert.Equal(t, domain.SourceExtracted, payload.Source)

	doc, ok := mgr.Get("doc.pdf")
	require.True(t, ok)
	assert.True(t, doc.HasExtractedText, "first view must flip the extraction flag")

	again, err := res.Resolve(ctx, "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentText, again.Kind)
	assert.Equal(t, domain.SourceCached, again.Source, "second view must hit the stored copy")
	assert.Equal(t, payload.Data, again.Data)
}

func TestResolve_ExtractionFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	gw, mgr, res := newResolverFixture(t, driven.FileEntry{
		ID: "scan.pdf", Name: "scan.pdf", Type: "application/pdf", BlobURL: "memory://scan.pdf",
	})
	gw.FailExtract["scan.pdf"] = true

	payload, err := res.Resolve(ctx, "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentPDF, payload.Kind)
	assert.Equal(t, "memory://scan.pdf", payload.Data)

	doc, ok := mgr.Get("scan.pdf")
	require.True(t, ok)
	assert.False(t, doc.HasExtractedText)
}

func TestResolve_NonTextKinds(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		entry    driven.FileEntry
		wantKind domain.ContentKind
		wantData string
	}{
		{
			name:     "image",
			entry:    driven.FileEntry{ID: "pic.png", Name: "pic.png", Type: "image/png", BlobURL: "memory://pic.png"},
			wantKind: domain.ContentImage,
			wantData: "memory://pic.png",
		},
		{
			name:     "spreadsheet",
			entry:    driven.FileEntry{ID: "q3.xlsx", Name: "q3.xlsx", Type: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", BlobURL: "memory://q3.xlsx"},
			wantKind: domain.ContentSpreadsheet,
			wantData: domain.SpreadsheetPlaceholder,
		},
		{
			name:     "unknown",
			entry:    driven.FileEntry{ID: "blob.bin", Name: "blob.bin", Type: "application/octet-stream", BlobURL: "memory://blob.bin"},
			wantKind: domain.ContentUnknown,
			wantData: domain.UnknownPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, res := newResolverFixture(t, tt.entry)
			payload, err := res.Resolve(ctx, tt.entry.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, payload.Kind)
			assert.Equal(t, tt.wantData, payload.Data)
		})
	}
}

func TestResolve_WordExtraction(t *testing.T) {
	ctx := context.Background()
	_, _, res := newResolverFixture(t, driven.FileEntry{
		ID:   "memo.docx",
		Name: "memo.docx",
		Type: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	})

	payload, err := res.Resolve(ctx, "memo.docx")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentText, payload.Kind)
	assert.Equal(t, "memo.docx body", payload.Data)
}

func TestResolve_WordExtractionFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	gw, _, res := newResolverFixture(t, driven.FileEntry{
		ID:   "memo.docx",
		Name: "memo.docx",
		Type: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	})
	gw.FailExtract["memo.docx"] = true

	payload, err := res.Resolve(ctx, "memo.docx")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentWord, payload.Kind)
	assert.Equal(t, domain.WordPlaceholder, payload.Data)
}

func TestResolve_UnknownDocument(t *testing.T) {
	ctx := context.Background()
	_, _, res := newResolverFixture(t)

	_, err := res.Resolve(ctx, "ghost.txt")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveEdited_RoundTrip(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	_, err := gw.Upload(ctx, "draft.txt", "text/plain", stringReader("hello"), "")
	require.NoError(t, err)

	mgr := NewDocumentManager(gw, alwaysConfirm(), "")
	require.NoError(t, mgr.Load(ctx))
	res := NewContentResolver(mgr, gw, gw, "")

	payload, err := res.Resolve(ctx, "draft.txt")
	require.NoError(t, err)
	require.Equal(t, "hello", payload.Data)

	require.NoError(t, res.SaveEdited(ctx, "draft.txt", "hello world"))

	doc, ok := mgr.Get("draft.txt")
	require.True(t, ok)
	require.NotNil(t, doc.Content)
	assert.Equal(t, "hello world", doc.Content.Data)
	assert.Equal(t, domain.SourceEdited, doc.Content.Source)

	// A fresh view must observe the saved draft.
	again, err := res.Resolve(ctx, "draft.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", again.Data)
}

func TestSaveEdited_RejectsNonText(t *testing.T) {
	ctx := context.Background()
	_, _, res := newResolverFixture(t, driven.FileEntry{
		ID: "pic.png", Name: "pic.png", Type: "image/png", BlobURL: "memory://pic.png",
	})

	_, err := res.Resolve(ctx, "pic.png")
	require.NoError(t, err)

	err = res.SaveEdited(ctx, "pic.png", "not text")
	require.ErrorIs(t, err, domain.ErrNotText)
}

func TestSaveEdited_UnknownDocument(t *testing.T) {
	ctx := context.Background()
	_, _, res := newResolverFixture(t)

	err := res.SaveEdited(ctx, "ghost.txt", "text")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
