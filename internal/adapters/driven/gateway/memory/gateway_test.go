package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
)

func TestUpload_RenamesOnConflict(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway()

	first, err := gw.Upload(ctx, "report.pdf", "application/pdf", strings.NewReader("one"), "")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", first.Filename)

	second, err := gw.Upload(ctx, "report.pdf", "application/pdf", strings.NewReader("two"), "")
	require.NoError(t, err)
	assert.NotEqual(t, first.Filename, second.Filename)
	assert.True(t, strings.HasPrefix(second.Filename, "report-"))
	assert.True(t, strings.HasSuffix(second.Filename, ".pdf"))
	assert.Equal(t, "report.pdf", second.OriginalName)

	entries, err := gw.ListFiles(ctx, "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestExtractText_CachedOnSecondCall(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway()
	_, err := gw.Upload(ctx, "doc.pdf", "application/pdf", strings.NewReader("extracted text"), "")
	require.NoError(t, err)

	first, err := gw.ExtractText(ctx, "doc.pdf", "")
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, "extracted text", first.Text)
	assert.Equal(t, string(domain.SourceExtracted), first.Source)

	second, err := gw.ExtractText(ctx, "doc.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, string(domain.SourceCached), second.Source)
	assert.Equal(t, first.Text, second.Text)
}

func TestSaveEditedText_UpdatesFetch(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway()
	_, err := gw.Upload(ctx, "notes.txt", "text/plain", strings.NewReader("before"), "")
	require.NoError(t, err)

	require.NoError(t, gw.SaveEditedText(ctx, "notes.txt", "after", ""))

	text, err := gw.FetchText(ctx, "memory://notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "after", text)
}

func TestDelete_UnknownFile(t *testing.T) {
	gw := NewGateway()
	err := gw.Delete(context.Background(), "ghost.txt", "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFiles_FolderScoped(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway()
	gw.Seed(driven.FileEntry{ID: "a.txt", Name: "a.txt", Folder: "reports"}, nil)
	gw.Seed(driven.FileEntry{ID: "b.txt", Name: "b.txt", Folder: "invoices"}, nil)

	entries, err := gw.ListFiles(ctx, "reports")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name)

	all, err := gw.ListFiles(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLogin_Logout(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway()

	res, err := gw.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "alice", res.User)

	bad, err := gw.Login(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, bad.Success)

	require.NoError(t, gw.Logout(ctx))
}
