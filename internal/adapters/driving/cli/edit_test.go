package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
)

func TestEditCmd_SavesDraftFromFile(t *testing.T) {
	gw, cleanup := setupTestServices(
		driven.FileEntry{ID: "notes.txt", Name: "notes.txt", Type: "text/plain", BlobURL: "memory://notes.txt"},
	)
	defer cleanup()

	draft := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(draft, []byte("hello world"), 0644))

	out, err := execute("edit", "notes.txt", "--file", draft)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved edited text for notes.txt.")

	text, err := gw.FetchText(t.Context(), "memory://notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestEditCmd_RejectsNonText(t *testing.T) {
	_, cleanup := setupTestServices(
		driven.FileEntry{ID: "pic.png", Name: "pic.png", Type: "image/png", BlobURL: "memory://pic.png"},
	)
	defer cleanup()

	draft := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(draft, []byte("nope"), 0644))

	_, err := execute("edit", "pic.png", "--file", draft)
	require.Error(t, err)
}
