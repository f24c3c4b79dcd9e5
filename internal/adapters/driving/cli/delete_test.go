package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
)

func TestDeleteCmd_DeletesDocument(t *testing.T) {
	gw, cleanup := setupTestServices(
		driven.FileEntry{ID: "a.txt", Name: "a.txt", Type: "text/plain"},
	)
	defer cleanup()

	out, err := execute("delete", "a.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Document a.txt deleted successfully.")
	assert.Equal(t, 1, gw.DeleteCalls())
}

func TestDeleteCmd_UnknownDocument(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("delete", "ghost.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
