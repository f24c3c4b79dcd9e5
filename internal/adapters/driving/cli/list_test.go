package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
)

func TestListCmd_Use(t *testing.T) {
	assert.Equal(t, "list", listCmd.Use)
}

func TestListCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("list")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")
}

func TestListCmd_PrintsDocuments(t *testing.T) {
	_, cleanup := setupTestServices(
		driven.FileEntry{ID: "a.txt", Name: "a.txt", Type: "text/plain", Size: 3},
		driven.FileEntry{ID: "b.pdf", Name: "b.pdf", Type: "application/pdf", Size: 2048},
	)
	defer cleanup()

	out, err := execute("list")
	require.NoError(t, err)
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "b.pdf")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "Total: 2 document(s)")
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.size))
	}
}
