package documents

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdeck-io/docdeck-cli/internal/adapters/driven/gateway/memory"
	"github.com/docdeck-io/docdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/docdeck-io/docdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck-io/docdeck-cli/internal/core/services"
)

// newTestView builds a view over an in-memory gateway. Deletes are
// auto-confirmed at the service level because the view renders its own
// confirmation overlay.
func newTestView(entries ...driven.FileEntry) (*View, *memory.Gateway) {
	gw := memory.NewGateway()
	for _, e := range entries {
		gw.Seed(e, []byte(e.Name+" body"))
	}
	confirmer := driven.ConfirmerFunc(func(string) bool { return true })
	mgr := services.NewDocumentManager(gw, confirmer, "")
	view := NewView(styles.DefaultStyles(), mgr)
	view.SetDimensions(80, 24)
	return view, gw
}

// loadView runs the init command and applies the result.
func loadView(t *testing.T, view *View) {
	t.Helper()
	cmd := view.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(messages.DocumentsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	view.Update(msg)
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView(t *testing.T) {
	view, _ := newTestView()

	require.NotNil(t, view)
	assert.Empty(t, view.Documents())
	assert.False(t, view.IsConfirming())
}

func TestInit_LoadsDocuments(t *testing.T) {
	view, _ := newTestView(
		driven.FileEntry{ID: "a.txt", Name: "a.txt", Type: "text/plain"},
		driven.FileEntry{ID: "b.pdf", Name: "b.pdf", Type: "application/pdf"},
	)

	loadView(t, view)

	assert.Len(t, view.Documents(), 2)
	assert.False(t, view.loading)
	require.NotNil(t, view.SelectedDocument())
	assert.Equal(t, "a.txt", view.SelectedDocument().Identity())
}

func TestInit_LoadFailure(t *testing.T) {
	view, gw := newTestView()
	gw.ListErr = errors.New("backend down")

	cmd := view.Init()
	msg := cmd()
	loaded, ok := msg.(messages.DocumentsLoaded)
	require.True(t, ok)
	require.Error(t, loaded.Err)

	view.Update(msg)
	assert.Error(t, view.Err())
	assert.Contains(t, view.View(), "Error:")
}

func TestNavigation(t *testing.T) {
	view, _ := newTestView(
		driven.FileEntry{ID: "a.txt", Name: "a.txt", Type: "text/plain"},
		driven.FileEntry{ID: "b.txt", Name: "b.txt", Type: "text/plain"},
		driven.FileEntry{ID: "c.txt", Name: "c.txt", Type: "text/plain"},
	)
	loadView(t, view)

	view.Update(keyRunes('j'))
	view.Update(keyRunes('j'))
	assert.Equal(t, "c.txt", view.SelectedDocument().Identity())

	// Does not run off the end.
	view.Update(keyRunes('j'))
	assert.Equal(t, "c.txt", view.SelectedDocument().Identity())

	view.Update(keyRunes('k'))
	assert.Equal(t, "b.txt", view.SelectedDocument().Identity())
}

func TestEnter_EmitsDocumentSelected(t *testing.T) {
	view, _ := newTestView(
		driven.FileEntry{ID: "a.txt", Name: "a.txt", Type: "text/plain"},
	)
	loadView(t, view)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	selected, ok := cmd().(messages.DocumentSelected)
	require.True(t, ok)
	assert.Equal(t, "a.txt", selected.ID)
}

func TestDeleteFlow_Confirmed(t *testing.T) {
	view, gw := newTestView(
		driven.FileEntry{ID: "a.txt", Name: "a.txt", Type: "text/plain"},
		driven.FileEntry{ID: "b.txt", Name: "b.txt", Type: "text/plain"},
	)
	loadView(t, view)

	view.Update(keyRunes('d'))
	assert.True(t, view.IsConfirming())
	assert.Contains(t, view.View(), `Delete "a.txt"?`)

	_, cmd := view.Update(keyRunes('y'))
	assert.False(t, view.IsConfirming())
	require.NotNil(t, cmd)

	msg := cmd()
	deleted, ok := msg.(messages.DocumentDeleted)
	require.True(t, ok)
	require.NoError(t, deleted.Err)
	assert.Equal(t, "a.txt", deleted.ID)

	view.Update(msg)
	assert.Len(t, view.Documents(), 1)
	assert.Equal(t, 1, gw.DeleteCalls())
	assert.Equal(t, "b.txt", view.SelectedDocument().Identity())
}

func TestDeleteFlow_Cancelled(t *testing.T) {
	view, gw := newTestView(
		driven.FileEntry{ID: "a.txt", Name: "a.txt", Type: "text/plain"},
	)
	loadView(t, view)

	view.Update(keyRunes('d'))
	require.True(t, view.IsConfirming())

	_, cmd := view.Update(keyRunes('n'))
	assert.False(t, view.IsConfirming())
	assert.Nil(t, cmd)
	assert.Len(t, view.Documents(), 1)
	assert.Equal(t, 0, gw.DeleteCalls())
}

func TestDeleteKey_IgnoredWhenEmpty(t *testing.T) {
	view, _ := newTestView()
	loadView(t, view)

	view.Update(keyRunes('d'))
	assert.False(t, view.IsConfirming())
}

func TestQuitKey(t *testing.T) {
	view, _ := newTestView()
	loadView(t, view)

	_, cmd := view.Update(keyRunes('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.Quit)
	assert.True(t, ok)
}

func TestView_Empty(t *testing.T) {
	view, _ := newTestView()
	loadView(t, view)

	assert.Contains(t, view.View(), "No documents stored.")
}

func TestView_MarksExtractedText(t *testing.T) {
	view, _ := newTestView(
		driven.FileEntry{ID: "a.pdf", Name: "a.pdf", Type: "application/pdf"},
	)
	loadView(t, view)

	view.documents[0].HasExtractedText = true
	assert.Contains(t, view.View(), "[text]")
}
