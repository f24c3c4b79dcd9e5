// Package documents provides the document list view component for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docdeck-io/docdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/docdeck-io/docdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driving"
)

// View is the document list view.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentManager

	documents    []domain.DocumentSummary
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	confirming   bool
	err          error
}

// NewView creates a new document list view.
func NewView(s *styles.Styles, documentService driving.DocumentManager) *View {
	return &View{
		styles:          s,
		documentService: documentService,
		documents:       []domain.DocumentSummary{},
	}
}

// Init initialises the view and triggers the first load.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadDocuments()
}

// loadDocuments returns a command that refreshes the collection.
func (v *View) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.DocumentsLoaded{Err: fmt.Errorf("document service not available")}
		}
		err := v.documentService.Load(context.Background())
		return messages.DocumentsLoaded{Err: err}
	}
}

// deleteDocument returns a command that deletes a document. The view's
// own overlay is the confirmation gate.
func (v *View) deleteDocument(id string) tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.DocumentDeleted{ID: id, Err: fmt.Errorf("document service not available")}
		}
		err := v.documentService.Delete(context.Background(), id)
		return messages.DocumentDeleted{ID: id, Err: err}
	}
}

// Update handles messages for the document list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		if v.confirming {
			return v.handleConfirmKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		v.err = msg.Err
		v.documents = v.documentService.Documents()
		if v.selected >= len(v.documents) {
			v.selected = 0
			v.scrollOffset = 0
		}
		return v, nil

	case messages.DocumentDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.documents = v.documentService.Documents()
		if v.selected >= len(v.documents) {
			v.selected = max(len(v.documents)-1, 0)
		}
		v.adjustScroll()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if doc := v.SelectedDocument(); doc != nil {
			id := doc.Identity()
			return v, func() tea.Msg {
				return messages.DocumentSelected{ID: id}
			}
		}
	case "d":
		if len(v.documents) > 0 {
			v.confirming = true
		}
	case "r":
		v.loading = true
		return v, v.loadDocuments()
	case "q", "esc":
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}

	return v, nil
}

// handleConfirmKeyMsg handles key presses in the delete confirm overlay.
func (v *View) handleConfirmKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirming = false
		if doc := v.SelectedDocument(); doc != nil {
			return v, v.deleteDocument(doc.Identity())
		}
	case "n", "N", "esc":
		v.confirming = false
	}
	return v, nil
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount returns the number of rows that fit on screen.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, messages, help, and padding.
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the document list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.documents))))
	b.WriteString("\n\n")

	if v.documentService != nil {
		if success := v.documentService.SuccessMessage(); success != "" {
			b.WriteString(v.styles.Success.Render(success))
			b.WriteString("\n")
		}
		if errMsg := v.documentService.ErrorMessage(); errMsg != "" {
			b.WriteString(v.styles.Error.Render(errMsg))
			b.WriteString("\n")
		}
	}

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.documents) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents stored."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.confirming {
		b.WriteString(v.renderConfirm())
		return b.String()
	}

	visible := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderDocument(i, &v.documents[i]))
		b.WriteString("\n")
	}

	if len(v.documents) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.documents)),
			len(v.documents))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderDocument renders a single list row.
func (v *View) renderDocument(index int, doc *domain.DocumentSummary) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := doc.Identity()
	maxNameLen := v.width/2 - 4
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	meta := doc.Type
	if doc.HasExtractedText {
		meta += "  [text]"
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, meta))
	}

	return v.styles.Normal.Render(indicator) +
		v.styles.Normal.Render(fmt.Sprintf("%-*s  ", maxNameLen, name)) +
		v.styles.Muted.Render(meta)
}

// renderConfirm renders the delete confirmation overlay.
func (v *View) renderConfirm() string {
	var b strings.Builder

	name := ""
	if doc := v.SelectedDocument(); doc != nil {
		name = doc.Identity()
	}
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Delete %q?", name)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Error.Render("This cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[y] delete  [n/esc] cancel"))

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] view  [d] delete  [r] reload  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the rows currently displayed.
func (v *View) Documents() []domain.DocumentSummary {
	return v.documents
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.DocumentSummary {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// IsConfirming returns true if the delete overlay is visible.
func (v *View) IsConfirming() bool {
	return v.confirming
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
