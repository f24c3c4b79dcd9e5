// Package viewer provides the document content view component for the
// TUI, including the text edit mode.
package viewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docdeck-io/docdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/docdeck-io/docdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driving"
)

// View is the document content view.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentManager
	contentService  driving.ContentResolver

	docID        string
	payload      *domain.ContentPayload
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	saving       bool
	editing      bool
	editor       textarea.Model
	err          error
}

// NewView creates a new content view.
func NewView(s *styles.Styles, documentService driving.DocumentManager, contentService driving.ContentResolver) *View {
	editor := textarea.New()
	editor.CharLimit = 0

	return &View{
		styles:          s,
		documentService: documentService,
		contentService:  contentService,
		editor:          editor,
	}
}

// SetDocument sets the document and starts content resolution.
func (v *View) SetDocument(id string) tea.Cmd {
	v.docID = id
	v.payload = nil
	v.lines = nil
	v.scrollOffset = 0
	v.editing = false
	v.err = nil
	v.loading = true
	return v.resolveContent()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// resolveContent returns a command that resolves the document content.
func (v *View) resolveContent() tea.Cmd {
	id := v.docID
	return func() tea.Msg {
		if v.contentService == nil {
			return messages.ContentResolved{ID: id, Err: fmt.Errorf("content service not available")}
		}
		payload, err := v.contentService.Resolve(context.Background(), id)
		return messages.ContentResolved{ID: id, Payload: payload, Err: err}
	}
}

// saveEdit returns a command that stores the editor draft.
func (v *View) saveEdit(text string) tea.Cmd {
	id := v.docID
	return func() tea.Msg {
		if v.contentService == nil {
			return messages.EditSaved{ID: id, Err: fmt.Errorf("content service not available")}
		}
		err := v.contentService.SaveEdited(context.Background(), id, text)
		return messages.EditSaved{ID: id, Err: err}
	}
}

// Update handles messages for the content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.sizeEditor()
		v.wrapContent()
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.ContentResolved:
		if msg.ID != v.docID {
			// Late completion for a document no longer shown.
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.payload = msg.Payload
			v.err = nil
			v.wrapContent()
		}
		return v, nil

	case messages.EditSaved:
		v.saving = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.editing = false
		v.err = nil
		v.loading = true
		return v, v.resolveContent()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in read mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown":
		v.scrollOffset += v.visibleLines()
		if v.scrollOffset > v.maxScrollOffset() {
			v.scrollOffset = v.maxScrollOffset()
		}
	case "g":
		v.scrollOffset = 0
	case "G":
		v.scrollOffset = v.maxScrollOffset()
	case "e":
		if v.payload != nil && v.payload.Kind == domain.ContentText {
			v.editing = true
			v.editor.SetValue(v.payload.Data)
			v.sizeEditor()
			return v, v.editor.Focus()
		}
	case "r":
		v.loading = true
		return v, v.resolveContent()
	case "esc", "q":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}

	return v, nil
}

// handleEditKeyMsg handles key presses in edit mode.
func (v *View) handleEditKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		v.saving = true
		v.editor.Blur()
		return v, v.saveEdit(v.editor.Value())
	case "esc":
		// Discard the draft.
		v.editing = false
		v.editor.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

// sizeEditor fits the textarea to the current dimensions.
func (v *View) sizeEditor() {
	w := v.width - 6
	if w < 20 {
		w = 20
	}
	h := v.height - 8
	if h < 3 {
		h = 3
	}
	v.editor.SetWidth(w)
	v.editor.SetHeight(h)
}

// wrapContent wraps text content to the view width.
func (v *View) wrapContent() {
	if v.payload == nil || v.payload.Kind != domain.ContentText {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(v.payload.Data, "\n")
	v.lines = make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		for len(line) > contentWidth {
			v.lines = append(v.lines, line[:contentWidth])
			line = line[contentWidth:]
		}
		v.lines = append(v.lines, line)
	}
}

// visibleLines returns the number of content lines that fit on screen.
func (v *View) visibleLines() int {
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the content view.
func (v *View) View() string {
	var b strings.Builder

	title := v.docID
	if title == "" {
		title = "Document"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 10), 60)))
	b.WriteString("\n\n")

	if v.editing {
		b.WriteString(v.styles.Editor.Render(v.editor.View()))
		b.WriteString("\n\n")
		if v.saving {
			b.WriteString(v.styles.Muted.Render("Saving..."))
			b.WriteString("\n")
		}
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
			b.WriteString("\n")
		}
		b.WriteString(v.styles.Help.Render("[ctrl+s] save  [esc] discard"))
		return b.String()
	}

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading content..."))
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

	if v.payload == nil {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.renderPayload())
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderPayload renders the resolved content by kind.
func (v *View) renderPayload() string {
	var b strings.Builder

	switch v.payload.Kind {
	case domain.ContentText:
		if v.payload.Source != "" {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("[source: %s]", v.payload.Source)))
			b.WriteString("\n\n")
		}
		visible := v.visibleLines()
		for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
			b.WriteString(v.styles.Normal.Render(v.lines[i]))
			b.WriteString("\n")
		}
		if len(v.lines) > visible {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [line %d-%d of %d]",
				v.scrollOffset+1,
				min(v.scrollOffset+visible, len(v.lines)),
				len(v.lines))))
		}

	case domain.ContentPDF:
		b.WriteString(v.styles.Normal.Render("PDF document, no extracted text available."))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Download: " + v.payload.Data))

	case domain.ContentImage:
		b.WriteString(v.styles.Normal.Render("Image document."))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Download: " + v.payload.Data))

	case domain.ContentError:
		b.WriteString(v.styles.Error.Render(v.payload.Data))

	default:
		b.WriteString(v.styles.Muted.Render(v.payload.Data))
	}

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	help := "[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [r] refresh  [esc] back"
	if v.payload != nil && v.payload.Kind == domain.ContentText {
		help = "[e] edit  " + help
	}
	return v.styles.Help.Render(help)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.sizeEditor()
	v.wrapContent()
}

// DocumentID returns the currently shown document id.
func (v *View) DocumentID() string {
	return v.docID
}

// Payload returns the resolved content.
func (v *View) Payload() *domain.ContentPayload {
	return v.payload
}

// IsEditing returns true if edit mode is active.
func (v *View) IsEditing() bool {
	return v.editing
}

// EditorValue returns the current editor draft.
func (v *View) EditorValue() string {
	return v.editor.Value()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
