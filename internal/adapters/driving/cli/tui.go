package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/docdeck-io/docdeck-cli/internal/adapters/driving/tui"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck-io/docdeck-cli/internal/core/services"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for DocDeck.

Browse stored documents, view their content, edit text, and delete
with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate documents
  Enter    - View document
  d        - Delete (with confirmation)
  e        - Edit text content
  Esc      - Back / Cancel
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery to get stack traces out of the alt screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if gatewayClient == nil {
		return errors.New("document service not configured")
	}

	// The TUI renders its own confirmation overlay, so the manager gets
	// a pass-through confirmer instead of the stdin prompt.
	confirmer := driven.ConfirmerFunc(func(string) bool { return true })
	mgr := services.NewDocumentManager(gatewayClient, confirmer, resolvedFolder)
	resolver := services.NewContentResolver(mgr, gatewayClient, blobFetcher, resolvedFolder)

	app, err := tui.NewApp(tui.NewPorts(mgr, resolver))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
