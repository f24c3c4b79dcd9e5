package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var editFromFile string

var editCmd = &cobra.Command{
	Use:   "edit [doc-id]",
	Short: "Replace a document's text content",
	Long: `Replace the text content of a document with an edited draft.

The document must currently resolve to text content (a plain text file
or an extracted PDF/Word document). The draft is read from --file, or
from stdin when no file is given.

Examples:
  docdeck edit notes.txt --file draft.txt
  cat draft.txt | docdeck edit notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editFromFile, "file", "f", "", "Read the edited text from a file instead of stdin")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if documentService == nil || contentService == nil {
		return errors.New("document service not configured")
	}

	id := args[0]

	var text string
	if editFromFile != "" {
		data, err := os.ReadFile(editFromFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", editFromFile, err)
		}
		text = string(data)
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	if err := documentService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	// Resolve first so the current content kind is known.
	if _, err := contentService.Resolve(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to resolve content: %w", err)
	}

	if err := contentService.SaveEdited(cmd.Context(), id, text); err != nil {
		return fmt.Errorf("failed to save edited text: %w", err)
	}

	cmd.Printf("Saved edited text for %s.\n", id)
	return nil
}
