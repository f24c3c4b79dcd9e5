package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
)

var viewCmd = &cobra.Command{
	Use:   "view [doc-id]",
	Short: "View document content",
	Long: `Print the viewable content of a document.

Plain text files print their content. PDF and Word documents print the
server-extracted text when available, otherwise a reference or
placeholder. Images and spreadsheets print a reference or placeholder.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if documentService == nil || contentService == nil {
		return errors.New("document service not configured")
	}

	id := args[0]
	if err := documentService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	payload, err := contentService.Resolve(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to resolve content: %w", err)
	}

	switch payload.Kind {
	case domain.ContentText:
		if payload.Source != "" {
			cmd.Printf("[text, source: %s]\n\n", payload.Source)
		}
		cmd.Println(payload.Data)
	case domain.ContentPDF:
		cmd.Printf("PDF document, no extracted text available.\nDownload: %s\n", payload.Data)
	case domain.ContentImage:
		cmd.Printf("Image document.\nDownload: %s\n", payload.Data)
	case domain.ContentError:
		return fmt.Errorf("could not load content: %s", payload.Data)
	default:
		cmd.Println(payload.Data)
	}
	return nil
}
