package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a stored document",
	Long: `Delete a document from the storage backend.

Asks for confirmation unless --yes is given. A declined confirmation
leaves the document untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	id := args[0]
	if err := documentService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	if _, ok := documentService.Get(id); !ok {
		return fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}

	err := documentService.Delete(cmd.Context(), id)
	if errors.Is(err, domain.ErrDeclined) {
		cmd.Println("Delete cancelled.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted successfully.\n", id)
	return nil
}
