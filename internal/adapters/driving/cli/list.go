package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	docs := documentService.Documents()
	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for i := range docs {
		doc := &docs[i]
		cmd.Printf("  %s\n", doc.Identity())
		if doc.OriginalName != doc.Identity() {
			cmd.Printf("    Original: %s\n", doc.OriginalName)
		}
		cmd.Printf("    Type:     %s\n", doc.Type)
		cmd.Printf("    Size:     %s\n", formatSize(doc.Size))
		cmd.Printf("    Uploaded: %s\n", domain.FormatTimestamp(doc.UploadedAt))
		if doc.Folder != "" {
			cmd.Printf("    Folder:   %s\n", doc.Folder)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d document(s)\n", len(docs))
	return nil
}

// formatSize renders a byte count in a human readable unit.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
