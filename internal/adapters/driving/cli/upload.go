package cli

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]...",
	Short: "Upload documents to storage",
	Long: `Upload one or more local files to the storage backend.

PDF, Word, and plain text files get server-side text extraction
immediately after the upload, so a later view returns cached text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	uploads := make([]domain.FileUpload, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		uploads = append(uploads, domain.FileUpload{
			Name:        filepath.Base(path),
			ContentType: detectContentType(path),
			Data:        data,
		})
	}

	uploaded, err := documentService.Upload(cmd.Context(), uploads)
	for i := range uploaded {
		doc := &uploaded[i]
		if doc.ID != doc.OriginalName {
			cmd.Printf("Uploaded %s (stored as %s)\n", doc.OriginalName, doc.ID)
		} else {
			cmd.Printf("Uploaded %s\n", doc.ID)
		}
		if doc.HasExtractedText {
			cmd.Printf("  Text extracted.\n")
		}
	}
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("%d document(s) uploaded successfully\n", len(uploaded))
	return nil
}

// detectContentType maps a file extension to a MIME type, falling back
// to the generic binary type.
func detectContentType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return domain.DefaultContentType
}
