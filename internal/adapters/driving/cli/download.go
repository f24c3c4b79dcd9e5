package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download [doc-id]",
	Short: "Download a document",
	Long: `Download a document's raw bytes via its download reference.

Writes to the document id as filename unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output file path")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if gatewayClient == nil || blobFetcher == nil {
		return errors.New("document service not configured")
	}

	id := args[0]
	url, err := gatewayClient.DownloadURL(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get download URL: %w", err)
	}
	if url == "" {
		return fmt.Errorf("no download URL available for %s", id)
	}

	body, err := blobFetcher.FetchText(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}

	out := downloadOutput
	if out == "" {
		out = id
	}
	if err := os.WriteFile(out, []byte(body), 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	cmd.Printf("Downloaded %s to %s (%d bytes).\n", id, out, len(body))
	return nil
}
