// Package cli implements the command line interface for DocDeck.
package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docdeck-io/docdeck-cli/internal/adapters/driven/config/file"
	"github.com/docdeck-io/docdeck-cli/internal/adapters/driven/gateway/httpapi"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driving"
	"github.com/docdeck-io/docdeck-cli/internal/core/services"
	"github.com/docdeck-io/docdeck-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// DefaultBaseURL is used when neither the flag nor the config file
// provides an API root.
const DefaultBaseURL = "http://localhost:5000/api"

// Injected services. Set by initServices on first run, or directly by
// tests and alternate entry points.
var (
	documentService driving.DocumentManager
	contentService  driving.ContentResolver
	gatewayClient   driven.Gateway
	blobFetcher     driven.BlobFetcher
	configStore     driven.ConfigStore
)

// resolvedFolder is the folder scope after flag/config resolution.
var resolvedFolder string

// Persistent flags.
var (
	flagVerbose bool
	flagBaseURL string
	flagFolder  string
	flagYes     bool
)

var rootCmd = &cobra.Command{
	Use:   "docdeck",
	Short: "Manage documents in remote storage",
	Long: `DocDeck is a client for document storage backends.

Upload, list, view, edit, and delete documents stored in blob storage
or SharePoint, with server-side text extraction for PDF and Word files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetServices injects pre-built services, bypassing config-driven
// construction. Used by tests.
func SetServices(mgr driving.DocumentManager, res driving.ContentResolver, gw driven.Gateway, fetcher driven.BlobFetcher) {
	documentService = mgr
	contentService = res
	gatewayClient = gw
	blobFetcher = fetcher
}

// initServices builds the service graph from config and flags. Already
// injected services are left alone.
func initServices(cmd *cobra.Command) error {
	if documentService != nil && contentService != nil {
		return nil
	}

	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = store

	baseURL := flagBaseURL
	if baseURL == "" {
		baseURL = store.GetString(driven.KeyBaseURL)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	folder := flagFolder
	if folder == "" {
		folder = store.GetString(driven.KeyFolder)
	}
	resolvedFolder = folder

	var opts []httpapi.Option
	if token := store.GetString(driven.KeyToken); token != "" {
		opts = append(opts, httpapi.WithToken(cmd.Context(), token))
	}
	client := httpapi.NewClient(baseURL, opts...)
	gatewayClient = client
	blobFetcher = client

	var confirmer driven.Confirmer
	if flagYes {
		confirmer = driven.ConfirmerFunc(func(string) bool { return true })
	} else {
		confirmer = stdinConfirmer(cmd)
	}

	mgr := services.NewDocumentManager(client, confirmer, folder)
	documentService = mgr
	contentService = services.NewContentResolver(mgr, client, client, folder)

	logger.Debug("services initialized (base URL %s)", baseURL)
	return nil
}

// stdinConfirmer prompts on the command's output and reads the answer
// from stdin. Anything other than y/yes declines.
func stdinConfirmer(cmd *cobra.Command) driven.Confirmer {
	return driven.ConfirmerFunc(func(prompt string) bool {
		cmd.Printf("%s [y/N]: ", prompt)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Document API root (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagFolder, "folder", "", "Folder scope for SharePoint backends (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Answer yes to confirmation prompts")
}
