package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
	"github.com/docdeck-io/docdeck-cli/internal/logger"
)

// settleDelay is how long a new file must be quiet before it is
// considered fully written and gets uploaded.
const settleDelay = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and upload new files",
	Long: `Watch a local directory and upload every file dropped into it.

Files are uploaded once writes settle. Hidden files are skipped.
Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for new files. Press Ctrl-C to stop.\n", dir)

	// Pending files keyed by path, holding the last write time.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(event.Name)
			if strings.HasPrefix(name, ".") {
				continue
			}
			if fi, err := os.Stat(event.Name); err != nil || fi.IsDir() {
				continue
			}
			pending[event.Name] = time.Now()
			logger.Debug("queued %s", event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < settleDelay {
					continue
				}
				delete(pending, path)
				uploadWatched(ctx, cmd, path)
			}
		}
	}
}

// uploadWatched uploads a single settled file, reporting but not
// propagating failures so the watch loop keeps running.
func uploadWatched(ctx context.Context, cmd *cobra.Command, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		cmd.PrintErrf("skip %s: %v\n", path, err)
		return
	}

	uploaded, err := documentService.Upload(ctx, []domain.FileUpload{{
		Name:        filepath.Base(path),
		ContentType: detectContentType(path),
		Data:        data,
	}})
	if err != nil {
		cmd.PrintErrf("upload %s failed: %v\n", path, err)
		return
	}
	for i := range uploaded {
		cmd.Printf("Uploaded %s\n", uploaded[i].ID)
	}
}
