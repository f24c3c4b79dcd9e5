package cli

import (
	"bytes"
	"context"

	"github.com/docdeck-io/docdeck-cli/internal/adapters/driven/gateway/memory"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck-io/docdeck-cli/internal/core/services"
)

// setupTestServices wires the commands to an in-memory gateway and
// returns it together with a cleanup function.
func setupTestServices(seed ...driven.FileEntry) (*memory.Gateway, func()) {
	gw := memory.NewGateway()
	for _, e := range seed {
		gw.Seed(e, []byte(e.Name+" body"))
	}

	confirmer := driven.ConfirmerFunc(func(string) bool { return true })
	mgr := services.NewDocumentManager(gw, confirmer, "")
	resolver := services.NewContentResolver(mgr, gw, gw, "")

	oldDoc, oldContent := documentService, contentService
	oldGateway, oldFetcher := gatewayClient, blobFetcher
	SetServices(mgr, resolver, gw, gw)

	return gw, func() {
		documentService = oldDoc
		contentService = oldContent
		gatewayClient = oldGateway
		blobFetcher = oldFetcher
		rootCmd.SetArgs(nil)
	}
}

// execute runs the root command with args and captures output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	rootCmd.SetContext(context.Background())
	err := rootCmd.Execute()
	return buf.String(), err
}
