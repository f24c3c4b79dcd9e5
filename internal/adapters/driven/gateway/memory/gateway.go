// Package memory provides an in-memory implementation of the storage
// gateway. It backs unit tests and the offline demo mode.
package memory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
)

// Ensure Gateway implements the interfaces.
var (
	_ driven.Gateway     = (*Gateway)(nil)
	_ driven.BlobFetcher = (*Gateway)(nil)
)

type storedFile struct {
	entry driven.FileEntry
	data  []byte
	text  string
}

// Gateway is an in-memory implementation of driven.Gateway. Blob
// references use the memory:// scheme and resolve through FetchText.
type Gateway struct {
	mu    sync.RWMutex
	files map[string]*storedFile

	loggedIn bool
	user     string

	// Failure injection for tests. A name present in FailExtract makes
	// ExtractText fail for that file; non-nil errors fail the whole call.
	FailExtract map[string]bool
	ListErr     error
	UploadErr   error
	DeleteErr   error
	SaveErr     error

	listCalls   int
	deleteCalls int
}

// NewGateway creates an empty in-memory gateway.
func NewGateway() *Gateway {
	return &Gateway{
		files:       make(map[string]*storedFile),
		FailExtract: make(map[string]bool),
	}
}

// ListFiles returns all stored entries sorted by name, scoped to
// folder when set.
func (g *Gateway) ListFiles(_ context.Context, folder string) ([]driven.FileEntry, error) {
	g.mu.Lock()
	g.listCalls++
	g.mu.Unlock()
	if g.ListErr != nil {
		return nil, g.ListErr
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []driven.FileEntry
	for _, f := range g.files {
		if folder != "" && f.entry.Folder != folder {
			continue
		}
		out = append(out, f.entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Upload stores a file. Name conflicts are resolved by appending a
// short unique suffix before the extension, mirroring how blob storage
// backends avoid overwrites.
func (g *Gateway) Upload(_ context.Context, name, contentType string, data io.Reader, folder string) (*driven.UploadResult, error) {
	if g.UploadErr != nil {
		return nil, g.UploadErr
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("read upload body: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	stored := name
	if _, exists := g.files[stored]; exists {
		stored = uniqueName(name)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	g.files[stored] = &storedFile{
		entry: driven.FileEntry{
			ID:           stored,
			Name:         stored,
			OriginalName: name,
			Size:         int64(len(buf)),
			Type:         contentType,
			Folder:       folder,
			BlobURL:      "memory://" + stored,
			UploadedAt:   now,
			LastModified: now,
		},
		data: buf,
	}
	return &driven.UploadResult{
		Filename:     stored,
		OriginalName: name,
		Size:         int64(len(buf)),
		Folder:       folder,
	}, nil
}

// uniqueName inserts a short unique suffix before the extension.
func uniqueName(name string) string {
	suffix := uuid.NewString()[:8]
	if dot := strings.LastIndex(name, "."); dot > 0 {
		return name[:dot] + "-" + suffix + name[dot:]
	}
	return name + "-" + suffix
}

// Delete removes a stored file.
func (g *Gateway) Delete(_ context.Context, id, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteCalls++
	if g.DeleteErr != nil {
		return g.DeleteErr
	}
	if _, ok := g.files[id]; !ok {
		return domain.ErrNotFound
	}
	delete(g.files, id)
	return nil
}

// DownloadURL returns the memory:// reference for a stored file.
func (g *Gateway) DownloadURL(_ context.Context, id string) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	f, ok := g.files[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return f.entry.BlobURL, nil
}

// ExtractText derives text from a stored file. The first successful
// call stores the text; later calls return the stored copy with the
// cached source marker.
func (g *Gateway) ExtractText(_ context.Context, id, _ string) (*driven.ExtractResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.files[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if g.FailExtract[id] {
		return &driven.ExtractResult{Success: false, Error: "extraction failed"}, nil
	}
	if f.text != "" {
		return &driven.ExtractResult{Success: true, Text: f.text, Source: string(domain.SourceCached)}, nil
	}
	f.text = string(f.data)
	return &driven.ExtractResult{Success: true, Text: f.text, Source: string(domain.SourceExtracted)}, nil
}

// SaveEditedText replaces the stored text and backing bytes.
func (g *Gateway) SaveEditedText(_ context.Context, id, text, _ string) error {
	if g.SaveErr != nil {
		return g.SaveErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.files[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.text = text
	f.data = []byte(text)
	f.entry.Size = int64(len(text))
	f.entry.LastModified = time.Now().UTC().Format(time.RFC3339)
	return nil
}

// Login accepts any non-empty credentials.
func (g *Gateway) Login(_ context.Context, username, password string) (*driven.AuthResult, error) {
	if username == "" || password == "" {
		return &driven.AuthResult{Success: false, Error: "invalid credentials"}, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loggedIn = true
	g.user = username
	return &driven.AuthResult{Success: true, User: username}, nil
}

// Logout clears the session.
func (g *Gateway) Logout(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loggedIn = false
	g.user = ""
	return nil
}

// Health always reports healthy.
func (g *Gateway) Health(_ context.Context) error {
	return nil
}

// FetchText resolves a memory:// reference to the stored bytes.
func (g *Gateway) FetchText(_ context.Context, url string) (string, error) {
	id := strings.TrimPrefix(url, "memory://")
	g.mu.RLock()
	defer g.mu.RUnlock()
	f, ok := g.files[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return string(f.data), nil
}

// ListCalls reports how many times ListFiles was invoked.
func (g *Gateway) ListCalls() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.listCalls
}

// DeleteCalls reports how many times Delete was invoked.
func (g *Gateway) DeleteCalls() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.deleteCalls
}

// Seed stores an entry directly, bypassing upload semantics.
func (g *Gateway) Seed(entry driven.FileEntry, data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := entry.ID
	if id == "" {
		id = entry.Name
	}
	g.files[id] = &storedFile{entry: entry, data: data}
}
