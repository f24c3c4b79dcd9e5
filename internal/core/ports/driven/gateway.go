package driven

import (
	"context"
	"io"
)

// FileEntry is a raw list entry as returned by the backend.
// Any of the identifying fields may be absent.
type FileEntry struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	Folder       string `json:"folder,omitempty"`
	BlobURL      string `json:"blobUrl,omitempty"`
	UploadedAt   string `json:"uploadedAt"`
	LastModified string `json:"lastModified,omitempty"`
}

// UploadResult is the backend's response to a successful upload.
// The stored name may differ from the original if storage renames
// on conflict; any of filename/blobName/name may carry it.
type UploadResult struct {
	Filename     string `json:"filename"`
	BlobName     string `json:"blobName"`
	Name         string `json:"name"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Folder       string `json:"folder,omitempty"`
}

// ExtractResult is the backend's response to a text extraction request.
// Success=false is a business failure, not a transport failure.
type ExtractResult struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Source  string `json:"source,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthResult is the backend's response to an authentication request.
type AuthResult struct {
	Success bool   `json:"success"`
	User    string `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Gateway is the thin request/response contract against the remote
// document store. Implementations hold no document state.
type Gateway interface {
	// ListFiles returns the raw file entries, optionally scoped to a
	// folder (SharePoint variant; the plain backend ignores it).
	ListFiles(ctx context.Context, folder string) ([]FileEntry, error)

	// Upload stores a file under its original name and returns the
	// backend's record of it.
	Upload(ctx context.Context, name, contentType string, data io.Reader, folder string) (*UploadResult, error)

	// Delete removes the file identified by id.
	Delete(ctx context.Context, id, folder string) error

	// DownloadURL returns a download reference for the file.
	DownloadURL(ctx context.Context, id string) (string, error)

	// ExtractText runs (or returns a cached) text extraction for the
	// file. Idempotent: repeated calls return the stored text.
	ExtractText(ctx context.Context, id, folder string) (*ExtractResult, error)

	// SaveEditedText stores user-edited text for the file, replacing
	// any cached extraction.
	SaveEditedText(ctx context.Context, id, text, folder string) error

	// Login authenticates against the SharePoint variant.
	Login(ctx context.Context, username, password string) (*AuthResult, error)

	// Logout ends the authenticated session.
	Logout(ctx context.Context) error

	// Health checks backend availability.
	Health(ctx context.Context) error
}

// BlobFetcher retrieves raw bytes at a download reference.
// Separate from Gateway because the reference may point outside the
// API base URL (e.g. a signed blob-storage URL).
type BlobFetcher interface {
	// FetchText downloads the resource and decodes it as text.
	FetchText(ctx context.Context, url string) (string, error)
}

// Confirmer gates destructive operations behind an explicit yes/no check.
type Confirmer interface {
	// Confirm returns true if the user approved the action.
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmerFunc) Confirm(prompt string) bool {
	return f(prompt)
}
