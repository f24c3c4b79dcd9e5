package domain

import (
	"path/filepath"
	"strings"
)

// DefaultContentType is assumed when the backend reports no MIME type.
const DefaultContentType = "application/octet-stream"

// DocumentSummary represents one stored file as known to the client.
// It is the canonical client-side record reconciled against backend truth.
type DocumentSummary struct {
	// ID is the stable identifier, derived via Identify.
	// Unique within the active document list.
	ID string

	// Name is the display name assigned by storage.
	Name string

	// OriginalName is the filename at upload time.
	// May differ from Name if storage renames on conflict.
	OriginalName string

	// Size is the byte count. Zero when the backend omits it.
	Size int64

	// Type is the MIME type. Defaults to DefaultContentType when absent.
	Type string

	// Folder is the logical partition (SharePoint variant only).
	Folder string

	// BlobURL is the download reference, attached lazily on first view.
	BlobURL string

	// UploadedAt is the upload timestamp as reported by the backend.
	// Empty renders as "unknown".
	UploadedAt string

	// LastModified is the last modification timestamp.
	// Empty renders as "unknown".
	LastModified string

	// HasExtractedText is true once a text extraction succeeded for this ID.
	HasExtractedText bool

	// Content is the cached viewable content, nil until first view.
	Content *ContentPayload
}

// Identify returns the first non-empty candidate identifier. Backend
// responses are not guaranteed to carry every identifying field, so all
// id derivation goes through this one fallback chain: list entries pass
// (name, id, originalName), summaries pass (id, name, originalName).
func Identify(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// Identity returns the summary's effective identifier via the fallback chain.
func (d *DocumentSummary) Identity() string {
	return Identify(d.ID, d.Name, d.OriginalName)
}

// Matches reports whether the summary is identified by id.
func (d *DocumentSummary) Matches(id string) bool {
	return id != "" && d.Identity() == id
}

// SupportsExtraction reports whether the document is eligible for text
// extraction: PDF, Word, or plain text, by MIME type or by filename
// extension when the MIME type is absent or generic.
func (d *DocumentSummary) SupportsExtraction() bool {
	t := strings.ToLower(d.Type)
	if strings.Contains(t, "pdf") ||
		strings.Contains(t, "word") ||
		strings.Contains(t, "document") ||
		strings.Contains(t, "text/plain") {
		return true
	}

	name := d.OriginalName
	if name == "" {
		name = d.Name
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx", ".doc", ".txt":
		return true
	}
	return false
}

// IsImage reports whether the document has an image MIME type.
func (d *DocumentSummary) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(d.Type), "image/")
}

// IsSpreadsheet reports whether the document is a spreadsheet, by MIME
// type or .xlsx/.xls extension.
func (d *DocumentSummary) IsSpreadsheet() bool {
	if strings.Contains(strings.ToLower(d.Type), "spreadsheet") {
		return true
	}
	switch strings.ToLower(filepath.Ext(d.Name)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// IsWord reports whether the document is a Word document, by MIME type
// or .docx/.doc extension.
func (d *DocumentSummary) IsWord() bool {
	if strings.Contains(strings.ToLower(d.Type), "word") {
		return true
	}
	switch strings.ToLower(filepath.Ext(d.Name)) {
	case ".docx", ".doc":
		return true
	}
	return false
}

// FormatTimestamp renders a backend timestamp for display.
// Absent values render as "unknown".
func FormatTimestamp(ts string) string {
	if ts == "" {
		return "unknown"
	}
	return ts
}

// FileUpload is a file handed to the document manager for upload.
type FileUpload struct {
	// Name is the local filename.
	Name string

	// ContentType is the MIME type, inferred by the caller.
	ContentType string

	// Data is the file content.
	Data []byte
}
