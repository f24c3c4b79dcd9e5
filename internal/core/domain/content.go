package domain

// ContentKind selects how the viewer renders a document's body.
type ContentKind string

const (
	// ContentText is decoded or extracted plain text.
	ContentText ContentKind = "text"
	// ContentPDF is a download reference for an embedded PDF viewer.
	ContentPDF ContentKind = "pdf"
	// ContentImage is a download reference rendered as an image.
	ContentImage ContentKind = "image"
	// ContentSpreadsheet is a placeholder; no extraction supported.
	ContentSpreadsheet ContentKind = "spreadsheet"
	// ContentWord is a placeholder when Word extraction fails.
	ContentWord ContentKind = "word"
	// ContentUnknown is a placeholder for unsupported types.
	ContentUnknown ContentKind = "unknown"
	// ContentError signals content resolution failed.
	ContentError ContentKind = "error"
)

// TextSource distinguishes where text content came from.
// Only meaningful when the content kind is ContentText.
type TextSource string

const (
	// SourceCached is text returned from a prior extraction.
	SourceCached TextSource = "cached"
	// SourceExtracted is freshly extracted text.
	SourceExtracted TextSource = "extracted"
	// SourceEdited is user-edited text that was saved back.
	SourceEdited TextSource = "edited"
)

// Placeholder messages shown when no preview is available.
const (
	SpreadsheetPlaceholder = "Excel file - content preview not available"
	WordPlaceholder        = "Word document - content preview not available"
	UnknownPlaceholder     = "File type not supported for preview"
)

// ContentPayload is a document's resolved viewable content.
type ContentPayload struct {
	// Kind selects the rendering strategy.
	Kind ContentKind

	// Data is the text, download reference, or placeholder message.
	Data string

	// Source is set for text content only.
	Source TextSource
}
