package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentify(t *testing.T) {
	tests := []struct {
		name         string
		docName      string
		id           string
		originalName string
		want         string
	}{
		{"name wins", "a.pdf", "id-1", "orig.pdf", "a.pdf"},
		{"id when name empty", "", "id-1", "orig.pdf", "id-1"},
		{"original name last", "", "", "orig.pdf", "orig.pdf"},
		{"all empty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identify(tt.docName, tt.id, tt.originalName))
		})
	}
}

func TestDocumentSummary_Matches(t *testing.T) {
	doc := DocumentSummary{Name: "report.pdf"}
	assert.True(t, doc.Matches("report.pdf"))
	assert.False(t, doc.Matches("other.pdf"))

	// Empty id never matches, even an empty identity.
	empty := DocumentSummary{}
	assert.False(t, empty.Matches(""))
}

func TestDocumentSummary_SupportsExtraction(t *testing.T) {
	tests := []struct {
		name string
		doc  DocumentSummary
		want bool
	}{
		{"pdf mime", DocumentSummary{Type: "application/pdf"}, true},
		{"word mime", DocumentSummary{Type: "application/msword"}, true},
		{"openxml document mime", DocumentSummary{
			Type: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		}, true},
		{"plain text", DocumentSummary{Type: "text/plain"}, true},
		{"generic mime, pdf extension", DocumentSummary{
			Type:         "application/octet-stream",
			OriginalName: "scan.pdf",
		}, true},
		{"generic mime, txt extension on name", DocumentSummary{
			Type: "application/octet-stream",
			Name: "notes.txt",
		}, true},
		{"image", DocumentSummary{Type: "image/png", Name: "photo.png"}, false},
		{"spreadsheet", DocumentSummary{
			Type: "application/vnd.ms-excel",
			Name: "sheet.xls",
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.SupportsExtraction())
		})
	}
}

func TestDocumentSummary_TypePredicates(t *testing.T) {
	assert.True(t, (&DocumentSummary{Type: "image/jpeg"}).IsImage())
	assert.False(t, (&DocumentSummary{Type: "application/pdf"}).IsImage())

	assert.True(t, (&DocumentSummary{Type: "application/vnd.ms-excel.spreadsheet"}).IsSpreadsheet())
	assert.True(t, (&DocumentSummary{Name: "budget.xlsx"}).IsSpreadsheet())
	assert.False(t, (&DocumentSummary{Name: "budget.pdf"}).IsSpreadsheet())

	assert.True(t, (&DocumentSummary{Type: "application/msword"}).IsWord())
	assert.True(t, (&DocumentSummary{Name: "letter.docx"}).IsWord())
	assert.False(t, (&DocumentSummary{Name: "letter.txt"}).IsWord())
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "unknown", FormatTimestamp(""))
	assert.Equal(t, "2024-01-01T00:00:00Z", FormatTimestamp("2024-01-01T00:00:00Z"))
}
