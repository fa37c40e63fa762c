package sharepoint

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellValue_Decoding(t *testing.T) {
	raw := `{"Cells":[
		{"Key":"Title","Value":"Budget"},
		{"Key":"Size","Value":2048},
		{"Key":"Author","Value":null},
		{"Key":"Path","Value":"https:\/\/contoso\/a.docx"}
	]}`

	var row resultRow
	require.NoError(t, json.Unmarshal([]byte(raw), &row))

	doc := decodeDocumentRow(row)
	assert.Equal(t, "Budget", doc.Title)
	assert.Equal(t, "2048", doc.Size)
	assert.Empty(t, doc.Author)
	assert.Equal(t, "https://contoso/a.docx", doc.Path)
}

func TestResultRow_FirstKeyWins(t *testing.T) {
	row := resultRow{Cells: []resultCell{
		{Key: "Title", Value: "first"},
		{Key: "Title", Value: "second"},
		{Key: "Unrelated", Value: "x"},
	}}

	item := decodeListItemRow(row)

	assert.Equal(t, "first", item.Title)
	assert.Empty(t, item.Path)
}

func TestDecodeListItemRow_AllFields(t *testing.T) {
	row := resultRow{Cells: []resultCell{
		{Key: "Title", Value: "T"},
		{Key: "Path", Value: "P"},
		{Key: "Description", Value: "D"},
		{Key: "Author", Value: "A"},
		{Key: "Write", Value: "W"},
		{Key: "SiteTitle", Value: "S"},
		{Key: "ListId", Value: "L"},
		{Key: "ListItemId", Value: "I"},
		{Key: "SPWebUrl", Value: "U"},
	}}

	assert.Equal(t, listItemRow{
		Title: "T", Path: "P", Description: "D", Author: "A", Write: "W",
		SiteTitle: "S", ListID: "L", ListItemID: "I", WebURL: "U",
	}, decodeListItemRow(row))
}

func TestNormaliser_FormatDate(t *testing.T) {
	n := normaliser{dateLayout: "1/2/2006", location: time.UTC}

	tests := []struct {
		raw  string
		want string
	}{
		{"2024-03-15T10:30:00Z", "3/15/2024"},
		{"2024-03-15T10:30:00.1234567Z", "3/15/2024"},
		{"2024-03-15T23:30:00-05:00", "3/16/2024"},
		{"2024-03-15", "3/15/2024"},
		{"3/15/2024 10:30:00 AM", "3/15/2024"},
		{"", ""},
		{"   ", ""},
		{"yesterday", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, n.formatDate(tt.raw))
		})
	}
}

func TestParseSize(t *testing.T) {
	assert.Equal(t, int64(2048), parseSize("2048"))
	assert.Equal(t, int64(2048), parseSize(" 2048 "))
	assert.Equal(t, int64(1500), parseSize("1500.7"))
	assert.Zero(t, parseSize(""))
	assert.Zero(t, parseSize("big"))
}

func TestLastPathSegment(t *testing.T) {
	assert.Equal(t, "a.docx", lastPathSegment("https://contoso/docs/a.docx"))
	assert.Equal(t, "", lastPathSegment("https://contoso/docs/"))
	assert.Equal(t, "plain", lastPathSegment("plain"))
	assert.Equal(t, "", lastPathSegment(""))
}

func TestNormaliser_DocumentTitleFallback(t *testing.T) {
	n := normaliser{location: time.UTC}

	assert.Equal(t, "Untitled", n.document(documentRow{Path: "https://contoso/docs/"}).Title)
	assert.Equal(t, "a.pdf", n.document(documentRow{Path: "https://contoso/docs/a.pdf"}).Title)
	assert.Equal(t, "Given", n.document(documentRow{Title: "Given", Path: "https://contoso/docs/a.pdf"}).Title)
}
