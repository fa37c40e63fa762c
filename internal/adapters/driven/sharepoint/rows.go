package sharepoint

import (
	"bytes"
	"encoding/json"
)

// searchResponse is the subset of the search API body we read.
// Absent objects decode to zero values, which yields no rows.
type searchResponse struct {
	PrimaryQueryResult struct {
		RelevantResults struct {
			Table struct {
				Rows []resultRow `json:"Rows"`
			} `json:"Table"`
		} `json:"RelevantResults"`
	} `json:"PrimaryQueryResult"`
}

func (r *searchResponse) rows() []resultRow {
	return r.PrimaryQueryResult.RelevantResults.Table.Rows
}

type resultRow struct {
	Cells []resultCell `json:"Cells"`
}

type resultCell struct {
	Key   string    `json:"Key"`
	Value cellValue `json:"Value"`
}

// cellValue reads a cell value as text. Null decodes to "", and numbers or
// booleans keep their JSON spelling.
type cellValue string

func (v *cellValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = cellValue(s)
		return nil
	}
	*v = cellValue(data)
	return nil
}

// scan copies cell values into the fields named by key. The first cell with
// a given key wins; keys without a cell leave the field empty.
func (r resultRow) scan(fields map[string]*string) {
	seen := make(map[string]bool, len(fields))
	for _, c := range r.Cells {
		dst, ok := fields[c.Key]
		if !ok || seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		*dst = string(c.Value)
	}
}

// listItemSelect is the field set requested for list items.
const listItemSelect = "Title,Path,Description,Author,Write,SiteTitle,ListId,ListItemId,SPWebUrl"

// documentSelect is the field set requested for documents.
const documentSelect = "Title,Path,Author,Write,FileExtension,Size,SiteName,ParentLink"

// listItemRow is one list item hit.
type listItemRow struct {
	Title       string
	Path        string
	Description string
	Author      string
	Write       string
	SiteTitle   string
	ListID      string
	ListItemID  string
	WebURL      string
}

func decodeListItemRow(r resultRow) listItemRow {
	var row listItemRow
	r.scan(map[string]*string{
		"Title":       &row.Title,
		"Path":        &row.Path,
		"Description": &row.Description,
		"Author":      &row.Author,
		"Write":       &row.Write,
		"SiteTitle":   &row.SiteTitle,
		"ListId":      &row.ListID,
		"ListItemId":  &row.ListItemID,
		"SPWebUrl":    &row.WebURL,
	})
	return row
}

// documentRow is one document hit.
type documentRow struct {
	Title         string
	Path          string
	Author        string
	Write         string
	FileExtension string
	Size          string
	SiteName      string
	ParentLink    string
}

func decodeDocumentRow(r resultRow) documentRow {
	var row documentRow
	r.scan(map[string]*string{
		"Title":         &row.Title,
		"Path":          &row.Path,
		"Author":        &row.Author,
		"Write":         &row.Write,
		"FileExtension": &row.FileExtension,
		"Size":          &row.Size,
		"SiteName":      &row.SiteName,
		"ParentLink":    &row.ParentLink,
	})
	return row
}
