package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text unchanged", input: "Q3 budget sign-off", expected: "Q3 budget sign-off"},
		{name: "empty", input: "", expected: ""},
		{name: "rich text div", input: `<div class="ExternalClass1"><p>Agenda</p><p>Notes &amp; actions</p></div>`, expected: "Agenda Notes & actions"},
		{name: "line breaks", input: "first<br/>second", expected: "first second"},
		{name: "inline tags", input: "<b>bold</b> and <i>italic</i>", expected: "bold and italic"},
		{name: "script removed", input: "<script>alert(1)</script>safe", expected: "safe"},
		{name: "comments removed", input: "a<!-- hidden -->b", expected: "ab"},
		{name: "whitespace collapsed", input: "  lots \n\t of   space ", expected: "lots of space"},
		{name: "entities decoded", input: "5 &lt; 6", expected: "5 < 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlainText(tt.input))
		})
	}
}
