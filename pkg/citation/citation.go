// Package citation formats bibliographic references in Vancouver style.
//
// Formatting is pure: the same references always yield the same citations.
package citation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultAuthors = "Unknown Authors"
	defaultTitle   = "Untitled"
)

// Field is a reference field that accepts JSON strings or numbers
// ("year": 2023 and "year": "2023" decode the same).
type Field string

func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("citation field must be a string or number: %w", err)
	}
	*f = Field(n.String())
	return nil
}

// Reference is one bibliographic input record.
type Reference struct {
	Text    Field `json:"text,omitempty"`
	Authors Field `json:"authors,omitempty"`
	Title   Field `json:"title,omitempty"`
	Journal Field `json:"journal,omitempty"`
	Year    Field `json:"year,omitempty"`
	Volume  Field `json:"volume,omitempty"`
	Issue   Field `json:"issue,omitempty"`
	Pages   Field `json:"pages,omitempty"`
}

// Citation is a numbered, formatted reference.
type Citation struct {
	Number         int    `json:"number"`
	Text           string `json:"text"`
	VancouverStyle string `json:"vancouverStyle"`
}

// Vancouver renders one reference as
// "{n}. {authors}. {title}. {journal}. {year};{volume}({issue}):{pages}.".
func Vancouver(n int, ref Reference) string {
	authors := string(ref.Authors)
	if authors == "" {
		authors = defaultAuthors
	}
	title := string(ref.Title)
	if title == "" {
		title = defaultTitle
	}
	return fmt.Sprintf("%d. %s. %s. %s. %s;%s(%s):%s.",
		n, authors, title, ref.Journal, ref.Year, ref.Volume, ref.Issue, ref.Pages)
}

// FormatVancouver numbers references from 1 in input order.
func FormatVancouver(refs []Reference) []Citation {
	out := make([]Citation, 0, len(refs))
	for i, ref := range refs {
		n := i + 1
		out = append(out, Citation{
			Number:         n,
			Text:           string(ref.Text),
			VancouverStyle: Vancouver(n, ref),
		})
	}
	return out
}

// AppendReferences appends a "References:" section to content. Each line
// uses the Vancouver text, which already carries its number, or falls
// back to "{n}. {text}".
func AppendReferences(content string, cites []Citation) string {
	if len(cites) == 0 {
		return content
	}
	var sb strings.Builder
	sb.WriteString(content)
	sb.WriteString("\n\nReferences:\n\n")
	for i, c := range cites {
		line := c.VancouverStyle
		if line == "" {
			line = strconv.Itoa(i+1) + ". " + c.Text
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
