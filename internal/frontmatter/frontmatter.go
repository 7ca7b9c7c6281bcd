// Package frontmatter reads the metadata header at the top of a post.
//
// The header is a block of "key: value" lines fenced by "---" lines. Only
// title, date, categories and tags are recognised. Anything else is ignored
// and a missing or unterminated block leaves the defaults in place.
package frontmatter

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"
)

const (
	// Delimiter fences the metadata block.
	Delimiter = "---"

	DefaultTitle = "Untitled"
	DefaultDate  = "Unknown"
)

// FrontMatter is the metadata and body of a single post document.
type FrontMatter struct {
	Title      string
	Date       string
	Categories []string
	Tags       []string
	Content    string
}

// format hands adrg/frontmatter our line-based unmarshaller. The block is
// not YAML, so the library's built-in formats cannot be used.
var format = frontmatter.NewFormat(Delimiter, Delimiter, unmarshalLines)

// Parse splits raw into metadata and body. It never fails: input without a
// leading block is returned whole as Content with default metadata.
func Parse(raw []byte) FrontMatter {
	meta := header{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta, format)
	if err != nil || !meta.found {
		return FrontMatter{
			Title:   DefaultTitle,
			Date:    DefaultDate,
			Content: string(raw),
		}
	}

	return FrontMatter{
		Title:      meta.title,
		Date:       meta.date,
		Categories: meta.categories,
		Tags:       meta.tags,
		Content:    strings.TrimSpace(string(body)),
	}
}

// ParseString is Parse for string input.
func ParseString(raw string) FrontMatter {
	return Parse([]byte(raw))
}

type header struct {
	found      bool
	title      string
	date       string
	categories []string
	tags       []string
}

func unmarshalLines(data []byte, v any) error {
	h, ok := v.(*header)
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	h.found = true
	h.title = DefaultTitle
	h.date = DefaultDate

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = unquote(strings.TrimSpace(value))

		switch strings.TrimSpace(key) {
		case "title":
			h.title = value
		case "date":
			h.date = value
		case "categories":
			h.categories = splitList(value)
		case "tags":
			h.tags = splitList(value)
		}
	}
	return nil
}

// unquote strips one matching pair of surrounding quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

var bracketStripper = strings.NewReplacer("[", "", "]", "")

// splitList accepts both "[a, b]" and "a, b".
func splitList(value string) []string {
	parts := strings.Split(bracketStripper.Replace(value), ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
