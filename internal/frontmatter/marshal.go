package frontmatter

import (
	"strings"
)

// Marshal writes fm back out as a fenced block followed by the body. Parsing
// the result yields the same title, date, categories and tags, provided list
// items contain no commas or brackets.
func Marshal(fm FrontMatter) []byte {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	b.WriteString("title: " + quoteValue(fm.Title) + "\n")
	b.WriteString("date: " + quoteValue(fm.Date) + "\n")
	if len(fm.Categories) > 0 {
		b.WriteString("categories: [" + strings.Join(fm.Categories, ", ") + "]\n")
	}
	if len(fm.Tags) > 0 {
		b.WriteString("tags: [" + strings.Join(fm.Tags, ", ") + "]\n")
	}
	b.WriteString(Delimiter + "\n")
	if fm.Content != "" {
		b.WriteString("\n" + fm.Content + "\n")
	}
	return []byte(b.String())
}

// quoteValue wraps values that unquote or TrimSpace would otherwise alter.
func quoteValue(value string) string {
	if value == "" {
		return `""`
	}
	if strings.TrimSpace(value) != value || unquote(value) != value {
		return `"` + value + `"`
	}
	return value
}
