package posts

import (
	"regexp"
	"strings"
)

const (
	// CutMarker ends the excerpt when present in a post body.
	CutMarker = "<!--more-->"

	excerptLength = 100
	ellipsis      = "..."
)

var markdownSymbols = regexp.MustCompile("[#*`$!\\[\\]]")

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ")

// Excerpt returns the listing preview for content.
func Excerpt(content string) string {
	return strings.TrimSpace(cutExcerpt(content))
}

// cutExcerpt truncates at the cut marker, or at excerptLength runes plus an
// ellipsis, and strips markdown symbols and line breaks. Surrounding
// whitespace is left for Excerpt to trim.
func cutExcerpt(content string) string {
	var excerpt string
	if before, _, found := strings.Cut(content, CutMarker); found {
		excerpt = before
	} else {
		excerpt = truncateRunes(content, excerptLength) + ellipsis
	}
	excerpt = markdownSymbols.ReplaceAllString(excerpt, "")
	return lineBreaks.Replace(excerpt)
}

func truncateRunes(value string, limit int) string {
	count := 0
	for i := range value {
		if count == limit {
			return value[:i]
		}
		count++
	}
	return value
}
