// Package toc derives a table of contents from rendered article HTML and
// tracks which entry is currently active.
package toc

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// IDPrefix is followed by the heading index in document order.
	IDPrefix = "header-"
	// SubClass marks level 3 and level 4 entries.
	SubClass = "toc-sub"
	// Placeholder is shown when the article has no headings.
	Placeholder = "// NO HEADERS DETECTED"

	headingSelector = "h2, h3, h4"
)

// Entry is one link in the table of contents.
type Entry struct {
	ID    string
	Text  string
	Level int
}

// Sub reports whether the entry is indented under a level 2 heading. Level 3
// and level 4 share the same marker.
func (e Entry) Sub() bool {
	return e.Level > 2
}

// Class returns the CSS class for the entry's list item.
func (e Entry) Class() string {
	if e.Sub() {
		return SubClass
	}
	return ""
}

// Result is the rewritten body and its entries.
type Result struct {
	HTML    string
	Entries []Entry
}

// Empty reports whether no headings were found.
func (r Result) Empty() bool {
	return len(r.Entries) == 0
}

// Build assigns header-N ids to every h2, h3 and h4 in body, replacing any
// existing ids, and returns the updated markup with the entries.
func Build(body string) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Result{}, err
	}

	headings := doc.Find(headingSelector)
	if headings.Length() == 0 {
		return Result{HTML: body}, nil
	}

	entries := make([]Entry, 0, headings.Length())
	headings.Each(func(i int, s *goquery.Selection) {
		id := IDPrefix + strconv.Itoa(i)
		s.SetAttr("id", id)
		level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		entries = append(entries, Entry{
			ID:    id,
			Text:  strings.TrimSpace(s.Text()),
			Level: level,
		})
	})

	html, err := doc.Find("body").Html()
	if err != nil {
		return Result{}, err
	}
	return Result{HTML: html, Entries: entries}, nil
}
