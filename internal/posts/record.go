package posts

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blogfront/internal/frontmatter"
	"github.com/goliatone/go-blogfront/internal/identity"
)

// Record is a parsed post as listed by the repository.
type Record struct {
	File       string    `json:"file"`
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	Published  time.Time `json:"published,omitzero"`
	Categories []string  `json:"categories"`
	Tags       []string  `json:"tags"`
	Content    string    `json:"content"`
	Excerpt    string    `json:"excerpt"`
}

// NewRecord builds the record for file from its raw document.
func NewRecord(file string, raw []byte) Record {
	fm := frontmatter.Parse(raw)
	published, _ := ParseDate(fm.Date)
	return Record{
		File:       file,
		ID:         identity.PostUUID(file),
		Title:      fm.Title,
		Date:       fm.Date,
		Published:  published,
		Categories: nonNil(fm.Categories),
		Tags:       nonNil(fm.Tags),
		Content:    fm.Content,
		Excerpt:    Excerpt(fm.Content),
	}
}

// Labels returns categories followed by tags with duplicates removed,
// keeping first occurrences.
func (r Record) Labels() []string {
	seen := make(map[string]struct{}, len(r.Categories)+len(r.Tags))
	out := make([]string, 0, len(r.Categories)+len(r.Tags))
	for _, label := range slices.Concat(r.Categories, r.Tags) {
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

// HasCategory reports whether category is one of the record's categories.
func (r Record) HasCategory(category string) bool {
	return slices.Contains(r.Categories, category)
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	r.Categories = slices.Clone(r.Categories)
	r.Tags = slices.Clone(r.Tags)
	return r
}

func cloneAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, record := range records {
		out[i] = record.Clone()
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
