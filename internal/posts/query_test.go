package posts

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func files(records []Record) []string {
	out := make([]string, len(records))
	for i, record := range records {
		out[i] = record.File
	}
	return out
}

func TestFilterByCategoryKeepsRelativeOrder(t *testing.T) {
	records := []Record{
		{File: "one.md", Categories: []string{"A"}},
		{File: "two.md", Categories: []string{"B"}},
		{File: "three.md", Categories: []string{"A", "B"}},
	}

	got := files(FilterByCategory(records, "A"))

	if diff := cmp.Diff([]string{"one.md", "three.md"}, got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterByCategoryIgnoresTags(t *testing.T) {
	records := []Record{{File: "one.md", Tags: []string{"A"}}}
	if got := FilterByCategory(records, "A"); len(got) != 0 {
		t.Fatalf("expected tags to be ignored, got %v", files(got))
	}
}

func TestSearchMatchesTitleAndContentCaseInsensitively(t *testing.T) {
	records := []Record{
		{File: "title.md", Title: "Learning GO", Content: "nothing"},
		{File: "body.md", Title: "Other", Content: "we write go daily"},
		{File: "miss.md", Title: "Rust", Content: "borrow checker"},
	}

	got := files(Search(records, "Go"))

	if diff := cmp.Diff([]string{"title.md", "body.md"}, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
	if all := Search(records, "  "); len(all) != 3 {
		t.Fatalf("expected blank query to match all, got %d", len(all))
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	records := []Record{
		{Categories: []string{"go", "web"}},
		{Categories: []string{"web", "ops"}, Tags: []string{"tagonly"}},
		{Categories: []string{"go"}},
	}

	if diff := cmp.Diff([]string{"go", "web", "ops"}, Categories(records)); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelsUnionWithoutDuplicates(t *testing.T) {
	record := Record{Categories: []string{"go", "go", "web"}, Tags: []string{"web", "cli"}}
	if diff := cmp.Diff([]string{"go", "web", "cli"}, record.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByDatePutsInvalidDatesLast(t *testing.T) {
	records := []Record{
		{File: "unknown-1.md", Date: "Unknown"},
		{File: "old.md", Date: "2022-01-10"},
		{File: "unknown-2.md", Date: "someday"},
		{File: "new.md", Date: "2024-05-01"},
		{File: "mid.md", Date: "March 3, 2023"},
	}
	for i := range records {
		records[i].Published, _ = ParseDate(records[i].Date)
	}

	SortByDate(records)

	want := []string{"new.md", "mid.md", "old.md", "unknown-1.md", "unknown-2.md"}
	if diff := cmp.Diff(want, files(records)); diff != "" {
		t.Fatalf("sort mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDateUsesUTC(t *testing.T) {
	got, ok := ParseDate("2024-01-02")
	if !ok {
		t.Fatal("expected date to parse")
	}
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if _, ok := ParseDate("Unknown"); ok {
		t.Fatal("expected Unknown to be rejected")
	}
}

func TestNewRecordDefaults(t *testing.T) {
	record := NewRecord("plain.md", []byte("just text"))
	if record.Title != "Untitled" || record.Date != "Unknown" {
		t.Fatalf("expected defaults, got %q / %q", record.Title, record.Date)
	}
	if record.Content != "just text" {
		t.Fatalf("expected raw content, got %q", record.Content)
	}
	if !record.Published.IsZero() {
		t.Fatalf("expected zero published time, got %s", record.Published)
	}
	if record.Categories == nil || record.Tags == nil {
		t.Fatal("expected empty, non-nil label slices")
	}
}
