package source

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.json":         {Data: []byte(`{"posts": ["first.md"]}`)},
		"first.md":           {Data: []byte("---\ntitle: First\n---\nbody")},
		"2024/second.md":     {Data: []byte("second")},
		"2024/notes.txt":     {Data: []byte("ignored")},
		"drafts/deep/one.md": {Data: []byte("deep")},
	}
}

func TestFSSourceReadsManifestAndDocuments(t *testing.T) {
	src := NewFSSource(testFS(), FSConfig{})

	files, err := src.Manifest(context.Background())
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	if diff := cmp.Diff([]string{"first.md"}, files); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}

	data, err := src.Document(context.Background(), "/first.md")
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if string(data) != "---\ntitle: First\n---\nbody" {
		t.Fatalf("unexpected document %q", string(data))
	}
}

func TestFSSourceDiscoversWhenIndexMissing(t *testing.T) {
	fsys := testFS()
	delete(fsys, "index.json")

	files, err := NewFSSource(fsys, FSConfig{Discover: true}).Manifest(context.Background())
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	want := []string{"2024/second.md", "drafts/deep/one.md", "first.md"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("discovered mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewFSSource(fsys, FSConfig{}).Manifest(context.Background()); !IsNotFound(err) {
		t.Fatalf("expected not found without discovery, got %v", err)
	}
}

func TestFSSourceRejectsEscapingPaths(t *testing.T) {
	src := NewFSSource(testFS(), FSConfig{})
	for _, file := range []string{"../secret.md", "missing.md"} {
		if _, err := src.Document(context.Background(), file); !IsNotFound(err) {
			t.Fatalf("expected not found for %s, got %v", file, err)
		}
	}
}

func TestDiscoverWithCustomPattern(t *testing.T) {
	files, err := Discover(testFS(), "2024/*")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if diff := cmp.Diff([]string{"2024/notes.txt", "2024/second.md"}, files); diff != "" {
		t.Fatalf("discover mismatch (-want +got):\n%s", diff)
	}
}
