package source

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingSource struct {
	documents map[string]string
	calls     map[string]int
}

func (c *countingSource) Manifest(context.Context) ([]string, error) {
	c.calls["manifest"]++
	return []string{"a.md"}, nil
}

func (c *countingSource) Document(_ context.Context, file string) ([]byte, error) {
	c.calls[file]++
	doc, ok := c.documents[file]
	if !ok {
		return nil, notFoundError(file)
	}
	return []byte(doc), nil
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func TestCachedSourceServesRepeatedReadsFromStore(t *testing.T) {
	inner := &countingSource{documents: map[string]string{"a.md": "alpha"}, calls: map[string]int{}}
	cached := NewCachedSource(inner, NewMemoryStore(), CacheOptions{TTL: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		data, err := cached.Document(ctx, "a.md")
		if err != nil {
			t.Fatalf("Document: %v", err)
		}
		if string(data) != "alpha" {
			t.Fatalf("expected alpha, got %q", string(data))
		}
	}
	if inner.calls["a.md"] != 1 {
		t.Fatalf("expected one upstream fetch, got %d", inner.calls["a.md"])
	}

	for i := 0; i < 2; i++ {
		if _, err := cached.Manifest(ctx); err != nil {
			t.Fatalf("Manifest: %v", err)
		}
	}
	if inner.calls["manifest"] != 2 {
		t.Fatalf("expected manifest to bypass the cache, got %d calls", inner.calls["manifest"])
	}

	cached.Invalidate()
	if _, err := cached.Document(ctx, "a.md"); err != nil {
		t.Fatalf("Document: %v", err)
	}
	if inner.calls["a.md"] != 2 {
		t.Fatalf("expected refetch after invalidate, got %d", inner.calls["a.md"])
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	inner := &countingSource{documents: map[string]string{}, calls: map[string]int{}}
	cached := NewCachedSource(inner, NewMemoryStore(), CacheOptions{})

	for i := 0; i < 2; i++ {
		if _, err := cached.Document(context.Background(), "gone.md"); !IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
	}
	if inner.calls["gone.md"] != 2 {
		t.Fatalf("expected failures to reach upstream each time, got %d", inner.calls["gone.md"])
	}
}

func TestCachedSourceFallsBackWhenStoreFails(t *testing.T) {
	inner := &countingSource{documents: map[string]string{"a.md": "alpha"}, calls: map[string]int{}}
	cached := NewCachedSource(inner, brokenStore{}, CacheOptions{})

	data, err := cached.Document(context.Background(), "a.md")
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if string(data) != "alpha" {
		t.Fatalf("expected alpha, got %q", string(data))
	}
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); !ok {
		t.Fatal("expected fresh entry")
	}
	now = now.Add(2 * time.Second)
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestCachedSourceInvalidateDropsMemoryEntries(t *testing.T) {
	inner := &countingSource{documents: map[string]string{"a.md": "alpha", "b.md": "beta"}, calls: map[string]int{}}
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	cached := NewCachedSource(inner, store, CacheOptions{TTL: time.Minute})
	ctx := context.Background()

	for cycle := 0; cycle < 50; cycle++ {
		for _, file := range []string{"a.md", "b.md"} {
			if _, err := cached.Document(ctx, file); err != nil {
				t.Fatalf("Document: %v", err)
			}
		}
		cached.Invalidate()
		now = now.Add(2 * time.Minute)
	}
	for _, file := range []string{"a.md", "b.md"} {
		if _, err := cached.Document(ctx, file); err != nil {
			t.Fatalf("Document: %v", err)
		}
	}

	if got := len(store.entries); got != 2 {
		t.Fatalf("expected 2 entries after invalidation cycles, got %d", got)
	}
	if inner.calls["a.md"] != 51 {
		t.Fatalf("expected a refetch per cycle, got %d", inner.calls["a.md"])
	}
}
