package toc

import "sync"

// Event reports a heading entering or leaving the viewport.
type Event struct {
	ID           string
	Intersecting bool
}

// Link is an entry with its active state.
type Link struct {
	Entry
	Active bool
}

// Tracker keeps at most one active entry. The most recently intersecting
// heading wins, so a batch with several intersecting headings leaves the
// last one active.
type Tracker struct {
	mu      sync.Mutex
	entries []Entry
	known   map[string]struct{}
	active  string
}

// NewTracker tracks entries with none active.
func NewTracker(entries []Entry) *Tracker {
	known := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		known[entry.ID] = struct{}{}
	}
	return &Tracker{
		entries: append([]Entry(nil), entries...),
		known:   known,
	}
}

// Observe applies events in order. Events that are not intersecting, or
// that name unknown headings, leave the active entry unchanged.
func (t *Tracker) Observe(events ...Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, event := range events {
		if !event.Intersecting {
			continue
		}
		if _, ok := t.known[event.ID]; ok {
			t.active = event.ID
		}
	}
}

// Active returns the active entry id, or "" before any intersection.
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Links returns every entry with exactly one, or zero, marked active.
func (t *Tracker) Links() []Link {
	t.mu.Lock()
	defer t.mu.Unlock()
	links := make([]Link, len(t.entries))
	for i, entry := range t.entries {
		links[i] = Link{Entry: entry, Active: entry.ID == t.active}
	}
	return links
}
