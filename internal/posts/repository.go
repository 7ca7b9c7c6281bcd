package posts

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-blogfront/internal/logging"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

// DefaultConcurrency bounds parallel document fetches during a load.
const DefaultConcurrency = 8

// Source supplies the manifest and documents a repository loads.
type Source interface {
	Manifest(ctx context.Context) ([]string, error)
	Document(ctx context.Context, file string) ([]byte, error)
}

// Options configures a Repository.
type Options struct {
	Concurrency int
	Logger      interfaces.Logger
}

// Repository owns the loaded post collection. Query methods return copies
// and are safe to call while a reload is in progress.
type Repository struct {
	source      Source
	concurrency int
	logger      interfaces.Logger

	mu      sync.RWMutex
	records []Record
	loaded  bool
}

// NewRepository returns an empty repository reading from source.
func NewRepository(source Source, opts Options) *Repository {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Repository{
		source:      source,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Load fetches the manifest and every listed document, then replaces the
// cached collection with the parsed records, newest first. Documents that
// fail to fetch are skipped. A manifest failure returns an IsNoData error
// and leaves the previous collection in place.
func (r *Repository) Load(ctx context.Context) ([]Record, error) {
	logger := r.logger.WithContext(ctx)

	files, err := r.source.Manifest(ctx)
	if err != nil {
		logger.Error("posts.manifest_failed", "error", err)
		return nil, noDataError(err)
	}

	fetched := make([]*Record, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)
	for i, file := range files {
		group.Go(func() error {
			raw, err := r.source.Document(groupCtx, file)
			if err != nil {
				logging.WithPostContext(logger, file, "fetch").Warn("posts.document_dropped", "error", err)
				return nil
			}
			record := NewRecord(file, raw)
			fetched[i] = &record
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(files))
	for _, record := range fetched {
		if record != nil {
			records = append(records, *record)
		}
	}
	SortByDate(records)

	r.mu.Lock()
	r.records = records
	r.loaded = true
	r.mu.Unlock()

	logger.Info("posts.loaded", "listed", len(files), "loaded", len(records))
	return cloneAll(records), nil
}

// Reload is Load without the result, for callers reacting to content
// changes.
func (r *Repository) Reload(ctx context.Context) error {
	_, err := r.Load(ctx)
	return err
}

// EnsureLoaded loads the repository unless a load already succeeded.
func (r *Repository) EnsureLoaded(ctx context.Context) error {
	if r.Loaded() {
		return nil
	}
	_, err := r.Load(ctx)
	return err
}

// Loaded reports whether a load has succeeded.
func (r *Repository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// All returns every loaded record, newest first.
func (r *Repository) All() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.records)
}

// Find returns the record loaded from file.
func (r *Repository) Find(file string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.records {
		if record.File == file {
			return record.Clone(), true
		}
	}
	return Record{}, false
}

// FilterByCategory returns the loaded records in category.
func (r *Repository) FilterByCategory(category string) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(FilterByCategory(r.records, category))
}

// Search returns the loaded records matching query.
func (r *Repository) Search(query string) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(Search(r.records, query))
}

// Categories returns the distinct categories of the loaded records.
func (r *Repository) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Categories(r.records)
}
