// Package blogfront serves and exports a markdown blog read from a static
// host, a local directory or an S3 bucket.
package blogfront

import (
	"github.com/goliatone/go-blogfront/internal/article"
	"github.com/goliatone/go-blogfront/internal/di"
	"github.com/goliatone/go-blogfront/internal/generator"
	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/server"
	"github.com/goliatone/go-blogfront/internal/site"
	"github.com/goliatone/go-blogfront/internal/watch"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

// PostRepository exports the loaded post collection.
type PostRepository = *posts.Repository

// Post exports a listing record.
type Post = posts.Record

// ArticleService exports the single article loader.
type ArticleService = *article.Service

// Article exports a loaded article.
type Article = article.Article

// GeneratorService exports the static site generator.
type GeneratorService = *generator.Service

// BuildResult exports the generator report.
type BuildResult = generator.BuildResult

// Module represents the top level blogfront runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module using cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.container.Config
}

// Logger returns a logger for module name.
func (m *Module) Logger(name string) interfaces.Logger {
	return m.container.LoggerProvider().GetLogger(name)
}

// Posts returns the post repository.
func (m *Module) Posts() PostRepository {
	return m.container.Repository()
}

// Articles returns the article loader.
func (m *Module) Articles() ArticleService {
	return m.container.Articles()
}

// Site returns the page service rendering listings and articles.
func (m *Module) Site() *site.Service {
	return m.container.Site()
}

// Server builds the HTTP server.
func (m *Module) Server(debug bool) *server.Server {
	return m.container.Server(debug)
}

// Generator builds the static site generator.
func (m *Module) Generator() (GeneratorService, error) {
	return m.container.Generator()
}

// Watcher builds the content directory watcher.
func (m *Module) Watcher() (*watch.Watcher, error) {
	return m.container.Watcher()
}

// Close releases cache connections.
func (m *Module) Close() error {
	return m.container.Close()
}
