package di

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-blogfront/internal/article"
	"github.com/goliatone/go-blogfront/internal/generator"
	"github.com/goliatone/go-blogfront/internal/logging"
	"github.com/goliatone/go-blogfront/internal/logging/console"
	"github.com/goliatone/go-blogfront/internal/logging/gologger"
	"github.com/goliatone/go-blogfront/internal/markdown"
	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/render"
	"github.com/goliatone/go-blogfront/internal/runtimeconfig"
	"github.com/goliatone/go-blogfront/internal/server"
	"github.com/goliatone/go-blogfront/internal/site"
	"github.com/goliatone/go-blogfront/internal/source"
	"github.com/goliatone/go-blogfront/internal/watch"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

// Container wires blogfront services together.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	source     source.Source
	cache      *source.CachedSource
	cacheStore source.Store
	closers    []func() error

	parser   interfaces.MarkdownParser
	repo     *posts.Repository
	articles *article.Service
	renderer *render.Renderer
	site     *site.Service

	staticRenderer *render.Renderer
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by logging.provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithSource replaces the configured content source. The document cache
// still wraps it when enabled.
func WithSource(src source.Source) Option {
	return func(c *Container) {
		c.source = src
	}
}

// WithCacheStore overrides the store behind the document cache.
func WithCacheStore(store source.Store) Option {
	return func(c *Container) {
		c.cacheStore = store
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// NewContainer validates cfg and builds the service graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "blogfront.di")

	if err := c.configureSource(); err != nil {
		return nil, err
	}
	c.configureCache()

	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
			Extensions: cfg.Markdown.Extensions,
			Sanitize:   cfg.Markdown.Sanitize,
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
		})
	}

	documents := c.documents()
	c.repo = posts.NewRepository(documents, posts.Options{
		Concurrency: cfg.Source.Concurrency,
		Logger:      logging.PostsLogger(c.loggerProvider),
	})
	c.articles = article.NewService(documents, c.parser, logging.ArticleLogger(c.loggerProvider))

	renderer, err := c.newRenderer(render.ModeDynamic)
	if err != nil {
		return nil, err
	}
	c.renderer = renderer
	c.site = site.NewService(c.repo, c.articles, renderer, logging.ServerLogger(c.loggerProvider))

	c.logger.Info("container.configured",
		"source", normalize(cfg.Source.Provider),
		"cache", c.cacheProvider(),
		"logging", normalize(cfg.Logging.Provider),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	cfg := c.Config.Logging
	switch normalize(cfg.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   os.Stderr,
			MinLevel: &level,
			Color:    isTerminal(os.Stderr),
		})
	}
	return nil
}

func (c *Container) configureSource() error {
	if c.source != nil {
		return nil
	}

	cfg := c.Config.Source
	switch normalize(cfg.Provider) {
	case runtimeconfig.SourceFS:
		c.source = source.NewFSSource(os.DirFS(cfg.ContentDir), source.FSConfig{
			IndexFile: cfg.IndexFile,
			Discover:  cfg.Discover,
			Pattern:   cfg.Pattern,
		})
	case runtimeconfig.SourceS3:
		// The AWS config chain is resolved once at startup.
		src, err := source.NewS3Source(context.Background(), source.S3Config{
			Bucket:       cfg.S3.Bucket,
			Prefix:       cfg.S3.Prefix,
			IndexFile:    cfg.IndexFile,
			Region:       cfg.S3.Region,
			Profile:      cfg.S3.Profile,
			Endpoint:     cfg.S3.Endpoint,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		if err != nil {
			return fmt.Errorf("di: configure s3 source: %w", err)
		}
		c.source = src
	default:
		src, err := source.NewHTTPSource(source.HTTPConfig{
			BaseURL:   cfg.BaseURL,
			PostsPath: cfg.PostsPath,
			IndexFile: cfg.IndexFile,
			Timeout:   cfg.Timeout,
		})
		if err != nil {
			return err
		}
		c.source = src
	}
	return nil
}

func (c *Container) configureCache() {
	cfg := c.Config.Cache
	if !cfg.Enabled {
		return
	}

	store := c.cacheStore
	if store == nil {
		switch normalize(cfg.Provider) {
		case runtimeconfig.CacheRedis:
			redisStore := source.NewRedisStore(source.RedisConfig{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			c.closers = append(c.closers, redisStore.Close)
			store = redisStore
		default:
			store = source.NewMemoryStore()
		}
		c.cacheStore = store
	}

	c.cache = source.NewCachedSource(c.source, store, source.CacheOptions{
		TTL:       cfg.TTL,
		KeyPrefix: cfg.KeyPrefix,
		Logger:    logging.SourceLogger(c.loggerProvider),
	})
}

func (c *Container) documents() source.Source {
	if c.cache != nil {
		return c.cache
	}
	return c.source
}

func (c *Container) cacheProvider() string {
	if c.cache == nil {
		return "none"
	}
	provider := normalize(c.Config.Cache.Provider)
	if provider == "" {
		return runtimeconfig.CacheMemory
	}
	return provider
}

func (c *Container) newRenderer(mode render.Mode) (*render.Renderer, error) {
	links, err := render.NewLinks(c.Config.Site.BaseURL, mode)
	if err != nil {
		return nil, err
	}
	return render.New(render.Options{Links: links, SiteName: c.Config.Site.Name})
}

// LoggerProvider returns the active logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Source returns the document source, including the cache when enabled.
func (c *Container) Source() source.Source {
	return c.documents()
}

// Repository returns the post repository.
func (c *Container) Repository() *posts.Repository {
	return c.repo
}

// Articles returns the article loader.
func (c *Container) Articles() *article.Service {
	return c.articles
}

// Renderer returns the renderer used by the server.
func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

// Site returns the page service.
func (c *Container) Site() *site.Service {
	return c.site
}

// Server builds the HTTP server.
func (c *Container) Server(debug bool) *server.Server {
	cfg := c.Config.Server
	return server.New(server.Options{
		Site:         c.site,
		State:        c.repo,
		Logger:       logging.ServerLogger(c.loggerProvider),
		Debug:        debug,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// Generator builds the static site generator. Its pages use static links.
func (c *Container) Generator() (*generator.Service, error) {
	if c.staticRenderer == nil {
		renderer, err := c.newRenderer(render.ModeStatic)
		if err != nil {
			return nil, err
		}
		c.staticRenderer = renderer
	}

	siteCfg := c.Config.Site
	gen := c.Config.Generator
	return generator.NewService(generator.Config{
		OutputDir:       gen.OutputDir,
		BaseURL:         siteCfg.BaseURL,
		SiteName:        siteCfg.Name,
		Description:     siteCfg.Description,
		Language:        siteCfg.Language,
		CleanBuild:      gen.CleanBuild,
		CopyAssets:      gen.CopyAssets,
		GenerateFeed:    gen.GenerateFeed,
		GenerateSitemap: gen.GenerateSitemap,
		GenerateRobots:  gen.GenerateRobots,
		FeedLimit:       gen.FeedLimit,
		Workers:         c.Config.Source.Concurrency,
	}, generator.Dependencies{
		Posts:    c.repo,
		Articles: c.articles,
		Renderer: c.staticRenderer,
		Logger:   logging.GeneratorLogger(c.loggerProvider),
	}), nil
}

// Watcher watches the content directory and reloads the repository on
// change, dropping cached documents first.
func (c *Container) Watcher() (*watch.Watcher, error) {
	opts := watch.Options{
		Dir:      c.Config.Source.ContentDir,
		Debounce: c.Config.Server.WatchDebounce,
		Reloader: c.repo,
		Logger:   logging.WatchLogger(c.loggerProvider),
	}
	if c.cache != nil {
		opts.Invalidator = c.cache
	}
	return watch.New(opts)
}

// Close releases connections held by the container.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
