package runtimeconfig

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogfront/internal/markdown"
)

// Source providers.
const (
	SourceHTTP = "http"
	SourceFS   = "fs"
	SourceS3   = "s3"
)

// Cache providers.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config aggregates every setting of the blog front end.
type Config struct {
	Site      SiteConfig      `mapstructure:"site"`
	Source    SourceConfig    `mapstructure:"source"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Markdown  MarkdownConfig  `mapstructure:"markdown"`
	Server    ServerConfig    `mapstructure:"server"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	// BaseURL prefixes absolute links in feeds, sitemaps and static pages.
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
}

// SourceConfig selects where posts are read from.
type SourceConfig struct {
	Provider string `mapstructure:"provider"`
	// BaseURL and PostsPath locate posts for the http provider.
	BaseURL   string `mapstructure:"base_url"`
	PostsPath string `mapstructure:"posts_path"`
	IndexFile string `mapstructure:"index_file"`
	// ContentDir is read by the fs provider and watched by serve --watch.
	ContentDir  string        `mapstructure:"content_dir"`
	Discover    bool          `mapstructure:"discover"`
	Pattern     string        `mapstructure:"pattern"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
	S3          S3Config      `mapstructure:"s3"`
}

// S3Config locates posts in a bucket.
type S3Config struct {
	Bucket       string `mapstructure:"bucket"`
	Prefix       string `mapstructure:"prefix"`
	Region       string `mapstructure:"region"`
	Profile      string `mapstructure:"profile"`
	Endpoint     string `mapstructure:"endpoint"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

// CacheConfig controls the document cache.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Provider  string        `mapstructure:"provider"`
	TTL       time.Duration `mapstructure:"ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	Redis     RedisConfig   `mapstructure:"redis"`
}

// RedisConfig addresses the redis document cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MarkdownConfig mirrors interfaces.ParseOptions.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	Sanitize   bool     `mapstructure:"sanitize"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	Watch         bool          `mapstructure:"watch"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
}

// GeneratorConfig configures the static export.
type GeneratorConfig struct {
	OutputDir       string `mapstructure:"output_dir"`
	CleanBuild      bool   `mapstructure:"clean_build"`
	CopyAssets      bool   `mapstructure:"copy_assets"`
	GenerateFeed    bool   `mapstructure:"generate_feed"`
	GenerateSitemap bool   `mapstructure:"generate_sitemap"`
	GenerateRobots  bool   `mapstructure:"generate_robots"`
	FeedLimit       int    `mapstructure:"feed_limit"`
}

// LoggingConfig selects the logger provider.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns settings for a local http source on the default
// static layout.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Name:     "Blog",
			Language: "en",
		},
		Source: SourceConfig{
			Provider:    SourceHTTP,
			BaseURL:     "http://localhost:8000",
			PostsPath:   "posts",
			IndexFile:   "index.json",
			ContentDir:  "posts",
			Pattern:     "**/*.md",
			Timeout:     10 * time.Second,
			Concurrency: 8,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Provider:  CacheMemory,
			TTL:       5 * time.Minute,
			KeyPrefix: "blogfront:doc:",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm"},
		},
		Server: ServerConfig{
			Addr:          ":8080",
			WatchDebounce: 300 * time.Millisecond,
			ReadTimeout:   15 * time.Second,
			WriteTimeout:  30 * time.Second,
		},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			CleanBuild:      true,
			CopyAssets:      true,
			GenerateFeed:    true,
			GenerateSitemap: true,
			GenerateRobots:  true,
			FeedLimit:       20,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate checks the configuration and reports every invalid field as a
// go-errors validation error.
func (cfg Config) Validate() error {
	provider := normalize(cfg.Source.Provider)
	cacheProvider := normalize(cfg.Cache.Provider)
	logProvider := normalize(cfg.Logging.Provider)

	errs := validation.Errors{
		"site.name": validation.Validate(cfg.Site.Name, validation.Required),
		"source.provider": validation.Validate(provider,
			validation.Required, validation.In(SourceHTTP, SourceFS, SourceS3).Error("must be http, fs or s3")),
		"source.base_url": validation.Validate(cfg.Source.BaseURL,
			validation.When(provider == SourceHTTP, validation.Required)),
		"source.content_dir": validation.Validate(cfg.Source.ContentDir,
			validation.When(provider == SourceFS, validation.Required)),
		"source.s3.bucket": validation.Validate(cfg.Source.S3.Bucket,
			validation.When(provider == SourceS3, validation.Required)),
		"source.index_file":  validation.Validate(cfg.Source.IndexFile, validation.Required),
		"source.timeout":     validation.Validate(int64(cfg.Source.Timeout), validation.Min(int64(0))),
		"source.concurrency": validation.Validate(cfg.Source.Concurrency, validation.Min(0)),
		"cache.provider": validation.Validate(cacheProvider,
			validation.When(cfg.Cache.Enabled, validation.Required, validation.In(CacheMemory, CacheRedis))),
		"cache.redis.addr": validation.Validate(cfg.Cache.Redis.Addr,
			validation.When(cfg.Cache.Enabled && cacheProvider == CacheRedis, validation.Required)),
		"markdown.extensions": validation.Validate(cfg.Markdown.Extensions,
			validation.Each(validation.By(knownExtension))),
		"server.addr":          validation.Validate(cfg.Server.Addr, validation.Required),
		"generator.output_dir": validation.Validate(strings.TrimSpace(cfg.Generator.OutputDir), validation.Required),
		"generator.feed_limit": validation.Validate(cfg.Generator.FeedLimit, validation.Min(0)),
		"logging.provider": validation.Validate(logProvider,
			validation.Required, validation.In("console", "gologger")),
		"logging.level": validation.Validate(normalize(cfg.Logging.Level),
			validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")),
		"logging.format": validation.Validate(normalize(cfg.Logging.Format),
			validation.In("json", "console", "pretty")),
	}
	if err := errs.Filter(); err != nil {
		return goerrors.FromOzzoValidation(err, "invalid blogfront configuration")
	}
	return nil
}

var errUnknownExtension = validation.NewError("validation_markdown_extension", "unknown markdown extension")

func knownExtension(value any) error {
	name, _ := value.(string)
	if !markdown.KnownExtension(name) {
		return errUnknownExtension
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
