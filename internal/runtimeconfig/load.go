package runtimeconfig

import (
	"errors"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BLOGFRONT_SITE_NAME.
const EnvPrefix = "BLOGFRONT"

// LoadOptions controls where Load reads settings from.
type LoadOptions struct {
	// ConfigFile is an explicit config path. Empty searches for
	// blogfront.{yaml,json,toml} in the working directory.
	ConfigFile string
	// EnvFile is loaded with godotenv before reading the environment.
	// Empty means ".env"; a missing file is ignored.
	EnvFile string
	// Flags maps config keys to command line flags. Only flags the user
	// changed override other sources.
	Flags map[string]*pflag.Flag
}

// Load resolves the configuration from defaults, an optional config file,
// BLOGFRONT_ environment variables and bound flags, in increasing priority,
// and validates it.
func Load(opts LoadOptions) (Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "load env file "+envFile)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("blogfront")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "bind flag "+key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return Config{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment variables resolve for
// keys absent from the config file.
func setDefaults(v *viper.Viper, cfg Config) {
	defaults := map[string]any{
		"site.name":        cfg.Site.Name,
		"site.description": cfg.Site.Description,
		"site.base_url":    cfg.Site.BaseURL,
		"site.language":    cfg.Site.Language,

		"source.provider":          cfg.Source.Provider,
		"source.base_url":          cfg.Source.BaseURL,
		"source.posts_path":        cfg.Source.PostsPath,
		"source.index_file":        cfg.Source.IndexFile,
		"source.content_dir":       cfg.Source.ContentDir,
		"source.discover":          cfg.Source.Discover,
		"source.pattern":           cfg.Source.Pattern,
		"source.timeout":           cfg.Source.Timeout,
		"source.concurrency":       cfg.Source.Concurrency,
		"source.s3.bucket":         cfg.Source.S3.Bucket,
		"source.s3.prefix":         cfg.Source.S3.Prefix,
		"source.s3.region":         cfg.Source.S3.Region,
		"source.s3.profile":        cfg.Source.S3.Profile,
		"source.s3.endpoint":       cfg.Source.S3.Endpoint,
		"source.s3.use_path_style": cfg.Source.S3.UsePathStyle,

		"cache.enabled":        cfg.Cache.Enabled,
		"cache.provider":       cfg.Cache.Provider,
		"cache.ttl":            cfg.Cache.TTL,
		"cache.key_prefix":     cfg.Cache.KeyPrefix,
		"cache.redis.addr":     cfg.Cache.Redis.Addr,
		"cache.redis.password": cfg.Cache.Redis.Password,
		"cache.redis.db":       cfg.Cache.Redis.DB,

		"markdown.extensions": cfg.Markdown.Extensions,
		"markdown.sanitize":   cfg.Markdown.Sanitize,
		"markdown.hard_wraps": cfg.Markdown.HardWraps,
		"markdown.safe_mode":  cfg.Markdown.SafeMode,

		"server.addr":           cfg.Server.Addr,
		"server.watch":          cfg.Server.Watch,
		"server.watch_debounce": cfg.Server.WatchDebounce,
		"server.read_timeout":   cfg.Server.ReadTimeout,
		"server.write_timeout":  cfg.Server.WriteTimeout,

		"generator.output_dir":       cfg.Generator.OutputDir,
		"generator.clean_build":      cfg.Generator.CleanBuild,
		"generator.copy_assets":      cfg.Generator.CopyAssets,
		"generator.generate_feed":    cfg.Generator.GenerateFeed,
		"generator.generate_sitemap": cfg.Generator.GenerateSitemap,
		"generator.generate_robots":  cfg.Generator.GenerateRobots,
		"generator.feed_limit":       cfg.Generator.FeedLimit,

		"logging.provider":   cfg.Logging.Provider,
		"logging.level":      cfg.Logging.Level,
		"logging.format":     cfg.Logging.Format,
		"logging.add_source": cfg.Logging.AddSource,
		"logging.focus":      cfg.Logging.Focus,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
