package blogfront

import "github.com/goliatone/go-blogfront/internal/runtimeconfig"

type (
	Config          = runtimeconfig.Config
	SiteConfig      = runtimeconfig.SiteConfig
	SourceConfig    = runtimeconfig.SourceConfig
	S3Config        = runtimeconfig.S3Config
	CacheConfig     = runtimeconfig.CacheConfig
	RedisConfig     = runtimeconfig.RedisConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	ServerConfig    = runtimeconfig.ServerConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	LoadOptions     = runtimeconfig.LoadOptions
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig merges defaults, the config file, the environment and bound
// flags, then validates the result.
func LoadConfig(opts LoadOptions) (Config, error) {
	return runtimeconfig.Load(opts)
}
