package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

const (
	rootModule      = "blogfront"
	postsModule     = "blogfront.posts"
	sourceModule    = "blogfront.source"
	articleModule   = "blogfront.article"
	serverModule    = "blogfront.server"
	generatorModule = "blogfront.generator"
	watchModule     = "blogfront.watch"
)

const (
	fieldPostFile   = "post_file"
	fieldPostAction = "action"
)

// ModuleLogger returns a logger scoped to module. Without a provider it
// returns the no-op logger. The module name is attached as the "module"
// field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PostsLogger returns the logger used by the post repository.
func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postsModule)
}

// SourceLogger returns the logger used by content sources and caches.
func SourceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sourceModule)
}

// ArticleLogger returns the logger used when loading single articles.
func ArticleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, articleModule)
}

// ServerLogger returns the logger used by the HTTP server.
func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

// GeneratorLogger returns the logger used by the static generator.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// WatchLogger returns the logger used by the content watcher.
func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

// WithPostContext adds the post file and the action being performed on it.
// Blank values are skipped.
func WithPostContext(logger interfaces.Logger, file, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(file); trimmed != "" {
		fields[fieldPostFile] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldPostAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
