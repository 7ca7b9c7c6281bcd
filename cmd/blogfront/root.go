package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	blogfront "github.com/goliatone/go-blogfront"
	"github.com/goliatone/go-blogfront/internal/output"
)

var moduleBuilder = func(cfg blogfront.Config) (*blogfront.Module, error) {
	return blogfront.New(cfg)
}

type app struct {
	configFile string
	envFile    string
	// bindings maps config keys to persistent flags.
	bindings map[string]string
}

func newRootCommand() *cobra.Command {
	a := &app{
		bindings: map[string]string{
			"logging.level":      "log-level",
			"source.provider":    "source",
			"source.content_dir": "content-dir",
			"site.base_url":      "base-url",
		},
	}

	root := &cobra.Command{
		Use:           "blogfront",
		Short:         "Serve and export a markdown blog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default searches ./blogfront.{yaml,json,toml})")
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file loaded before the environment (default .env)")
	flags.String("log-level", "", "trace, debug, info, warn or error")
	flags.String("source", "", "content source: http, fs or s3")
	flags.String("content-dir", "", "posts directory for the fs source and --watch")
	flags.String("base-url", "", "public site URL used in feeds, sitemaps and static links")

	root.AddCommand(
		newServeCommand(a),
		newBuildCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newIndexCommand(a),
	)
	return root
}

// config loads the configuration with the persistent flags and local, a
// map of config keys to flag names on cmd.
func (a *app) config(cmd *cobra.Command, local map[string]string) (blogfront.Config, error) {
	bound := map[string]*pflag.Flag{}
	for key, name := range a.bindings {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			bound[key] = flag
		}
	}
	for key, name := range local {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			bound[key] = flag
		}
	}
	return blogfront.LoadConfig(blogfront.LoadOptions{
		ConfigFile: a.configFile,
		EnvFile:    a.envFile,
		Flags:      bound,
	})
}

func (a *app) module(cmd *cobra.Command, local map[string]string) (*blogfront.Module, error) {
	cfg, err := a.config(cmd, local)
	if err != nil {
		return nil, err
	}
	return moduleBuilder(cfg)
}

func console(cmd *cobra.Command) *output.Console {
	w := cmd.OutOrStdout()
	return output.NewConsole(w, isTerminal(w))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
