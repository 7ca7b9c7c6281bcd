package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := a.module(cmd, map[string]string{
				"server.addr":  "addr",
				"server.watch": "watch",
			})
			if err != nil {
				return err
			}
			defer module.Close()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := module.Config()
			logger := module.Logger("blogfront.cli")
			if err := module.Posts().EnsureLoaded(ctx); err != nil {
				logger.Warn("initial post load failed", "error", err)
			}

			if cfg.Server.Watch {
				watcher, err := module.Watcher()
				if err != nil {
					return err
				}
				go func() {
					if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
						logger.Error("content watcher stopped", "error", err)
					}
				}()
			}

			debug := strings.EqualFold(strings.TrimSpace(cfg.Logging.Level), "debug")
			logger.Info("serving", "addr", cfg.Server.Addr, "source", cfg.Source.Provider, "watch", cfg.Server.Watch)
			return module.Server(debug).Run(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Bool("watch", false, "reload posts when the content directory changes")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
