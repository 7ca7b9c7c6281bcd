package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-blogfront/internal/frontmatter"
)

func newShowCommand(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print one post's metadata, table of contents and excerpt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.module(cmd, nil)
			if err != nil {
				return err
			}
			defer module.Close()

			ctx := commandContext(cmd)
			if raw {
				data, err := module.Container().Source().Document(ctx, args[0])
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(frontmatter.Marshal(frontmatter.Parse(data)))
				return err
			}

			loaded, err := module.Articles().Load(ctx, args[0])
			if err != nil {
				return err
			}
			return console(cmd).Article(loaded)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the normalised front matter and markdown body")
	return cmd
}
