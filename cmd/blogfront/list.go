package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-blogfront/internal/site"
)

func newListCommand(a *app) *cobra.Command {
	var category, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the post listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := a.module(cmd, nil)
			if err != nil {
				return err
			}
			defer module.Close()

			repo := module.Posts()
			if err := repo.EnsureLoaded(commandContext(cmd)); err != nil {
				return err
			}

			filter := site.Filter{}
			switch {
			case category != "":
				filter = site.Category(category)
			case search != "":
				filter = site.Search(search)
			}
			return console(cmd).Posts(site.Apply(filter, repo.All()))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only posts in this category")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only posts whose title or body contains the query")
	cmd.MarkFlagsMutuallyExclusive("category", "search")
	return cmd
}
