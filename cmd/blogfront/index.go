package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blogfront/internal/source"
)

func newIndexCommand(_ *app) *cobra.Command {
	var pattern, indexFile string

	cmd := &cobra.Command{
		Use:   "index <dir>",
		Short: "Write the post manifest for a directory of markdown files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			files, err := source.Discover(os.DirFS(dir), pattern)
			if err != nil {
				return err
			}
			data, err := source.EncodeManifest(files)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, indexFile)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			return console(cmd).Index(path, files)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", source.DefaultPattern, "doublestar pattern matched below dir")
	cmd.Flags().StringVar(&indexFile, "index-file", source.DefaultIndexFile, "manifest file name")
	return cmd
}
