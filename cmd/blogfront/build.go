package main

import (
	"github.com/spf13/cobra"
)

func newBuildCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the blog as static files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := a.module(cmd, map[string]string{
				"generator.output_dir": "output",
			})
			if err != nil {
				return err
			}
			defer module.Close()

			gen, err := module.Generator()
			if err != nil {
				return err
			}
			result, err := gen.Build(commandContext(cmd))
			if err != nil {
				return err
			}
			return console(cmd).Build(module.Config().Generator.OutputDir, result)
		},
	}
	cmd.Flags().StringP("output", "o", "", "output directory (default dist)")
	return cmd
}
