package main

import (
	"github.com/spf13/cobra"

	"github.com/bookswap-hub/bookswap/shared/shell/config"
)

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "bookswap",
		Short:        "Book swapping marketplace backed by an event store",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path of the YAML config file, environment variables override it")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newLoadgenCommand(opts),
	)

	return root
}

func (o *rootOptions) load() (config.Config, error) {
	return config.Load(o.configPath)
}
