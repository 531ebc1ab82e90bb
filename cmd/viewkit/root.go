package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
	envFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	state := &app{}

	cmd := &cobra.Command{
		Use:           "viewkit",
		Short:         "Search bar filters and document line-item tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*state = *loaded
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return state.Close()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "configuration file (yaml or json)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before environment overrides")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level override")

	cmd.AddCommand(
		newFiltersCmd(state),
		newItemsCmd(state),
		newServeCmd(state),
	)
	return cmd
}
