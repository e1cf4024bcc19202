// Package command contains the CLI command constructors.
package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/drdobbymazz/fittrack/internal/config"
	"github.com/drdobbymazz/fittrack/internal/observability"
)

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	var (
		address    string
		dbFilepath string
	)
	cmd := &cobra.Command{
		Use:          "fittrack [command] [flags]",
		Short:        "The fitness tracking web app",
		Version:      version(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if address != "" {
				cfg.Address = address
			}
			if dbFilepath != "" {
				cfg.DBFilepath = dbFilepath
			}
			logger := observability.InitSlog(cfg)
			logger.DebugContext(cmd.Context(), "configuration loaded", slog.Any("config", cfg))
			slog.SetDefault(logger)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(
		&address,
		"address", "a",
		"",
		"listen address, overriding FITTRACK_ADDRESS",
	)
	cmd.PersistentFlags().StringVar(
		&dbFilepath,
		"db",
		"",
		"database file path, overriding FITTRACK_DB",
	)

	cmd.AddCommand(
		serveCommand(),
		userCommand(),
		seedCommand(),
	)

	return cmd
}
