package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/drdobbymazz/fittrack/internal/app"
	"github.com/drdobbymazz/fittrack/internal/server"
	"github.com/drdobbymazz/fittrack/internal/session"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the fitness tracking web app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			sessions := session.NewStore(cfg.SessionTTL)
			appServer, err := app.New(cfg, logger, store, sessions)
			if err != nil {
				return err
			}

			grp, ctx := errgroup.WithContext(cmd.Context())
			listener, err := server.Listen(ctx, cfg.Address)
			if err != nil {
				return err
			}

			logger.InfoContext(ctx,
				"starting app server...",
				slog.String("address", cfg.Address),
			)
			server.Serve(ctx, grp, appServer.Server, listener, server.ShutdownTimeout)
			return grp.Wait()
		},
	}
}
