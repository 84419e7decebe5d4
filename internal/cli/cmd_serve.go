package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/reflections/internal/core"
	"github.com/JonMunkholm/reflections/internal/web"
	"github.com/spf13/cobra"
)

func newServeCommand(d *commandDeps) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reflections site and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverCfg := d.cfg.Server
			serverCfg.Host, serverCfg.Port = host, port

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withService(ctx, d, func(svc *core.Service) error {
				server := web.NewServer(svc, web.Options{
					Server:  serverCfg,
					Rate:    d.cfg.Rate,
					BaseURL: d.cfg.Site.BaseURL,
				})

				errCh := make(chan error, 1)
				go func() { errCh <- server.Start(serverCfg.Addr()) }()

				select {
				case err := <-errCh:
					server.Shutdown(context.Background())
					return err
				case <-ctx.Done():
				}

				slog.Info("shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return err
				}
				if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				slog.Info("server stopped")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&host, "host", d.cfg.Server.Host, "Interface to bind")
	cmd.Flags().IntVar(&port, "port", d.cfg.Server.Port, "Port to listen on")
	return cmd
}
