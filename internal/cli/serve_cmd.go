package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/counsel/internal/api"
	"github.com/alexanderramin/counsel/internal/mcpserver"
)

const sessionSweepInterval = time.Minute

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.HTTPAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serveHTTP(ctx, app, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

// serveHTTP runs the API until ctx is done, then drains in-flight requests
// for up to app.ShutdownTimeout.
func serveHTTP(ctx context.Context, app *App, addr string) error {
	logger := app.logger()
	srv := &http.Server{
		Addr: addr,
		Handler: api.NewRouter(api.Services{
			Students: app.Students,
			Planning: app.Planning,
			Meetings: app.Meetings,
			Sessions: app.Sessions,
			Location: app.location(),
		}, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		timeout := app.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), timeout)
		defer cancel()
		logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if app.SweepSessions != nil {
		g.Go(func() error {
			ticker := time.NewTicker(sessionSweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if n := app.SweepSessions(); n > 0 {
						logger.Debug("expired planning sessions removed", zap.Int("count", n))
					}
				}
			}
		})
	}

	return g.Wait()
}

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the planning tools to MCP clients over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := mcpserver.New(app.Students, app.Planning, app.location(), app.logger())
			return srv.Serve(cmd.Context(), app.Version, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
