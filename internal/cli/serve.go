package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlens/internal/server"
	"github.com/matzehuels/graphlens/pkg/session"
)

// serveCommand creates the serve command for running the exploration API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen      string
		entrypoints []string
	)

	cmd := &cobra.Command{
		Use:   "serve [graph.json]",
		Short: "Serve the HTTP exploration API",
		Long: `Serve the HTTP exploration API for a graph.

Each client session owns an independent visible set. Session state is
persisted through the configured backend (memory, file, or redis) so
explorations survive server restarts when a durable backend is selected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = c.Config.Listen
			}
			return c.runServe(cmd.Context(), args[0], listen, entrypoints)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	cmd.Flags().StringSliceVar(&entrypoints, "entrypoint", nil, "entrypoint node id (repeatable, disables pattern matching)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, graphPath, listen string, entrypoints []string) error {
	runner, err := c.newRunner(false)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Build(ctx, c.buildOptions(graphPath, entrypoints))
	if err != nil {
		return fmt.Errorf("build explorer: %w", err)
	}

	sessions, err := c.newSessionStore(ctx)
	if err != nil {
		return err
	}

	srv := server.New(result, runner, server.Config{
		Sessions: sessions,
		Logger:   c.Logger,
	})

	httpSrv := &http.Server{
		Addr:    listen,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving exploration API", "addr", listen, "graph", graphPath)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newSessionStore creates the configured session backend.
func (c *CLI) newSessionStore(ctx context.Context) (session.Store, error) {
	switch c.Config.Session.Backend {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "file":
		return session.NewFileStore(c.Config.Session.Dir)
	case "redis":
		return session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     c.Config.Session.Redis.Addr,
			Password: c.Config.Session.Redis.Password,
			DB:       c.Config.Session.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown session backend: %s", c.Config.Session.Backend)
	}
}
