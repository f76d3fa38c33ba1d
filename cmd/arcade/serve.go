package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/mini-arcade/internal/api"
	"github.com/vovakirdan/mini-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagNoSSH       bool
	flagNoHTTP      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the arcade over SSH and the score API over HTTP",
	Long: `Start an SSH server that allows users to connect and play games, and an
HTTP server exposing high scores, run history and Prometheus metrics.

Each SSH connection gets its own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).

HTTP endpoints:
  GET /healthz
  GET /metrics
  GET /api/games
  GET /api/games/{game}
  GET /api/games/{game}/best
  GET /api/games/{game}/scores?limit=10
  GET /api/games/{game}/stats
  GET /api/runs/recent?limit=10

Examples:
  arcade serve                          # Addresses from arcade.yaml
  arcade serve --ssh :2222 --http :8080
  arcade serve --no-http                # SSH only
  arcade serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from arcade.yaml)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (default from arcade.yaml)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoSSH, "no-ssh", false, "Do not start the SSH server")
	serveCmd.Flags().BoolVar(&flagNoHTTP, "no-http", false, "Do not start the HTTP API")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagNoSSH && flagNoHTTP {
		return errors.New("nothing to serve: both --no-ssh and --no-http are set")
	}
	srv := appConfig.Server
	if flagSSHAddr != "" {
		srv.SSHAddr = flagSSHAddr
	}
	if flagHTTPAddr != "" {
		srv.HTTPAddr = flagHTTPAddr
	}
	if flagHostKey != "" {
		srv.HostKeyPath = flagHostKey
	}

	svc, runs := openServices()
	if runs != nil {
		defer runs.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if !flagNoSSH {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = srv.SSHAddr
		cfg.HostKeyPath = srv.HostKeyPath
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.TickRate = appConfig.TickRate

		sshServer, err := tui.NewSSHServer(cfg, svc)
		if err != nil {
			return err
		}
		g.Go(func() error { return sshServer.Serve(ctx) })
	}

	if !flagNoHTTP {
		apiCfg := api.Config{
			Bests:       svc.Scores,
			Metrics:     svc.Metrics,
			Logger:      logger.WithPrefix("http"),
			RateLimit:   srv.RateLimit,
			RateBurst:   srv.RateBurst,
			CORSOrigins: srv.CORSOrigins,
		}
		if runs != nil {
			apiCfg.Runs = runs
		}
		httpServer := &http.Server{
			Addr:              srv.HTTPAddr,
			Handler:           api.NewRouter(apiCfg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error { return serveHTTP(ctx, httpServer) })
	}

	logger.Info("arcade server running, press Ctrl+C to stop")
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("arcade server stopped")
	return nil
}

// serveHTTP runs server until ctx is cancelled, then shuts it down.
func serveHTTP(ctx context.Context, server *http.Server) error {
	logger.Info("starting HTTP API", "address", server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
