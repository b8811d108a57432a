package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/ringlens"
	"github.com/aretw0/ringlens/internal/config"
	httpAdapter "github.com/aretw0/ringlens/pkg/adapters/http"
	"github.com/aretw0/ringlens/pkg/adapters/mcp"
	"github.com/aretw0/ringlens/pkg/metrics"
)

// ShutdownTimeout bounds the graceful shutdown of servers.
const ShutdownTimeout = 5 * time.Second

// ServeOptions configures RunServe.
type ServeOptions struct {
	UI fs.FS
	// Listener overrides cfg.Addr, mostly for tests.
	Listener net.Listener
	// Ready receives the bound address once the server accepts connections.
	Ready chan<- string
}

// RunServe starts the HTTP API and UI and blocks until ctx is done.
func RunServe(ctx context.Context, w io.Writer, cfg *config.Config, logger *slog.Logger, opts ServeOptions) error {
	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	reg := metrics.NewRegistry()
	engine, err := CreateEngine(ctx, cfg, logger, stores, ringlens.WithMetrics(reg))
	if err != nil {
		return err
	}

	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(reg),
		httpAdapter.WithCORSOrigin(cfg.CORS.Origin),
	}
	if opts.UI != nil {
		handlerOpts = append(handlerOpts, httpAdapter.WithUI(opts.UI))
	}

	srv := &http.Server{
		Handler:           httpAdapter.NewHandler(engine.Controller(), handlerOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln := opts.Listener
	if ln == nil {
		ln, err = net.Listen("tcp", cfg.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
		}
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	printSystemMessage(w, "Serving %d scenario(s) from %s on http://%s", engine.Catalog().Len(), engine.Source, ln.Addr())
	logger.Info("HTTP server listening", "addr", ln.Addr().String(), "store", cfg.Store.Driver, "source", engine.Source)
	if opts.Ready != nil {
		opts.Ready <- ln.Addr().String()
		close(opts.Ready)
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(w, "Server stopped gracefully")
		return nil
	}
}

// RunMCP serves the MCP tools over stdio, or over SSE when sseAddr is set.
func RunMCP(ctx context.Context, cfg *config.Config, logger *slog.Logger, sseAddr string) error {
	engine, err := CreateEngine(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}

	srv := mcp.NewServer(engine.Catalog(), mcp.WithLogger(logger))
	if sseAddr == "" {
		logger.Info("Starting MCP server (stdio)", "scenarios", engine.Catalog().Len())
		return srv.ServeStdio()
	}

	logger.Info("Starting MCP server (SSE)", "addr", sseAddr, "scenarios", engine.Catalog().Len())
	return srv.ServeSSE(ctx, sseAddr)
}
