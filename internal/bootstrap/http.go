package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roktoseba/ui-gateway/config"
	httpx "github.com/roktoseba/ui-gateway/internal/http"
)

const shutdownWaitTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance plus a channel that reports a listener failure.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, <-chan error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	services := httpx.RouterServices{
		Auth:         cfg.Services.Auth,
		Backend:      cfg.Services.Backend,
		CookieDomain: cfg.Config.HTTP.CookieDomain,
		Logger:       logger,
	}
	// A typed-nil uploader must not reach the interface field.
	if cfg.Services.Uploader != nil {
		services.Uploader = cfg.Services.Uploader
	}

	// NewRouter applies the Recover/Logging/SessionLoader chain itself.
	handler := httpx.NewRouter(services)

	addr := cfg.Config.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return server, errCh
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWaitTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}

// RunWithShutdown starts the HTTP server and blocks until a shutdown signal is
// received or the listener fails, then tears everything down in order.
func RunWithShutdown(cfg *HTTPServerConfig) error {
	if cfg == nil {
		return errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server, errCh := StartHTTPServer(cfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down services...")
	case err := <-errCh:
		logger.Error("HTTP server failed", "error", err)
		runErr = err
	}

	if err := ShutdownHTTPServer(context.Background(), server, logger); err != nil {
		logger.Error("graceful stop failed", "error", err)
		if runErr == nil {
			runErr = err
		}
	}

	// Pending identity resolutions are canceled with the runtimes.
	cfg.Services.Close()

	return runErr
}
