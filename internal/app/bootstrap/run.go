// internal/app/bootstrap/run.go
package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Run drives the full lifecycle: config, logger, DB, schema, handler,
// HTTP server. It blocks until ctx is cancelled or the server fails,
// then drains in-flight requests and disconnects the database.
func Run(ctx context.Context) error {
	bootLog, err := zap.NewDevelopment()
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(bootLog)
	if err != nil {
		return err
	}
	if err := ValidateConfig(cfg, bootLog); err != nil {
		return err
	}

	logger, err := NewLogger(cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	deps, err := ConnectDB(ctx, cfg, logger)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return err
	}

	if err := EnsureSchema(ctx, deps, logger); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		_ = Shutdown(context.Background(), deps, logger)
		return err
	}

	handler, err := BuildHandler(cfg, deps, logger)
	if err != nil {
		_ = Shutdown(context.Background(), deps, logger)
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			logger.Error("http server failed", zap.Error(err))
			runErr = err
		}
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("graceful shutdown failed", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}

	if err := Shutdown(drainCtx, deps, logger); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
