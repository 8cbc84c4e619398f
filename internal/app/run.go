package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dht11-dashboard/internal/config"
	httpapi "dht11-dashboard/internal/httpapi"
	"dht11-dashboard/internal/metrics"
	weather "dht11-dashboard/internal/modules/weather"
	weatherviews "dht11-dashboard/internal/modules/weather/views"
)

// NewHandler builds the full routing tree: operational endpoints plus the weather feature.
func NewHandler(cfg config.Config, m *metrics.Manager) http.Handler {
	mux := httpapi.NewMux(cfg.DataFile, m.Handler())
	weather.RegisterFeature(mux, cfg.DataFile, cfg.DataDir, m)
	return mux
}

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"dataFile", cfg.DataFile,
		"dataDir", cfg.DataDir,
		"shutdownTimeout", cfg.ShutdownTimeout,
	)

	if err := weatherviews.LoadTemplates(); err != nil {
		return err
	}

	m := metrics.NewManager(metrics.WithRuntimeCollectors(true))
	srv := httpapi.NewServer(cfg, NewHandler(cfg, m), m)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err := <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
