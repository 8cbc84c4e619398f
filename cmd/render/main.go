// Command render prints the weather card for DATA_FILE to stdout.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"dht11-dashboard/internal/config"
	"dht11-dashboard/internal/logging"
	"dht11-dashboard/internal/modules/weather/repository"
	"dht11-dashboard/internal/modules/weather/service"
	"dht11-dashboard/internal/modules/weather/views"
)

const appName = "dht11-render"

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the page, so logs go to stderr.
	slog.SetDefault(logging.NewWithWriter(os.Stderr, cfg, version, appName))

	os.Exit(run(cfg, os.Stdout, os.Stderr))
}

func run(cfg config.Config, stdout, stderr io.Writer) int {
	if err := views.LoadTemplates(); err != nil {
		slog.Error("load templates failed", "error", err)
		return 1
	}

	svc := service.NewService(repository.NewRepository(cfg.DataDir), nil)
	err := svc.RenderCard(stdout, cfg.DataFile, "")
	switch {
	case err == nil:
		return 0
	case service.IsLoadError(err):
		fmt.Fprintln(stderr, service.Diagnostic)
	default:
		slog.Error("render failed", "error", err)
	}
	return 1
}
