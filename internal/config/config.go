package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// DataFile is the absolute path of the readings file served at /.
	DataFile string
	// DataDir is the absolute path of the directory holding per-device <id>.json files.
	DataDir string

	ShutdownTimeout time.Duration
}

// rawConfig mirrors the keys accepted from the YAML file and the environment.
type rawConfig struct {
	AppEnv          string        `koanf:"app_env"`
	LogLevel        string        `koanf:"log_level"`
	HTTPAddr        string        `koanf:"http_addr"`
	DataFile        string        `koanf:"data_file"`
	DataDir         string        `koanf:"data_dir"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

func defaults() rawConfig {
	return rawConfig{
		AppEnv:          "dev",
		LogLevel:        "info",
		HTTPAddr:        ":8080",
		DataFile:        "data.json",
		DataDir:         "data",
		ShutdownTimeout: 10 * time.Second,
	}
}

func (raw rawConfig) validate() (Config, error) {
	appEnv := strings.TrimSpace(raw.AppEnv)
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("%w: APP_ENV %q (allowed: dev, prod)", ErrInvalidConfig, appEnv)
	}

	level, err := parseLogLevel(raw.LogLevel)
	if err != nil {
		return Config{}, err
	}

	httpAddr := strings.TrimSpace(raw.HTTPAddr)
	if httpAddr == "" {
		return Config{}, fmt.Errorf("%w: HTTP_ADDR must not be empty", ErrInvalidConfig)
	}

	dataFile, err := absPath("DATA_FILE", raw.DataFile)
	if err != nil {
		return Config{}, err
	}
	dataDir, err := absPath("DATA_DIR", raw.DataDir)
	if err != nil {
		return Config{}, err
	}

	if raw.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: SHUTDOWN_TIMEOUT must be positive, got %s", ErrInvalidConfig, raw.ShutdownTimeout)
	}

	return Config{
		AppEnv:          appEnv,
		LogLevel:        level,
		HTTPAddr:        httpAddr,
		DataFile:        dataFile,
		DataDir:         dataDir,
		ShutdownTimeout: raw.ShutdownTimeout,
	}, nil
}

// absPath resolves p against the working directory at startup.
func absPath(name, p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, name)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%s %q: %w", name, p, err)
	}
	return abs, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: LOG_LEVEL %q (allowed: debug, info, warn, error)", ErrInvalidConfig, s)
	}
}
