package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileEnv names the optional YAML file layered between defaults and env.
const ConfigFileEnv = "CONFIG_FILE"

var envKeys = map[string]string{
	"APP_ENV":          "app_env",
	"LOG_LEVEL":        "log_level",
	"HTTP_ADDR":        "http_addr",
	"DATA_FILE":        "data_file",
	"DATA_DIR":         "data_dir",
	"SHUTDOWN_TIMEOUT": "shutdown_timeout",
}

// Load layers defaults, the YAML file named by CONFIG_FILE and then the
// environment, and validates the result.
func Load() (Config, error) {
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s %q: %w", ConfigFileEnv, path, err)
		}
	}

	// Only whitelisted variables are read; blank ones keep the lower layer.
	envProvider := env.Provider("", ".", func(s string) string {
		key, ok := envKeys[s]
		if !ok || strings.TrimSpace(os.Getenv(s)) == "" {
			return ""
		}
		return key
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	raw := defaults()
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return raw.validate()
}
