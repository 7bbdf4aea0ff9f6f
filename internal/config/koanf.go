package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"movierec.yaml",
	"movierec.yml",
	"config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "MOVIEREC_"

// envKeys maps lowercased variable names (prefix stripped) to koanf paths.
// Keys contain underscores themselves, so a generic "_" -> "." split does not work.
var envKeys = map[string]string{
	"api_base_url":              "api.base_url",
	"api_timeout":               "api.timeout",
	"api_user_agent":            "api.user_agent",
	"api_rate_per_second":       "api.rate_per_second",
	"api_burst":                 "api.burst",
	"api_breaker_min_requests":  "api.breaker_min_requests",
	"api_breaker_failure_ratio": "api.breaker_failure_ratio",
	"api_breaker_open_timeout":  "api.breaker_open_timeout",
	"ui_typing_interval":        "ui.typing_interval",
	"ui_carousel_interval":      "ui.carousel_interval",
	"ui_carousel_visible":       "ui.carousel_visible",
	"ui_image_base_url":         "ui.image_base_url",
	"ui_placeholder_url":        "ui.placeholder_url",
	"log_level":                 "log.level",
	"log_format":                "log.format",
	"log_file":                  "log.file",
	"log_caller":                "log.caller",
	"metrics_addr":              "metrics.addr",
}

// Load builds the configuration from defaults, the config file and the environment.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file path; an empty path skips the file layer.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envTransform turns MOVIEREC_API_BASE_URL into api.base_url. Unknown
// variables map to "" and are skipped by the provider.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envKeys[key]
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
