// Package config loads movierec settings from built-in defaults, an optional
// YAML file and MOVIEREC_* environment variables, in that order of priority.
package config

import "time"

// Config is the complete client configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	UI      UIConfig      `koanf:"ui"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// APIConfig describes how to reach the recommendation backend.
type APIConfig struct {
	BaseURL   string        `koanf:"base_url" validate:"required,url"`
	Timeout   time.Duration `koanf:"timeout" validate:"gt=0"`
	UserAgent string        `koanf:"user_agent"`

	// RatePerSecond caps outgoing calls; 0 disables the limiter.
	RatePerSecond float64 `koanf:"rate_per_second" validate:"gte=0"`
	Burst         int     `koanf:"burst" validate:"gte=1"`

	// Circuit breaker around the backend.
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests" validate:"gte=1"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio" validate:"gt=0,lte=1"`
	BreakerOpenTimeout  time.Duration `koanf:"breaker_open_timeout" validate:"gt=0"`
}

// UIConfig holds presentation timings and image endpoints.
type UIConfig struct {
	TypingInterval   time.Duration `koanf:"typing_interval" validate:"gt=0"`
	CarouselInterval time.Duration `koanf:"carousel_interval" validate:"gt=0"`
	CarouselVisible  int           `koanf:"carousel_visible" validate:"gte=1"`
	ImageBaseURL     string        `koanf:"image_base_url" validate:"required,url"`
	PlaceholderURL   string        `koanf:"placeholder_url" validate:"required,url"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" validate:"oneof=json console"`
	File   string `koanf:"file"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig enables the optional /metrics listener when Addr is set.
type MetricsConfig struct {
	Addr string `koanf:"addr" validate:"omitempty,hostname_port"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:             "http://127.0.0.1:5000",
			Timeout:             60 * time.Second, // the backend calls an LLM, replies are slow
			UserAgent:           "movierec/1.0",
			RatePerSecond:       2,
			Burst:               4,
			BreakerMinRequests:  5,
			BreakerFailureRatio: 0.6,
			BreakerOpenTimeout:  30 * time.Second,
		},
		UI: UIConfig{
			TypingInterval:   5 * time.Millisecond,
			CarouselInterval: 3 * time.Second,
			CarouselVisible:  2,
			ImageBaseURL:     "https://image.tmdb.org/t/p/w500",
			PlaceholderURL:   "https://via.placeholder.com/150x200?text=No+Image",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   "movierec.log",
		},
	}
}

// Default returns a copy of the built-in defaults.
func Default() Config {
	return *defaultConfig()
}
