// Package config loads the cotizador settings from an optional .env file, an
// optional YAML file and COTIZADOR_ environment variables.
package config

import "time"

// Config is the process configuration.
type Config struct {
	BaseURL     string         `mapstructure:"base_url"`
	QuoteID     string         `mapstructure:"quote_id"`
	CSRFToken   string         `mapstructure:"csrf_token"`
	SessionID   string         `mapstructure:"session_id"`
	Timeout     time.Duration  `mapstructure:"timeout"`
	Locale      string         `mapstructure:"locale"`
	MetricsAddr string         `mapstructure:"metrics_addr"`
	Log         LogConfig      `mapstructure:"log"`
	Carousel    CarouselConfig `mapstructure:"carousel"`
	Tracing     TracingConfig  `mapstructure:"tracing"`
}

// LogConfig selects the logger level and encoder.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CarouselConfig tunes the scroll strip.
type CarouselConfig struct {
	Step     float64       `mapstructure:"step"`
	Interval time.Duration `mapstructure:"interval"`
}

// TracingConfig points the tracer at an OTLP/gRPC collector. Tracing is off
// while Endpoint is empty.
type TracingConfig struct {
	Endpoint   string  `mapstructure:"endpoint"`
	Insecure   bool    `mapstructure:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

const (
	DefaultBaseURL          = "http://127.0.0.1:8000"
	DefaultTimeout          = 30 * time.Second
	DefaultLocale           = "es-CL"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
	DefaultCarouselStep     = 220
	DefaultCarouselInterval = 4 * time.Second
	DefaultSampleRate       = 1.0
)
