package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. COTIZADOR_BASE_URL.
const EnvPrefix = "COTIZADOR"

var keys = []string{
	"base_url",
	"quote_id",
	"csrf_token",
	"session_id",
	"timeout",
	"locale",
	"metrics_addr",
	"log.level",
	"log.format",
	"carousel.step",
	"carousel.interval",
	"tracing.endpoint",
	"tracing.insecure",
	"tracing.sample_rate",
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty, cotizador.yaml is
	// searched in the working directory and ./configs; absence is fine.
	ConfigFile string
	// EnvFiles are .env files loaded before reading the environment. Missing
	// files are skipped. Defaults to ".env".
	EnvFiles []string
}

// Load reads the configuration. Existing environment variables win over
// .env entries, environment overrides win over the YAML file.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("tracing.sample_rate", DefaultSampleRate)
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("cotizador")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return &cfg, nil
}

func loadEnvFiles(paths []string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Carousel.Step == 0 {
		cfg.Carousel.Step = DefaultCarouselStep
	}
	if cfg.Carousel.Interval == 0 {
		cfg.Carousel.Interval = DefaultCarouselInterval
	}
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute url", cfg.BaseURL)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be positive")
	}
	switch cfg.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", cfg.Log.Format)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
	}
	if cfg.Carousel.Step < 0 || cfg.Carousel.Interval < 0 {
		return fmt.Errorf("carousel step and interval must be positive")
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be within [0, 1], got %v", cfg.Tracing.SampleRate)
	}
	return nil
}
