// Package config loads service configuration from defaults, an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Recruitee RecruiteeConfig `mapstructure:"recruitee"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Log       LogConfig       `mapstructure:"log"`
}

type RecruiteeConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	CompanyID         string        `mapstructure:"company_id"`
	APIToken          string        `mapstructure:"api_token"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxWait           time.Duration `mapstructure:"max_wait"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
	BackoffInitial    time.Duration `mapstructure:"backoff_initial"`
	BackoffMax        time.Duration `mapstructure:"backoff_max"`
	PageSize          int           `mapstructure:"page_size"`
	LookupTTL         time.Duration `mapstructure:"lookup_ttl"`
	FetchConcurrency  int           `mapstructure:"fetch_concurrency"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PostgresConfig enables the query log when DSN is set.
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// StatementTimeout bounds each query log statement; zero disables it.
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("recruitee.base_url", "https://api.recruitee.com")
	v.SetDefault("recruitee.company_id", "")
	v.SetDefault("recruitee.api_token", "")
	v.SetDefault("recruitee.timeout", 10*time.Second)
	v.SetDefault("recruitee.requests_per_second", 8.0)
	v.SetDefault("recruitee.burst", 8)
	v.SetDefault("recruitee.max_wait", 30*time.Second)
	v.SetDefault("recruitee.max_attempts", 4)
	v.SetDefault("recruitee.backoff_initial", 500*time.Millisecond)
	v.SetDefault("recruitee.backoff_max", 8*time.Second)
	v.SetDefault("recruitee.page_size", 100)
	v.SetDefault("recruitee.lookup_ttl", 15*time.Minute)
	v.SetDefault("recruitee.fetch_concurrency", 4)

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 5*time.Second)

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 10)
	v.SetDefault("postgres.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("postgres.statement_timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads path (if not empty) and applies environment overrides,
// e.g. RECRUITEE_API_TOKEN for recruitee.api_token.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	var errs []error

	if c.Recruitee.CompanyID == "" {
		errs = append(errs, errors.New("recruitee.company_id is required"))
	}
	if c.Recruitee.APIToken == "" {
		errs = append(errs, errors.New("recruitee.api_token is required"))
	}
	if c.Recruitee.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("recruitee.requests_per_second must not be negative"))
	}
	if c.Recruitee.MaxAttempts < 1 {
		errs = append(errs, errors.New("recruitee.max_attempts must be at least 1"))
	}
	if c.Recruitee.PageSize < 1 {
		errs = append(errs, errors.New("recruitee.page_size must be positive"))
	}
	if c.Recruitee.FetchConcurrency < 1 {
		errs = append(errs, errors.New("recruitee.fetch_concurrency must be positive"))
	}
	if c.Recruitee.LookupTTL < 0 {
		errs = append(errs, errors.New("recruitee.lookup_ttl must not be negative"))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not json or text", c.Log.Format))
	}

	return errors.Join(errs...)
}
