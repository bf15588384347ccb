package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Token store drivers
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// ErrInvalidConfig is wrapped by every validation failure returned from Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all client configuration
type Config struct {
	App        AppConfig
	API        APIConfig
	TokenStore TokenStoreConfig
	Redis      RedisConfig
	Log        LogConfig
	Telemetry  TelemetryConfig
	Metrics    MetricsConfig
}

// AppConfig holds process-wide settings
type AppConfig struct {
	Name string
	Env  string
}

// APIConfig describes the backend the client talks to
type APIConfig struct {
	BaseURL         string
	UserAgent       string
	WithCredentials bool // keep a cookie jar and send cookies back
}

// TokenStoreConfig selects where the bearer token is persisted
type TokenStoreConfig struct {
	Driver    string // file, memory, redis
	Path      string // file driver only
	KeyPrefix string // redis driver only
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string  // e.g. "localhost:4317"
	SamplingRatio     float64 // 0.0-1.0
	ServiceName       string
	Insecure          bool
}

// MetricsConfig controls the prometheus exporter
type MetricsConfig struct {
	Enabled    bool
	ListenAddr string
	Path       string
}

// Load reads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with CARTLINK_ prefix (e.g. CARTLINK_API_BASE_URL)
// 2. the file at path, or config.toml found in ., $HOME/.cartlink, /etc/cartlink
// 3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.cartlink")
		v.AddConfigPath("/etc/cartlink")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CARTLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		API: APIConfig{
			BaseURL:         v.GetString("api.base_url"),
			UserAgent:       v.GetString("api.user_agent"),
			WithCredentials: v.GetBool("api.with_credentials"),
		},
		TokenStore: TokenStoreConfig{
			Driver:    v.GetString("token_store.driver"),
			Path:      v.GetString("token_store.path"),
			KeyPrefix: v.GetString("token_store.key_prefix"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
		},
		Metrics: MetricsConfig{
			Enabled:    v.GetBool("metrics.enabled"),
			ListenAddr: v.GetString("metrics.listen_addr"),
			Path:       v.GetString("metrics.path"),
		},
	}

	// with_credentials defaults to true, so only an explicit setting turns it off
	if !v.IsSet("api.with_credentials") {
		cfg.API.WithCredentials = true
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "cartlink"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8080/api"
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = "cartlink-client/1.0"
	}
	if cfg.TokenStore.Driver == "" {
		cfg.TokenStore.Driver = DriverFile
	}
	if cfg.TokenStore.Path == "" {
		cfg.TokenStore.Path = "$HOME/.cartlink/token.json"
	}
	if cfg.TokenStore.KeyPrefix == "" {
		cfg.TokenStore.KeyPrefix = "cartlink:"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Metrics.ListenAddr == "" {
		cfg.Metrics.ListenAddr = ":9464"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: api.base_url: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api.base_url must use http or https, got %q", ErrInvalidConfig, c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: api.base_url has no host", ErrInvalidConfig)
	}

	switch c.TokenStore.Driver {
	case DriverFile, DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("%w: token_store.driver must be one of file, memory, redis, got %q", ErrInvalidConfig, c.TokenStore.Driver)
	}

	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		return fmt.Errorf("%w: redis.port out of range: %d", ErrInvalidConfig, c.Redis.Port)
	}

	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("%w: telemetry.sampling_ratio must be between 0 and 1", ErrInvalidConfig)
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}
