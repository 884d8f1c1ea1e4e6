package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"shareit/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	API        APIConfig        `yaml:"api"`
	Pagination PaginationConfig `yaml:"pagination"`
	Booking    BookingConfig    `yaml:"booking"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Redis      RedisConfig      `yaml:"redis"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Exports    ExportConfig     `yaml:"exports"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type APIConfig struct {
	HTTP      APIHTTPConfig      `yaml:"http"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIHTTPConfig struct {
	Port int `yaml:"port"`
}

// APIAuthConfig guards the server API. Auth is on when at least one key is configured.
type APIAuthConfig struct {
	HeaderAPIKey string         `yaml:"header_api_key"`
	HeaderExtra  string         `yaml:"header_extra"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

func (a APIAuthConfig) Enabled() bool { return len(a.APIKeys) > 0 }

// KeyHeader is the header carrying the client api key.
func (a APIAuthConfig) KeyHeader() string { return headerOr(a.HeaderAPIKey, "x-api-key") }

// ExtraHeader is the header carrying the per-key extra secret.
func (a APIAuthConfig) ExtraHeader() string { return headerOr(a.HeaderExtra, "x-api-extra") }

func headerOr(configured, fallback string) string {
	if h := strings.TrimSpace(configured); h != "" {
		return strings.ToLower(h)
	}
	return fallback
}

type APIClientKey struct {
	Key         string   `yaml:"key"`
	Extra       string   `yaml:"extra"`
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type PaginationConfig struct {
	DefaultFrom int `yaml:"default_from"`
	DefaultSize int `yaml:"default_size"`
}

type BookingConfig struct {
	// BookerCurrentAscending restores start-ascending order for the
	// booker's CURRENT list.
	BookerCurrentAscending bool `yaml:"booker_current_ascending"`
}

type GatewayConfig struct {
	Port      int    `yaml:"port"`
	ServerURL string `yaml:"server_url"`
	APIKey    string `yaml:"api_key"`
	APIExtra  string `yaml:"api_extra"`
	Timeout   int    `yaml:"timeout_seconds"`
	// MaxRetries applies to GET requests only. Zero disables retries.
	MaxRetries int                    `yaml:"max_retries"`
	RateLimit  GatewayRateLimitConfig `yaml:"rate_limit"`
}

type GatewayRateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type ExportConfig struct {
	MaxRows int `yaml:"max_rows"`
}

// Load reads the YAML file at configPath after expanding ${VAR} references.
// A .env file in the working directory, if present, is loaded first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// PathFromEnv returns CONFIG_PATH or the default location.
func PathFromEnv() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}
	if c.Pagination.DefaultFrom < 0 {
		return errors.New("pagination.default_from must not be negative")
	}
	if c.Pagination.DefaultSize <= 0 {
		return errors.New("pagination.default_size must be positive")
	}
	if c.Gateway.ServerURL != "" && !strings.HasPrefix(c.Gateway.ServerURL, "http://") && !strings.HasPrefix(c.Gateway.ServerURL, "https://") {
		return fmt.Errorf("gateway.server_url must be an http(s) URL: %q", c.Gateway.ServerURL)
	}
	for i, k := range c.API.Auth.APIKeys {
		if k.Key == "" {
			return fmt.Errorf("api.auth.api_keys[%d]: key is required", i)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "shareit"
	}
	if c.API.HTTP.Port == 0 {
		c.API.HTTP.Port = 9090
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9100
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.API.Auth.HeaderExtra == "" {
		c.API.Auth.HeaderExtra = "x-api-extra"
	}

	if c.Pagination.DefaultSize == 0 {
		c.Pagination.DefaultFrom = models.DefaultPageFrom
		c.Pagination.DefaultSize = models.DefaultPageSize
	}

	if c.Gateway.Port == 0 {
		c.Gateway.Port = 8080
	}
	if c.Gateway.ServerURL == "" {
		c.Gateway.ServerURL = fmt.Sprintf("http://localhost:%d", c.API.HTTP.Port)
	}
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout = 10
	}
	if c.Gateway.RateLimit.Requests == 0 {
		c.Gateway.RateLimit.Requests = models.DefaultRateLimitRequests
	}
	if c.Gateway.RateLimit.WindowSeconds == 0 {
		c.Gateway.RateLimit.WindowSeconds = models.DefaultRateLimitWindow
	}

	if c.Exports.MaxRows == 0 {
		c.Exports.MaxRows = models.DefaultExportMaxRows
	}
}
