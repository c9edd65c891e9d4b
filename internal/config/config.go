// Package config loads client configuration from a .env file and
// environment variables, with hardcoded local defaults as the final
// fallback.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	API    APIConfig    `mapstructure:"api"`
	HTTP   HTTPConfig   `mapstructure:"http"`
	Client ClientConfig `mapstructure:"client"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // development, production
	LogLevel    string `mapstructure:"log_level"`
}

// APIConfig holds the backend endpoint settings. UseMocks switches every
// repository operation to the static in-memory dataset.
type APIConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	UseMocks bool   `mapstructure:"use_mocks"`
}

// HTTPConfig holds outbound request settings. ReadRetries applies to
// idempotent GETs only; mutating requests are never retried.
type HTTPConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	ReadRetries int           `mapstructure:"read_retries"`
}

// ClientConfig holds local client state settings.
type ClientConfig struct {
	SessionFile  string `mapstructure:"session_file"`
	ImagePoolDir string `mapstructure:"image_pool_dir"`
}

// IsDevelopment reports whether the client runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Validate checks the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" && !c.API.UseMocks {
		return fmt.Errorf("api base url is required when mocks are disabled")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.HTTP.ReadRetries < 0 {
		return fmt.Errorf("read retries cannot be negative")
	}
	return nil
}

// Load loads configuration from environment variables and an optional
// .env file in the working directory.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// .env is optional; environment variables alone are fine.
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	if err := bindConfig(v, cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithPath loads configuration from a specific env file.
func LoadWithPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	if err := bindConfig(v, cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "proyectoa3-client")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_LOG_LEVEL", "info")

	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("API_USE_MOCKS", false)

	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("HTTP_READ_RETRIES", 2)

	v.SetDefault("CLIENT_SESSION_FILE", "")
	v.SetDefault("CLIENT_IMAGE_POOL_DIR", "images/pools")
}

func bindConfig(v *viper.Viper, cfg *Config) error {
	cfg.App = AppConfig{
		Name:        v.GetString("APP_NAME"),
		Environment: v.GetString("APP_ENVIRONMENT"),
		LogLevel:    v.GetString("APP_LOG_LEVEL"),
	}
	cfg.API = APIConfig{
		BaseURL:  v.GetString("API_BASE_URL"),
		UseMocks: v.GetBool("API_USE_MOCKS"),
	}
	cfg.HTTP = HTTPConfig{
		Timeout:     v.GetDuration("HTTP_TIMEOUT"),
		ReadRetries: v.GetInt("HTTP_READ_RETRIES"),
	}
	cfg.Client = ClientConfig{
		SessionFile:  v.GetString("CLIENT_SESSION_FILE"),
		ImagePoolDir: v.GetString("CLIENT_IMAGE_POOL_DIR"),
	}
	return nil
}
