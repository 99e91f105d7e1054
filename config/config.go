package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Executor ExecutorConfig `mapstructure:"executor"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	HTTPPort  int    `mapstructure:"http_port"`
}

// ExecutorConfig holds snippet executor configuration
type ExecutorConfig struct {
	Backend        string   `mapstructure:"backend"`
	WorkerPath     string   `mapstructure:"worker_path"`
	TimeoutSec     int      `mapstructure:"timeout_sec"`
	MaxSteps       int      `mapstructure:"max_steps"`
	MaxOutputKB    int      `mapstructure:"max_output_kb"`
	AllowedModules []string `mapstructure:"allowed_modules"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// New loads and validates the application configuration
func New() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	viper.SetDefault("server.transport", "stdio")
	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("executor.backend", "interp")
	viper.SetDefault("executor.worker_path", "snipbox-worker")
	viper.SetDefault("executor.timeout_sec", 10)
	viper.SetDefault("executor.max_steps", 100000)
	viper.SetDefault("executor.max_output_kb", 64)
	viper.SetDefault("executor.allowed_modules", []string{"frames", "arrays"})
	viper.SetDefault("logging.mode", "production")
	viper.SetDefault("logging.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// If config file not found, continue with defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

// validate ensures the configuration is valid
func (c *Config) validate() error {
	if c.Server.Transport != "stdio" && c.Server.Transport != "http" {
		return fmt.Errorf("invalid server.transport: %s, must be 'stdio' or 'http'", c.Server.Transport)
	}

	supportedBackends := map[string]bool{
		"interp":     true,
		"subprocess": true,
	}

	if !supportedBackends[c.Executor.Backend] {
		return fmt.Errorf("unsupported executor.backend: %s", c.Executor.Backend)
	}

	if c.Executor.Backend == "subprocess" && c.Executor.WorkerPath == "" {
		return fmt.Errorf("executor.worker_path must be set for the subprocess backend")
	}

	if c.Executor.TimeoutSec <= 0 {
		return fmt.Errorf("executor.timeout_sec must be positive, got: %d", c.Executor.TimeoutSec)
	}

	if c.Executor.MaxSteps <= 0 {
		return fmt.Errorf("executor.max_steps must be positive, got: %d", c.Executor.MaxSteps)
	}

	if c.Executor.MaxOutputKB <= 0 {
		return fmt.Errorf("executor.max_output_kb must be positive, got: %d", c.Executor.MaxOutputKB)
	}

	if len(c.Executor.AllowedModules) == 0 {
		return fmt.Errorf("executor.allowed_modules must not be empty")
	}

	if c.Logging.Mode != "production" && c.Logging.Mode != "development" {
		return fmt.Errorf("invalid logging.mode: %s, must be 'production' or 'development'", c.Logging.Mode)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	return nil
}

// GetTimeout returns the execution timeout as a duration
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Executor.TimeoutSec) * time.Second
}
