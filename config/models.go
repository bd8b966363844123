package config

import "time"

// Config holds the configuration of the CapyDB client
// Use LoadConfig to create a new instance
type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	API     APIConfig     `mapstructure:"api"`
	Log     LogConfig     `mapstructure:"log"`
}

type ProjectConfig struct {
	ID string `mapstructure:"id"`
	// APIKey is loaded from ENV not config file.
	APIKey string `mapstructure:"api_key"`
}

type APIConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRetryAttempts int           `mapstructure:"max_retry_attempts"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}
