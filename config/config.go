package config

import (
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/capydb/capydb-go/internal"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

var defaultConfig = Config{
	API: APIConfig{
		BaseURL:          "https://api.capydb.com/v0",
		Timeout:          10 * time.Second,
		MaxRetryAttempts: 3,
	},
	Log: LogConfig{
		Level: "info",
	},
}

// LoadConfig loads the config file and ENV variables into a Config struct.
// The config file is optional; the project ID and API key are usually
// supplied through the CAPYDB_PROJECT_ID and CAPYDB_API_KEY environment
// variables.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("capydb")
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix("CAPYDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment variables take precedence over config file
	loadDotEnv()

	if err := v.BindEnv("project.id", "CAPYDB_PROJECT_ID"); err != nil {
		return nil, fmt.Errorf("error binding environment variable: %w", err)
	}
	if err := v.BindEnv("project.api_key", "CAPYDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		// A config file is not required for the client
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configFile != "" {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Fill any unset fields with defaults
	if err := mergo.Merge(&cfg, defaultConfig); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate returns an error if the config is missing required credentials.
func (c *Config) Validate() error {
	if c.Project.ID == "" {
		return fmt.Errorf(
			"missing project ID: provide it in the config file or set the " +
				"CAPYDB_PROJECT_ID environment variable. " +
				"Tip: ensure your environment file (e.g. .env) is loaded",
		)
	}
	if c.Project.APIKey == "" {
		return fmt.Errorf(
			"missing API key: provide it in the config file or set the " +
				"CAPYDB_API_KEY environment variable. " +
				"Tip: ensure your environment file (e.g. .env) is loaded",
		)
	}
	return nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
