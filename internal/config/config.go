// Package config loads the startup configuration of the app.
//
// Configuration is read from an optional TOML file and can be overridden
// with environment variables prefixed with KEYBUDDY_, e.g. KEYBUDDY_STRICT_WRITES=true.
// Environment variables can also be defined in an optional .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "KEYBUDDY"
	fileName  = "keybuddy"
)

// Storage backends for settings.
const (
	StoreFyne   = "fyne"
	StoreSQLite = "sqlite"
)

// Config holds the startup configuration.
type Config struct {
	// LogLevel overrides the log level from the user settings when not empty.
	LogLevel string `mapstructure:"log_level"`
	// Store is the storage backend for settings.
	Store string `mapstructure:"store"`
	// StrictWrites enables reporting of failed settings writes.
	StrictWrites bool `mapstructure:"strict_writes"`
}

// FilePath returns the path of the config file in dir.
func FilePath(dir string) string {
	return filepath.Join(dir, fileName+".toml")
}

// Load reads the configuration from the config file in dir and the environment.
// A missing config file is not an error.
func Load(dir string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	v := viper.New()
	v.SetDefault("log_level", "")
	v.SetDefault("store", StoreFyne)
	v.SetDefault("strict_writes", false)

	v.SetConfigType("toml")
	v.SetConfigName(fileName)
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Store {
	case StoreFyne, StoreSQLite:
	default:
		return fmt.Errorf("config: invalid store %q", c.Store)
	}
	return nil
}
