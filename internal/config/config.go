package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all service configuration
type Config struct {
	// HTTP transport
	HTTPPort string `mapstructure:"http_port"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// Image output
	OutputFormat string `mapstructure:"output_format"`
	JPEGQuality  int    `mapstructure:"jpeg_quality"`

	// Thumbnails returned by the screenshot listing
	ThumbnailMaxWidth  uint `mapstructure:"thumbnail_max_width"`
	ThumbnailMaxHeight uint `mapstructure:"thumbnail_max_height"`
}

const (
	configName = "snapcompose"
	envPrefix  = "SNAPCOMPOSE"
)

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTPPort:           "9000",
		LogLevel:           "info",
		OutputFormat:       "png",
		JPEGQuality:        85,
		ThumbnailMaxWidth:  320,
		ThumbnailMaxHeight: 240,
	}
}

// Load reads configuration from file and environment. An explicit path
// must exist; otherwise a missing file just leaves the defaults.
func Load(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("http_port", cfg.HTTPPort)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("output_format", cfg.OutputFormat)
	v.SetDefault("jpeg_quality", cfg.JPEGQuality)
	v.SetDefault("thumbnail_max_width", cfg.ThumbnailMaxWidth)
	v.SetDefault("thumbnail_max_height", cfg.ThumbnailMaxHeight)
}

// configDir returns the per-user config directory for the service
func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configName)
}
