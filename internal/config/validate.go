package config

import (
	"fmt"
	"strings"

	"github.com/rviscarra/snapcompose/internal/encoding"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTPPort) == "" {
		return fmt.Errorf("http_port must not be empty")
	}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("log_level %q must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	codec, err := encoding.ParseCodec(c.OutputFormat)
	if err != nil {
		return fmt.Errorf("output_format: %w", err)
	}
	if !(&encoding.EncoderService{}).Supports(codec) {
		return fmt.Errorf("output_format %q has no registered encoder", c.OutputFormat)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality %d must be within 1..100", c.JPEGQuality)
	}
	if c.ThumbnailMaxWidth == 0 || c.ThumbnailMaxHeight == 0 {
		return fmt.Errorf("thumbnail bounds %dx%d must be positive", c.ThumbnailMaxWidth, c.ThumbnailMaxHeight)
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}
