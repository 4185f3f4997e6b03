package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rviscarra/snapcompose/internal/encoding"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.HTTPPort = " " }},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad format", func(c *Config) { c.OutputFormat = "gif" }},
		{"quality low", func(c *Config) { c.JPEGQuality = 0 }},
		{"quality high", func(c *Config) { c.JPEGQuality = 101 }},
		{"zero thumb", func(c *Config) { c.ThumbnailMaxHeight = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() accepted %+v", cfg)
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"png", "jpeg", "jpg", "pdf"} {
		cfg := DefaultConfig()
		cfg.OutputFormat = format
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() rejected output_format %q: %v", format, err)
		}
	}
	cfg := DefaultConfig()
	cfg.OutputFormat = "tiff"
	if err := cfg.Validate(); !errors.Is(err, encoding.ErrUnsupportedCodec) {
		t.Errorf("Validate() error = %v, want ErrUnsupportedCodec", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapcompose.yaml")
	data := []byte("http_port: \"8123\"\noutput_format: jpeg\njpeg_quality: 70\nthumbnail_max_width: 100\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPPort != "8123" || cfg.OutputFormat != "jpeg" || cfg.JPEGQuality != 70 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.ThumbnailMaxWidth != 100 || cfg.ThumbnailMaxHeight != 240 {
		t.Errorf("thumbnail bounds = %dx%d, want 100x240", cfg.ThumbnailMaxWidth, cfg.ThumbnailMaxHeight)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SNAPCOMPOSE_LOG_LEVEL", "debug")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load() of a missing explicit file succeeded")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output_format: bmp\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load() accepted output_format bmp")
	}
}
