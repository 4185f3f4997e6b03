package main

import (
	"fmt"
	"os"

	"github.com/rviscarra/snapcompose/internal/config"
	"github.com/rviscarra/snapcompose/internal/encoding"
	"github.com/rviscarra/snapcompose/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "snapcompose",
	Short:         "Screen region capture and image composition",
	Long:          `snapcompose captures regions of the primary display and lays out multiple captures on a single image.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("snapcompose %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every command shares
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newEncoder builds the encoder for format, falling back to the configured one
func newEncoder(cfg *config.Config, format string) (encoding.Encoder, error) {
	if format == "" {
		format = cfg.OutputFormat
	}
	codec, err := encoding.ParseCodec(format)
	if err != nil {
		return nil, err
	}
	return encoding.NewEncoderService().NewEncoder(codec, encoding.Options{JPEGQuality: cfg.JPEGQuality})
}
