package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rviscarra/snapcompose/internal/api"
	"github.com/rviscarra/snapcompose/internal/events"
	"github.com/rviscarra/snapcompose/internal/rdisplay"
	"github.com/rviscarra/snapcompose/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP capture and composition service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()
		if servePort != "" {
			cfg.HTTPPort = servePort
		}

		enc, err := newEncoder(cfg, "")
		if err != nil {
			return err
		}

		video := rdisplay.NewScreenService(logger.Named("rdisplay"))
		if _, err := video.Monitors(); err != nil {
			return fmt.Errorf("can't get screens: %w", err)
		}

		hub := events.NewHub(logger.Named("events"))
		defer hub.Close()
		shots := store.New(logger.Named("store"))

		mux := http.NewServeMux()
		mux.Handle("/api/", http.StripPrefix("/api", api.MakeHandler(api.Services{
			Display:            video,
			Store:              shots,
			Events:             hub,
			Encoder:            enc,
			ThumbnailMaxWidth:  cfg.ThumbnailMaxWidth,
			ThumbnailMaxHeight: cfg.ThumbnailMaxHeight,
			Logger:             logger.Named("api"),
		})))

		server := &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serveErr := make(chan error, 1)
		go func() {
			logger.Info("Starting capture server", zap.String("port", cfg.HTTPPort))
			serveErr <- server.ListenAndServe()
		}()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)

		select {
		case err := <-serveErr:
			return fmt.Errorf("http server: %w", err)
		case sig := <-interrupt:
			logger.Info("Shutting down",
				zap.Stringer("signal", sig),
				zap.Int("screenshots", shots.Len()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(ctx); shutdownErr != nil {
			return fmt.Errorf("shutdown: %w", shutdownErr)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "HTTP listen port (overrides http_port)")
	rootCmd.AddCommand(serveCmd)
}
