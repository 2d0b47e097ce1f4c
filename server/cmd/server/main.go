package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/inkrelay/inkrelay/server/internal/api"
	"github.com/inkrelay/inkrelay/server/internal/config"
	"github.com/inkrelay/inkrelay/server/internal/store"
	"github.com/inkrelay/inkrelay/server/internal/ws"
)

func main() {
	if err := run(); err != nil {
		slog.Error("inkrelay-server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("inkrelay-server", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to config file; empty uses defaults and environment only")
	uiDir := flags.String("ui-dir", "", "serve the drawing client from this directory (overrides server.static_dir)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *uiDir != "" {
		cfg.Server.StaticDir = *uiDir
	}

	var level slog.LevelVar
	level.Set(cfg.Server.Level())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &level}))
	slog.SetDefault(logger)

	slog.Info("inkrelay-server starting",
		"config", *configPath,
		"port", cfg.Server.Port,
		"ws_path", cfg.Server.WSPath,
		"log_level", cfg.Server.LogLevel,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Only the log level is applied live; ports and limits need a restart.
	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
				level.Set(updated.Server.Level())
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	strokes := store.New()

	// Sync hub — sole writer of the stroke log.
	hub := ws.New(strokes, ws.Options{
		SendBuffer:      cfg.Server.Hub.SendBuffer,
		MaxMessageBytes: cfg.Server.Hub.MaxMessageBytes,
	})
	go hub.Run(ctx)

	apiHandler := api.New(strokes, hub)
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/metrics", apiHandler)
	mux.Handle(cfg.Server.WSPath, hub)

	if info, err := os.Stat(cfg.Server.StaticDir); err == nil && info.IsDir() {
		mux.Handle("/", http.FileServer(http.Dir(cfg.Server.StaticDir)))
		slog.Info("serving static files", "dir", cfg.Server.StaticDir)
	} else {
		slog.Warn("static directory not found, client UI disabled", "dir", cfg.Server.StaticDir)
	}

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: mux,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("inkrelay-server shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	// Hijacked WebSocket connections are closed by the hub, not by Shutdown.
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
