// Capability service - scores browser signals and stores overrides.
//
// Usage: go run ./cmd/plexus-serve
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/pthm-cable/plexus/config"
	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/prefs"
	"github.com/pthm-cable/plexus/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(os.Getenv("PLEXUS_CONFIG")); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Server.Port
	}
	dbPath := os.Getenv("PLEXUS_DB")
	if dbPath == "" {
		dbPath = cfg.Server.Database
	}

	h, err := detect.NewHeuristics(cfg.Detect)
	if err != nil {
		slog.Error("invalid detect config", "error", err)
		os.Exit(1)
	}

	store, err := prefs.OpenSQLite(dbPath)
	if err != nil {
		slog.Error("failed to open preference store", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           server.New(store, h, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "addr", srv.Addr, "database", dbPath, "mode", gin.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("stopped")
}
