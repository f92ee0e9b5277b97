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
	"time"

	"github.com/joho/godotenv"
	"github.com/tendant/simple-portfolio/pkg/portfolio"
	"github.com/tendant/simple-portfolio/pkg/portfolio/api"
	"github.com/tendant/simple-portfolio/pkg/portfolio/config"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	serverConfig, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if serverConfig.Source.Type == config.SourcePostgres {
		if err := config.PingPostgres(ctx, serverConfig.Source.DatabaseURL, serverConfig.Source.DBSchema); err != nil {
			slog.Error("Failed to connect to database", "err", err)
			os.Exit(1)
		}
	}

	provider, err := serverConfig.BuildProvider(ctx)
	if err != nil {
		slog.Error("Failed to build content provider", "err", err)
		os.Exit(1)
	}

	var store portfolio.AssetStore
	if s, err := serverConfig.BuildAssetStore(); err != nil {
		slog.Warn("Asset storage unavailable, local media will not be served", "url", serverConfig.Assets.URL, "err", err)
	} else {
		store = s
	}

	router := api.NewRouter(provider, store,
		api.WithSiteTitle(serverConfig.SiteTitle),
		api.WithCORS(serverConfig.IsDevelopment()),
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", serverConfig.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Portfolio server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"source", serverConfig.Source.Type,
			"assets", serverConfig.Assets.URL)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}
