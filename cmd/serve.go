package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/denisAlshanov/mediafetch/internal/api/handlers"
	"github.com/denisAlshanov/mediafetch/internal/api/router"
	"github.com/denisAlshanov/mediafetch/internal/services/cleanup"
	"github.com/denisAlshanov/mediafetch/internal/services/credentials"
	"github.com/denisAlshanov/mediafetch/internal/services/downloader"
	"github.com/denisAlshanov/mediafetch/internal/services/extractor"
	"github.com/denisAlshanov/mediafetch/internal/utils"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func serveRun(cmd *cobra.Command, args []string) error {
	logger := utils.GetLogger()
	logger.Info("Starting Media Fetch service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Engine.AutoInstall && cfg.Engine.YtDlpPath == "" {
		logger.Info("Installing yt-dlp...")
		if err := extractor.Install(ctx); err != nil {
			logger.Errorf("Failed to install yt-dlp: %v", err)
			logger.Info("Falling back to yt-dlp from PATH")
		}
	}

	// Initialize cookie store
	cookieStore, err := credentials.NewStore(cfg.Cookies.File, cfg.Cookies.MaxSize)
	if err != nil {
		return fmt.Errorf("initializing cookie store: %w", err)
	}

	// Initialize artifact janitor
	janitor := cleanup.NewJanitor(cfg.Download.Directory, cfg.Download.ArtifactMaxAge, cfg.Download.SweepInterval)

	// Initialize downloader service
	engine := extractor.NewYtDlpEngine(&cfg.Engine)
	downloaderService, err := downloader.NewDownloader(engine, cookieStore, janitor, &cfg.Download)
	if err != nil {
		return fmt.Errorf("initializing downloader: %w", err)
	}

	go janitor.Run(ctx)

	// Initialize handlers
	downloadHandler := handlers.NewDownloadHandler(downloaderService, janitor)
	cookiesHandler := handlers.NewCookiesHandler(cookieStore)
	healthHandler := handlers.NewHealthHandler(version(), cfg.Engine.YtDlpPath, cfg.Engine.FFmpegPath, downloaderService.Directory())

	// Initialize router
	r := router.NewRouter(cfg, downloadHandler, cookiesHandler, healthHandler)

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", r.Addr())
		serverErr <- r.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Failed to shut down server gracefully: %v", err)
	}

	// Let scheduled removals for already delivered files finish
	janitor.Wait()

	logger.Info("Server shutdown complete")
	return nil
}

func version() string {
	if os.Getenv("APP_VERSION") == "" && Version != "dev" {
		return Version
	}
	return cfg.Server.Version
}
