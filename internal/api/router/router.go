package router

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/denisAlshanov/mediafetch/internal/api/handlers"
	"github.com/denisAlshanov/mediafetch/internal/api/middleware"
	"github.com/denisAlshanov/mediafetch/internal/config"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
	server *http.Server
	stop   context.CancelFunc
	done   <-chan struct{}
}

func NewRouter(cfg *config.Config, downloadHandler *handlers.DownloadHandler, cookiesHandler *handlers.CookiesHandler, healthHandler *handlers.HealthHandler) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Background work owned by middleware ends on Shutdown
	ctx, stop := context.WithCancel(context.Background())

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health endpoints are never rate limited
	health := engine.Group("/")
	{
		health.GET("/health", healthHandler.Health)
		health.GET("/ready", healthHandler.Readiness)
		health.GET("/live", healthHandler.Liveness)
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/", handlers.Home)

	api := engine.Group("/")
	api.Use(middleware.RateLimitMiddleware(ctx, &cfg.API))
	{
		api.POST("/download", downloadHandler.Download)
		api.GET("/info", downloadHandler.Info)
		api.GET("/formats", downloadHandler.Formats)

		api.POST("/upload-cookies", cookiesHandler.Upload)
		api.DELETE("/cookies", cookiesHandler.Delete)
		api.GET("/cookies/status", cookiesHandler.Status)
	}

	return &Router{
		engine: engine,
		config: cfg,
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		stop: stop,
		done: ctx.Done(),
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (r *Router) Start() error {
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight downloads until ctx expires.
func (r *Router) Shutdown(ctx context.Context) error {
	defer r.stop()
	return r.server.Shutdown(ctx)
}

func (r *Router) Addr() string {
	return r.server.Addr
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
