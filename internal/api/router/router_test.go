package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/mediafetch/internal/api/handlers"
	"github.com/denisAlshanov/mediafetch/internal/config"
	"github.com/denisAlshanov/mediafetch/internal/models"
	"github.com/denisAlshanov/mediafetch/internal/services/credentials"
	"github.com/denisAlshanov/mediafetch/internal/services/formats"
)

type stubFetcher struct{}

func (stubFetcher) Download(ctx context.Context, url string, sel formats.Selection) (*models.Artifact, error) {
	return nil, context.Canceled
}

func (stubFetcher) Lookup(ctx context.Context, url string) (*models.VideoMetadata, error) {
	return &models.VideoMetadata{}, nil
}

type stubScheduler struct{}

func (stubScheduler) Schedule(id string) {}

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", Version: "test"},
		API:    config.APIConfig{RateLimitRequests: 1, RateLimitWindow: time.Hour},
		CORS: config.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"*"},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{"*"},
		},
	}

	store, err := credentials.NewStore(filepath.Join(t.TempDir(), "cookies.txt"), 1024)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	r := NewRouter(cfg,
		handlers.NewDownloadHandler(stubFetcher{}, stubScheduler{}),
		handlers.NewCookiesHandler(store),
		handlers.NewHealthHandler("test", "", "", t.TempDir()),
	)
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })
	return r
}

func TestRoutes(t *testing.T) {
	testCases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/live", http.StatusOK},
		{http.MethodGet, "/formats", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			r := newTestRouter(t)
			w := httptest.NewRecorder()
			r.Engine().ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID on every response")
			}
		})
	}
}

func TestHealthIsNotRateLimited(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("health request %d returned %d", i+1, w.Code)
		}
	}

	statuses := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cookies/status", nil))
		statuses = append(statuses, w.Code)
	}
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusTooManyRequests {
		t.Errorf("expected API routes to be limited, got %v", statuses)
	}
}

func TestAddr(t *testing.T) {
	if got := newTestRouter(t).Addr(); got != "127.0.0.1:0" {
		t.Errorf("unexpected addr %q", got)
	}
}

func TestShutdownStopsBackgroundWork(t *testing.T) {
	r := newTestRouter(t)

	select {
	case <-r.done:
		t.Fatal("background work stopped before Shutdown")
	default:
	}

	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	select {
	case <-r.done:
	case <-time.After(time.Second):
		t.Fatal("expected Shutdown to stop the rate limiter cleanup")
	}
}
