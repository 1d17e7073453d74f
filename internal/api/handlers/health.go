package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/mediafetch/internal/models"
	"github.com/denisAlshanov/mediafetch/internal/services/extractor"
	"github.com/denisAlshanov/mediafetch/internal/utils"
)

type HealthHandler struct {
	version     string
	ytDlp       []string
	ffmpeg      string
	downloadDir string
	lookPath    func(file string) (string, error)
}

func NewHealthHandler(version, ytDlpPath, ffmpegPath, downloadDir string) *HealthHandler {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	return &HealthHandler{
		version:     version,
		ytDlp:       extractor.ExecutableCandidates(ytDlpPath),
		ffmpeg:      ffmpegPath,
		downloadDir: downloadDir,
		lookPath:    exec.LookPath,
	}
}

// Health godoc
// @Summary Health check endpoint
// @Description Report that the service is up
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   h.version,
	})
}

// Readiness godoc
// @Summary Readiness check endpoint
// @Description Check that yt-dlp and ffmpeg are installed and the download directory is writable
// @Tags health
// @Produce json
// @Success 200 {object} models.ReadinessResponse
// @Failure 503 {object} models.ReadinessResponse
// @Router /ready [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()

	checks := map[string]models.CheckResult{
		"yt-dlp":       h.checkBinary(ctx, h.ytDlp),
		"ffmpeg":       h.checkBinary(ctx, []string{h.ffmpeg}),
		"download_dir": h.checkDownloadDir(ctx),
	}

	ready := true
	for _, check := range checks {
		if !check.Ready {
			ready = false
			break
		}
	}

	response := models.ReadinessResponse{
		Ready:     ready,
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    checks,
	}

	if ready {
		c.JSON(http.StatusOK, response)
	} else {
		c.JSON(http.StatusServiceUnavailable, response)
	}
}

// Liveness godoc
// @Summary Liveness check endpoint
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// checkBinary passes when any candidate resolves to an executable.
func (h *HealthHandler) checkBinary(ctx context.Context, candidates []string) models.CheckResult {
	start := time.Now()

	var path string
	var err error
	for _, name := range candidates {
		if path, err = h.lookPath(name); err == nil {
			break
		}
	}
	responseTime := time.Since(start).String()

	if err != nil {
		utils.LogWarn(ctx, "Readiness check failed", utils.Fields{
			"binary": candidates[len(candidates)-1],
			"error":  err.Error(),
		})
		return models.CheckResult{
			Ready:        false,
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	utils.LogDebug(ctx, "Binary found", utils.Fields{"path": path})
	return models.CheckResult{
		Ready:        true,
		ResponseTime: responseTime,
	}
}

func (h *HealthHandler) checkDownloadDir(ctx context.Context) models.CheckResult {
	start := time.Now()

	marker, err := os.CreateTemp(h.downloadDir, ".ready-*")
	if err == nil {
		marker.Close()
		err = os.Remove(marker.Name())
	}
	responseTime := time.Since(start).String()

	if err != nil {
		err = fmt.Errorf("download directory is not writable: %w", err)
		utils.LogError(ctx, "Readiness check failed", err)
		return models.CheckResult{
			Ready:        false,
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return models.CheckResult{
		Ready:        true,
		ResponseTime: responseTime,
	}
}
