package handlers

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/mediafetch/internal/models"
	"github.com/denisAlshanov/mediafetch/internal/services/formats"
	"github.com/denisAlshanov/mediafetch/internal/utils"
)

// Fetcher is the download invoker as seen by the HTTP layer.
type Fetcher interface {
	Download(ctx context.Context, url string, sel formats.Selection) (*models.Artifact, error)
	Lookup(ctx context.Context, url string) (*models.VideoMetadata, error)
}

// Scheduler removes a delivered artifact once the response is done.
type Scheduler interface {
	Schedule(id string)
}

type DownloadHandler struct {
	fetcher Fetcher
	cleanup Scheduler
}

func NewDownloadHandler(fetcher Fetcher, cleanup Scheduler) *DownloadHandler {
	return &DownloadHandler{
		fetcher: fetcher,
		cleanup: cleanup,
	}
}

// Download godoc
// @Summary Download a video or audio file
// @Description Fetch the media behind url with yt-dlp in the requested quality or audio codec and return it as an attachment. Unknown formats fall back to "best".
// @Tags media
// @Accept json
// @Produce octet-stream
// @Param request body models.DownloadRequest true "Source URL and format token"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /download [post]
func (h *DownloadHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	if err := utils.ValidateMediaURL(req.URL); err != nil {
		errorResponse(c, utils.NewInvalidURLError(req.URL))
		return
	}

	sel := formats.Resolve(req.Format)
	artifact, err := h.fetcher.Download(ctx, req.URL, sel)
	if err != nil {
		errorResponse(c, utils.AsAppError(err))
		return
	}
	defer h.cleanup.Schedule(artifact.ID)

	filename := utils.AttachmentName(artifact.Title, filepath.Ext(artifact.Path))

	utils.LogInfo(ctx, "Streaming artifact", utils.Fields{
		"file_id":  artifact.ID,
		"filename": filename,
	})

	c.Header("Content-Type", "application/octet-stream")
	c.FileAttachment(artifact.Path, filename)
	c.Writer.Flush()
}

// Info godoc
// @Summary Get video metadata
// @Description Resolve title, duration, thumbnail, uploader, view count and available formats without downloading
// @Tags media
// @Produce json
// @Param url query string true "Source URL"
// @Success 200 {object} models.VideoMetadata
// @Failure 400 {object} models.ErrorResponse
// @Router /info [get]
func (h *DownloadHandler) Info(c *gin.Context) {
	ctx := c.Request.Context()

	link := c.Query("url")
	if link == "" {
		errorResponse(c, utils.NewValidationError("Query parameter 'url' is required", nil))
		return
	}
	if err := utils.ValidateMediaURL(link); err != nil {
		errorResponse(c, utils.NewInvalidURLError(link))
		return
	}

	meta, err := h.fetcher.Lookup(ctx, link)
	if err != nil {
		utils.LogWarn(ctx, "Metadata lookup failed", utils.Fields{
			"url":   link,
			"error": err.Error(),
		})
		errorResponse(c, utils.AsAppError(err))
		return
	}

	c.JSON(http.StatusOK, meta)
}

// Formats godoc
// @Summary List format tokens
// @Description List the quality and audio codec tokens accepted by /download
// @Tags media
// @Produce json
// @Success 200 {object} models.FormatsResponse
// @Router /formats [get]
func (h *DownloadHandler) Formats(c *gin.Context) {
	c.JSON(http.StatusOK, models.FormatsResponse{
		Video:   formats.VideoTokens,
		Audio:   formats.AudioTokens,
		Default: formats.BestSelector,
	})
}
