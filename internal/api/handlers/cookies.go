package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/mediafetch/internal/models"
	"github.com/denisAlshanov/mediafetch/internal/services/credentials"
	"github.com/denisAlshanov/mediafetch/internal/utils"
)

const cookiesFormField = "cookies"

type CookiesHandler struct {
	store *credentials.Store
}

func NewCookiesHandler(store *credentials.Store) *CookiesHandler {
	return &CookiesHandler{store: store}
}

// Upload godoc
// @Summary Upload a cookies file
// @Description Store a Netscape-format cookies.txt that is passed to yt-dlp on every request. Replaces any previous file.
// @Tags cookies
// @Accept multipart/form-data
// @Produce json
// @Param cookies formData file true "cookies.txt exported from a browser"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /upload-cookies [post]
func (h *CookiesHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	header, err := c.FormFile(cookiesFormField)
	if err != nil {
		errorResponse(c, utils.NewCookiesError(fmt.Sprintf("Missing multipart file field %q", cookiesFormField)))
		return
	}

	file, err := header.Open()
	if err != nil {
		errorResponse(c, utils.NewCookiesError(fmt.Sprintf("Failed to read uploaded file: %v", err)))
		return
	}
	defer file.Close()

	size, err := h.store.Upload(file)
	if err != nil {
		switch {
		case errors.Is(err, credentials.ErrEmpty):
			errorResponse(c, utils.NewCookiesError("Cookies file is empty"))
		case errors.Is(err, credentials.ErrTooLarge):
			errorResponse(c, utils.NewCookiesError("Cookies file is too large"))
		default:
			utils.LogError(ctx, "Failed to store cookies", err)
			errorResponse(c, utils.NewCookiesError(fmt.Sprintf("Failed to upload cookies: %v", err)))
		}
		return
	}

	utils.LogInfo(ctx, "Cookies uploaded", utils.Fields{
		"filename": header.Filename,
		"size":     size,
	})

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: "Cookies uploaded successfully",
		Status:  "success",
	})
}

// Delete godoc
// @Summary Delete the cookies file
// @Description Remove the stored cookies file. Succeeds when no file is stored.
// @Tags cookies
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /cookies [delete]
func (h *CookiesHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.store.Delete(); err != nil {
		utils.LogError(ctx, "Failed to delete cookies", err)
		errorResponse(c, utils.NewInternalError())
		return
	}

	utils.LogInfo(ctx, "Cookies deleted")

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: "Cookies deleted successfully",
		Status:  "success",
	})
}

// Status godoc
// @Summary Cookies file status
// @Description Report whether a cookies file is stored and its size in bytes
// @Tags cookies
// @Produce json
// @Success 200 {object} models.CookiesStatusResponse
// @Router /cookies/status [get]
func (h *CookiesHandler) Status(c *gin.Context) {
	status := h.store.Status()
	c.JSON(http.StatusOK, models.CookiesStatusResponse{
		HasCookies: status.HasCookies,
		FileSize:   status.FileSize,
	})
}
