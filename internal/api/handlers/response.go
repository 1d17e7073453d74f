package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/mediafetch/internal/models"
	"github.com/denisAlshanov/mediafetch/internal/utils"
)

func errorResponse(c *gin.Context, err *utils.AppError) {
	c.JSON(err.StatusCode, models.ErrorResponse{
		Detail:    err.Message,
		Code:      string(err.Code),
		RequestID: c.GetString("request_id"),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
