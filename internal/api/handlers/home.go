package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/mediafetch/web"
)

// Home godoc
// @Summary Web interface
// @Description Minimal page for downloading media and managing cookies
// @Tags ui
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}
