package handler

import (
	"embed"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

//go:embed web/index.html
var webFS embed.FS

// UIHandler serves the dashboard page and the car images.
type UIHandler struct {
	AssetsDir string
}

func (h *UIHandler) Register(r *gin.Engine) {
	r.GET("/", h.index)
	if h.AssetsDir != "" {
		if info, err := os.Stat(h.AssetsDir); err == nil && info.IsDir() {
			r.Static("/assets", h.AssetsDir)
		}
	}
}

func (h *UIHandler) index(c *gin.Context) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		Error(c, http.StatusInternalServerError, "page missing", nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
