package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardash/internal/chart"
	"cardash/internal/dashboard"
)

type DashboardHandler struct {
	Service *dashboard.Service
	Logger  *zap.Logger
	// Default PNG size.
	Width  int
	Height int
	// OpenInPage tells the page to open clicked listings itself, for when the
	// server has no browser launcher.
	OpenInPage bool
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	group := r.Group("/api/dashboard")
	group.GET("/brands", h.listBrands)
	group.GET("/models", h.listModels)
	group.GET("/bounds", h.getBounds)
	group.GET("/view", h.getView)
	group.POST("/click", h.click)

	charts := r.Group("/api/charts")
	charts.GET("/price-age", h.priceAge)
	charts.GET("/comparison", h.comparison)
}

func (h *DashboardHandler) ready(c *gin.Context) bool {
	if h.Service == nil || h.Service.Table == nil {
		Error(c, http.StatusServiceUnavailable, "listing table not loaded", nil)
		return false
	}
	return true
}

// @Summary List brands
// @Tags dashboard
// @Success 200 {object} apiResponse
// @Router /api/dashboard/brands [get]
func (h *DashboardHandler) listBrands(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	brands := h.Service.Table.Brands()
	Ok(c, brands, map[string]any{"total": len(brands)})
}

// @Summary List models of a brand
// @Tags dashboard
// @Param brand query string true "brand"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/dashboard/models [get]
func (h *DashboardHandler) listModels(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	brand := strings.TrimSpace(c.Query("brand"))
	if brand == "" {
		Error(c, http.StatusBadRequest, "brand is required", nil)
		return
	}
	models, def, err := h.Service.ModelOptions(brand)
	if err != nil {
		Fail(c, err, h.Logger)
		return
	}
	Ok(c, gin.H{"models": models, "default": def}, nil)
}

// @Summary Slider bounds for a brand and model
// @Tags dashboard
// @Param brand query string true "brand"
// @Param model query string true "model"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/dashboard/bounds [get]
func (h *DashboardHandler) getBounds(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	brand := strings.TrimSpace(c.Query("brand"))
	model := strings.TrimSpace(c.Query("model"))
	if brand == "" || model == "" {
		Error(c, http.StatusBadRequest, "brand and model are required", nil)
		return
	}
	b, err := h.Service.Bounds(brand, model)
	if err != nil {
		Fail(c, err, h.Logger)
		return
	}
	Ok(c, b, nil)
}

// @Summary Recompute the dashboard after one interaction
// @Tags dashboard
// @Param brand query string false "brand (defaults to the first brand)"
// @Param model query string false "model (defaults to the first model of brand)"
// @Param age_min query int false "age min (months)"
// @Param age_max query int false "age max (months)"
// @Param mileage_min query int false "mileage min (km)"
// @Param mileage_max query int false "mileage max (km)"
// @Param power_min query int false "power min (hp)"
// @Param power_max query int false "power max (hp)"
// @Param changed query string false "control that changed (brand|model|age|mileage|power)"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/dashboard/view [get]
func (h *DashboardHandler) getView(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	state, err := stateQuery(c)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	changed, err := dashboard.ParseField(strings.TrimSpace(c.Query("changed")))
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	view, err := h.Service.View(c.Request.Context(), dashboard.FilterState{}, state, changed)
	if err != nil {
		Fail(c, err, h.Logger)
		return
	}
	Ok(c, view, nil)
}

type clickRequest struct {
	CustomData []any `json:"customdata" binding:"required"`
}

// @Summary Open the listing behind a scatter point
// @Tags dashboard
// @Accept json
// @Param body body clickRequest true "point payload"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/dashboard/click [post]
func (h *DashboardHandler) click(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusServiceUnavailable, "service unavailable", nil)
		return
	}
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	url, err := h.Service.Click(c.Request.Context(), req.CustomData)
	if err != nil {
		Fail(c, err, h.Logger)
		return
	}
	Ok(c, gin.H{"url": url}, map[string]any{"open_in_page": h.OpenInPage})
}

// @Summary Price/age scatter for the selected model
// @Tags charts
// @Produce json,png
// @Param brand query string false "brand"
// @Param model query string false "model"
// @Param age_min query int false "age min"
// @Param age_max query int false "age max"
// @Param mileage_min query int false "mileage min"
// @Param mileage_max query int false "mileage max"
// @Param power_min query int false "power min"
// @Param power_max query int false "power max"
// @Param format query string false "json|png"
// @Param width query int false "png width"
// @Param height query int false "png height"
// @Success 200 {object} apiResponse
// @Router /api/charts/price-age [get]
func (h *DashboardHandler) priceAge(c *gin.Context) {
	h.figure(c, func(p dashboard.ChartPair) *chart.Figure { return p.PriceAge })
}

// @Summary Price comparison boxplot across models
// @Tags charts
// @Produce json,png
// @Param brand query string false "brand"
// @Param model query string false "model"
// @Param age_min query int false "age min"
// @Param age_max query int false "age max"
// @Param mileage_min query int false "mileage min"
// @Param mileage_max query int false "mileage max"
// @Param power_min query int false "power min"
// @Param power_max query int false "power max"
// @Param format query string false "json|png"
// @Param width query int false "png width"
// @Param height query int false "png height"
// @Success 200 {object} apiResponse
// @Router /api/charts/comparison [get]
func (h *DashboardHandler) comparison(c *gin.Context) {
	h.figure(c, func(p dashboard.ChartPair) *chart.Figure { return p.Comparison })
}

func (h *DashboardHandler) figure(c *gin.Context, pick func(dashboard.ChartPair) *chart.Figure) {
	if !h.ready(c) {
		return
	}
	state, err := stateQuery(c)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	state, err = h.Service.Transition(dashboard.FilterState{}, state, dashboard.FieldNone)
	if err != nil {
		Fail(c, err, h.Logger)
		return
	}
	pair, err := h.Service.Charts(c.Request.Context(), state)
	if err != nil {
		Fail(c, err, h.Logger)
		return
	}
	fig := pick(pair)

	switch strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "json"))) {
	case "json":
		Ok(c, fig, map[string]any{"state": state})
	case "png":
		width := intQuery(c, "width", h.Width)
		height := intQuery(c, "height", h.Height)
		if width <= 0 || height <= 0 || width > 4000 || height > 4000 {
			Error(c, http.StatusBadRequest, "width and height must be within 1..4000", nil)
			return
		}
		var buf bytes.Buffer
		if err := chart.RenderPNG(fig, width, height, &buf); err != nil {
			Fail(c, err, h.Logger)
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	default:
		Error(c, http.StatusBadRequest, "format must be json or png", nil)
	}
}
