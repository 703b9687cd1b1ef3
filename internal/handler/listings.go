package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardash/internal/repository"
	"cardash/internal/service"
)

// ListingHandler exposes the stored listing snapshot. Only registered when a
// database is configured.
type ListingHandler struct {
	QueryService *service.ListingQueryService
	Logger       *zap.Logger
}

func (h *ListingHandler) Register(r *gin.Engine) {
	group := r.Group("/api/listings")
	group.GET("", h.listListings)
	group.GET("/brand-models", h.listBrandModels)
}

var listingOrderColumns = map[string]string{
	"price":       "price",
	"age":         "vehicle_age",
	"vehicle_age": "vehicle_age",
	"mileage":     "mileage",
	"power":       "power_hp",
	"pct_diff":    "pct_diff",
}

// @Summary List stored listings
// @Tags listings
// @Param brand query string false "brand"
// @Param model query string false "model"
// @Param fuel query string false "fuel"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Param order_by query string false "price|age|mileage|power|pct_diff"
// @Param asc query bool false "ascending"
// @Success 200 {object} apiResponse
// @Router /api/listings [get]
func (h *ListingHandler) listListings(c *gin.Context) {
	if h.QueryService == nil {
		Error(c, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	params := repository.ListListingsParams{
		Limit:   intQuery(c, "limit", 100),
		Offset:  intQuery(c, "offset", 0),
		Brand:   strQueryPtr(c, "brand"),
		Model:   strQueryPtr(c, "model"),
		Fuel:    strQueryPtr(c, "fuel"),
		OrderBy: listingOrderColumns[c.Query("order_by")],
		Asc:     boolQueryPtr(c, "asc"),
	}
	result, err := h.QueryService.ListListings(c.Request.Context(), params)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list listings failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result.Items, map[string]any{
		"total":  result.Total,
		"limit":  params.Limit,
		"offset": params.Offset,
	})
}

// @Summary Listing counts per brand and model
// @Tags listings
// @Success 200 {object} apiResponse
// @Router /api/listings/brand-models [get]
func (h *ListingHandler) listBrandModels(c *gin.Context) {
	if h.QueryService == nil {
		Error(c, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	items, err := h.QueryService.BrandModels(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"total": len(items)})
}
