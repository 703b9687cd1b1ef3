package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardash/internal/chart"
	"cardash/internal/dashboard"
	"cardash/internal/listing"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// Fail maps domain errors onto HTTP statuses.
func Fail(c *gin.Context, err error, logger *zap.Logger) {
	var missing *chart.MissingColumnsError
	switch {
	case errors.Is(err, listing.ErrUnknownBrand),
		errors.Is(err, listing.ErrUnknownModel),
		errors.Is(err, listing.ErrEmptySubset):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, dashboard.ErrNoListingURL):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &missing):
		if logger != nil {
			logger.Error("chart input missing columns", zap.String("builder", missing.Builder), zap.Strings("missing", missing.Missing))
		}
		Error(c, http.StatusInternalServerError, err.Error(), map[string]any{"missing": missing.Missing})
	default:
		if logger != nil {
			logger.Warn("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
