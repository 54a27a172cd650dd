package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shelfwatch/backend/config"
	"github.com/shelfwatch/backend/internal/domain"
	"github.com/shelfwatch/backend/internal/usecase"
)

// Limit bounds per endpoint. Out-of-range values are clamped rather
// than rejected; only non-numeric input is a client error.
const (
	defaultListLimit   = 50
	maxListLimit       = 500
	defaultSearchLimit = 8
	maxSearchLimit     = 50
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	views *usecase.ViewService
}

// NewHandler creates a new HTTP handler
func NewHandler(views *usecase.ViewService) *Handler {
	return &Handler{views: views}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListProducts returns product views with their latest prices
func (h *Handler) ListProducts(c *gin.Context) {
	limit, ok := h.limitParam(c, defaultListLimit, maxListLimit)
	if !ok {
		return
	}

	views, err := h.views.BuildProductViews(c.Request.Context())
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	if limit < len(views) {
		views = views[:limit]
	}
	c.JSON(http.StatusOK, views)
}

// SearchProducts returns product views ranked against the q parameter
func (h *Handler) SearchProducts(c *gin.Context) {
	limit, ok := h.limitParam(c, defaultSearchLimit, maxSearchLimit)
	if !ok {
		return
	}
	query := c.Query("q")

	views, err := h.views.BuildProductViews(c.Request.Context())
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, usecase.SearchViews(views, query, limit))
}

// CompareProducts returns per-store price comparison views for the
// repeatable key parameter
func (h *Handler) CompareProducts(c *gin.Context) {
	keys := c.QueryArray("key")

	views, err := h.views.BuildCompareViews(c.Request.Context(), keys)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// limitParam parses and clamps the limit query parameter. On
// non-numeric input it writes a 400 response and returns ok=false.
func (h *Handler) limitParam(c *gin.Context, def, max int) (int, bool) {
	raw := c.DefaultQuery("limit", strconv.Itoa(def))
	limit, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("limit must be an integer, got %q", raw),
		})
		return 0, false
	}
	if limit < 1 {
		limit = 1
	}
	if limit > max {
		limit = max
	}
	return limit, true
}

// respondCatalogError maps loader failures to responses. A missing or
// invalid catalog is a configuration problem, so the message names the
// path and the override that fixes it.
func (h *Handler) respondCatalogError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": fmt.Sprintf("%v (set %s to point at the scraper's products file)", err, config.EnvProductsPath),
		})
		return
	}

	log.Printf("[HTTP] Unexpected error building views: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
