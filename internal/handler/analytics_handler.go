package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tradejournal/internal/middleware"
	"github.com/tradejournal/internal/repository"
	"github.com/tradejournal/internal/service"
	"github.com/tradejournal/pkg/response"
)

// AnalyticsHandler handles dashboard and analytics API requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Dashboard returns summary stats plus monthly and current-month daily series
// GET /api/v1/accounts/:id/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	data, err := h.analyticsService.Dashboard(
		c.Request.Context(), middleware.GetUserID(c), c.Param("id"), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to compute dashboard")
		return
	}

	response.Success(c, data)
}

// Analytics returns the full analytics payload for an account
// GET /api/v1/accounts/:id/analytics
func (h *AnalyticsHandler) Analytics(c *gin.Context) {
	data, err := h.analyticsService.Analytics(
		c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to compute analytics")
		return
	}

	response.Success(c, data)
}

// Calendar returns the month display grid for an account
// GET /api/v1/accounts/:id/calendar?month=2025-07
func (h *AnalyticsHandler) Calendar(c *gin.Context) {
	ref := time.Now()
	if v := c.Query("month"); v != "" {
		parsed, err := time.Parse("2006-01", v)
		if err != nil {
			response.BadRequest(c, "invalid month, expected YYYY-MM")
			return
		}
		ref = parsed
	}

	grid, err := h.analyticsService.Calendar(
		c.Request.Context(), middleware.GetUserID(c), c.Param("id"), ref)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to build calendar")
		return
	}

	response.Success(c, grid)
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	accounts := rg.Group("/accounts/:id")
	accounts.Use(authMiddleware)
	{
		accounts.GET("/dashboard", h.Dashboard)
		accounts.GET("/analytics", h.Analytics)
		accounts.GET("/calendar", h.Calendar)
	}
}
