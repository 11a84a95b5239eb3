package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tradejournal/internal/middleware"
	"github.com/tradejournal/internal/models"
	"github.com/tradejournal/internal/repository"
	"github.com/tradejournal/internal/service"
	"github.com/tradejournal/pkg/response"
)

// TradeHandler handles trade API requests
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// CreateTrade records a completed trade against an account
// POST /api/v1/accounts/:id/trades
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	var req service.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.tradeService.CreateTrade(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to create trade")
		return
	}

	response.Created(c, trade)
}

// ListTrades lists an account's trades, optionally filtered
// GET /api/v1/accounts/:id/trades
func (h *TradeHandler) ListTrades(c *gin.Context) {
	filter, err := parseTradeFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trades, err := h.tradeService.ListTrades(middleware.GetUserID(c), c.Param("id"), filter)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to list trades")
		return
	}

	response.Success(c, trades)
}

// ExportTrades streams an account's trades as a CSV attachment
// GET /api/v1/accounts/:id/trades/export
func (h *TradeHandler) ExportTrades(c *gin.Context) {
	filter, err := parseTradeFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="trades.csv"`)

	if err := h.tradeService.ExportCSV(c.Writer, middleware.GetUserID(c), c.Param("id"), filter); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to export trades")
		return
	}
}

// GetTrade retrieves a single trade
// GET /api/v1/trades/:id
func (h *TradeHandler) GetTrade(c *gin.Context) {
	trade, err := h.tradeService.GetTrade(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTradeNotFound) {
			response.NotFound(c, "trade not found")
			return
		}
		response.InternalError(c, "failed to get trade")
		return
	}

	response.Success(c, trade)
}

// UpdateTrade applies a partial update to a trade
// PUT /api/v1/trades/:id
func (h *TradeHandler) UpdateTrade(c *gin.Context) {
	var req service.UpdateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.tradeService.UpdateTrade(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrTradeNotFound) {
			response.NotFound(c, "trade not found")
			return
		}
		response.InternalError(c, "failed to update trade")
		return
	}

	response.Success(c, trade)
}

// DeleteTrade removes a trade
// DELETE /api/v1/trades/:id
func (h *TradeHandler) DeleteTrade(c *gin.Context) {
	err := h.tradeService.DeleteTrade(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTradeNotFound) {
			response.NotFound(c, "trade not found")
			return
		}
		response.InternalError(c, "failed to delete trade")
		return
	}

	response.Success(c, nil)
}

// parseTradeFilter builds a TradeFilter from list query parameters
func parseTradeFilter(c *gin.Context) (repository.TradeFilter, error) {
	filter := repository.TradeFilter{
		Market: models.MarketType(c.Query("market")),
		Type:   models.TradeType(c.Query("type")),
		Status: models.TradeStatus(c.Query("status")),
		Symbol: c.Query("symbol"),
	}

	if v := c.Query("from"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return filter, errors.New("invalid from date")
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return filter, errors.New("invalid to date")
		}
		// Inclusive through the end of the day when only a date is given.
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &t
	}

	return filter, nil
}

func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

// RegisterRoutes registers trade routes
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	accountTrades := rg.Group("/accounts/:id/trades")
	accountTrades.Use(authMiddleware)
	{
		accountTrades.POST("", h.CreateTrade)
		accountTrades.GET("", h.ListTrades)
		accountTrades.GET("/export", h.ExportTrades)
	}

	trades := rg.Group("/trades")
	trades.Use(authMiddleware)
	{
		trades.GET("/:id", h.GetTrade)
		trades.PUT("/:id", h.UpdateTrade)
		trades.DELETE("/:id", h.DeleteTrade)
	}
}
