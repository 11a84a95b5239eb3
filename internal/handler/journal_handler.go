package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tradejournal/internal/middleware"
	"github.com/tradejournal/internal/repository"
	"github.com/tradejournal/internal/service"
	"github.com/tradejournal/pkg/response"
)

// JournalHandler handles journal entry API requests
type JournalHandler struct {
	journalService *service.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
	}
}

// CreateJournal records a journal entry against an account
// POST /api/v1/accounts/:id/journals
func (h *JournalHandler) CreateJournal(c *gin.Context) {
	var req service.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	journal, err := h.journalService.CreateJournal(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to create journal entry")
		return
	}

	response.Created(c, journal)
}

// ListJournals lists an account's journal entries
// GET /api/v1/accounts/:id/journals
func (h *JournalHandler) ListJournals(c *gin.Context) {
	journals, err := h.journalService.ListJournals(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to list journal entries")
		return
	}

	response.Success(c, journals)
}

// UpdateJournal applies a partial update to a journal entry
// PUT /api/v1/journals/:id
func (h *JournalHandler) UpdateJournal(c *gin.Context) {
	var req service.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	journal, err := h.journalService.UpdateJournal(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrJournalNotFound) {
			response.NotFound(c, "journal entry not found")
			return
		}
		response.InternalError(c, "failed to update journal entry")
		return
	}

	response.Success(c, journal)
}

// DeleteJournal removes a journal entry
// DELETE /api/v1/journals/:id
func (h *JournalHandler) DeleteJournal(c *gin.Context) {
	err := h.journalService.DeleteJournal(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrJournalNotFound) {
			response.NotFound(c, "journal entry not found")
			return
		}
		response.InternalError(c, "failed to delete journal entry")
		return
	}

	response.Success(c, nil)
}

// RegisterRoutes registers journal routes
func (h *JournalHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	accountJournals := rg.Group("/accounts/:id/journals")
	accountJournals.Use(authMiddleware)
	{
		accountJournals.POST("", h.CreateJournal)
		accountJournals.GET("", h.ListJournals)
	}

	journals := rg.Group("/journals")
	journals.Use(authMiddleware)
	{
		journals.PUT("/:id", h.UpdateJournal)
		journals.DELETE("/:id", h.DeleteJournal)
	}
}
