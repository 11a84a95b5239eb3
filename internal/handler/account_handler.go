package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tradejournal/internal/middleware"
	"github.com/tradejournal/internal/repository"
	"github.com/tradejournal/internal/service"
	"github.com/tradejournal/pkg/response"
)

// AccountHandler handles account API requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// CreateAccount handles account creation
// POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req service.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(middleware.GetUserID(c), &req)
	if err != nil {
		response.InternalError(c, "failed to create account")
		return
	}

	response.Created(c, account)
}

// GetAccounts lists the user's accounts
// GET /api/v1/accounts
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	accounts, err := h.accountService.GetAccounts(middleware.GetUserID(c))
	if err != nil {
		response.InternalError(c, "failed to list accounts")
		return
	}

	response.Success(c, accounts)
}

// GetAccount retrieves a single account
// GET /api/v1/accounts/:id
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to get account")
		return
	}

	response.Success(c, account)
}

// UpdateAccount updates an account's name or type
// PUT /api/v1/accounts/:id
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req service.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to update account")
		return
	}

	response.Success(c, account)
}

// ResetBalance resets balance and initial balance to a supplied value
// POST /api/v1/accounts/:id/reset-balance
func (h *AccountHandler) ResetBalance(c *gin.Context) {
	var req service.ResetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.ResetBalance(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to reset balance")
		return
	}

	response.Success(c, account)
}

// DeleteAccount deletes an account and its trades and journals
// DELETE /api/v1/accounts/:id
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	err := h.accountService.DeleteAccount(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, "failed to delete account")
		return
	}

	response.Success(c, nil)
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	accounts := rg.Group("/accounts")
	accounts.Use(authMiddleware)
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.GetAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.PUT("/:id", h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
		accounts.POST("/:id/reset-balance", h.ResetBalance)
	}
}
