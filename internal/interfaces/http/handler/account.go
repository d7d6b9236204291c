package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/fintrack/backend/internal/application/ledger"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	BaseHandler
	accountService *ledgerapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *ledgerapp.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// RegisterRoutes registers account routes on the API group
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.Create)
		accounts.GET("", h.List)
		accounts.GET("/:id", h.Get)
		accounts.PUT("/:id", h.Update)
		accounts.POST("/:id/resnapshot", h.Resnapshot)
		accounts.POST("/:id/archive", h.Archive)
		accounts.POST("/:id/unarchive", h.Unarchive)
		accounts.DELETE("/:id", h.Delete)
	}
}

// Create opens a new account
func (h *AccountHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input ledgerapp.CreateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// List returns all accounts with derived balances
func (h *AccountHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	includeArchived := c.Query("include_archived") == "true"

	views, err := h.accountService.ListAccounts(c.Request.Context(), userID, includeArchived)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// Get returns one account with its derived balance
func (h *AccountHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	view, err := h.accountService.GetAccount(c.Request.Context(), userID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Update changes mutable account fields
func (h *AccountHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	var input ledgerapp.UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), userID, accountID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Resnapshot replaces the opening balance snapshot
func (h *AccountHandler) Resnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	var input ledgerapp.ResnapshotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.accountService.Resnapshot(c.Request.Context(), userID, accountID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Archive hides the account from listings without deleting history
func (h *AccountHandler) Archive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	if err := h.accountService.ArchiveAccount(c.Request.Context(), userID, accountID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Unarchive restores an archived account
func (h *AccountHandler) Unarchive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	if err := h.accountService.UnarchiveAccount(c.Request.Context(), userID, accountID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes an account without transactions
func (h *AccountHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	accountID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), userID, accountID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
