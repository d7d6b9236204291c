package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	budgetapp "github.com/fintrack/backend/internal/application/budget"
)

// BudgetHandler handles monthly budget endpoints
type BudgetHandler struct {
	BaseHandler
	budgetService *budgetapp.Service
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *budgetapp.Service) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// RegisterRoutes registers budget routes on the API group
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.Create)
		budgets.GET("", h.ListByMonth)
		budgets.GET("/:id", h.GetProgress)
		budgets.PUT("/:id", h.Update)
		budgets.DELETE("/:id", h.Delete)
	}
}

// Create sets a spending cap for a category and month
func (h *BudgetHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input budgetapp.CreateBudgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	b, err := h.budgetService.CreateBudget(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, b)
}

// ListByMonth returns every budget for a month with spend progress.
// The month defaults to the current one.
func (h *BudgetHandler) ListByMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	month := time.Now().UTC()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			h.BadRequest(c, "Invalid month format, expected YYYY-MM")
			return
		}
		month = parsed
	}

	progress, err := h.budgetService.ListProgressByMonth(c.Request.Context(), userID, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, progress)
}

// GetProgress returns one budget with spend progress
func (h *BudgetHandler) GetProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	budgetID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	progress, err := h.budgetService.GetProgress(c.Request.Context(), userID, budgetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, progress)
}

// Update changes the budget cap
func (h *BudgetHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	budgetID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	var input budgetapp.UpdateBudgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	b, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, budgetID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, b)
}

// Delete removes a budget
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	budgetID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, budgetID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
