package handler

import (
	"github.com/gin-gonic/gin"

	planningapp "github.com/fintrack/backend/internal/application/planning"
)

// PlanningHandler handles savings goal and loan endpoints
type PlanningHandler struct {
	BaseHandler
	planningService *planningapp.Service
}

// NewPlanningHandler creates a new PlanningHandler
func NewPlanningHandler(planningService *planningapp.Service) *PlanningHandler {
	return &PlanningHandler{planningService: planningService}
}

// RegisterRoutes registers planning routes on the API group
func (h *PlanningHandler) RegisterRoutes(rg *gin.RouterGroup) {
	goals := rg.Group("/goals")
	{
		goals.POST("", h.CreateGoal)
		goals.GET("", h.ListGoals)
		goals.GET("/:id", h.GetGoal)
		goals.PUT("/:id", h.UpdateGoal)
		goals.DELETE("/:id", h.DeleteGoal)
	}

	loans := rg.Group("/loans")
	{
		loans.POST("", h.CreateLoan)
		loans.GET("", h.ListLoans)
		loans.GET("/:id/schedule", h.GetLoanSchedule)
		loans.DELETE("/:id", h.DeleteLoan)
	}
}

// CreateGoal adds a savings goal, optionally linked to an account
func (h *PlanningHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input planningapp.GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	goal, err := h.planningService.CreateGoal(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, goal)
}

// ListGoals returns every goal with saved progress
func (h *PlanningHandler) ListGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	progress, err := h.planningService.ListGoalProgress(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, progress)
}

// GetGoal returns one goal with saved progress
func (h *PlanningHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	goalID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid goal ID format")
		return
	}

	progress, err := h.planningService.GetGoalProgress(c.Request.Context(), userID, goalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, progress)
}

// UpdateGoal replaces the goal's target and account link
func (h *PlanningHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	goalID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid goal ID format")
		return
	}

	var input planningapp.GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	goal, err := h.planningService.UpdateGoal(c.Request.Context(), userID, goalID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, goal)
}

// DeleteGoal removes a goal
func (h *PlanningHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	goalID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid goal ID format")
		return
	}

	if err := h.planningService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateLoan records a fixed-rate loan
func (h *PlanningHandler) CreateLoan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input planningapp.LoanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.planningService.CreateLoan(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, view)
}

// ListLoans returns every loan with its monthly payment
func (h *PlanningHandler) ListLoans(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	views, err := h.planningService.ListLoans(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// GetLoanSchedule returns the loan's full amortization schedule
func (h *PlanningHandler) GetLoanSchedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	loanID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid loan ID format")
		return
	}

	view, err := h.planningService.GetLoanSchedule(c.Request.Context(), userID, loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// DeleteLoan removes a loan
func (h *PlanningHandler) DeleteLoan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	loanID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid loan ID format")
		return
	}

	if err := h.planningService.DeleteLoan(c.Request.Context(), userID, loanID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
