package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	taxapp "github.com/fintrack/backend/internal/application/tax"
)

// TaxHandler handles tax period endpoints
type TaxHandler struct {
	BaseHandler
	taxService *taxapp.Service
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(taxService *taxapp.Service) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// RegisterRoutes registers tax routes on the API group
func (h *TaxHandler) RegisterRoutes(rg *gin.RouterGroup) {
	periods := rg.Group("/tax-periods")
	{
		periods.POST("", h.Create)
		periods.GET("", h.List)
		periods.GET("/:id", h.Get)
		periods.GET("/:id/estimate", h.Estimate)
		periods.POST("/:id/file", h.File)
		periods.POST("/:id/pay", h.Pay)
		periods.POST("/:id/reopen", h.Reopen)
		periods.DELETE("/:id", h.Delete)
	}
}

// Create opens a new tax period
func (h *TaxHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input taxapp.CreatePeriodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	period, err := h.taxService.CreatePeriod(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, period)
}

// List returns tax periods, optionally filtered by year
func (h *TaxHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var year *int
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return
		}
		year = &parsed
	}

	periods, err := h.taxService.ListPeriods(c.Request.Context(), userID, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, periods)
}

// Get returns one tax period
func (h *TaxHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	periodID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid tax period ID format")
		return
	}

	period, err := h.taxService.GetPeriod(c.Request.Context(), userID, periodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// Estimate computes the period's estimated tax liability
func (h *TaxHandler) Estimate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	periodID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid tax period ID format")
		return
	}

	estimate, err := h.taxService.Estimate(c.Request.Context(), userID, periodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, estimate)
}

// File marks the period as filed
func (h *TaxHandler) File(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	periodID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid tax period ID format")
		return
	}

	period, err := h.taxService.FilePeriod(c.Request.Context(), userID, periodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// Pay marks the filed period as paid
func (h *TaxHandler) Pay(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	periodID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid tax period ID format")
		return
	}

	period, err := h.taxService.PayPeriod(c.Request.Context(), userID, periodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// Reopen returns a filed period to open
func (h *TaxHandler) Reopen(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	periodID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid tax period ID format")
		return
	}

	period, err := h.taxService.ReopenPeriod(c.Request.Context(), userID, periodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// Delete removes an open tax period
func (h *TaxHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	periodID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid tax period ID format")
		return
	}

	if err := h.taxService.DeletePeriod(c.Request.Context(), userID, periodID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
