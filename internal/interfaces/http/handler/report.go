package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/fintrack/backend/internal/application/report"
)

// ReportHandler handles financial report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes on the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/profit-loss", h.ProfitLoss)
		reports.GET("/cash-flow", h.CashFlow)
		reports.GET("/forecast", h.Forecast)
	}
}

// ProfitLoss builds a profit and loss statement for a date range
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input reportapp.RangeInput
	if err := c.ShouldBindQuery(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.ProfitLoss(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CashFlow builds a month-by-month cash flow statement
func (h *ReportHandler) CashFlow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input reportapp.RangeInput
	if err := c.ShouldBindQuery(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.CashFlow(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Forecast projects future monthly net flow from history
func (h *ReportHandler) Forecast(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input reportapp.ForecastInput
	if err := c.ShouldBindQuery(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.Forecast(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
