package handler

import (
	"github.com/gin-gonic/gin"

	portfolioapp "github.com/fintrack/backend/internal/application/portfolio"
)

// PortfolioHandler handles investment portfolio endpoints
type PortfolioHandler struct {
	BaseHandler
	portfolioService *portfolioapp.Service
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *portfolioapp.Service) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// RegisterRoutes registers portfolio routes on the API group
func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	portfolios := rg.Group("/portfolios")
	{
		portfolios.POST("", h.Create)
		portfolios.GET("", h.List)
		portfolios.GET("/:id/valuation", h.Valuation)
		portfolios.POST("/:id/buy", h.Buy)
		portfolios.POST("/:id/sell", h.Sell)
		portfolios.DELETE("/:id", h.Delete)
	}
}

// Create opens a new portfolio
func (h *PortfolioHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input portfolioapp.CreatePortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.portfolioService.CreatePortfolio(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, p)
}

// List returns all portfolios
func (h *PortfolioHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	portfolios, err := h.portfolioService.ListPortfolios(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, portfolios)
}

// Valuation prices every holding with market quotes
func (h *PortfolioHandler) Valuation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	portfolioID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid portfolio ID format")
		return
	}

	valuation, err := h.portfolioService.Valuation(c.Request.Context(), userID, portfolioID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, valuation)
}

// Buy records a buy order, averaging into the holding's cost basis
func (h *PortfolioHandler) Buy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	portfolioID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid portfolio ID format")
		return
	}

	var input portfolioapp.TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	holding, err := h.portfolioService.Buy(c.Request.Context(), userID, portfolioID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, holding)
}

// Sell records a sell order, reducing or closing the holding
func (h *PortfolioHandler) Sell(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	portfolioID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid portfolio ID format")
		return
	}

	var input portfolioapp.TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	holding, err := h.portfolioService.Sell(c.Request.Context(), userID, portfolioID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, holding)
}

// Delete removes a portfolio and its holdings
func (h *PortfolioHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	portfolioID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid portfolio ID format")
		return
	}

	if err := h.portfolioService.DeletePortfolio(c.Request.Context(), userID, portfolioID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
