package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	dashboardapp "github.com/fintrack/backend/internal/application/dashboard"
)

// DashboardHandler handles the overview endpoint
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RegisterRoutes registers dashboard routes on the API group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Overview)
}

// Overview aggregates net worth, monthly activity, invoices, budgets,
// goals and portfolio value into one response
func (h *DashboardHandler) Overview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	overview, err := h.dashboardService.Overview(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, overview)
}
