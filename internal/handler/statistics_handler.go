package handler

import (
	"net/http"

	"taxportal/internal/middleware"
	"taxportal/internal/model"
	"taxportal/internal/service"
	"taxportal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/api/statistics")
	stats.Use(middleware.RequireRole(model.RoleAdmin, model.RoleTaxpayer))
	{
		stats.GET("/summary", h.GetSummary)
	}
}

// GetSummary handles GET /api/statistics/summary. Admins get region-wide
// numbers, taxpayers get their own.
// @Summary      Dashboard summary
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.SummaryResponse}
// @Router       /api/statistics/summary [get]
func (h *StatisticsHandler) GetSummary(c *gin.Context) {
	actorID, role := actor(c)

	var filter *uuid.UUID
	if role != model.RoleAdmin {
		ownerID, err := uuid.Parse(actorID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid user id"))
			return
		}
		filter = &ownerID
	}

	summary, err := h.statisticsService.GetSummary(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
