package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/models"
	"budgettracker/internal/services"
)

// StatisticsHandler serves the income/expense report.
type StatisticsHandler struct {
	statisticsService services.StatisticsServicer
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(statisticsService services.StatisticsServicer) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// StatisticsQuery holds the statistics query parameters.
type StatisticsQuery struct {
	Interval models.IntervalType `form:"interval" binding:"required,interval_type"`
}

// GetStatistics generates the report for the requested interval
// @Summary     Income and expense statistics
// @Tags        statistics
// @Produce     json
// @Security    BearerAuth
// @Param       interval query string true "WEEKLY, MONTHLY or YEARLY"
// @Success     200 {object} map[string]interface{} "Statistics"
// @Failure     400 {object} ErrorResponse "Invalid interval"
// @Router      /statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	var q StatisticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInterval, err.Error()))
		return
	}

	stats, err := h.statisticsService.GenerateStatistics(q.Interval)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistics": stats, "totals": stats.Totals()})
}
