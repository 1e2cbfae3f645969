package controller

import (
	"learnspace_backend/internal/service"
	"learnspace_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetReport godoc
// @Summary Resource usage analytics
// @Description Aggregates the usage-event log into daily series, user engagement, and resource rankings.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "7d, 30d, or 90d" default(30d)
// @Param lessonId query string false "scope to one lesson's resources"
// @Success 200 {object} util.Response{data=service.UsageReport}
// @Router /api/v1/analytics/resources [get]
func (c *AnalyticsController) GetReport(ctx *gin.Context) {
	period := ctx.DefaultQuery("period", "30d")

	report, err := c.AnalyticsService.GetReport(period, ctx.Query("lessonId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
