package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fleet-system/internal/services"
	"fleet-system/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(service services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: service,
		logger:           logger,
	}
}

func (c *DashboardController) GetSummary(ctx echo.Context) error {
	res, err := c.dashboardService.GetSummary(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetSummary: ошибка при сборке сводки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Сводка по парку получена", http.StatusOK)
}
