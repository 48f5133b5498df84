package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fleet-system/internal/dto"
	"fleet-system/internal/services"
	apperrors "fleet-system/pkg/errors"
	"fleet-system/pkg/utils"
)

type MaintenanceController struct {
	maintenanceService services.MaintenanceServiceInterface
	logger             *zap.Logger
}

func NewMaintenanceController(service services.MaintenanceServiceInterface, logger *zap.Logger) *MaintenanceController {
	return &MaintenanceController{
		maintenanceService: service,
		logger:             logger,
	}
}

func (c *MaintenanceController) parseID(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID", err, nil)
	}
	return id, nil
}

// GetByEquipment возвращает план ТО по конкретной единице техники.
func (c *MaintenanceController) GetByEquipment(ctx echo.Context) error {
	equipmentID, err := c.parseID(ctx, "equipmentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.GetByEquipment(ctx.Request().Context(), equipmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "План ТО получен", http.StatusOK)
}

func (c *MaintenanceController) CreatePlanned(ctx echo.Context) error {
	var data dto.CreatePlannedMaintenanceDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil),
			c.logger,
		)
	}

	res, err := c.maintenanceService.CreatePlanned(ctx.Request().Context(), data)
	if err != nil {
		c.logger.Error("CreatePlanned: ошибка при создании записи плана ТО", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Запись плана ТО создана", http.StatusCreated)
}

func (c *MaintenanceController) UpdatePlanned(ctx echo.Context) error {
	id, err := c.parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var data dto.UpdatePlannedMaintenanceDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil),
			c.logger,
		)
	}

	if err := c.maintenanceService.UpdatePlanned(ctx.Request().Context(), id, data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Запись плана ТО обновлена", http.StatusOK)
}

func (c *MaintenanceController) DeletePlanned(ctx echo.Context) error {
	id, err := c.parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.maintenanceService.DeletePlanned(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Запись плана ТО удалена", http.StatusOK)
}

// GetRecords возвращает журнал выполненного обслуживания по технике.
func (c *MaintenanceController) GetRecords(ctx echo.Context) error {
	equipmentID, err := c.parseID(ctx, "equipmentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.GetRecords(ctx.Request().Context(), equipmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Журнал обслуживания получен", http.StatusOK)
}
