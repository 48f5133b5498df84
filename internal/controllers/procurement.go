package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fleet-system/internal/dto"
	"fleet-system/internal/services"
	apperrors "fleet-system/pkg/errors"
	"fleet-system/pkg/types"
	"fleet-system/pkg/utils"
)

type ProcurementController struct {
	procurementService services.ProcurementServiceInterface
	logger             *zap.Logger
}

func NewProcurementController(service services.ProcurementServiceInterface, logger *zap.Logger) *ProcurementController {
	return &ProcurementController{
		procurementService: service,
		logger:             logger,
	}
}

func (c *ProcurementController) parseID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID заявки", err, nil)
	}
	return id, nil
}

func (c *ProcurementController) GetRequests(ctx echo.Context) error {
	params := utils.ParseQuery(ctx.Request().URL.Query())
	filter := types.Filter{
		Filter: map[string]interface{}{},
		Limit:  int(params.Limit),
		Offset: int(params.Offset),
	}
	for key, value := range params.Filters {
		filter.Filter[key] = value
	}

	res, total, err := c.procurementService.GetRequests(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetRequests: ошибка при получении заявок", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список заявок на снабжение получен", http.StatusOK, total)
}

func (c *ProcurementController) FindRequest(ctx echo.Context) error {
	id, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.procurementService.FindRequest(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка на снабжение найдена", http.StatusOK)
}

func (c *ProcurementController) CreateRequest(ctx echo.Context) error {
	var data dto.CreateProcurementDTO
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

	res, err := c.procurementService.CreateRequest(ctx.Request().Context(), data)
	if err != nil {
		c.logger.Error("CreateRequest: ошибка при создании заявки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка на снабжение создана", http.StatusCreated)
}

func (c *ProcurementController) SetStatus(ctx echo.Context) error {
	id, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var data dto.SetProcurementStatusDTO
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

	if err := c.procurementService.SetStatus(ctx.Request().Context(), id, data); err != nil {
		c.logger.Error("SetStatus: ошибка при смене статуса заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Статус заявки обновлен", http.StatusOK)
}

func (c *ProcurementController) UpdateRequest(ctx echo.Context) error {
	id, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var data dto.UpdateProcurementDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}

	if err := c.procurementService.UpdateRequest(ctx.Request().Context(), id, data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Заявка обновлена", http.StatusOK)
}

func (c *ProcurementController) GetHistory(ctx echo.Context) error {
	id, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.procurementService.GetHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "История заявки получена", http.StatusOK)
}
