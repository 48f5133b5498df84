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

type BreakdownController struct {
	breakdownService services.BreakdownServiceInterface
	logger           *zap.Logger
}

func NewBreakdownController(service services.BreakdownServiceInterface, logger *zap.Logger) *BreakdownController {
	return &BreakdownController{
		breakdownService: service,
		logger:           logger,
	}
}

func (c *BreakdownController) GetBreakdowns(ctx echo.Context) error {
	params := utils.ParseQuery(ctx.Request().URL.Query())
	filter := types.Filter{
		Search: params.Search,
		Sort:   map[string]string{params.SortBy: params.SortOrder},
		Filter: map[string]interface{}{},
		Limit:  int(params.Limit),
		Offset: int(params.Offset),
	}
	for key, value := range params.Filters {
		filter.Filter[key] = value
	}

	res, total, err := c.breakdownService.GetBreakdowns(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetBreakdowns: ошибка при получении списка актов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список актов о поломках получен", http.StatusOK, total)
}

func (c *BreakdownController) FindBreakdown(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID акта", err, nil),
			c.logger,
		)
	}

	res, err := c.breakdownService.FindBreakdown(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Акт о поломке найден", http.StatusOK)
}

func (c *BreakdownController) Report(ctx echo.Context) error {
	var data dto.ReportBreakdownDTO
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

	res, err := c.breakdownService.Report(ctx.Request().Context(), data)
	if err != nil {
		c.logger.Error("Report: ошибка при регистрации поломки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Акт о поломке зарегистрирован", http.StatusCreated)
}

func (c *BreakdownController) SetStatus(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID акта", err, nil),
			c.logger,
		)
	}

	var data dto.SetBreakdownStatusDTO
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

	if err := c.breakdownService.SetStatus(ctx.Request().Context(), id, data); err != nil {
		c.logger.Error("SetStatus: ошибка при смене статуса акта", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Статус акта обновлен", http.StatusOK)
}
