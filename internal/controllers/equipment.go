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

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	importService    *services.EquipmentImportService
	logger           *zap.Logger
}

func NewEquipmentController(
	service services.EquipmentServiceInterface,
	importService *services.EquipmentImportService,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: service,
		importService:    importService,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
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

	res, total, err := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetEquipments: ошибка при получении списка техники", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список техники получен", http.StatusOK, total)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID техники", err, nil),
			c.logger,
		)
	}

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Техника найдена", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var data dto.CreateEquipmentDTO
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

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), data)
	if err != nil {
		c.logger.Error("CreateEquipment: ошибка при создании техники", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Техника зарегистрирована", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID техники", err, nil),
			c.logger,
		)
	}

	var data dto.UpdateEquipmentDTO
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

	if err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Техника обновлена", http.StatusOK)
}

func (c *EquipmentController) UpdateCounters(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID техники", err, nil),
			c.logger,
		)
	}

	var data dto.UpdateCountersDTO
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

	if err := c.equipmentService.UpdateCounters(ctx.Request().Context(), id, data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Показания счётчиков обновлены", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID техники", err, nil),
			c.logger,
		)
	}

	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Техника удалена", http.StatusOK)
}

// ImportEquipments принимает путь к xlsx-файлу на сервере и загружает реестр.
func (c *EquipmentController) ImportEquipments(ctx echo.Context) error {
	var body struct {
		Path string `json:"path" validate:"required"`
	}
	if err := ctx.Bind(&body); err != nil || body.Path == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не указан путь к файлу", err, nil),
			c.logger,
		)
	}

	imported, err := c.importService.ImportFromFile(ctx.Request().Context(), body.Path)
	if err != nil {
		c.logger.Error("ImportEquipments: ошибка импорта", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, map[string]int{"imported": imported}, "Импорт завершен", http.StatusOK)
}
