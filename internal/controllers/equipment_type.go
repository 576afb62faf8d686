package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/services"
	"ppe-tracker/pkg/utils"
)

type EquipmentTypeController struct {
	equipmentTypeService services.EquipmentTypeServiceInterface
	logger               *zap.Logger
}

func NewEquipmentTypeController(service services.EquipmentTypeServiceInterface, logger *zap.Logger) *EquipmentTypeController {
	return &EquipmentTypeController{equipmentTypeService: service, logger: logger}
}

func (c *EquipmentTypeController) GetEquipmentTypes(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.equipmentTypeService.GetEquipmentTypes(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK, total)
}

func (c *EquipmentTypeController) FindEquipmentType(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.equipmentTypeService.FindEquipmentType(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK)
}

func (c *EquipmentTypeController) CreateEquipmentType(ctx echo.Context) error {
	var payload dto.CreateEquipmentTypeDTO
	if err := bindAndValidate(ctx, &payload, c.logger); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.equipmentTypeService.CreateEquipmentType(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipment type created", http.StatusCreated)
}

func (c *EquipmentTypeController) UpdateEquipmentType(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateEquipmentTypeDTO
	if err := bindAndValidate(ctx, &payload, c.logger); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.equipmentTypeService.UpdateEquipmentType(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipment type updated", http.StatusOK)
}

func (c *EquipmentTypeController) DeleteEquipmentType(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.equipmentTypeService.DeleteEquipmentType(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Equipment type deleted", http.StatusOK)
}
