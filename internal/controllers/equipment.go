package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/services"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/utils"
	"ppe-tracker/pkg/validation"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	importService    services.EquipmentImportServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	equipmentService services.EquipmentServiceInterface,
	importService services.EquipmentImportServiceInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		importService:    importService,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, utils.DefaultRequestTimeout)
	defer cancel()

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.equipmentService.GetEquipments(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK, total)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := bindAndValidate(ctx, &payload, c.logger); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipment created", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := bindAndValidate(ctx, &payload, c.logger); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipment updated", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Equipment deleted", http.StatusOK)
}

// ImportEquipment accepts a multipart "file" field with an .xlsx workbook.
func (c *EquipmentController) ImportEquipment(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "File is required", err, nil), c.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Cannot read file", err, nil), c.logger)
	}
	defer src.Close()

	if err := validation.ValidateWorkbook(fileHeader, src); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), err, nil), c.logger)
	}

	res, err := c.importService.Import(ctx.Request().Context(), src)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Import finished", http.StatusOK)
}
