package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/services"
	"ppe-tracker/pkg/utils"
)

type InspectionController struct {
	inspectionService services.InspectionServiceInterface
	logger            *zap.Logger
}

func NewInspectionController(inspectionService services.InspectionServiceInterface, logger *zap.Logger) *InspectionController {
	return &InspectionController{inspectionService: inspectionService, logger: logger}
}

func (c *InspectionController) GetInspections(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.inspectionService.GetInspections(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK, total)
}

func (c *InspectionController) FindInspection(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.inspectionService.FindInspection(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK)
}

func (c *InspectionController) ListForEquipment(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.inspectionService.ListForEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK)
}

func (c *InspectionController) CreateInspection(ctx echo.Context) error {
	var payload dto.CreateInspectionDTO
	if err := bindAndValidate(ctx, &payload, c.logger); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.inspectionService.CreateInspection(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Inspection recorded", http.StatusCreated)
}
