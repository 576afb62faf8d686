package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppe-tracker/internal/services"
	"ppe-tracker/pkg/utils"
)

type AlertController struct {
	alertService services.AlertServiceInterface
	logger       *zap.Logger
}

func NewAlertController(alertService services.AlertServiceInterface, logger *zap.Logger) *AlertController {
	return &AlertController{alertService: alertService, logger: logger}
}

// GetAlerts lists every item with its due state, optionally one status only.
func (c *AlertController) GetAlerts(ctx echo.Context) error {
	filter, err := statusFilterFromQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.alertService.ListAlerts(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK)
}

func (c *AlertController) EquipmentAlert(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.alertService.EquipmentAlert(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK)
}
