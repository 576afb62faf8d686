package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppe-tracker/internal/services"
	"ppe-tracker/pkg/utils"
)

type StatusController struct {
	statusService services.StatusServiceInterface
	logger        *zap.Logger
}

func NewStatusController(statusService services.StatusServiceInterface, logger *zap.Logger) *StatusController {
	return &StatusController{statusService: statusService, logger: logger}
}

func (c *StatusController) GetStatuses(ctx echo.Context) error {
	res, err := c.statusService.GetStatuses(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK)
}

func (c *StatusController) FindStatus(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.statusService.FindStatus(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK)
}
