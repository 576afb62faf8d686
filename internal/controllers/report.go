package controllers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppe-tracker/internal/services"
	"ppe-tracker/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) ExportAlerts(ctx echo.Context) error {
	filter, err := statusFilterFromQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.reportService.ExportAlerts(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return sendReport(ctx, report.FileName, report.Content.Bytes())
}

func (c *ReportController) ExportInspectionHistory(ctx echo.Context) error {
	id, err := utils.ParseUintParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.reportService.ExportInspectionHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return sendReport(ctx, report.FileName, report.Content.Bytes())
}
