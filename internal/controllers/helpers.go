package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppe-tracker/internal/alerts"
	"ppe-tracker/internal/services"
	apperrors "ppe-tracker/pkg/errors"
)

// bindAndValidate decodes the body into dst and runs the echo validator.
func bindAndValidate(ctx echo.Context, dst interface{}, logger *zap.Logger) error {
	if err := ctx.Bind(dst); err != nil {
		logger.Debug("request body binding failed", zap.Error(err))
		return apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil)
	}
	return ctx.Validate(dst)
}

// statusFilterFromQuery reads the optional ?status= alert filter.
func statusFilterFromQuery(ctx echo.Context) (*alerts.Status, error) {
	raw := ctx.QueryParam("status")
	if raw == "" {
		return nil, nil
	}
	s, err := alerts.ParseStatus(raw)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			"Invalid status, expected Current, DueSoon or Overdue", err,
			map[string]interface{}{"status": raw})
	}
	return &s, nil
}

func sendReport(ctx echo.Context, fileName string, content []byte) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, services.XLSXContentType, content)
}

