package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ParseFilterFromQuery reads search, sort[field], filter[field], limit, page,
// offset and withPagination from the query string.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	filterReq.WithPagination = values.Get("withPagination") != "false"

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]

			if existing, ok := filterReq.Filter[field]; ok {
				filterReq.Filter[field] = fmt.Sprintf("%v,%s", existing, vals[0])
			} else {
				filterReq.Filter[field] = vals[0]
			}
		}
	}

	return filterReq
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	withPagination, _ := strconv.ParseBool(ctx.QueryParam("withPagination"))
	if withPagination && len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = int((total[0] + uint64(filter.Limit) - 1) / uint64(filter.Limit))
		}
		pagination := types.Pagination{
			TotalCount: total[0],
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages,
		}
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) (int, string) {
	var invalidInput *apperrors.InvalidInputError
	switch {
	case errors.As(err, &invalidInput):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Record not found"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, "Record already exists"
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, "Bad request"
	case errors.Is(err, apperrors.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many attempts, try again later"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenNotYetValid),
		errors.Is(err, apperrors.ErrTokenIsNotAccess),
		errors.Is(err, apperrors.ErrTokenIsNotRefresh),
		errors.Is(err, apperrors.ErrSessionRevoked),
		errors.Is(err, apperrors.ErrInvalidSigningMethod):
		return http.StatusUnauthorized, "Unauthorized"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("details", httpErr.Details),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}

		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": "Validation error: " + strings.Join(msgs, "; ")})
	}

	code, message := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("Unexpected Error", zap.Error(err))
	}
	return c.JSON(code, map[string]interface{}{
		"status":  false,
		"message": message,
	})
}

// ParseUintParam reads a positive numeric path parameter.
func ParseUintParam(c echo.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			fmt.Sprintf("Invalid %s", name),
			err,
			map[string]interface{}{"param": raw},
		)
	}
	return id, nil
}
