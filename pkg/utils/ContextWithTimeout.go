package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// DefaultRequestTimeout bounds store calls made on behalf of one request.
const DefaultRequestTimeout = 15 * time.Second

func ContextWithTimeout(ctx echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(ctx.Request().Context(), timeout)
}
