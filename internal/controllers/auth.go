package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppe-tracker/internal/dto"
	"ppe-tracker/internal/services"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/utils"
)

const refreshCookieName = "refreshToken"

type AuthController struct {
	authService     services.AuthServiceInterface
	refreshTokenTTL time.Duration
	secureCookie    bool
	logger          *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, refreshTokenTTL time.Duration, secureCookie bool, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService:     authService,
		refreshTokenTTL: refreshTokenTTL,
		secureCookie:    secureCookie,
		logger:          logger,
	}
}

func (c *AuthController) setRefreshCookie(ctx echo.Context, token string, ttl time.Duration) {
	cookie := new(http.Cookie)
	cookie.Name = refreshCookieName
	cookie.Value = token
	cookie.Path = "/api/auth"
	cookie.HttpOnly = true
	cookie.Secure = c.secureCookie
	cookie.SameSite = http.SameSiteStrictMode
	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	} else {
		cookie.MaxAge = -1
	}
	ctx.SetCookie(cookie)
}

// refreshTokenFrom prefers the cookie and falls back to the JSON body.
func refreshTokenFrom(ctx echo.Context) string {
	if cookie, err := ctx.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var body dto.RefreshDTO
	if err := ctx.Bind(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := bindAndValidate(ctx, &payload, c.logger); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.setRefreshCookie(ctx, res.RefreshToken, c.refreshTokenTTL)
	return utils.SuccessResponse(ctx, res, "Logged in", http.StatusOK)
}

func (c *AuthController) RefreshToken(ctx echo.Context) error {
	token := refreshTokenFrom(ctx)
	if token == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	res, err := c.authService.RefreshTokens(ctx.Request().Context(), token)
	if err != nil {
		c.setRefreshCookie(ctx, "", 0)
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.setRefreshCookie(ctx, res.RefreshToken, c.refreshTokenTTL)
	return utils.SuccessResponse(ctx, res, "Tokens refreshed", http.StatusOK)
}

func (c *AuthController) Logout(ctx echo.Context) error {
	if token := refreshTokenFrom(ctx); token != "" {
		if err := c.authService.Logout(ctx.Request().Context(), token); err != nil {
			c.logger.Warn("logout: session revoke failed", zap.Error(err))
		}
	}
	c.setRefreshCookie(ctx, "", 0)
	return utils.SuccessResponse(ctx, nil, "Logged out", http.StatusOK)
}

func (c *AuthController) Me(ctx echo.Context) error {
	res, err := c.authService.Me(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "OK", http.StatusOK)
}
