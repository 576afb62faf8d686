package middleware

import (
	"strings"

	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/service"
	"ppe-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth checks the Bearer access token and puts the user id and role into the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: empty Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: malformed Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: refresh token used for API access", zap.Uint64("userID", claims.UserID))
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		ctx := utils.WithUser(c.Request().Context(), claims.UserID, claims.Role)
		c.SetRequest(c.Request().WithContext(ctx))

		m.logger.Debug("AuthMiddleware: user authenticated", zap.Uint64("userID", claims.UserID), zap.String("role", claims.Role))
		return next(c)
	}
}

// RequireRoles lets the request through only for the listed roles. Must run after Auth.
func (m *AuthMiddleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := utils.GetUserRoleFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if _, ok := allowed[role]; !ok {
				m.logger.Warn("AuthMiddleware: role not allowed",
					zap.String("role", role),
					zap.String("path", c.Path()),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
