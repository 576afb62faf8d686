package utils

import (
	"context"

	"ppe-tracker/pkg/contextkeys"
	apperrors "ppe-tracker/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrUnauthorized
	}
	return role, nil
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, userID uint64, role string) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}
