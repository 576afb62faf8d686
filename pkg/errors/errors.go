package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token expired")
	ErrTokenNotYetValid     = fmt.Errorf("token not yet valid")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrSessionRevoked       = fmt.Errorf("session revoked or expired")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("invalid authorization header format")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("access denied")
	ErrTooManyAttempts    = fmt.Errorf("too many login attempts")

	// Context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// Common
	ErrNotFound   = fmt.Errorf("record not found")
	ErrConflict   = fmt.Errorf("record already exists")
	ErrBadRequest = fmt.Errorf("bad request")
)

// InvalidInputError reports data that breaks a business or integrity rule.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carries the status code and the user-facing message. Err is the
// underlying cause and is only logged.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, nil, nil)
}

func NewInternalError(message string) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message, nil, nil)
}
