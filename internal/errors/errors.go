package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so a wrapped copy still equals its sentinel.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Beach errors
	ErrBeachNotFound = NewDomainError("BEACH_NOT_FOUND", "beach not found")

	// Review errors
	ErrReviewNotFound  = NewDomainError("REVIEW_NOT_FOUND", "review not found")
	ErrReviewForbidden = NewDomainError("REVIEW_FORBIDDEN", "you can only modify your own review")

	// Favourite errors
	ErrFavouriteExists   = NewDomainError("FAVOURITE_EXISTS", "this beach is already in your favourites")
	ErrFavouriteNotFound = NewDomainError("FAVOURITE_NOT_FOUND", "this beach is not in your favourites")

	// Product errors
	ErrNoProducts = NewDomainError("NO_PRODUCTS", "no products found")

	// User errors
	ErrUserNotFound       = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "email already exists")
	ErrUsernameExists     = NewDomainError("USERNAME_EXISTS", "username already exists")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid credentials")
	ErrUserInactive       = NewDomainError("USER_INACTIVE", "user account is disabled")
	ErrNoPasswordSet      = NewDomainError("NO_PASSWORD_SET", "this account signs in with Google")

	// Authentication errors
	ErrInvalidToken        = NewDomainError("INVALID_TOKEN", "invalid or expired token")
	ErrTokenExpired        = NewDomainError("TOKEN_EXPIRED", "token has expired")
	ErrInvalidRefreshToken = NewDomainError("INVALID_REFRESH_TOKEN", "invalid refresh token")
	ErrInvalidOAuthState   = NewDomainError("INVALID_OAUTH_STATE", "invalid oauth state")
	ErrOAuthExchange       = NewDomainError("OAUTH_EXCHANGE_FAILED", "could not complete google sign-in")
	ErrEmailNotVerified    = NewDomainError("EMAIL_NOT_VERIFIED", "google account email is not verified")

	// Validation errors
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "invalid input")
	ErrPasswordMismatch  = NewDomainError("PASSWORD_MISMATCH", "new password and confirmation do not match")
	ErrIncorrectPassword = NewDomainError("INCORRECT_PASSWORD", "current password is incorrect")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "PASSWORD_MISMATCH", "INVALID_OAUTH_STATE", "NO_PASSWORD_SET":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "INVALID_TOKEN",
		"TOKEN_EXPIRED", "INVALID_REFRESH_TOKEN", "INCORRECT_PASSWORD":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "REVIEW_FORBIDDEN", "USER_INACTIVE", "EMAIL_NOT_VERIFIED":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "BEACH_NOT_FOUND", "REVIEW_NOT_FOUND",
		"FAVOURITE_NOT_FOUND", "NO_PRODUCTS":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS", "USERNAME_EXISTS", "FAVOURITE_EXISTS":
		return http.StatusConflict

	// 502 Bad Gateway
	case "OAUTH_EXCHANGE_FAILED":
		return http.StatusBadGateway

	// 503 Service Unavailable
	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage returns the client-safe message. Non-domain errors are
// never echoed back.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return ErrInternal.Message
}
