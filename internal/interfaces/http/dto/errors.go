package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself. Domain errors keep their own codes.
const (
	CodeInternal        = "INTERNAL_ERROR"
	CodeValidation      = "VALIDATION_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Codes not listed fall back to their prefix, see HTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	CodeInternal:          http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,

	CodeValidation:       http.StatusBadRequest,
	CodeBadRequest:       http.StatusBadRequest,
	"CATEGORY_MISMATCH":  http.StatusBadRequest,
	"CANNOT_DELETE_SELF": http.StatusBadRequest,

	CodeUnauthorized:      http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"INVALID_TOKEN_TYPE":  http.StatusUnauthorized,

	CodeForbidden:         http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	CodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS": http.StatusConflict,
	"ALREADY_LINKED": http.StatusConflict,
	"IN_USE":         http.StatusConflict,

	"INVALID_STATE": http.StatusUnprocessableEntity,

	CodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	CodeRateLimited:     http.StatusTooManyRequests,

	"GATEWAY_ERROR":    http.StatusBadGateway,
	"GATEWAY_DISABLED": http.StatusServiceUnavailable,
}

// HTTPStatus returns the HTTP status code for an error code.
// INVALID_* is 400, TOKEN_* is 401 and anything else unknown is 500.
func HTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "TOKEN_"):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
