package dto

import "net/http"

// Error codes used by the HTTP layer on top of the domain error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Business rule violations map to 422 so clients can tell them apart
// from malformed requests.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,
	"DUPLICATE_KEY":  http.StatusConflict,

	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_REASON":   http.StatusBadRequest,
	"INVALID_QUANTITY": http.StatusBadRequest,

	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,

	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"INSUFFICIENT_SPACE": http.StatusUnprocessableEntity,
	"ORDER_REJECTED":     http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for an error code.
// Unknown codes map to 422 so new domain rules surface as client
// visible failures rather than server errors.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
