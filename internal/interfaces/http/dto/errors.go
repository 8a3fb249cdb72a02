package dto

import "net/http"

// Wire-level error codes returned in the error envelope. Domain codes
// are collapsed onto these before the response is written.
const (
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeBadRequest         = "ERR_BAD_REQUEST"
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists      = "ERR_ALREADY_EXISTS"
	ErrCodeConflict           = "ERR_CONFLICT"
	ErrCodeBusinessRule       = "ERR_BUSINESS_RULE"
	ErrCodeDeletionNotAllowed = "ERR_DELETION_NOT_ALLOWED"
)

var errorCodeStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeBusinessRule:       http.StatusUnprocessableEntity,
	ErrCodeDeletionNotAllowed: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for a wire error code,
// defaulting to 500 for anything unmapped.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodeMapping collapses the codes domain errors carry onto the
// wire codes above. Validation-flavored codes all map to ERR_VALIDATION;
// the per-field detail stays in the message.
var domainCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"FORBIDDEN":                ErrCodeForbidden,
	"DELETION_NOT_ALLOWED":     ErrCodeDeletionNotAllowed,
	"EXTERNAL_ORDER_PROTECTED": ErrCodeDeletionNotAllowed,
	"EXTERNAL_ORDER_IMMUTABLE": ErrCodeBusinessRule,
	"DUPLICATE_SKU":            ErrCodeConflict,
	"INVALID_CONTACT":          ErrCodeValidation,
	"INVALID_CREDENTIALS":      ErrCodeValidation,
	"INVALID_COMPANY_NAME":     ErrCodeValidation,
	"INVALID_OWNER":            ErrCodeValidation,
	"INVALID_REFERENCE":        ErrCodeValidation,
	"INVALID_ORDER_ID":         ErrCodeValidation,
	"INVALID_REMOTE_ID":        ErrCodeValidation,
	"INVALID_EMAIL":            ErrCodeValidation,
	"INVALID_SKU":              ErrCodeValidation,
	"INVALID_STATUS":           ErrCodeValidation,
	"INVALID_TAGS":             ErrCodeValidation,
	"INVALID_TITLE":            ErrCodeValidation,
	"VALIDATION_ERROR":         ErrCodeValidation,
}

// NormalizeErrorCode maps a domain error code to its wire code. Codes
// already in wire format, or unknown ones, pass through unchanged.
func NormalizeErrorCode(code string) string {
	if wire, ok := domainCodeMapping[code]; ok {
		return wire
	}
	return code
}
