package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventplanner/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeForbidden     = "forbidden"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeEmptyResult   = "empty_result"
	ErrCodeMalformedLink = "malformed_link"
	ErrCodeStorageIO     = "storage_io"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// MapDomainError translates a service error into an HTTP status, error code, and
// client-facing message. Unrecognized errors map to a 500; callers log those
// before responding.
func MapDomainError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "user not found"
	case errors.Is(err, domain.ErrEmptyList):
		return http.StatusNotFound, ErrCodeEmptyResult, "no results"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotParticipant):
		return http.StatusForbidden, ErrCodeForbidden, "not a participant"
	case errors.Is(err, domain.ErrAlreadyParticipant):
		return http.StatusConflict, ErrCodeConflict, "already a participant"
	case errors.Is(err, domain.ErrUserIsParticipant):
		return http.StatusConflict, ErrCodeConflict, "user is already a participant"
	case errors.Is(err, domain.ErrDuplicateTitle):
		return http.StatusConflict, ErrCodeConflict, "an event with that title already exists"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, ErrCodeConflict, "email already in use"
	case errors.Is(err, domain.ErrEmailAlreadyConfirmed):
		return http.StatusConflict, ErrCodeConflict, "email already confirmed"
	case errors.Is(err, domain.ErrUserOwnsEvents):
		return http.StatusConflict, ErrCodeConflict, "delete or transfer organized events first"
	case errors.Is(err, domain.ErrWrongConfirmationCode):
		return http.StatusBadRequest, ErrCodeBadRequest, "wrong confirmation code"
	case errors.Is(err, domain.ErrMalformedLink):
		return http.StatusBadRequest, ErrCodeMalformedLink, "malformed invitation link"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrStorageIO):
		return http.StatusInternalServerError, ErrCodeStorageIO, "storage failure"
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, err.Error()
	}
}
