// Package response provides HTTP response formatting and error mapping.
//
// Successful responses carry the resource JSON directly, with no wrapper
// object. Errors use two shapes: validation failures are a map of field
// name to message list, everything else is {"detail": "..."}.
package response

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"

	apperrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

// Canonical error messages for the detail body.
const (
	MsgNotAuthenticated  = "Authentication credentials were not provided."
	MsgPermissionDenied  = "You do not have permission to perform this action."
	MsgNotFound          = "Not found."
	MsgInvalidJSON       = "JSON parse error."
	MsgInvalidToken      = "Invalid or expired token."
	MsgTooManyRequests   = "Request was throttled."
	MsgInternal          = "A server error occurred."
	MsgInvalidCredential = "Invalid email or password."
)

// detailBody is the generic error shape: {"detail": "..."}.
type detailBody struct {
	Detail string `json:"detail"`
}

// JSON writes data as the response body with the given status, using json/v2.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	// json/v2 MarshalWrite doesn't add a newline, but that's fine for HTTP responses.
	if err := json.MarshalWrite(w, data); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Success writes a 200 OK response.
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Created writes a 201 Created response.
func Created(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusCreated, data, logger)
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Detail writes a {"detail": message} error body with the given status.
func Detail(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	JSON(w, status, detailBody{Detail: message}, logger)
}

// ValidationError writes a 400 response mapping field names to message lists,
// e.g. {"rate": ["\"6\" is not a valid choice."]}.
func ValidationError(w http.ResponseWriter, fields map[string][]string, logger *slog.Logger) {
	JSON(w, http.StatusBadRequest, fields, logger)
}

// BadRequest writes a 400 response with a single detail message.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Detail(w, http.StatusBadRequest, message, logger)
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, logger *slog.Logger) {
	Detail(w, http.StatusUnauthorized, MsgNotAuthenticated, logger)
}

// PermissionDenied writes a 403 response with the canonical message.
func PermissionDenied(w http.ResponseWriter, logger *slog.Logger) {
	Detail(w, http.StatusForbidden, MsgPermissionDenied, logger)
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, logger *slog.Logger) {
	Detail(w, http.StatusNotFound, MsgNotFound, logger)
}

// InternalError writes a 500 response.
func InternalError(w http.ResponseWriter, logger *slog.Logger) {
	Detail(w, http.StatusInternalServerError, MsgInternal, logger)
}

// HandleError maps an application error to the appropriate HTTP response.
// Validation errors with field details become the field-map body; other
// coded errors become {"detail": ...} with their mapped status; anything
// else is logged and returned as a 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var appErr *apperrors.Error
	if apperrors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.CodeValidation:
			if fields, ok := appErr.Details.(map[string][]string); ok && len(fields) > 0 {
				ValidationError(w, fields, logger)
				return
			}
			BadRequest(w, appErr.Message, logger)
			return
		case apperrors.CodeUnauthorized:
			Unauthorized(w, logger)
			return
		case apperrors.CodeTokenExpired:
			Detail(w, http.StatusUnauthorized, MsgInvalidToken, logger)
			return
		case apperrors.CodeInvalidCredentials:
			Detail(w, http.StatusUnauthorized, MsgInvalidCredential, logger)
			return
		case apperrors.CodeForbidden:
			PermissionDenied(w, logger)
			return
		case apperrors.CodeNotFound:
			NotFound(w, logger)
			return
		default:
			Detail(w, appErr.HTTPStatus(), appErr.Message, logger)
			return
		}
	}

	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	InternalError(w, logger)
}
