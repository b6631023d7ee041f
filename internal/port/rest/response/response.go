// Package response writes the JSON envelope shared by every endpoint and maps
// domain errors to HTTP statuses.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

const msgInternal = "Internal server error"

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Pagination *entity.Pagination `json:"pagination,omitempty"`
}

func JSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

func Page(w http.ResponseWriter, data any, p entity.Pagination) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p})
}

func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Error: message})
}

// Status returns the HTTP status for err and the message safe to show the
// client.
func Status(err error) (int, string) {
	var blocked *entity.BlockedError
	if errors.As(err, &blocked) {
		return http.StatusForbidden, "Account is blocked"
	}
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, firstField(verr)
	}

	var status int
	switch {
	case errors.Is(err, entity.ErrUnauthenticated), errors.Is(err, entity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden), errors.Is(err, entity.ErrAccountBlocked):
		status = http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrValidation), errors.Is(err, entity.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrUnavailable):
		status = http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError, msgInternal
	}

	var derr *entity.Error
	if errors.As(err, &derr) {
		return status, derr.Message
	}
	return status, defaultMessage(status)
}

func defaultMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Authentication required"
	case http.StatusForbidden:
		return "You do not have permission to perform this action"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusConflict:
		return "Resource already exists"
	case http.StatusServiceUnavailable:
		return "Service unavailable"
	}
	return "Invalid request"
}

// firstField picks a stable message when several fields failed.
func firstField(verr *entity.ValidationError) string {
	if len(verr.Fields) == 0 {
		return "Invalid request"
	}
	keys := make([]string, 0, len(verr.Fields))
	for k := range verr.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return verr.Fields[keys[0]]
}

// Error writes err as an envelope. Validation failures also carry the
// per-field messages under data.fields and a blocked account carries its
// reason under data.reason. Unexpected errors are logged and hidden from the
// client.
func Error(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status, msg := Status(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	body := Envelope{Success: false, Error: msg}
	var verr *entity.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		data := map[string]any{"fields": verr.Fields}
		if verr.Step != "" {
			data["step"] = verr.Step
		}
		body.Data = data
	}
	var blocked *entity.BlockedError
	if errors.As(err, &blocked) {
		body.Data = map[string]any{"reason": blocked.Reason}
	}
	JSON(w, status, body)
}
