package api

import (
	"encoding/json"
	"net/http"

	"attrsort/pkg/errors"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps a pipeline error onto an HTTP status and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeCompareFailed, errors.ErrCodeNetwork:
		status = http.StatusBadGateway
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	writeErrorMessage(w, r, status, string(code), errors.UserMessage(err))
}

func writeErrorMessage(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:     msg,
		Code:      code,
		RequestID: GetRequestID(r.Context()),
	})
}

// writeJSON writes a 200 response with a JSON body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
