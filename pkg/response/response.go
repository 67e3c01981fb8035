// Package response writes the JSON error envelope for handlers that work
// against a plain http.ResponseWriter (the gin handlers delegate here via
// their unified error path).
package response

import (
	"encoding/json"
	"net/http"

	"storewatch/pkg/logger"

	"go.uber.org/zap"
)

// ErrorBody is the error envelope returned by the API. It mirrors the shape
// the middleware emits for unhandled errors, so clients see one format.
type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Details string `json:"details,omitempty"`
}

// WriteErrorResponse writes the error envelope with the given status code
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	body := ErrorBody{
		Error:   true,
		Message: message,
		Code:    statusCode,
	}

	if err != nil {
		body.Details = err.Error()
		logger.Error("API error",
			zap.String("message", message),
			zap.Error(err),
			zap.Int("status_code", statusCode))
	}

	writeJSON(w, statusCode, body)
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
