// Package envelope renders the uniform {data, message, status} wire
// wrapper every operation responds with.
package envelope

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/todoflow-labs/list-service/internal/apperr"
)

const (
	StatusSuccess    = "success"
	StatusBadRequest = "bad request"
	StatusError      = "error"
)

type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// StatusFor maps an envelope code to its wire status string.
func StatusFor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return StatusSuccess
	case code >= 400 && code < 500:
		return StatusBadRequest
	default:
		return StatusError
	}
}

// Write emits the envelope. The HTTP status line mirrors the code.
func Write(w http.ResponseWriter, code int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Envelope{
		Data:    data,
		Message: message,
		Status:  StatusFor(code),
	})
}

// WriteError collapses a pipeline failure to the wire. Bad-request
// class domain errors pass through with their own message and payload;
// store failures and anything unexpected render the operation's fixed
// failure message with code 500.
func WriteError(w http.ResponseWriter, err error, fallback string) {
	var domain *apperr.Error
	if errors.As(err, &domain) && domain.Code < http.StatusInternalServerError {
		Write(w, domain.Code, domain.Data, domain.Message)
		return
	}
	Write(w, http.StatusInternalServerError, map[string]any{}, fallback)
}
