// Package handler implements the eight to-do operations. Each handler
// is one pipeline: decode, validate, check preconditions, hit the
// store, shape the envelope. Failures never escape a pipeline; they are
// collapsed to a failure envelope at the boundary.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/todoflow-labs/list-service/internal/apperr"
	"github.com/todoflow-labs/list-service/internal/config"
	"github.com/todoflow-labs/list-service/internal/envelope"
	"github.com/todoflow-labs/list-service/internal/events"
	"github.com/todoflow-labs/list-service/internal/logging"
	"github.com/todoflow-labs/list-service/internal/metrics"
	"github.com/todoflow-labs/list-service/internal/store"
)

// Deps carries everything a pipeline needs. Events may be nil.
type Deps struct {
	Store  *store.Gateway
	Events *events.Publisher
	Cfg    *config.Config
	Logger *logging.Logger
}

func decodeBody(r *http.Request) (map[string]any, error) {
	body := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apperr.BadRequest("invalid payload")
	}
	return body, nil
}

func succeed(w http.ResponseWriter, d Deps, op string, data any, message string) {
	metrics.Operations.WithLabelValues(op, "success").Inc()
	d.Logger.Debug().Str("operation", op).Msg("operation succeeded")
	envelope.Write(w, http.StatusOK, data, message)
}

func fail(w http.ResponseWriter, d Deps, op string, err error, fallback string) {
	result := "error"
	var domain *apperr.Error
	if errors.As(err, &domain) && domain.Code < http.StatusInternalServerError {
		result = "invalid"
	}
	metrics.Operations.WithLabelValues(op, result).Inc()
	d.Logger.Error().Err(err).Str("operation", op).Msg("operation failed")
	envelope.WriteError(w, err, fallback)
}

func stringField(body map[string]any, field string) string {
	s, _ := body[field].(string)
	return s
}
