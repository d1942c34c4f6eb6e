// Package events publishes list and task mutation events to JetStream.
// Emission is best effort: a publish failure is logged and never fails
// the request that produced it.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/todoflow-labs/list-service/internal/logging"
)

const (
	StreamName = "todo_events"
	Subject    = "todo.events"
)

// Event describes one committed mutation.
type Event struct {
	Entity string `json:"entity"` // "list" or "task"
	Action string `json:"action"` // "created", "updated", "deleted"
	ID     string `json:"id"`
	ListID string `json:"listId,omitempty"`
	At     int64  `json:"at"`
}

type Publisher struct {
	js     nats.JetStreamContext
	logger *logging.Logger
}

// New ensures the event stream exists and returns a publisher bound to
// it.
func New(js nats.JetStreamContext, logger *logging.Logger) (*Publisher, error) {
	_, err := js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{Subject},
	})
	if err != nil && !strings.Contains(err.Error(), "already in use") {
		return nil, err
	}
	return &Publisher{js: js, logger: logger}, nil
}

// Emit publishes one mutation event under the request's context. A nil
// publisher is a no-op so the handler pipelines can run without a
// broker.
func (p *Publisher) Emit(ctx context.Context, entity, action, id, listID string) {
	if p == nil {
		return
	}
	data, _ := json.Marshal(Event{
		Entity: entity,
		Action: action,
		ID:     id,
		ListID: listID,
		At:     time.Now().UnixMilli(),
	})
	if _, err := p.js.Publish(Subject, data, nats.Context(ctx)); err != nil {
		p.logger.Error().Err(err).Str("entity", entity).Str("action", action).Msg("failed to publish event")
	}
}
