package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          string `json:"id"`
	ListID      string `json:"listId"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// NewTask stamps a task for the given list. Completed defaults to false
// when the request omits it.
func NewTask(listID, description string, completed bool) Task {
	now := time.Now().UnixMilli()
	return Task{
		ID:          uuid.NewString(),
		ListID:      listID,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Record maps the task to its stored document attributes.
func (t Task) Record() map[string]any {
	return map[string]any{
		"id":          t.ID,
		"listId":      t.ListID,
		"description": t.Description,
		"completed":   t.Completed,
		"createdAt":   t.CreatedAt,
		"updatedAt":   t.UpdatedAt,
	}
}
