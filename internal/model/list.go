// Package model holds the List and Task entities and their factories.
// Factories generate the id and stamp both timestamps; validation is the
// caller's job before construction.
package model

import (
	"time"

	"github.com/google/uuid"
)

type List struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func NewList(name string) List {
	now := time.Now().UnixMilli()
	return List{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Record maps the list to its stored document attributes.
func (l List) Record() map[string]any {
	return map[string]any{
		"id":        l.ID,
		"name":      l.Name,
		"createdAt": l.CreatedAt,
		"updatedAt": l.UpdatedAt,
	}
}
