package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/todoflow-labs/list-service/internal/config"
	"github.com/todoflow-labs/list-service/internal/envelope"
	"github.com/todoflow-labs/list-service/internal/handler"
	"github.com/todoflow-labs/list-service/internal/logging"
	"github.com/todoflow-labs/list-service/internal/store"
)

func newDeps(t *testing.T) handler.Deps {
	d, _, _ := newDepsWithBackend(t)
	return d
}

func newDepsWithBackend(t *testing.T) (handler.Deps, *miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		ListTable:  "lists",
		TasksTable: "tasks",
	}
	gateway := store.New(rdb, map[string]store.Table{
		cfg.TasksTable: {RangeAttr: "listId", Index: config.TaskListIndex},
	})

	return handler.Deps{
		Store:  gateway,
		Cfg:    cfg,
		Logger: logging.New("debug"),
	}, mr, rdb
}

func post(t *testing.T, h http.HandlerFunc, path string, payload any) (*httptest.ResponseRecorder, envelope.Envelope) {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h(resp, req)

	var env envelope.Envelope
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	return resp, env
}

func createList(t *testing.T, d handler.Deps, name string) string {
	resp, env := post(t, handler.CreateList(d), "/list/create", map[string]any{"name": name})
	assert.Equal(t, http.StatusOK, resp.Code)

	listID, _ := env.Data.(map[string]any)["listId"].(string)
	assert.NotEmpty(t, listID)
	return listID
}

func createTask(t *testing.T, d handler.Deps, listID, description string) string {
	resp, env := post(t, handler.CreateTask(d), "/task/create", map[string]any{
		"listId":      listID,
		"description": description,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	taskID, _ := env.Data.(map[string]any)["taskId"].(string)
	assert.NotEmpty(t, taskID)
	return taskID
}

func validationErrors(t *testing.T, env envelope.Envelope) map[string]any {
	data, ok := env.Data.(map[string]any)
	assert.True(t, ok)
	fields, ok := data["validation"].(map[string]any)
	assert.True(t, ok)
	return fields
}
