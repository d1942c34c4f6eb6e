package handler

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/todoflow-labs/list-service/internal/apperr"
	"github.com/todoflow-labs/list-service/internal/model"
	"github.com/todoflow-labs/list-service/internal/store"
	"github.com/todoflow-labs/list-service/internal/validate"
)

const (
	msgCreateTaskSuccess = "Task successfully added"
	msgCreateTaskFail    = "could not add task"
	msgGetTaskSuccess    = "Task successfully retrieved"
	msgGetTaskFail       = "could not retrieve task"
	msgUpdateTaskSuccess = "Task successfully updated"
	msgUpdateTaskFail    = "could not update task"
	msgDeleteTaskSuccess = "Task successfully deleted"
	msgDeleteTaskFail    = "could not delete task"

	msgUpdateTaskNoFields = "at least one of description or completed must be provided"
)

var createTaskConstraints = validate.Constraints{
	{Field: "listId", Presence: true, Type: validate.String},
	{Field: "description", Presence: true, Type: validate.String},
	{Field: "completed", Type: validate.Boolean},
}

var taskKeyConstraints = validate.Constraints{
	{Field: "listId", Presence: true, Type: validate.String},
	{Field: "taskId", Presence: true, Type: validate.String},
}

var updateTaskConstraints = validate.Constraints{
	{Field: "listId", Presence: true, Type: validate.String},
	{Field: "taskId", Presence: true, Type: validate.String},
	{Field: "description", Type: validate.String},
	{Field: "completed", Type: validate.Boolean},
}

// CreateTask handles POST /task/create. The referenced list must exist;
// that check runs concurrently with input validation.
func CreateTask(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Logger.Debug().Msg("handling create task")

		body, err := decodeBody(r)
		if err != nil {
			fail(w, d, "create_task", err, msgCreateTaskFail)
			return
		}
		listID := stringField(body, "listId")

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			if verr := createTaskConstraints.Check(body); verr != nil {
				return verr
			}
			return nil
		})
		g.Go(func() error {
			if listID == "" {
				return nil // validation reports the missing id
			}
			_, err := d.Store.GetByKey(ctx, d.Cfg.ListTable, listID, "")
			return err
		})
		if err := g.Wait(); err != nil {
			fail(w, d, "create_task", err, msgCreateTaskFail)
			return
		}

		completed, _ := body["completed"].(bool)
		task := model.NewTask(listID, stringField(body, "description"), completed)
		if err := d.Store.Put(r.Context(), d.Cfg.TasksTable, task.Record()); err != nil {
			fail(w, d, "create_task", err, msgCreateTaskFail)
			return
		}

		d.Events.Emit(r.Context(), "task", "created", task.ID, listID)
		succeed(w, d, "create_task", map[string]any{"taskId": task.ID}, msgCreateTaskSuccess)
	}
}

// GetTask handles POST /task: a point lookup by task id under the
// given list.
func GetTask(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Logger.Debug().Msg("handling get task")

		body, err := decodeBody(r)
		if err != nil {
			fail(w, d, "get_task", err, msgGetTaskFail)
			return
		}
		if verr := taskKeyConstraints.Check(body); verr != nil {
			fail(w, d, "get_task", verr, msgGetTaskFail)
			return
		}

		task, err := d.Store.GetByKey(r.Context(), d.Cfg.TasksTable, stringField(body, "taskId"), stringField(body, "listId"))
		if err != nil {
			fail(w, d, "get_task", err, msgGetTaskFail)
			return
		}

		succeed(w, d, "get_task", task, msgGetTaskSuccess)
	}
}

// UpdateTask handles POST /task/update. Only the supplied fields
// change, but updatedAt always refreshes. Supplying neither
// description nor completed is rejected outright, distinct from schema
// validation.
func UpdateTask(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Logger.Debug().Msg("handling update task")

		body, err := decodeBody(r)
		if err != nil {
			fail(w, d, "update_task", err, msgUpdateTaskFail)
			return
		}
		listID := stringField(body, "listId")
		_, hasDescription := body["description"]
		_, hasCompleted := body["completed"]

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			if verr := updateTaskConstraints.Check(body); verr != nil {
				return verr
			}
			if !hasDescription && !hasCompleted {
				return apperr.BadRequest(msgUpdateTaskNoFields)
			}
			return nil
		})
		g.Go(func() error {
			if listID == "" {
				return nil // validation reports the missing id
			}
			_, err := d.Store.GetByKey(ctx, d.Cfg.ListTable, listID, "")
			return err
		})
		if err := g.Wait(); err != nil {
			fail(w, d, "update_task", err, msgUpdateTaskFail)
			return
		}

		assignments := store.Record{}
		if hasDescription {
			assignments["description"] = body["description"]
		}
		if hasCompleted {
			assignments["completed"] = body["completed"]
		}

		updated, err := d.Store.UpdateByKey(r.Context(), d.Cfg.TasksTable, stringField(body, "taskId"), listID, assignments)
		if err != nil {
			fail(w, d, "update_task", err, msgUpdateTaskFail)
			return
		}

		d.Events.Emit(r.Context(), "task", "updated", stringField(body, "taskId"), listID)
		succeed(w, d, "update_task", updated, msgUpdateTaskSuccess)
	}
}

// DeleteTask handles POST /task/delete.
func DeleteTask(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Logger.Debug().Msg("handling delete task")

		body, err := decodeBody(r)
		if err != nil {
			fail(w, d, "delete_task", err, msgDeleteTaskFail)
			return
		}
		if verr := taskKeyConstraints.Check(body); verr != nil {
			fail(w, d, "delete_task", verr, msgDeleteTaskFail)
			return
		}
		taskID := stringField(body, "taskId")
		listID := stringField(body, "listId")

		if _, err := d.Store.GetByKey(r.Context(), d.Cfg.TasksTable, taskID, listID); err != nil {
			fail(w, d, "delete_task", err, msgDeleteTaskFail)
			return
		}
		if err := d.Store.DeleteByKey(r.Context(), d.Cfg.TasksTable, taskID, listID); err != nil {
			fail(w, d, "delete_task", err, msgDeleteTaskFail)
			return
		}

		d.Events.Emit(r.Context(), "task", "deleted", taskID, listID)
		succeed(w, d, "delete_task", map[string]any{}, msgDeleteTaskSuccess)
	}
}
