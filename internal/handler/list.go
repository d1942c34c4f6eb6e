package handler

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/todoflow-labs/list-service/internal/config"
	"github.com/todoflow-labs/list-service/internal/model"
	"github.com/todoflow-labs/list-service/internal/store"
	"github.com/todoflow-labs/list-service/internal/validate"
)

const (
	msgCreateListSuccess = "To-do list successfully created"
	msgCreateListFail    = "could not create to-do list"
	msgGetListSuccess    = "To-do list successfully retrieved"
	msgGetListFail       = "could not retrieve to-do list"
	msgUpdateListSuccess = "To-do list successfully updated"
	msgUpdateListFail    = "could not update to-do list"
	msgDeleteListSuccess = "To-do list successfully deleted"
	msgDeleteListFail    = "could not delete to-do list"
)

var createListConstraints = validate.Constraints{
	{Field: "name", Presence: true, Type: validate.String},
}

var listIDConstraints = validate.Constraints{
	{Field: "listId", Presence: true, Type: validate.String},
}

var updateListConstraints = validate.Constraints{
	{Field: "listId", Presence: true, Type: validate.String},
	{Field: "name", Presence: true, Type: validate.String},
}

// CreateList handles POST /list/create.
func CreateList(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Logger.Debug().Msg("handling create list")

		body, err := decodeBody(r)
		if err != nil {
			fail(w, d, "create_list", err, msgCreateListFail)
			return
		}
		if verr := createListConstraints.Check(body); verr != nil {
			fail(w, d, "create_list", verr, msgCreateListFail)
			return
		}

		list := model.NewList(stringField(body, "name"))
		if err := d.Store.Put(r.Context(), d.Cfg.ListTable, list.Record()); err != nil {
			fail(w, d, "create_list", err, msgCreateListFail)
			return
		}

		d.Events.Emit(r.Context(), "list", "created", list.ID, "")
		succeed(w, d, "create_list", map[string]any{"listId": list.ID}, msgCreateListSuccess)
	}
}

// GetList handles POST /list: the list's attributes merged with its
// task count and projected tasks.
func GetList(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Logger.Debug().Msg("handling get list")

		body, err := decodeBody(r)
		if err != nil {
			fail(w, d, "get_list", err, msgGetListFail)
			return
		}
		if verr := listIDConstraints.Check(body); verr != nil {
			fail(w, d, "get_list", verr, msgGetListFail)
			return
		}
		listID := stringField(body, "listId")

		list, err := d.Store.GetByKey(r.Context(), d.Cfg.ListTable, listID, "")
		if err != nil {
			fail(w, d, "get_list", err, msgGetListFail)
			return
		}

		tasks, err := d.Store.QueryByIndex(r.Context(), d.Cfg.TasksTable, config.TaskListIndex, listID)
		if err != nil {
			fail(w, d, "get_list", err, msgGetListFail)
			return
		}

		projected := make([]map[string]any, 0, len(tasks))
		for _, task := range tasks {
			projected = append(projected, map[string]any{
				"id":          task["id"],
				"description": task["description"],
				"completed":   task["completed"],
				"createdAt":   task["createdAt"],
				"updatedAt":   task["updatedAt"],
			})
		}

		data := store.Record{}
		for attr, value := range list {
			data[attr] = value
		}
		data["taskCount"] = len(projected)
		data["tasks"] = projected

		succeed(w, d, "get_list", data, msgGetListSuccess)
	}
}

// UpdateList handles POST /list/update. The existence check and input
// validation run concurrently; both must pass.
func UpdateList(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Logger.Debug().Msg("handling update list")

		body, err := decodeBody(r)
		if err != nil {
			fail(w, d, "update_list", err, msgUpdateListFail)
			return
		}
		listID := stringField(body, "listId")

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			if verr := updateListConstraints.Check(body); verr != nil {
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
			fail(w, d, "update_list", err, msgUpdateListFail)
			return
		}

		updated, err := d.Store.UpdateByKey(r.Context(), d.Cfg.ListTable, listID, "", store.Record{
			"name": stringField(body, "name"),
		})
		if err != nil {
			fail(w, d, "update_list", err, msgUpdateListFail)
			return
		}

		d.Events.Emit(r.Context(), "list", "updated", listID, "")
		succeed(w, d, "update_list", updated, msgUpdateListSuccess)
	}
}

// DeleteList handles POST /list/delete. Deleting a list cascades to
// every task in it; child deletes go out in batches of at most
// MaxBatchSize, dispatched concurrently, and any batch failure fails
// the whole cascade.
func DeleteList(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Logger.Debug().Msg("handling delete list")

		body, err := decodeBody(r)
		if err != nil {
			fail(w, d, "delete_list", err, msgDeleteListFail)
			return
		}
		if verr := listIDConstraints.Check(body); verr != nil {
			fail(w, d, "delete_list", verr, msgDeleteListFail)
			return
		}
		listID := stringField(body, "listId")

		if _, err := d.Store.GetByKey(r.Context(), d.Cfg.ListTable, listID, ""); err != nil {
			fail(w, d, "delete_list", err, msgDeleteListFail)
			return
		}
		if err := d.Store.DeleteByKey(r.Context(), d.Cfg.ListTable, listID, ""); err != nil {
			fail(w, d, "delete_list", err, msgDeleteListFail)
			return
		}

		tasks, err := d.Store.QueryByIndex(r.Context(), d.Cfg.TasksTable, config.TaskListIndex, listID)
		if err != nil {
			fail(w, d, "delete_list", err, msgDeleteListFail)
			return
		}

		if len(tasks) > 0 {
			requests := make([]store.WriteRequest, 0, len(tasks))
			for _, task := range tasks {
				id, _ := task["id"].(string)
				requests = append(requests, store.WriteRequest{
					Delete: &store.Key{Key: id, RangeKey: listID},
				})
			}

			g, ctx := errgroup.WithContext(r.Context())
			for _, chunk := range store.Chunk(requests, store.MaxBatchSize) {
				g.Go(func() error {
					return d.Store.BatchWrite(ctx, d.Cfg.TasksTable, chunk)
				})
			}
			if err := g.Wait(); err != nil {
				fail(w, d, "delete_list", err, msgDeleteListFail)
				return
			}
		}

		d.Events.Emit(r.Context(), "list", "deleted", listID, "")
		succeed(w, d, "delete_list", map[string]any{}, msgDeleteListSuccess)
	}
}
