package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"quotationdesk/services"
)

// HandleTaskAddMain appends a main task.
func HandleTaskAddMain(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		task, err := ed.AddMainTask()
		if err != nil {
			return serviceError(e, "task_add", err)
		}
		log.Info().Str("task", string(task.ID)).Msg("task_add: main task added")
		return e.JSON(http.StatusCreated, task)
	}
}

// HandleTaskAddSub adds a sub-task under the main task in the path.
func HandleTaskAddSub(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		parentID := services.TaskID(e.Request.PathValue("id"))
		task, err := ed.AddSubTask(parentID)
		if err != nil {
			return serviceError(e, "task_add", err)
		}
		log.Info().Str("task", string(task.ID)).Str("parent", string(parentID)).Msg("task_add: sub-task added")
		return e.JSON(http.StatusCreated, task)
	}
}

// HandleTaskUpdate sets one field of a task.
func HandleTaskUpdate(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := services.TaskID(e.Request.PathValue("id"))
		var body fieldUpdate
		if err := e.BindBody(&body); err != nil || body.Field == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing task field")
		}
		task, err := ed.UpdateTask(id, body.Field, body.Value)
		if err != nil {
			return serviceError(e, "task_update", err)
		}
		return e.JSON(http.StatusOK, task)
	}
}

// HandleTaskDelete removes a task. Removing a main task removes its
// sub-tasks too.
func HandleTaskDelete(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := services.TaskID(e.Request.PathValue("id"))
		removed, err := ed.RemoveTask(id)
		if err != nil {
			return serviceError(e, "task_delete", err)
		}
		log.Info().Str("task", string(id)).Int("removed", len(removed)).Msg("task_delete: removed")
		SetToast(e, toastSuccess, fmt.Sprintf("Removed %d task(s)", len(removed)))
		return e.JSON(http.StatusOK, map[string]any{"removed": removed})
	}
}

// HandleOverrideSet pins one pricing field of a main task.
func HandleOverrideSet(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := services.TaskID(e.Request.PathValue("id"))
		var body fieldUpdate
		if err := e.BindBody(&body); err != nil || body.Field == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing override field")
		}
		o, err := ed.SetOverride(id, body.Field, services.CoerceNumber(body.Value))
		if err != nil {
			return serviceError(e, "override", err)
		}
		line, _ := ed.Totals().Line(id)
		return e.JSON(http.StatusOK, map[string]any{"override": o, "line": line})
	}
}

// HandleOverrideClear drops one override field, or all of them when the
// "field" query parameter is empty.
func HandleOverrideClear(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := services.TaskID(e.Request.PathValue("id"))
		field := e.Request.URL.Query().Get("field")
		if err := ed.ClearOverride(id, field); err != nil {
			return serviceError(e, "override", err)
		}
		line, _ := ed.Totals().Line(id)
		return e.JSON(http.StatusOK, map[string]any{"line": line})
	}
}

// HandleQuickEdit applies a batch edit of tasks and overrides. Nothing is
// applied if any entry is invalid.
func HandleQuickEdit(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var q services.QuickEdit
		if err := e.BindBody(&q); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid quick edit")
		}
		if err := ed.ApplyQuickEdit(q); err != nil {
			return serviceError(e, "quick_edit", err)
		}
		SetToast(e, toastSuccess, "Changes applied")
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}
