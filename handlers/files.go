package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"quotationdesk/services"
)

// filePath is the body of save and load requests.
type filePath struct {
	Path string `json:"path"`
}

// HandleFileNew discards the open document and starts a blank one.
func HandleFileNew(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ed.Reset()
		SetToast(e, toastInfo, "New document")
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}

// HandleFileSave writes the open document. An empty path saves to the
// current file.
func HandleFileSave(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body filePath
		if err := e.BindBody(&body); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid file path")
		}
		path, err := ed.Save(body.Path)
		if err != nil {
			return serviceError(e, "file_save", err)
		}
		recordRecent(app, path, services.RecentActionSaved, ed.Document())

		log.Info().Str("path", path).Msg("file_save: saved")
		SetToast(e, toastSuccess, "Saved")
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}

// HandleFileLoad replaces the open document with a file. The open document
// is kept when the file cannot be read or parsed.
func HandleFileLoad(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body filePath
		if err := e.BindBody(&body); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid file path")
		}
		if err := ed.Load(e.Request.Context(), body.Path); err != nil {
			return serviceError(e, "file_load", err)
		}
		recordRecent(app, body.Path, services.RecentActionLoaded, ed.Document())

		log.Info().Str("path", body.Path).Msg("file_load: loaded")
		SetToast(e, toastSuccess, "Loaded")
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}

// HandleRecentFiles lists recently saved or loaded files, newest first. The
// optional "limit" query parameter caps the list.
func HandleRecentFiles(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		limit, _ := strconv.Atoi(e.Request.URL.Query().Get("limit"))
		files, err := services.ListRecentFiles(app, limit)
		if err != nil {
			log.Error().Err(err).Msg("recent_files: list failed")
			return e.String(http.StatusInternalServerError, "Failed to list recent files")
		}
		return e.JSON(http.StatusOK, files)
	}
}

// recordRecent is best effort; the file operation already succeeded.
func recordRecent(app *pocketbase.PocketBase, path, action string, doc services.Document) {
	if err := services.RecordRecentFile(app, path, action, doc, time.Now()); err != nil {
		log.Warn().Err(err).Str("path", path).Msg(action + ": failed to record recent file")
	}
}
