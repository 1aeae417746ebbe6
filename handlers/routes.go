package handlers

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// RegisterRoutes binds the editor endpoints to the serve event router.
func RegisterRoutes(se *core.ServeEvent, app *pocketbase.PocketBase, ed *services.Editor, printer services.Printer) {
	se.Router.BindFunc(RequestLogger())

	// ── Document ─────────────────────────────────────────────
	se.Router.GET("/document", HandleDocumentGet(app, ed))
	se.Router.PUT("/document/company", HandleCompanyUpdate(app, ed))
	se.Router.PUT("/document/client", HandleClientUpdate(app, ed))
	se.Router.PUT("/document/details", HandleDetailsUpdate(app, ed))
	se.Router.PUT("/document/signatures", HandleSignaturesUpdate(app, ed))
	se.Router.PATCH("/rates", HandleRatesUpdate(app, ed))

	// ── Tasks and overrides ──────────────────────────────────
	se.Router.POST("/tasks", HandleTaskAddMain(app, ed))
	se.Router.POST("/tasks/{id}/subtasks", HandleTaskAddSub(app, ed))
	se.Router.PATCH("/tasks/{id}", HandleTaskUpdate(app, ed))
	se.Router.DELETE("/tasks/{id}", HandleTaskDelete(app, ed))
	se.Router.PUT("/tasks/{id}/override", HandleOverrideSet(app, ed))
	se.Router.DELETE("/tasks/{id}/override", HandleOverrideClear(app, ed))
	se.Router.POST("/quick-edit", HandleQuickEdit(app, ed))

	// ── Print and export ─────────────────────────────────────
	se.Router.GET("/layout", HandleLayout(app, ed))
	se.Router.GET("/preview", HandlePreview(app, ed))
	se.Router.GET("/export/pdf", HandleExportPDF(app, ed))
	se.Router.GET("/export/excel", HandleExportExcel(app, ed))
	se.Router.POST("/print", HandlePrint(app, ed, printer))

	// ── Files ────────────────────────────────────────────────
	se.Router.POST("/file/new", HandleFileNew(app, ed))
	se.Router.POST("/file/save", HandleFileSave(app, ed))
	se.Router.POST("/file/load", HandleFileLoad(app, ed))
	se.Router.GET("/files/recent", HandleRecentFiles(app))
}
