package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"quotationdesk/services"
	"quotationdesk/templates"
)

// printMode reads the "mode" query parameter. An empty value means quotation.
func printMode(e *core.RequestEvent) (services.PrintMode, error) {
	return services.ParsePrintMode(e.Request.URL.Query().Get("mode"))
}

// HandleLayout returns the paginated print layout as JSON.
func HandleLayout(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		mode, err := printMode(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Unknown print mode")
		}
		return e.JSON(http.StatusOK, ed.Layout(mode))
	}
}

// HandlePreview renders the print preview. HTMX requests get only the sheets.
func HandlePreview(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		mode, err := printMode(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Unknown print mode")
		}
		data := templates.PreviewData{Layout: ed.Layout(mode), Request: ed.PrintRequest(mode)}

		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.PreviewSheets(data).Render(e.Request.Context(), e.Response)
		}
		return templates.PreviewPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleExportPDF returns a handler that generates and downloads the printed
// document as a PDF.
func HandleExportPDF(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		mode, err := printMode(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Unknown print mode")
		}
		req := ed.PrintRequest(mode)

		pdfBytes, err := services.GeneratePDF(ed.Layout(mode), req)
		if err != nil {
			log.Error().Err(err).Msg("export_pdf: failed to generate PDF")
			return e.String(http.StatusInternalServerError, "Failed to generate PDF")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, req.FileName))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleExportExcel returns a handler that generates and downloads the cost
// breakdown workbook.
func HandleExportExcel(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc := ed.Document()

		excelBytes, err := services.GenerateExcel(doc)
		if err != nil {
			log.Error().Err(err).Msg("export_excel: failed to generate Excel")
			return e.String(http.StatusInternalServerError, "Failed to generate Excel")
		}

		filename := services.BreakdownFileName(doc.QuotationDetails, ed.Letterhead().FilePrefix)

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(excelBytes)
		return nil
	}
}
