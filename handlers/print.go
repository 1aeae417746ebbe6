package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"quotationdesk/services"
)

// printOptions overrides parts of the default print request.
type printOptions struct {
	PageSize  string            `json:"pageSize"`
	Landscape bool              `json:"landscape"`
	Margins   *services.Margins `json:"margins"`
	FileName  string            `json:"fileName"`
}

// HandlePrint sends the document to the configured printer.
func HandlePrint(app *pocketbase.PocketBase, ed *services.Editor, printer services.Printer) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		mode, err := printMode(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Unknown print mode")
		}

		var opts printOptions
		if err := e.BindBody(&opts); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid print options")
		}
		req := ed.PrintRequest(mode)
		if opts.PageSize != "" {
			req.PageSize = opts.PageSize
		}
		req.Landscape = opts.Landscape
		if opts.Margins != nil {
			req.Margins = *opts.Margins
		}
		if opts.FileName != "" {
			req.FileName = services.SanitizeFileName(opts.FileName)
		}

		result, err := printer.Print(e.Request.Context(), ed.Layout(mode), req)
		if err != nil {
			log.Error().Err(err).Str("mode", string(mode)).Msg("print: failed")
			return ErrorToast(e, http.StatusBadGateway, "Printing failed")
		}

		log.Info().Str("via", result.Via).Int("pages", result.Pages).Str("path", result.Path).Msg("print: done")
		SetToast(e, toastSuccess, "Document sent to printer")
		return e.JSON(http.StatusOK, result)
	}
}
