package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"quotationdesk/services"
)

// HandleDocumentGet returns the editor state: the document, its totals and
// the file status.
func HandleDocumentGet(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}

// HandleCompanyUpdate replaces the company block.
func HandleCompanyUpdate(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var info services.CompanyInfo
		if err := e.BindBody(&info); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid company details")
		}
		ed.UpdateCompanyInfo(info)
		SetToast(e, toastSuccess, "Company details updated")
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}

// HandleClientUpdate replaces the client block.
func HandleClientUpdate(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var info services.ClientInfo
		if err := e.BindBody(&info); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid client details")
		}
		ed.UpdateClientInfo(info)
		SetToast(e, toastSuccess, "Client details updated")
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}

// HandleDetailsUpdate replaces the quotation details. A changed date
// regenerates the quotation number.
func HandleDetailsUpdate(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var details services.QuotationDetails
		if err := e.BindBody(&details); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid quotation details")
		}
		updated := ed.UpdateQuotationDetails(details)
		log.Debug().Str("quotation_no", updated.QuotationNo).Msg("details: updated")
		SetToast(e, toastSuccess, "Quotation details updated")
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}

// HandleSignaturesUpdate replaces the signatory block.
func HandleSignaturesUpdate(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var sigs services.Signatures
		if err := e.BindBody(&sigs); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid signatures")
		}
		ed.UpdateSignatures(sigs)
		SetToast(e, toastSuccess, "Signatures updated")
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}

// fieldUpdate is the body of single-field edits.
type fieldUpdate struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// HandleRatesUpdate sets one rate table field.
func HandleRatesUpdate(app *pocketbase.PocketBase, ed *services.Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body fieldUpdate
		if err := e.BindBody(&body); err != nil || body.Field == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing rate field")
		}
		if _, err := ed.UpdateBaseRate(body.Field, body.Value); err != nil {
			return serviceError(e, "rates", err)
		}
		return e.JSON(http.StatusOK, ed.Snapshot())
	}
}
