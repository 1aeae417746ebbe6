package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

func TestHandleDocumentGet(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 3))

	rec := serve(t, nil, HandleDocumentGet(nil, ed), httptest.NewRequest(http.MethodGet, "/document", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	state := decodeState(t, rec)
	if len(state.Document.Tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(state.Document.Tasks))
	}
	if state.Totals.GrandTotal != 3000 {
		t.Errorf("expected grand total 3000, got %v", state.Totals.GrandTotal)
	}
	if state.HasUnsavedChanges {
		t.Error("expected a freshly loaded document to have no unsaved changes")
	}
	if !state.CanAddMainTask {
		t.Error("expected CanAddMainTask with 3 main tasks")
	}
}

func TestHandleClientUpdate(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 1))

	req := jsonRequest(http.MethodPut, "/document/client", services.ClientInfo{
		Company: "Acme Corp",
		Contact: "R. Tanaka",
	})
	rec := serve(t, nil, HandleClientUpdate(nil, ed), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	state := decodeState(t, rec)
	if state.Document.ClientInfo.Company != "Acme Corp" {
		t.Errorf("expected client company %q, got %q", "Acme Corp", state.Document.ClientInfo.Company)
	}
	if !state.HasUnsavedChanges {
		t.Error("expected unsaved changes after editing the client")
	}
	if rec.Header().Get("HX-Trigger") == "" {
		t.Error("expected a success toast")
	}
}

func TestHandleCompanyUpdate(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 1))

	req := jsonRequest(http.MethodPut, "/document/company", services.CompanyInfo{Name: "Design Works", City: "Makati"})
	rec := serve(t, nil, HandleCompanyUpdate(nil, ed), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := ed.Document().CompanyInfo.Name; got != "Design Works" {
		t.Errorf("expected company name %q, got %q", "Design Works", got)
	}
}

func TestHandleDetailsUpdate_DateRegeneratesNumber(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 1))

	req := jsonRequest(http.MethodPut, "/document/details", services.QuotationDetails{
		QuotationNo: "KMTE-250101-001-R01",
		ReferenceNo: "REF-9",
		Date:        "2025-06-30",
	})
	rec := serve(t, nil, HandleDetailsUpdate(nil, ed), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	details := decodeState(t, rec).Document.QuotationDetails
	if details.QuotationNo != "KMTE-250630-001-R01" {
		t.Errorf("expected regenerated number, got %q", details.QuotationNo)
	}
	if details.ReferenceNo != "REF-9" {
		t.Errorf("expected reference %q, got %q", "REF-9", details.ReferenceNo)
	}
}

func TestHandleSignaturesUpdate(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 1))

	sigs := services.DefaultSignatures()
	sigs.Quotation.PreparedBy.Name = "M. Santos"
	rec := serve(t, nil, HandleSignaturesUpdate(nil, ed), jsonRequest(http.MethodPut, "/document/signatures", sigs))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := ed.Document().Signatures.Quotation.PreparedBy.Name; got != "M. Santos" {
		t.Errorf("expected prepared-by name %q, got %q", "M. Santos", got)
	}
}

func TestHandleRatesUpdate(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"valid 3D rate", fieldUpdate{Field: services.RateTimeCharge3D, Value: 2000}, http.StatusOK},
		{"string value is coerced", fieldUpdate{Field: services.RateSoftware, Value: "150"}, http.StatusOK},
		{"negative rate", fieldUpdate{Field: services.RateSoftware, Value: -1}, http.StatusBadRequest},
		{"unknown field", fieldUpdate{Field: "discount", Value: 5}, http.StatusBadRequest},
		{"missing field", fieldUpdate{Value: 5}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newTestEditor(t, testhelpers.NewTestDocument(t, 1))
			rec := serve(t, nil, HandleRatesUpdate(nil, ed), jsonRequest(http.MethodPatch, "/rates", tt.body))
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleRatesUpdate_DerivesOvertimeRate(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 1))

	rec := serve(t, nil, HandleRatesUpdate(nil, ed),
		jsonRequest(http.MethodPatch, "/rates", fieldUpdate{Field: services.RateTimeCharge3D, Value: 2000}))

	rates := decodeState(t, rec).Document.BaseRates
	if rates.OvertimeRate != 2600 {
		t.Errorf("expected overtime rate 2600, got %v", rates.OvertimeRate)
	}
}
