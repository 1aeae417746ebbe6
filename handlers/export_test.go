package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

func TestHandleLayout(t *testing.T) {
	tests := []struct {
		name      string
		tasks     int
		target    string
		wantKind  services.LayoutKind
		wantPages int
	}{
		{"normal quotation", 3, "/layout", services.LayoutNormal, 1},
		{"compressed quotation", 12, "/layout?mode=quotation", services.LayoutCompressed, 1},
		{"paginated billing", 20, "/layout?mode=billing", services.LayoutPaginated, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newTestEditor(t, testhelpers.NewTestDocument(t, tt.tasks))
			rec := serve(t, nil, HandleLayout(nil, ed), httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			var layout services.PrintLayout
			if err := json.Unmarshal(rec.Body.Bytes(), &layout); err != nil {
				t.Fatalf("response is not a layout: %v", err)
			}
			if layout.Kind != tt.wantKind {
				t.Errorf("expected kind %q, got %q", tt.wantKind, layout.Kind)
			}
			if len(layout.Pages) != tt.wantPages {
				t.Errorf("expected %d pages, got %d", tt.wantPages, len(layout.Pages))
			}
			if layout.GrandTotal != float64(tt.tasks)*1000 {
				t.Errorf("expected grand total %d, got %v", tt.tasks*1000, layout.GrandTotal)
			}
		})
	}
}

func TestHandleLayout_UnknownMode(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 1))

	rec := serve(t, nil, HandleLayout(nil, ed), httptest.NewRequest(http.MethodGet, "/layout?mode=receipt", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandlePreview_FullPage(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 3))

	rec := serve(t, nil, HandlePreview(nil, ed), httptest.NewRequest(http.MethodGet, "/preview", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html, got %q", ct)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<!doctype html>",
		`class="sheet" data-kind="normal"`,
		"¥3,000",
		services.NothingFollowsText,
	)
}

func TestHandlePreview_HTMXReturnsSheetsOnly(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 20))

	req := httptest.NewRequest(http.MethodGet, "/preview?mode=billing", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(t, nil, HandlePreview(nil, ed), req)

	body := rec.Body.String()
	if strings.Contains(body, "<!doctype html>") {
		t.Error("expected no page shell for an HTMX request")
	}
	if n := strings.Count(body, `class="sheet" data-kind="paginated"`); n != 2 {
		t.Errorf("expected 2 sheets, got %d", n)
	}
	testhelpers.AssertHTMLContains(t, body, "BILLING STATEMENT", services.ContinuedText)
}

func TestHandleExportPDF(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 20))

	rec := serve(t, nil, HandleExportPDF(nil, ed), httptest.NewRequest(http.MethodGet, "/export/pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "KMTI_Quotation_") || !strings.Contains(cd, ".pdf") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("expected the body to be a PDF")
	}
	pages, err := services.CountPDFPages(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("CountPDFPages() error = %v", err)
	}
	if pages != 2 {
		t.Errorf("expected 2 PDF pages, got %d", pages)
	}
}

func TestHandleExportExcel(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 2))

	rec := serve(t, nil, HandleExportExcel(nil, ed), httptest.NewRequest(http.MethodGet, "/export/excel", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("expected a spreadsheet content type, got %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "KMTI_Breakdown_KMTE-250101-001-R01.xlsx") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("expected the body to be a zip-based xlsx")
	}
}
