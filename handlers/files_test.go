package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

func TestHandleFileSave_RecordsRecentFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 2))
	if _, err := ed.AddMainTask(); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	path := filepath.Join(t.TempDir(), "quote.json")
	rec := serve(t, app, HandleFileSave(app, ed), jsonRequest(http.MethodPost, "/file/save", filePath{Path: path}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	state := decodeState(t, rec)
	if state.FilePath != path {
		t.Errorf("expected file path %q, got %q", path, state.FilePath)
	}
	if state.HasUnsavedChanges {
		t.Error("expected no unsaved changes after save")
	}
	if state.Document.SavedAt == "" {
		t.Error("expected savedAt to be set")
	}

	rec = serve(t, app, HandleRecentFiles(app), httptest.NewRequest(http.MethodGet, "/files/recent", nil))
	var files []services.RecentFile
	if err := json.Unmarshal(rec.Body.Bytes(), &files); err != nil {
		t.Fatalf("response is not a recent file list: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 recent file, got %d", len(files))
	}
	if files[0].Path != path || files[0].Action != services.RecentActionSaved {
		t.Errorf("unexpected recent file %+v", files[0])
	}
	if files[0].Name != "quote.json" {
		t.Errorf("expected name %q, got %q", "quote.json", files[0].Name)
	}
}

func TestHandleFileSave_NoPath(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := services.NewEditor()

	rec := serve(t, app, HandleFileSave(app, ed), jsonRequest(http.MethodPost, "/file/save", filePath{}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if ed.Snapshot().FilePath != "" {
		t.Error("expected no file path after a failed save")
	}
}

func TestHandleFileSave_UnwritablePath(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 1))
	ed.UpdateClientInfo(services.ClientInfo{Company: "Changed"})

	path := filepath.Join(t.TempDir(), "missing-dir", "quote.json")
	rec := serve(t, app, HandleFileSave(app, ed), jsonRequest(http.MethodPost, "/file/save", filePath{Path: path}))

	if rec.Code != http.StatusNotFound && rec.Code != http.StatusInternalServerError {
		t.Errorf("expected a failed save, got %d", rec.Code)
	}
	if !ed.Snapshot().HasUnsavedChanges {
		t.Error("expected the document to stay unsaved")
	}
}

func TestHandleFileLoad(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.NewTestDocument(t, 4)
	data, err := services.MarshalDocument(doc, testNow)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	path := testhelpers.WriteTestFile(t, "four.json", string(data))

	ed := services.NewEditor()
	rec := serve(t, app, HandleFileLoad(app, ed), jsonRequest(http.MethodPost, "/file/load", filePath{Path: path}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	state := decodeState(t, rec)
	if state.MainTaskCount != 4 {
		t.Errorf("expected 4 main tasks, got %d", state.MainTaskCount)
	}
	if state.FilePath != path {
		t.Errorf("expected file path %q, got %q", path, state.FilePath)
	}

	files, err := services.ListRecentFiles(app, 0)
	if err != nil {
		t.Fatalf("failed to list recent files: %v", err)
	}
	if len(files) != 1 || files[0].Action != services.RecentActionLoaded {
		t.Errorf("expected one loaded entry, got %+v", files)
	}
}

func TestHandleFileLoad_Errors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		missing    bool
		wantStatus int
	}{
		{"missing file", "", true, http.StatusNotFound},
		{"empty file", "", false, http.StatusUnprocessableEntity},
		{"invalid json", "{not json", false, http.StatusUnprocessableEntity},
		{"array", "[1, 2, 3]", false, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testhelpers.NewTestApp(t)
			ed := newTestEditor(t, testhelpers.NewTestDocument(t, 2))
			before := ed.Snapshot()

			path := filepath.Join(t.TempDir(), "absent.json")
			if !tt.missing {
				path = testhelpers.WriteTestFile(t, "bad.json", tt.content)
			}
			rec := serve(t, app, HandleFileLoad(app, ed), jsonRequest(http.MethodPost, "/file/load", filePath{Path: path}))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			after := ed.Snapshot()
			if after.FilePath != before.FilePath || len(after.Document.Tasks) != len(before.Document.Tasks) {
				t.Error("expected the open document to be untouched")
			}
		})
	}
}

func TestHandleFileNew(t *testing.T) {
	ed := newTestEditor(t, testhelpers.NewTestDocument(t, 5))

	rec := serve(t, nil, HandleFileNew(nil, ed), httptest.NewRequest(http.MethodPost, "/file/new", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	state := decodeState(t, rec)
	if state.FilePath != "" || state.HasUnsavedChanges {
		t.Errorf("expected a fresh untitled document, got path %q dirty %v", state.FilePath, state.HasUnsavedChanges)
	}
	if state.MainTaskCount != 1 {
		t.Errorf("expected 1 blank main task, got %d", state.MainTaskCount)
	}
	if state.Document.QuotationDetails.QuotationNo != "KMTE-250314-001-R01" {
		t.Errorf("expected number for the clock date, got %q", state.Document.QuotationDetails.QuotationNo)
	}
}
