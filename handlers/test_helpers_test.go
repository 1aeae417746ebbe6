package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// testNow is the fixed clock of test editors.
var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// newTestEditor returns an editor with doc loaded from a temporary file.
func newTestEditor(t *testing.T, doc services.Document) *services.Editor {
	t.Helper()

	ed := services.NewEditor(services.WithClock(func() time.Time { return testNow }))
	data, err := services.MarshalDocument(doc, testNow)
	if err != nil {
		t.Fatalf("failed to marshal test document: %v", err)
	}
	path := testhelpers.WriteTestFile(t, "doc.json", string(data))
	if err := ed.Load(context.Background(), path); err != nil {
		t.Fatalf("failed to load test document: %v", err)
	}
	return ed
}

// jsonRequest builds a request with a JSON body. A nil body sends none.
func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = strings.NewReader(string(data))
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// serve runs handler against req and returns the recorder.
func serve(t *testing.T, app *pocketbase.PocketBase, handler func(*core.RequestEvent) error, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

// decodeState decodes an EditorState response body.
func decodeState(t *testing.T, rec *httptest.ResponseRecorder) services.EditorState {
	t.Helper()

	var state services.EditorState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not an editor state: %v\nbody: %s", err, rec.Body.String())
	}
	return state
}
