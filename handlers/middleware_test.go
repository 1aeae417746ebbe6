package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

func TestRequestLogger_EndOfChain(t *testing.T) {
	e := &core.RequestEvent{}
	e.Request = httptest.NewRequest(http.MethodGet, "/document", nil)
	e.Response = httptest.NewRecorder()

	if err := RequestLogger()(e); err != nil {
		t.Fatalf("expected no error at the end of the chain, got %v", err)
	}
}
