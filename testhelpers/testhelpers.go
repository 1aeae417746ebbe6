// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"

	"quotationdesk/collections"
	"quotationdesk/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// NewTestDocument returns a document with n main tasks of one hour each,
// charged at 1000/h with no overhead, so every main task totals 1000.
func NewTestDocument(t *testing.T, n int) services.Document {
	t.Helper()

	doc := services.Document{
		QuotationDetails: services.QuotationDetails{QuotationNo: "KMTE-250101-001-R01", Date: "2025-01-01"},
		BaseRates: services.RateTable{
			TimeChargeRate2D:  1000,
			TimeChargeRate3D:  1000,
			OTHoursMultiplier: 1.3,
			OvertimeRate:      1300,
		},
		Signatures:      services.DefaultSignatures(),
		ManualOverrides: services.Overrides{},
	}
	list := services.NewTaskList(nil)
	for i := 0; i < n; i++ {
		task, err := list.AddMainTask()
		if err != nil {
			t.Fatalf("failed to add main task %d: %v", i+1, err)
		}
		if _, err := list.UpdateTaskField(task.ID, services.FieldHours, 1); err != nil {
			t.Fatalf("failed to set hours on task %d: %v", i+1, err)
		}
	}
	doc.Tasks = list.Tasks()
	return doc
}

// WriteTestFile writes content into a file under a temporary directory and
// returns its path.
func WriteTestFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
