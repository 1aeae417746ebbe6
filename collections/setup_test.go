package collections_test

import (
	"testing"

	"quotationdesk/collections"
	"quotationdesk/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"recent_files",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_RecentFilesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("recent_files")

	fields := []string{"path", "name", "action", "quotation_no", "client_name", "grand_total", "last_used", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("recent_files: missing field %q", f)
		}
	}

	actionField := col.Fields.GetByName("action")
	if sf, ok := actionField.(*core.SelectField); ok {
		expected := map[string]bool{"saved": true, "loaded": true}
		for _, v := range sf.Values {
			if !expected[v] {
				t.Errorf("unexpected action value: %q", v)
			}
			delete(expected, v)
		}
		for v := range expected {
			t.Errorf("missing action value: %q", v)
		}
	} else {
		t.Errorf("action field is not a SelectField")
	}
}

func TestSetup_RecentFilesPathUnique(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("recent_files")

	first := core.NewRecord(col)
	first.Set("path", "/tmp/a.json")
	first.Set("action", "saved")
	first.Set("last_used", 1)
	if err := app.Save(first); err != nil {
		t.Fatalf("save first record: %v", err)
	}

	dup := core.NewRecord(col)
	dup.Set("path", "/tmp/a.json")
	dup.Set("action", "loaded")
	dup.Set("last_used", 2)
	if err := app.Save(dup); err == nil {
		t.Error("expected duplicate path to be rejected")
	}
}
