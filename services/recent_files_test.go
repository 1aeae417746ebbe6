package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

var recentBase = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func TestRecordRecentFile_Upserts(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.NewTestDocument(t, 2)
	doc.ClientInfo.Company = "Acme"

	require.NoError(t, services.RecordRecentFile(app, "/tmp/a.json", services.RecentActionSaved, doc, recentBase))
	require.NoError(t, services.RecordRecentFile(app, "/tmp/b.json", services.RecentActionLoaded, doc, recentBase.Add(time.Minute)))
	require.NoError(t, services.RecordRecentFile(app, "/tmp/a.json", services.RecentActionLoaded, doc, recentBase.Add(2*time.Minute)))

	files, err := services.ListRecentFiles(app, 0)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "/tmp/a.json", files[0].Path)
	assert.Equal(t, "a.json", files[0].Name)
	assert.Equal(t, services.RecentActionLoaded, files[0].Action)
	assert.Equal(t, "KMTE-250101-001-R01", files[0].QuotationNo)
	assert.Equal(t, "Acme", files[0].ClientName)
	assert.Equal(t, 2000.0, files[0].GrandTotal)
	assert.True(t, files[0].LastUsed.Equal(recentBase.Add(2*time.Minute)))
	assert.Equal(t, "/tmp/b.json", files[1].Path)
}

func TestRecordRecentFile_Prunes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.NewTestDocument(t, 1)

	for i := 0; i < services.MaxRecentFiles+3; i++ {
		path := fmt.Sprintf("/tmp/q%02d.json", i)
		require.NoError(t, services.RecordRecentFile(app, path, services.RecentActionSaved, doc, recentBase.Add(time.Duration(i)*time.Minute)))
	}

	files, err := services.ListRecentFiles(app, 0)
	require.NoError(t, err)
	require.Len(t, files, services.MaxRecentFiles)
	assert.Equal(t, "/tmp/q12.json", files[0].Path)
	assert.Equal(t, "/tmp/q03.json", files[len(files)-1].Path)

	limited, err := services.ListRecentFiles(app, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestRecordRecentFile_QuotedPath(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.NewTestDocument(t, 1)
	path := `/tmp/client's "final" quote.json`

	require.NoError(t, services.RecordRecentFile(app, path, services.RecentActionSaved, doc, recentBase))
	require.NoError(t, services.RecordRecentFile(app, path, services.RecentActionLoaded, doc, recentBase.Add(time.Minute)))

	files, err := services.ListRecentFiles(app, 0)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, path, files[0].Path)
	assert.Equal(t, services.RecentActionLoaded, files[0].Action)
}

func TestRecordRecentFile_MissingCollection(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, err := app.FindCollectionByNameOrId(services.RecentFilesCollection)
	require.NoError(t, err)
	require.NoError(t, app.Delete(col))

	err = services.RecordRecentFile(app, "/tmp/a.json", services.RecentActionSaved, testhelpers.NewTestDocument(t, 1), recentBase)
	assert.Error(t, err)

	_, err = services.ListRecentFiles(app, 0)
	assert.Error(t, err)
}
