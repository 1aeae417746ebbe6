package services

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// RecentFilesCollection stores the files the editor saved or loaded.
const RecentFilesCollection = "recent_files"

// MaxRecentFiles is how many entries the recent-files list keeps.
const MaxRecentFiles = 10

// Recent file actions.
const (
	RecentActionSaved  = "saved"
	RecentActionLoaded = "loaded"
)

// RecentFile is one entry of the recent-files list.
type RecentFile struct {
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	Action      string    `json:"action"`
	QuotationNo string    `json:"quotationNo"`
	ClientName  string    `json:"clientName"`
	GrandTotal  float64   `json:"grandTotal"`
	LastUsed    time.Time `json:"lastUsed"`
}

// RecordRecentFile upserts the entry for path and prunes the list to
// MaxRecentFiles entries.
func RecordRecentFile(app *pocketbase.PocketBase, path, action string, doc Document, now time.Time) error {
	col, err := app.FindCollectionByNameOrId(RecentFilesCollection)
	if err != nil {
		return fmt.Errorf("collection not found: %w", err)
	}

	record, err := app.FindFirstRecordByFilter(col, "path = {:path}", map[string]any{"path": path})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		record = core.NewRecord(col)
		record.Set("path", path)
	case err != nil:
		return fmt.Errorf("find recent file: %w", err)
	}

	record.Set("name", filepath.Base(path))
	record.Set("action", action)
	record.Set("quotation_no", doc.QuotationDetails.QuotationNo)
	record.Set("client_name", doc.ClientInfo.Company)
	record.Set("grand_total", doc.Totals().GrandTotal)
	record.Set("last_used", now.UnixMilli())

	if err := app.Save(record); err != nil {
		return fmt.Errorf("save recent file: %w", err)
	}

	all, err := app.FindRecordsByFilter(col, "id != ''", "-last_used", 0, 0)
	if err != nil {
		return fmt.Errorf("list recent files for pruning: %w", err)
	}
	if len(all) <= MaxRecentFiles {
		return nil
	}
	for _, r := range all[MaxRecentFiles:] {
		if err := app.Delete(r); err != nil {
			return fmt.Errorf("prune recent file: %w", err)
		}
	}
	return nil
}

// ListRecentFiles returns the most recently used files first.
func ListRecentFiles(app *pocketbase.PocketBase, limit int) ([]RecentFile, error) {
	if limit <= 0 || limit > MaxRecentFiles {
		limit = MaxRecentFiles
	}
	records, err := app.FindRecordsByFilter(RecentFilesCollection, "id != ''", "-last_used", limit, 0)
	if err != nil {
		return nil, fmt.Errorf("list recent files: %w", err)
	}

	files := make([]RecentFile, 0, len(records))
	for _, r := range records {
		files = append(files, RecentFile{
			Path:        r.GetString("path"),
			Name:        r.GetString("name"),
			Action:      r.GetString("action"),
			QuotationNo: r.GetString("quotation_no"),
			ClientName:  r.GetString("client_name"),
			GrandTotal:  r.GetFloat("grand_total"),
			LastUsed:    time.UnixMilli(int64(r.GetFloat("last_used"))),
		})
	}
	return files, nil
}
