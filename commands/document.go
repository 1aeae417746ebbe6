// Package commands holds the command-line tools that work on saved
// quotation files without starting the server.
package commands

import (
	"context"
	"fmt"
	"time"

	"quotationdesk/services"
)

// loadTimeout bounds reading a document file from the command line.
const loadTimeout = 30 * time.Second

// loadEditor opens path in a fresh editor.
func loadEditor(path string, lh services.Letterhead) (*services.Editor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	ed := services.NewEditor(services.WithLetterhead(lh))
	if err := ed.Load(ctx, path); err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return ed, nil
}
