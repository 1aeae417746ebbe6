package services_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

func TestGeneratePDF(t *testing.T) {
	lh := services.DefaultLetterhead()
	tests := []struct {
		name  string
		tasks int
		mode  services.PrintMode
	}{
		{"short quotation", 3, services.PrintModeQuotation},
		{"short billing", 3, services.PrintModeBilling},
		{"paginated quotation", 20, services.PrintModeQuotation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testhelpers.NewTestDocument(t, tt.tasks)
			layout := services.BuildLayout(doc, tt.mode, lh)
			req := services.DefaultPrintRequest(doc.QuotationDetails, tt.mode, lh)

			data, err := services.GeneratePDF(layout, req)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF")
			pages, err := services.CountPDFPages(data)
			require.NoError(t, err)
			assert.Equal(t, len(layout.Pages), pages)
		})
	}
}

func TestGeneratePDF_Landscape(t *testing.T) {
	lh := services.DefaultLetterhead()
	doc := testhelpers.NewTestDocument(t, 1)
	req := services.DefaultPrintRequest(doc.QuotationDetails, services.PrintModeQuotation, lh)
	req.PageSize = "Letter"
	req.Landscape = true

	data, err := services.GeneratePDF(services.BuildLayout(doc, services.PrintModeQuotation, lh), req)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
