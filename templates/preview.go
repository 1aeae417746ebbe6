// Package templates renders the HTML print preview.
package templates

import (
	"fmt"
	"strconv"

	"quotationdesk/services"
)

// PreviewData is what the preview page shows.
type PreviewData struct {
	Layout  services.PrintLayout
	Request services.PrintRequest
}

const previewCSS = `
body { background: #888; font-family: Arial, sans-serif; margin: 0; }
.sheet { background: #fff; width: 210mm; min-height: 297mm; margin: 8mm auto; box-sizing: border-box; }
.sheet .company { text-align: center; font-weight: bold; font-size: 16px; }
.sheet .company-lines { text-align: center; font-size: 11px; color: #555; }
.sheet .title { text-align: center; font-weight: bold; font-size: 22px; margin: 6px 0; }
.sheet .contact { display: flex; justify-content: space-between; font-size: 12px; }
.sheet table { width: 100%%; border-collapse: collapse; margin-top: 8px; font-size: 12px; }
.sheet th { background: #212529; color: #fff; padding: 4px; }
.sheet td { border: 1px solid #ccc; padding: 0 4px; }
.sheet[data-kind="normal"] td { height: 8mm; }
.sheet[data-kind="compressed"] td, .sheet[data-kind="paginated"] td { height: 5.5mm; }
.sheet td.price { text-align: right; }
.sheet tr[data-kind="total"] td { background: #f5f5f5; font-weight: bold; font-size: 14px; }
.sheet tr[data-kind="total"] td:first-child { text-align: center; }
.sheet tr[data-kind="nothingFollows"] td, .sheet tr[data-kind="continued"] td { text-align: center; font-style: italic; font-weight: bold; }
.sheet .terms { font-size: 11px; margin-top: 8px; }
.sheet .signatures { display: flex; flex-wrap: wrap; font-size: 12px; margin-top: 8px; }
.sheet .signature { width: 50%%; margin-bottom: 10px; }
.sheet .sig-space { height: 7mm; border-bottom: 1px solid #000; width: 60%%; }
.sheet .footer { font-size: 10px; color: #555; margin-top: 8px; }
.sheet { padding: %smm %smm %smm %smm; }
`

// previewStyle is the page stylesheet with the print margins applied to every
// sheet.
func previewStyle(m services.Margins) string {
	return "<style>" + fmt.Sprintf(previewCSS, mm(m.Top), mm(m.Right), mm(m.Bottom), mm(m.Left)) + "</style>"
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func rowNumber(r services.PrintRow) string {
	if r.Number > 0 {
		return strconv.Itoa(r.Number)
	}
	return ""
}

func rowPrice(r services.PrintRow) string {
	if r.HasPrice {
		return services.FormatYen(r.Price)
	}
	return ""
}
