package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BreakdownSheet is the sheet name of the cost breakdown export.
const BreakdownSheet = "Breakdown"

// breakdownColumns are the table columns of the breakdown sheet.
var breakdownColumns = []struct {
	header string
	width  float64
}{
	{"No.", 6},
	{"Reference No.", 16},
	{"Description", 40},
	{"Type", 8},
	{"Hours", 9},
	{"OT Hours", 9},
	{"Software Units", 10},
	{"Basic Labor", 15},
	{"Overtime", 15},
	{"Software", 15},
	{"Overhead", 15},
	{"Total", 16},
}

// BreakdownFileName builds "<prefix>_Breakdown_<number>.xlsx". A document with
// no quotation number is named "Draft".
func BreakdownFileName(details QuotationDetails, prefix string) string {
	number := details.QuotationNo
	if number == "" {
		number = "Draft"
	}
	return fmt.Sprintf("%s_Breakdown_%s.xlsx", prefix, SanitizeFileName(number))
}

// GenerateExcel creates a cost breakdown workbook for a document and returns
// the file contents as a byte slice. Main tasks carry their rolled-up pricing;
// sub-tasks are listed under them with their standalone pricing.
func GenerateExcel(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, BreakdownSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	sheet := BreakdownSheet

	lastCol, _ := excelize.ColumnNumberToName(len(breakdownColumns))
	for i, c := range breakdownColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	yen := "¥#,##0.00"
	mainStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create main task style: %w", err)
	}
	mainMoneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &yen,
	})
	if err != nil {
		return nil, fmt.Errorf("create main money style: %w", err)
	}
	subStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10, Color: "#555555"},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create sub-task style: %w", err)
	}
	subMoneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10, Color: "#555555"},
		Border:       thinBorders(),
		CustomNumFmt: &yen,
	})
	if err != nil {
		return nil, fmt.Errorf("create sub money style: %w", err)
	}
	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}
	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: &yen,
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	q := doc.QuotationDetails
	title := "Quotation " + q.QuotationNo
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge client: %w", err)
	}
	f.SetCellValue(sheet, "A2", sanitizeExcelCell(fmt.Sprintf("Client: %s    Date: %s    Ref: %s",
		doc.ClientInfo.Company, q.Date, q.ReferenceNo)))
	f.SetCellStyle(sheet, "A2", lastCol+"2", subtitleStyle)

	r := doc.BaseRates
	if err := f.MergeCell(sheet, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge rates: %w", err)
	}
	f.SetCellValue(sheet, "A3", fmt.Sprintf(
		"Rates: 2D %s/h, 3D %s/h, OT %s/h (x%s), Software %s/unit, Overhead %s%%",
		FormatYen(r.TimeChargeRate2D), FormatYen(r.TimeChargeRate3D), FormatYen(r.OvertimeRate),
		formatQuantity(r.OTHoursMultiplier), FormatYen(r.SoftwareRate), formatQuantity(r.OverheadPercentage)))
	f.SetCellStyle(sheet, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	for i, c := range breakdownColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(sheet, cell, c.header)
	}
	f.SetCellStyle(sheet, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	totals := doc.Totals()
	row := 6
	for i, main := range MainTasksOf(doc.Tasks) {
		b, _ := totals.Line(main.ID)
		writeBreakdownRow(f, sheet, row, fmt.Sprintf("%d", i+1), main, "", b)
		f.SetCellStyle(sheet, cellName("A", row), cellName("G", row), mainStyle)
		f.SetCellStyle(sheet, cellName("H", row), cellName(lastCol, row), mainMoneyStyle)
		row++

		for j, sub := range SubTasksOf(doc.Tasks, main.ID) {
			writeBreakdownRow(f, sheet, row, fmt.Sprintf("%d.%d", i+1, j+1), sub, "  ", PriceSubTask(sub, doc.BaseRates))
			f.SetCellStyle(sheet, cellName("A", row), cellName("G", row), subStyle)
			f.SetCellStyle(sheet, cellName("H", row), cellName(lastCol, row), subMoneyStyle)
			row++
		}
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++
	summary := []struct {
		label string
		value float64
	}{
		{"Subtotal:", totals.Subtotal},
		{"Overhead:", totals.OverheadTotal},
		{"Total Amount:", totals.GrandTotal},
	}
	for _, s := range summary {
		f.SetCellValue(sheet, cellName("K", row), s.label)
		f.SetCellStyle(sheet, cellName("K", row), cellName("K", row), summaryLabelStyle)
		f.SetCellValue(sheet, cellName("L", row), s.value)
		f.SetCellStyle(sheet, cellName("L", row), cellName("L", row), summaryValueStyle)
		row++
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

func writeBreakdownRow(f *excelize.File, sheet string, row int, index string, t Task, indent string, b Breakdown) {
	values := []any{
		index,
		sanitizeExcelCell(t.ReferenceNumber),
		sanitizeExcelCell(indent + t.Description),
		sanitizeExcelCell(t.Type),
		b.AggregatedHours,
		b.AggregatedOvertimeHours,
		b.AggregatedSoftwareUnits,
		b.BasicLabor,
		b.Overtime,
		b.Software,
		b.Overhead,
		b.Total,
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func cellName(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
