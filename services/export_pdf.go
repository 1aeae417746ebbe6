package services

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Table row heights in millimetres, by layout kind.
const (
	rowHeightNormal     = 8
	rowHeightCompressed = 5.5
)

var (
	greyText  = &props.Color{Red: 80, Green: 80, Blue: 80}
	lightGrey = &props.Color{Red: 245, Green: 245, Blue: 245}
	headerBg  = &props.Color{Red: 33, Green: 37, Blue: 41}
	white     = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GeneratePDF renders a print layout with maroto/v2, one PDF page per layout
// page. It returns the raw PDF bytes or an error.
func GeneratePDF(layout PrintLayout, req PrintRequest) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(pdfOrientation(req)).
		WithPageSize(pdfPageSize(req)).
		WithLeftMargin(req.Margins.Left).
		WithTopMargin(req.Margins.Top).
		WithRightMargin(req.Margins.Right).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	rowHeight := float64(rowHeightNormal)
	if layout.Kind != LayoutNormal {
		rowHeight = rowHeightCompressed
	}

	for _, p := range layout.Pages {
		var rows []core.Row
		rows = append(rows, headerRows(layout)...)
		rows = append(rows, tableHeaderRow())
		for _, r := range p.Rows {
			rows = append(rows, tableRow(r, rowHeight))
		}
		if p.ShowTotal {
			rows = append(rows, totalRow(layout.GrandTotal))
		}
		if p.ShowTerms {
			rows = append(rows, termsRows(layout.Terms)...)
		}
		if p.ShowSignatures {
			rows = append(rows, signatureRows(layout.Signatures)...)
			rows = append(rows, footerRows(layout.Footer)...)
		}
		m.AddPages(page.New().Add(rows...))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func pdfOrientation(req PrintRequest) orientation.Type {
	if req.Landscape {
		return orientation.Horizontal
	}
	return orientation.Vertical
}

func pdfPageSize(req PrintRequest) pagesize.Type {
	switch req.PageSize {
	case "Letter":
		return pagesize.Letter
	case "Legal":
		return pagesize.Legal
	case "A3":
		return pagesize.A3
	default:
		return pagesize.A4
	}
}

// headerRows builds the title, company, document number and addressee block.
func headerRows(layout PrintLayout) []core.Row {
	h := layout.Header
	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(
				text.New(h.CompanyName, props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	}

	if layout.Mode == PrintModeBilling {
		for _, line := range h.CompanyLines {
			rows = append(rows, row.New(4).Add(
				col.New(12).Add(text.New(line, props.Text{Size: 8, Align: align.Center, Color: greyText})),
			))
		}
	}

	rows = append(rows, row.New(9).Add(
		col.New(12).Add(
			text.New(h.Title, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Center,
			}),
		),
	))

	left := h.ClientLines
	if h.AddresseeLabel != "" {
		left = append([]string{h.AddresseeLabel}, left...)
	}
	var right []string
	if layout.Mode == PrintModeQuotation {
		right = append(right, h.CompanyLines...)
	}
	for _, d := range h.Details {
		right = append(right, d.Label+" "+d.Value)
	}

	n := max(len(left), len(right))
	for i := 0; i < n; i++ {
		leftStyle := props.Text{Size: 8, Align: align.Left}
		if i == 0 || (h.AddresseeLabel != "" && i == 1) {
			leftStyle.Style = fontstyle.Bold
		}
		rows = append(rows, row.New(4.5).Add(
			col.New(7).Add(text.New(lineAt(left, i), leftStyle)),
			col.New(5).Add(text.New(lineAt(right, i), props.Text{Size: 8, Align: align.Right})),
		))
	}

	rows = append(rows, row.New(3))
	return rows
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// tableHeaderRow adds the column header row for the task table.
func tableHeaderRow() core.Row {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: white,
	}
	headerCell := &props.Cell{BackgroundColor: headerBg}

	return row.New(7).Add(
		col.New(1).Add(text.New("NO.", headerText)).WithStyle(headerCell),
		col.New(2).Add(text.New("REFERENCE NO.", headerText)).WithStyle(headerCell),
		col.New(4).Add(text.New("DESCRIPTION", headerText)).WithStyle(headerCell),
		col.New(1).Add(text.New("HOURS", headerText)).WithStyle(headerCell),
		col.New(1).Add(text.New("TYPE", headerText)).WithStyle(headerCell),
		col.New(3).Add(text.New("PRICE", headerText)).WithStyle(headerCell),
	)
}

// tableRow adds a single table row, styled by kind.
func tableRow(r PrintRow, height float64) core.Row {
	cell := &props.Cell{BorderType: border.Full, BorderColor: &props.Color{Red: 200, Green: 200, Blue: 200}}
	base := props.Text{Size: 8, Align: align.Center, Top: 1}
	left := base
	left.Align = align.Left
	left.Left = 1
	right := base
	right.Align = align.Right
	right.Right = 1

	number, price := "", ""
	if r.Number > 0 {
		number = strconv.Itoa(r.Number)
	}
	if r.HasPrice {
		price = FormatYen(r.Price)
	}

	desc := left
	switch r.Kind {
	case RowNothingFollows, RowContinued:
		desc.Style = fontstyle.BoldItalic
		desc.Align = align.Center
	case RowOverhead:
		cell.BackgroundColor = lightGrey
	}

	return row.New(height).Add(
		col.New(1).Add(text.New(number, base)).WithStyle(cell),
		col.New(2).Add(text.New(r.ReferenceNumber, left)).WithStyle(cell),
		col.New(4).Add(text.New(r.Description, desc)).WithStyle(cell),
		col.New(1).Add(text.New(r.Hours, base)).WithStyle(cell),
		col.New(1).Add(text.New(r.Type, base)).WithStyle(cell),
		col.New(3).Add(text.New(price, right)).WithStyle(cell),
	)
}

// totalRow adds the grand total line.
func totalRow(grandTotal float64) core.Row {
	cell := &props.Cell{BackgroundColor: lightGrey, BorderType: border.Full}
	style := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center, Top: 1.5}
	value := style
	value.Align = align.Right
	value.Right = 1

	return row.New(8).Add(
		col.New(9).Add(text.New(TotalAmountLabel, style)).WithStyle(cell),
		col.New(3).Add(text.New(FormatYen(grandTotal), value)).WithStyle(cell),
	)
}

func termsRows(terms []string) []core.Row {
	rows := []core.Row{row.New(3)}
	for _, t := range terms {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(t, props.Text{Size: 8, Align: align.Left})),
		))
	}
	return rows
}

// signatureRows lays the signature slots out two per row.
func signatureRows(lines []SignatureLine) []core.Row {
	rows := []core.Row{row.New(4)}
	for i := 0; i < len(lines); i += 2 {
		pair := lines[i:min(i+2, len(lines))]

		var captions, spaces, names, titles []core.Col
		for _, s := range pair {
			captions = append(captions, col.New(6).Add(text.New(s.Caption, props.Text{Size: 8, Style: fontstyle.Bold})))
			spaces = append(spaces, col.New(6))
			names = append(names, col.New(6).Add(text.New(s.Name, props.Text{Size: 9, Style: fontstyle.Bold})))
			titles = append(titles, col.New(6).Add(text.New(s.Title, props.Text{Size: 8, Color: greyText})))
		}
		rows = append(rows,
			row.New(5).Add(captions...),
			row.New(7).Add(spaces...),
			row.New(5).Add(names...),
			row.New(5).Add(titles...),
		)
	}
	return rows
}

func footerRows(f PrintFooter) []core.Row {
	rows := []core.Row{row.New(3)}
	if f.BankTitle != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(f.BankTitle, props.Text{Size: 8, Style: fontstyle.Bold})),
		))
	}
	for _, b := range f.BankDetails {
		rows = append(rows, row.New(4).Add(
			col.New(4).Add(text.New(b.Label, props.Text{Size: 7, Style: fontstyle.Bold})),
			col.New(8).Add(text.New(b.Value, props.Text{Size: 7})),
		))
	}
	for _, line := range f.Lines {
		rows = append(rows, row.New(4).Add(
			col.New(12).Add(text.New(line, props.Text{Size: 7, Color: greyText})),
		))
	}
	return rows
}
