package services

import (
	"fmt"
	"strings"
)

// PrintMode selects the document variant.
type PrintMode string

const (
	PrintModeQuotation PrintMode = "quotation"
	PrintModeBilling   PrintMode = "billing"
)

// ParsePrintMode accepts "quotation" (also the empty string) or "billing".
func ParsePrintMode(s string) (PrintMode, error) {
	switch PrintMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PrintModeQuotation:
		return PrintModeQuotation, nil
	case PrintModeBilling:
		return PrintModeBilling, nil
	}
	return "", fmt.Errorf("unknown print mode %q", s)
}

// LayoutKind is the spacing and page strategy chosen from the main-task count.
type LayoutKind string

const (
	LayoutNormal     LayoutKind = "normal"
	LayoutCompressed LayoutKind = "compressed"
	LayoutPaginated  LayoutKind = "paginated"
)

// Pagination thresholds, counted in main tasks.
const (
	CompressedThreshold = 9
	SinglePageMaxTasks  = 15
	PaginationThreshold = 16
	FirstPageTasks      = 15
)

// Filler rows keep short tables at the height of the paper template.
const (
	SinglePageRowSlots       = 10
	SecondPageFillerRows     = 5
	SecondPageFillerMaxTasks = 7
)

// RowKind identifies what a table row holds.
type RowKind string

const (
	RowTask           RowKind = "task"
	RowOverhead       RowKind = "overhead"
	RowNothingFollows RowKind = "nothingFollows"
	RowContinued      RowKind = "continued"
	RowFiller         RowKind = "filler"
)

// Fixed row texts.
const (
	OverheadRowLabel   = "Administrative overhead"
	NothingFollowsText = "--- NOTHING FOLLOW ---"
	ContinuedText      = "--- Continued on next page ---"
	TotalAmountLabel   = "Total Amount"
)

// PrintRow is one row of the printed task table.
type PrintRow struct {
	Kind            RowKind `json:"kind"`
	Number          int     `json:"number,omitempty"`
	TaskID          TaskID  `json:"taskId,omitempty"`
	ReferenceNumber string  `json:"referenceNumber,omitempty"`
	Description     string  `json:"description,omitempty"`
	Hours           string  `json:"hours,omitempty"`
	Type            string  `json:"type,omitempty"`
	Price           float64 `json:"price"`
	HasPrice        bool    `json:"hasPrice"`
}

// LabeledValue is a "label: value" header line.
type LabeledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SignatureLine is one signature slot.
type SignatureLine struct {
	Caption string `json:"caption"`
	Name    string `json:"name"`
	Title   string `json:"title"`
}

// PrintHeader is the block above the table. It repeats on every page.
type PrintHeader struct {
	Title          string         `json:"title"`
	CompanyName    string         `json:"companyName"`
	CompanyLines   []string       `json:"companyLines"`
	Details        []LabeledValue `json:"details"`
	AddresseeLabel string         `json:"addresseeLabel,omitempty"`
	ClientLines    []string       `json:"clientLines"`
}

// PrintFooter is the block under the signatures.
type PrintFooter struct {
	Lines       []string     `json:"lines"`
	BankTitle   string       `json:"bankTitle,omitempty"`
	BankDetails []BankDetail `json:"bankDetails,omitempty"`
}

// Page is one printed page.
type Page struct {
	Number         int        `json:"number"`
	Rows           []PrintRow `json:"rows"`
	ShowTotal      bool       `json:"showTotal"`
	ShowTerms      bool       `json:"showTerms"`
	ShowSignatures bool       `json:"showSignatures"`
}

// PrintLayout is the structured, paginated form of a document, ready for a
// rendering backend.
type PrintLayout struct {
	Mode          PrintMode       `json:"mode"`
	Kind          LayoutKind      `json:"kind"`
	Header        PrintHeader     `json:"header"`
	Pages         []Page          `json:"pages"`
	OverheadTotal float64         `json:"overheadTotal"`
	GrandTotal    float64         `json:"grandTotal"`
	Terms         []string        `json:"terms"`
	Signatures    []SignatureLine `json:"signatures"`
	Footer        PrintFooter     `json:"footer"`
}

// LayoutKindFor picks the layout for n main tasks.
func LayoutKindFor(n int) LayoutKind {
	switch {
	case n >= PaginationThreshold:
		return LayoutPaginated
	case n >= CompressedThreshold:
		return LayoutCompressed
	default:
		return LayoutNormal
	}
}

// SinglePageFillerRows is the number of blank rows after the nothing-follows
// row on a one-page document.
func SinglePageFillerRows(n int, overheadRow bool) int {
	used := n + 1
	if overheadRow {
		used++
	}
	return max(0, SinglePageRowSlots-used)
}

// SecondPageFiller is the number of blank rows on page 2 holding n tasks.
func SecondPageFiller(n int) int {
	if n <= SecondPageFillerMaxTasks {
		return SecondPageFillerRows
	}
	return 0
}

// ShowOverheadRow reports whether the overhead line is printed.
func ShowOverheadRow(rates RateTable, overheadTotal float64) bool {
	return rates.OverheadPercentage > 0 || overheadTotal != 0
}

// BuildLayout turns a document into its printed layout. Only main tasks are
// listed; each shows its aggregated hours and its price without overhead.
func BuildLayout(doc Document, mode PrintMode, lh Letterhead) PrintLayout {
	totals := doc.Totals()
	mains := MainTasksOf(doc.Tasks)

	taskRows := make([]PrintRow, 0, len(mains))
	for i, main := range mains {
		b, _ := totals.Line(main.ID)
		taskRows = append(taskRows, taskRow(i+1, main, SubTasksOf(doc.Tasks, main.ID), b))
	}

	var tail []PrintRow
	overheadRow := ShowOverheadRow(doc.BaseRates, totals.OverheadTotal)
	if overheadRow {
		tail = append(tail, PrintRow{
			Kind:            RowOverhead,
			ReferenceNumber: OverheadRowLabel,
			Price:           totals.OverheadTotal,
			HasPrice:        true,
		})
	}
	tail = append(tail, PrintRow{Kind: RowNothingFollows, Description: NothingFollowsText})

	layout := PrintLayout{
		Mode:          mode,
		Kind:          LayoutKindFor(len(mains)),
		Header:        buildHeader(doc, mode),
		OverheadTotal: totals.OverheadTotal,
		GrandTotal:    totals.GrandTotal,
		Terms:         lh.Terms,
		Signatures:    buildSignatures(doc.Signatures, mode),
		Footer:        buildFooter(mode, lh),
	}

	if layout.Kind != LayoutPaginated {
		rows := append(taskRows, tail...)
		rows = append(rows, fillerRows(SinglePageFillerRows(len(mains), overheadRow))...)
		layout.Pages = []Page{{
			Number:         1,
			Rows:           rows,
			ShowTotal:      true,
			ShowTerms:      true,
			ShowSignatures: true,
		}}
		return layout
	}

	first := append([]PrintRow{}, taskRows[:FirstPageTasks]...)
	first = append(first, PrintRow{Kind: RowContinued, Description: ContinuedText})

	rest := taskRows[FirstPageTasks:]
	second := append([]PrintRow{}, rest...)
	second = append(second, tail...)
	second = append(second, fillerRows(SecondPageFiller(len(rest)))...)

	layout.Pages = []Page{
		{Number: 1, Rows: first},
		{Number: 2, Rows: second, ShowTotal: true, ShowTerms: true, ShowSignatures: true},
	}
	return layout
}

// TaskRows returns the task rows across all pages in order.
func (l PrintLayout) TaskRows() []PrintRow {
	var out []PrintRow
	for _, p := range l.Pages {
		for _, r := range p.Rows {
			if r.Kind == RowTask {
				out = append(out, r)
			}
		}
	}
	return out
}

// CountRows counts rows of one kind on a page.
func (p Page) CountRows(kind RowKind) int {
	n := 0
	for _, r := range p.Rows {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

func taskRow(number int, main Task, subs []Task, b Breakdown) PrintRow {
	hours, minutes := main.Hours, main.Minutes
	for _, s := range subs {
		hours += s.Hours
		minutes += s.Minutes
	}
	taskType := main.Type
	if taskType == "" {
		taskType = TaskType3D
	}
	return PrintRow{
		Kind:            RowTask,
		Number:          number,
		TaskID:          main.ID,
		ReferenceNumber: main.ReferenceNumber,
		Description:     main.Description,
		Hours:           FormatHours(hours, minutes),
		Type:            taskType,
		Price:           b.LinePrice(),
		HasPrice:        true,
	}
}

func fillerRows(n int) []PrintRow {
	rows := make([]PrintRow, n)
	for i := range rows {
		rows[i] = PrintRow{Kind: RowFiller}
	}
	return rows
}

func buildHeader(doc Document, mode PrintMode) PrintHeader {
	c := doc.CompanyInfo
	q := doc.QuotationDetails
	h := PrintHeader{
		CompanyName: c.Name,
		ClientLines: nonEmpty(doc.ClientInfo.Company, doc.ClientInfo.Contact, doc.ClientInfo.Address, doc.ClientInfo.Phone),
	}

	if mode == PrintModeBilling {
		h.Title = "BILLING STATEMENT"
		h.CompanyLines = nonEmpty(c.Address, c.City, c.Location)
		if c.VATTin != "" {
			h.CompanyLines = append(h.CompanyLines, "VAT Reg. TIN: "+c.VATTin)
		}
		h.Details = []LabeledValue{
			{Label: "DATE:", Value: q.Date},
			{Label: "Invoice No.:", Value: q.InvoiceNo},
			{Label: "Quotation No.:", Value: q.QuotationNo},
			{Label: "Job Order No.:", Value: q.JobOrderNo},
		}
		return h
	}

	h.Title = "Quotation"
	h.CompanyLines = nonEmpty(c.Address, c.City, c.Location, c.Phone)
	h.Details = []LabeledValue{
		{Label: "Quotation No.:", Value: q.QuotationNo},
		{Label: "Reference No.:", Value: q.ReferenceNo},
		{Label: "Date:", Value: q.Date},
	}
	h.AddresseeLabel = "Quotation to:"
	return h
}

func buildSignatures(s Signatures, mode PrintMode) []SignatureLine {
	if mode == PrintModeBilling {
		b := s.Billing
		return []SignatureLine{
			{Caption: "Prepared by:", Name: b.PreparedBy.Name, Title: b.PreparedBy.Title},
			{Caption: "Approved by:", Name: b.ApprovedBy.Name, Title: b.ApprovedBy.Title},
			{Caption: "", Name: b.FinalApprover.Name, Title: b.FinalApprover.Title},
		}
	}
	q := s.Quotation
	received := q.ReceivedBy.Label
	if received == "" {
		received = q.ReceivedBy.Name
	}
	return []SignatureLine{
		{Caption: "Prepared by:", Name: q.PreparedBy.Name, Title: q.PreparedBy.Title},
		{Caption: "Approved by:", Name: q.ApprovedBy.Name, Title: q.ApprovedBy.Title},
		{Caption: "Received by:", Name: received, Title: q.ReceivedBy.Title},
	}
}

func buildFooter(mode PrintMode, lh Letterhead) PrintFooter {
	if mode == PrintModeBilling {
		return PrintFooter{
			Lines:       nonEmpty(lh.VATTin),
			BankTitle:   lh.BankTitle,
			BankDetails: lh.BankDetails,
		}
	}
	return PrintFooter{Lines: nonEmpty(lh.CCLine, lh.TemplateLabel)}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// Margins are page margins in millimetres.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// PrintRequest is what a rendering backend or printer needs besides the layout.
type PrintRequest struct {
	PageSize        string  `json:"pageSize"`
	Landscape       bool    `json:"landscape"`
	PrintBackground bool    `json:"printBackground"`
	Color           bool    `json:"color"`
	Margins         Margins `json:"margins"`
	FileName        string  `json:"fileName"`
}

// DefaultMarginMM is the margin on every side of a printed page.
const DefaultMarginMM = 5

// DefaultPrintRequest returns an A4 portrait request named after the document.
func DefaultPrintRequest(details QuotationDetails, mode PrintMode, lh Letterhead) PrintRequest {
	return PrintRequest{
		PageSize:        "A4",
		PrintBackground: true,
		Color:           true,
		Margins:         Margins{Top: DefaultMarginMM, Right: DefaultMarginMM, Bottom: DefaultMarginMM, Left: DefaultMarginMM},
		FileName:        PrintFileName(details, mode, lh.FilePrefix),
	}
}

// PrintFileName builds "<prefix>_<Quotation|BillingStatement>_<number>.pdf".
// Billing statements prefer the invoice number; a document with no number is
// named "Draft".
func PrintFileName(details QuotationDetails, mode PrintMode, prefix string) string {
	docType := "Quotation"
	number := details.QuotationNo
	if mode == PrintModeBilling {
		docType = "BillingStatement"
		if details.InvoiceNo != "" {
			number = details.InvoiceNo
		}
	}
	if number == "" {
		number = "Draft"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", prefix, docType, SanitizeFileName(number))
}

// SanitizeFileName replaces characters that are unsafe in file names, and
// spaces, with "-".
func SanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, s)
}
