package services

import "time"

// CompanyInfo is the issuing company's letterhead.
type CompanyInfo struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	VATTin   string `json:"vatTin,omitempty"`
}

// ClientInfo is the addressee of the quotation.
type ClientInfo struct {
	Company string `json:"company"`
	Contact string `json:"contact"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// QuotationDetails holds the document numbers. InvoiceNo and JobOrderNo are
// only printed on billing statements.
type QuotationDetails struct {
	QuotationNo string `json:"quotationNo"`
	ReferenceNo string `json:"referenceNo"`
	Date        string `json:"date"`
	InvoiceNo   string `json:"invoiceNo,omitempty"`
	JobOrderNo  string `json:"jobOrderNo,omitempty"`
}

// Signatory is one signature line.
type Signatory struct {
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
	Title string `json:"title"`
}

// QuotationSignatures are printed on quotations.
type QuotationSignatures struct {
	PreparedBy Signatory `json:"preparedBy"`
	ApprovedBy Signatory `json:"approvedBy"`
	ReceivedBy Signatory `json:"receivedBy"`
}

// BillingSignatures are printed on billing statements.
type BillingSignatures struct {
	PreparedBy    Signatory `json:"preparedBy"`
	ApprovedBy    Signatory `json:"approvedBy"`
	FinalApprover Signatory `json:"finalApprover"`
}

// Signatures holds both signature blocks.
type Signatures struct {
	Quotation QuotationSignatures `json:"quotation"`
	Billing   BillingSignatures   `json:"billing"`
}

// Document is the full editable state of one quotation.
type Document struct {
	CompanyInfo      CompanyInfo      `json:"companyInfo"`
	ClientInfo       ClientInfo       `json:"clientInfo"`
	QuotationDetails QuotationDetails `json:"quotationDetails"`
	Tasks            []Task           `json:"tasks"`
	BaseRates        RateTable        `json:"baseRates"`
	Signatures       Signatures       `json:"signatures"`
	ManualOverrides  Overrides        `json:"manualOverrides"`
	SavedAt          string           `json:"savedAt,omitempty"`
}

// DateLayout is the format of QuotationDetails.Date.
const DateLayout = "2006-01-02"

// DefaultSignatures is the signature block of a blank document.
func DefaultSignatures() Signatures {
	return Signatures{
		Quotation: QuotationSignatures{
			PreparedBy: Signatory{Title: "Engineering Manager"},
			ApprovedBy: Signatory{Title: "President"},
			ReceivedBy: Signatory{Label: "(Signature Over Printed Name)"},
		},
		Billing: BillingSignatures{
			PreparedBy:    Signatory{Title: "Engineering Manager"},
			ApprovedBy:    Signatory{Title: "Engineering Manager"},
			FinalApprover: Signatory{Title: "President"},
		},
	}
}

// DefaultQuotationDetails numbers a blank document for the given day.
func DefaultQuotationDetails(prefix string, now time.Time) QuotationDetails {
	return QuotationDetails{
		QuotationNo: FormatQuotationNumber(prefix, now, 1, 1),
		Date:        now.Format(DateLayout),
	}
}

// DefaultTasks is the task table of a blank document: one empty main task.
func DefaultTasks() []Task {
	return []Task{newTask(true, nil)}
}

// NewDocument returns a blank document.
func NewDocument(prefix string, now time.Time) Document {
	return Document{
		QuotationDetails: DefaultQuotationDetails(prefix, now),
		Tasks:            DefaultTasks(),
		BaseRates:        DefaultRateTable(),
		Signatures:       DefaultSignatures(),
		ManualOverrides:  Overrides{},
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Tasks = cloneTasks(d.Tasks)
	out.ManualOverrides = d.ManualOverrides.Clone()
	return out
}

// Totals prices the document.
func (d Document) Totals() DocumentTotals {
	return CalcDocumentTotals(d.Tasks, d.BaseRates, d.ManualOverrides)
}
