package services

// BankDetail is one labelled line of the billing statement's bank block.
type BankDetail struct {
	Label string `mapstructure:"label" json:"label"`
	Value string `mapstructure:"value" json:"value"`
}

// Letterhead holds the fixed texts printed around the document data.
type Letterhead struct {
	QuotationPrefix string       `mapstructure:"quotation_prefix" json:"quotationPrefix"`
	FilePrefix      string       `mapstructure:"file_prefix" json:"filePrefix"`
	CCLine          string       `mapstructure:"cc_line" json:"ccLine"`
	TemplateLabel   string       `mapstructure:"template_label" json:"templateLabel"`
	BankTitle       string       `mapstructure:"bank_title" json:"bankTitle"`
	BankDetails     []BankDetail `mapstructure:"bank_details" json:"bankDetails"`
	VATTin          string       `mapstructure:"vat_tin" json:"vatTin"`
	Terms           []string     `mapstructure:"terms" json:"terms"`
}

// DefaultLetterhead returns the built-in letterhead.
func DefaultLetterhead() Letterhead {
	return Letterhead{
		QuotationPrefix: "KMTE",
		FilePrefix:      "KMTI",
		CCLine:          "cc: admin/acctg/Engineering",
		TemplateLabel:   "Admin Quotation Template v3.0-2025",
		BankTitle:       "BANK DETAILS (YEN):",
		BankDetails: []BankDetail{
			{Label: "BANK NAME:", Value: "MUFG COMMERCIAL BANK CORPORATION"},
			{Label: "SAVINGS ACCOUNT NAME:", Value: "KUSAKABE & MAENO TECH INC"},
			{Label: "ACCOUNT NUMBER:", Value: "1234-5678-9012"},
			{Label: "SWIFT CODE:", Value: "BOTKJPJT"},
			{Label: "BRANCH CODE:", Value: "123"},
		},
		VATTin: "VAT REG. TIN: 006-893-360-000",
		Terms: []string{
			"Upon receipt of this quotation sheet, kindly send us one copy with your signature.",
			"The price will be changed without prior notice due to frequent changes of conversion rate.",
		},
	}
}
