package services

import (
	"fmt"
	"time"
)

// formatQuotationNumber constructs the quotation number from components.
// Format: {prefix}-{YYMMDD}-{sequence}-R{revision}
func formatQuotationNumber(prefix, datePart string, sequence, revision int) string {
	return fmt.Sprintf("%s-%s-%03d-R%02d", prefix, datePart, sequence, revision)
}

// FormatQuotationNumber creates the quotation number for a date.
// - prefix: letterhead prefix, e.g. "KMTE"
// - date: issue date, printed as YYMMDD
// - sequence: 3-digit zero-padded quotation of the day
// - revision: 2-digit zero-padded revision
func FormatQuotationNumber(prefix string, date time.Time, sequence, revision int) string {
	return formatQuotationNumber(prefix, date.Format("060102"), sequence, revision)
}

// QuotationNumberForDate returns the number a quotation dated dateStr gets.
// dateStr uses DateLayout; an unparseable date falls back to now.
func QuotationNumberForDate(prefix, dateStr string, now time.Time) string {
	d, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		d = now
	}
	return FormatQuotationNumber(prefix, d, 1, 1)
}
