package services

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatYen formats an amount in yen with thousands separators and at most
// two decimal places (e.g., ¥1,234,567.5).
func FormatYen(amount float64) string {
	return "¥" + humanize.CommafWithDigits(math.Round(amount*100)/100, 2)
}

// FormatHours renders an hours and minutes pair the way the printed table shows
// it: "5h", "5h 30m", or "" when both are zero. Minutes beyond 59 carry into
// hours.
func FormatHours(hours, minutes float64) string {
	carry := math.Floor(minutes / 60)
	hours += carry
	minutes -= carry * 60

	if hours+minutes/60 == 0 {
		return ""
	}
	if minutes > 0 {
		return fmt.Sprintf("%sh %sm", formatQuantity(hours), formatQuantity(minutes))
	}
	return formatQuantity(hours) + "h"
}

// FormatHoursDecimal renders a decimal hour count, e.g. 2.5 -> "2.5".
func FormatHoursDecimal(hours float64) string {
	return formatQuantity(math.Round(hours*100) / 100)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
