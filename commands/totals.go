package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quotationdesk/services"
)

// TotalsCmd prints the priced task table of a saved document.
type TotalsCmd struct {
	letterhead services.Letterhead
}

// NewTotalsCmd returns the "totals" command.
func NewTotalsCmd(lh services.Letterhead) *cobra.Command {
	tc := &TotalsCmd{letterhead: lh}
	return &cobra.Command{
		Use:   "totals <document.json>",
		Short: "Print the per-task prices and grand total of a document",
		Args:  cobra.ExactArgs(1),
		RunE:  tc.run,
	}
}

func (tc *TotalsCmd) run(cmd *cobra.Command, args []string) error {
	ed, err := loadEditor(args[0], tc.letterhead)
	if err != nil {
		return err
	}
	writeTotals(cmd.OutOrStdout(), ed.Document())
	return nil
}

var (
	headingColor  = color.New(color.Bold)
	overrideColor = color.New(color.FgYellow)
	totalColor    = color.New(color.FgGreen, color.Bold)
)

// writeTotals prints one line per main task followed by the summary.
// Overridden lines are marked with "*".
func writeTotals(w io.Writer, doc services.Document) {
	totals := doc.Totals()

	headingColor.Fprintf(w, "%s  %s\n", doc.QuotationDetails.QuotationNo, doc.ClientInfo.Company)
	headingColor.Fprintf(w, "%-4s %-16s %-32s %10s %18s\n", "NO.", "REFERENCE NO.", "DESCRIPTION", "HOURS", "TOTAL")

	for i, main := range services.MainTasksOf(doc.Tasks) {
		b, _ := totals.Line(main.ID)
		line := fmt.Sprintf("%-4s %-16s %-32s %10s %18s",
			strconv.Itoa(i+1), clip(main.ReferenceNumber, 16), clip(main.Description, 32),
			services.FormatHoursDecimal(b.AggregatedHours), services.FormatYen(b.Total))
		if b.Overridden {
			overrideColor.Fprintln(w, line+" *")
			continue
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "%-64s %18s\n", "Subtotal", services.FormatYen(totals.Subtotal))
	fmt.Fprintf(w, "%-64s %18s\n", "Overhead", services.FormatYen(totals.OverheadTotal))
	totalColor.Fprintf(w, "%-64s %18s\n", services.TotalAmountLabel, services.FormatYen(totals.GrandTotal))
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
