package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quotationdesk/services"
)

// ExportExcelCmd writes the cost breakdown workbook of a saved document.
type ExportExcelCmd struct {
	out        string
	letterhead services.Letterhead
}

// NewExportExcelCmd returns the "export-excel" command.
func NewExportExcelCmd(lh services.Letterhead) *cobra.Command {
	ec := &ExportExcelCmd{letterhead: lh}
	cmd := &cobra.Command{
		Use:   "export-excel <document.json>",
		Short: "Export the cost breakdown of a document to Excel",
		Args:  cobra.ExactArgs(1),
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.out, "out", "", "Output .xlsx path (defaults to <prefix>_Breakdown_<number>.xlsx)")

	return cmd
}

func (ec *ExportExcelCmd) run(cmd *cobra.Command, args []string) error {
	ed, err := loadEditor(args[0], ec.letterhead)
	if err != nil {
		return err
	}
	doc := ed.Document()

	data, err := services.GenerateExcel(doc)
	if err != nil {
		return fmt.Errorf("failed to generate Excel: %w", err)
	}

	out := ec.out
	if out == "" {
		out = services.BreakdownFileName(doc.QuotationDetails, ec.letterhead.FilePrefix)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}
