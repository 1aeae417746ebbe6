package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"quotationdesk/services"
)

// RenderCmd renders a saved document to PDF or sends it to the spooler.
type RenderCmd struct {
	mode       string
	out        string
	spool      bool
	letterhead services.Letterhead
	spooler    services.Printer
}

// NewRenderCmd returns the "render" command. spooler is used with --spool.
func NewRenderCmd(lh services.Letterhead, spooler services.Printer) *cobra.Command {
	rc := &RenderCmd{letterhead: lh, spooler: spooler}
	cmd := &cobra.Command{
		Use:   "render <document.json>",
		Short: "Render a quotation or billing statement to PDF",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.mode, "mode", "quotation", "Print mode (quotation or billing)")
	cmd.Flags().StringVar(&rc.out, "out", "", "Output PDF path (defaults to the document file name)")
	cmd.Flags().BoolVar(&rc.spool, "spool", false, "Send to the print spooler instead of writing a file")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, args []string) error {
	mode, err := services.ParsePrintMode(rc.mode)
	if err != nil {
		return err
	}

	ed, err := loadEditor(args[0], rc.letterhead)
	if err != nil {
		return err
	}
	layout := ed.Layout(mode)
	req := ed.PrintRequest(mode)

	printer := rc.spooler
	if !rc.spool {
		dir := "."
		if rc.out != "" {
			dir, req.FileName = filepath.Split(rc.out)
		}
		printer = services.PDFPrinter{Dir: dir}
	}
	if printer == nil {
		return fmt.Errorf("no print spooler configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := printer.Print(ctx, layout, req)
	if err != nil {
		return fmt.Errorf("failed to print: %w", err)
	}

	if result.Path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pages, %s layout)\n", result.Path, result.Pages, layout.Kind)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "sent %d pages to %s\n", result.Pages, result.Via)
	}
	return nil
}
