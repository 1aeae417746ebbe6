package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PrintResult describes a finished print job.
type PrintResult struct {
	Path  string `json:"path,omitempty"`
	Pages int    `json:"pages"`
	Via   string `json:"via"`
}

// Printer hands a rendered document to an output device.
type Printer interface {
	Print(ctx context.Context, layout PrintLayout, req PrintRequest) (PrintResult, error)
}

// PDFPrinter writes the document as a PDF file into Dir.
type PDFPrinter struct {
	Dir string
}

// Print renders the layout and writes it to Dir/req.FileName.
func (p PDFPrinter) Print(ctx context.Context, layout PrintLayout, req PrintRequest) (PrintResult, error) {
	if err := ctx.Err(); err != nil {
		return PrintResult{}, err
	}
	data, err := GeneratePDF(layout, req)
	if err != nil {
		return PrintResult{}, err
	}
	pages, err := CountPDFPages(data)
	if err != nil {
		return PrintResult{}, err
	}

	dir := p.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return PrintResult{}, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, req.FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return PrintResult{}, fmt.Errorf("write pdf: %w", err)
	}
	return PrintResult{Path: path, Pages: pages, Via: "pdf"}, nil
}

// DefaultSpoolCommand is the OS print spooler command.
const DefaultSpoolCommand = "lp"

// SpoolPrinter renders to a temporary PDF and submits it to the OS print
// spooler. Command defaults to "lp"; Args go before the file name.
type SpoolPrinter struct {
	Command string
	Args    []string
}

// Print renders the layout and runs the spooler command on it.
func (p SpoolPrinter) Print(ctx context.Context, layout PrintLayout, req PrintRequest) (PrintResult, error) {
	data, err := GeneratePDF(layout, req)
	if err != nil {
		return PrintResult{}, err
	}
	pages, err := CountPDFPages(data)
	if err != nil {
		return PrintResult{}, err
	}

	tmp, err := os.CreateTemp("", "quotation-*.pdf")
	if err != nil {
		return PrintResult{}, fmt.Errorf("create temp pdf: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return PrintResult{}, fmt.Errorf("write temp pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return PrintResult{}, fmt.Errorf("close temp pdf: %w", err)
	}

	command := p.Command
	if command == "" {
		command = DefaultSpoolCommand
	}
	args := append(append([]string{}, p.Args...), tmp.Name())
	out, err := exec.CommandContext(ctx, command, args...).CombinedOutput()
	if err != nil {
		return PrintResult{}, fmt.Errorf("%s: %w: %s", command, err, strings.TrimSpace(string(out)))
	}
	return PrintResult{Pages: pages, Via: command}, nil
}

var (
	pdfConfOnce sync.Once
	pdfConf     *model.Configuration
)

// pdfConfiguration is pdfcpu's built-in configuration. The user config dir is
// never touched.
func pdfConfiguration() *model.Configuration {
	pdfConfOnce.Do(func() {
		api.DisableConfigDir()
		pdfConf = model.NewDefaultConfiguration()
	})
	return pdfConf
}

// CountPDFPages reads a PDF and returns its page count.
func CountPDFPages(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), pdfConfiguration())
	if err != nil {
		return 0, fmt.Errorf("count pdf pages: %w", err)
	}
	return n, nil
}
