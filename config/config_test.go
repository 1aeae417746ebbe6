package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotationdesk/services"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, "lp", cfg.Print.Command)
	assert.Equal(t, PrintTargetPDF, cfg.Print.Target)
	assert.Equal(t, 15*time.Second, cfg.Files.ReadTimeout)
	assert.Equal(t, "KMTE", cfg.Letterhead.QuotationPrefix)
	assert.Equal(t, "KMTI", cfg.Letterhead.FilePrefix)
	assert.Len(t, cfg.Letterhead.BankDetails, 5)
	assert.Len(t, cfg.Letterhead.Terms, 2)
	assert.Equal(t, 1.3, cfg.Rates.OTHoursMultiplier)
	assert.Equal(t, 20.0, cfg.Rates.OverheadPercentage)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("QUOTATIONDESK_LOG_LEVEL", "debug")
	t.Setenv("QUOTATIONDESK_LETTERHEAD_QUOTATION_PREFIX", "ACME")
	t.Setenv("QUOTATIONDESK_FILES_READ_TIMEOUT", "3s")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "ACME", cfg.Letterhead.QuotationPrefix)
	assert.Equal(t, 3*time.Second, cfg.Files.ReadTimeout)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotationdesk.yaml")
	content := `
export:
  dir: /tmp/quotes
letterhead:
  quotation_prefix: KMTX
rates:
  time_charge_rate_3d: 2500
  ot_hours_multiplier: 1.25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/quotes", cfg.Export.Dir)
	assert.Equal(t, "KMTX", cfg.Letterhead.QuotationPrefix)
	assert.Equal(t, "KMTI", cfg.Letterhead.FilePrefix, "unset keys keep defaults")

	rates := cfg.Rates.RateTable()
	assert.Equal(t, 2500.0, rates.TimeChargeRate3D)
	assert.Equal(t, 3125.0, rates.OvertimeRate)
	assert.Equal(t, 20.0, rates.OverheadPercentage)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("negative_rate", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rates:\n  software_rate: -5\n"), 0o644))
		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}

func TestConfig_Printer(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	pdf, ok := cfg.Printer().(services.PDFPrinter)
	require.True(t, ok, "pdf target gives a PDFPrinter")
	assert.Equal(t, "exports", pdf.Dir)

	cfg.Print.Target = PrintTargetSpool
	cfg.Print.Args = []string{"-d", "office"}
	spool, ok := cfg.Printer().(services.SpoolPrinter)
	require.True(t, ok, "spool target gives a SpoolPrinter")
	assert.Equal(t, "lp", spool.Command)
	assert.Equal(t, []string{"-d", "office"}, spool.Args)
}
