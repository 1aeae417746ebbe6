// Package config loads quotationdesk settings from an optional file and
// QUOTATIONDESK_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"quotationdesk/services"
)

// EnvPrefix prefixes every environment override, e.g. QUOTATIONDESK_LOG_LEVEL.
const EnvPrefix = "QUOTATIONDESK"

// Config defines application configuration.
type Config struct {
	Log        LogConfig           `mapstructure:"log"`
	Export     ExportConfig        `mapstructure:"export"`
	Print      PrintConfig         `mapstructure:"print"`
	Files      FilesConfig         `mapstructure:"files"`
	Letterhead services.Letterhead `mapstructure:"letterhead"`
	Rates      RatesConfig         `mapstructure:"rates"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// PrintConfig selects where POST /print sends documents: "pdf" writes into
// the export dir, "spool" runs Command with Args.
type PrintConfig struct {
	Target  string   `mapstructure:"target"`
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// Printer returns the printer for the configured target.
func (c Config) Printer() services.Printer {
	if c.Print.Target == PrintTargetSpool {
		return c.Spooler()
	}
	return services.PDFPrinter{Dir: c.Export.Dir}
}

// Spooler returns the OS spooler printer.
func (c Config) Spooler() services.SpoolPrinter {
	return services.SpoolPrinter{Command: c.Print.Command, Args: c.Print.Args}
}

// Print targets.
const (
	PrintTargetPDF   = "pdf"
	PrintTargetSpool = "spool"
)

type FilesConfig struct {
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// RatesConfig is the rate table of new documents.
type RatesConfig struct {
	TimeChargeRate2D   float64 `mapstructure:"time_charge_rate_2d"`
	TimeChargeRate3D   float64 `mapstructure:"time_charge_rate_3d"`
	OTHoursMultiplier  float64 `mapstructure:"ot_hours_multiplier"`
	SoftwareRate       float64 `mapstructure:"software_rate"`
	OverheadPercentage float64 `mapstructure:"overhead_percentage"`
}

// RateTable converts the configured rates, deriving the overtime rate.
func (r RatesConfig) RateTable() services.RateTable {
	rt := services.RateTable{
		TimeChargeRate2D:   r.TimeChargeRate2D,
		TimeChargeRate3D:   r.TimeChargeRate3D,
		OTHoursMultiplier:  r.OTHoursMultiplier,
		SoftwareRate:       r.SoftwareRate,
		OverheadPercentage: r.OverheadPercentage,
	}
	rt.OvertimeRate = rt.DerivedOvertimeRate()
	return rt
}

// Load reads configuration from the file named by QUOTATIONDESK_CONFIG, if any,
// then applies environment overrides.
func Load() (Config, error) {
	return LoadFile(os.Getenv(EnvPrefix + "_CONFIG"))
}

// LoadFile reads configuration from path (YAML, TOML or JSON by extension).
// An empty path uses defaults and environment variables only.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Rates.RateTable().Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid rates: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	lh := services.DefaultLetterhead()
	rates := services.DefaultRateTable()

	v.SetDefault("log.level", "info")
	v.SetDefault("export.dir", "exports")
	v.SetDefault("print.target", PrintTargetPDF)
	v.SetDefault("print.command", services.DefaultSpoolCommand)
	v.SetDefault("print.args", []string{})
	v.SetDefault("files.read_timeout", services.DefaultReadTimeout)

	v.SetDefault("letterhead.quotation_prefix", lh.QuotationPrefix)
	v.SetDefault("letterhead.file_prefix", lh.FilePrefix)
	v.SetDefault("letterhead.cc_line", lh.CCLine)
	v.SetDefault("letterhead.template_label", lh.TemplateLabel)
	v.SetDefault("letterhead.bank_title", lh.BankTitle)
	v.SetDefault("letterhead.bank_details", lh.BankDetails)
	v.SetDefault("letterhead.vat_tin", lh.VATTin)
	v.SetDefault("letterhead.terms", lh.Terms)

	v.SetDefault("rates.time_charge_rate_2d", rates.TimeChargeRate2D)
	v.SetDefault("rates.time_charge_rate_3d", rates.TimeChargeRate3D)
	v.SetDefault("rates.ot_hours_multiplier", rates.OTHoursMultiplier)
	v.SetDefault("rates.software_rate", rates.SoftwareRate)
	v.SetDefault("rates.overhead_percentage", rates.OverheadPercentage)
}
