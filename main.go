package main

import (
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quotationdesk/collections"
	"quotationdesk/commands"
	"quotationdesk/config"
	"quotationdesk/handlers"
	"quotationdesk/services"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warn().Str("level", cfg.Log.Level).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	app := pocketbase.New()

	ed := services.NewEditor(
		services.WithLetterhead(cfg.Letterhead),
		services.WithRates(cfg.Rates.RateTable()),
		services.WithReadTimeout(cfg.Files.ReadTimeout),
	)

	// Create collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		handlers.RegisterRoutes(se, app, ed, cfg.Printer())
		return se.Next()
	})

	app.RootCmd.AddCommand(
		commands.NewRenderCmd(cfg.Letterhead, cfg.Spooler()),
		commands.NewExportExcelCmd(cfg.Letterhead),
		commands.NewTotalsCmd(cfg.Letterhead),
	)

	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
