package handlers

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs every request with its duration. Failed requests log
// at warn level with the error.
func RequestLogger() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()

		var ev *zerolog.Event
		if err != nil {
			ev = log.Warn().Err(err)
		} else {
			ev = log.Debug()
		}
		ev.Str("method", e.Request.Method).
			Str("path", e.Request.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}
