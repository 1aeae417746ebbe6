package handlers

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"
)

// Toast types understood by the editor front end.
const (
	toastSuccess = "success"
	toastInfo    = "info"
	toastError   = "error"
)

// SetToast adds a showToast event to the HX-Trigger response header. Events
// already in the header are kept; a header that is not a JSON object is
// replaced.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			log.Warn().Err(err).Str("trigger", existing).Msg("toast: replacing non-JSON HX-Trigger")
			events = map[string]any{}
		}
	}
	events["showToast"] = map[string]string{"message": message, "type": toastType}

	data, err := json.Marshal(events)
	if err != nil {
		log.Error().Err(err).Msg("toast: failed to marshal HX-Trigger")
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}

// ErrorToast answers with statusCode and an error toast. HX-Reswap: none keeps
// HTMX from swapping the message text into the page.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, toastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
