package handlers

import (
	"errors"
	"io/fs"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"quotationdesk/services"
)

// statusFor maps editor errors to HTTP status codes.
func statusFor(err error) int {
	var verrs validation.Errors
	switch {
	case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, services.ErrMainTaskLimit):
		return http.StatusConflict
	case errors.Is(err, services.ErrNoParentSelected),
		errors.Is(err, services.ErrNotMainTask),
		errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrReadOnlyField),
		errors.Is(err, services.ErrNegativeValue),
		errors.Is(err, services.ErrNoFilePath),
		errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrEmptyFile),
		errors.Is(err, services.ErrInvalidJSON),
		errors.Is(err, services.ErrNotObject),
		errors.Is(err, services.ErrOrphanSubTask):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrReadTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// serviceError logs err under component and answers with an error toast. Server
// errors get a generic message; client errors carry the error text.
func serviceError(e *core.RequestEvent, component string, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", e.Request.URL.Path).Msg(component + ": request failed")
		return ErrorToast(e, status, "Something went wrong. Please try again.")
	}
	log.Warn().Err(err).Str("path", e.Request.URL.Path).Msg(component + ": rejected")
	return ErrorToast(e, status, err.Error())
}
