package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// writeServiceError answers with the response for a known service error and
// a generic 500 for anything else. Unknown errors are logged, never echoed.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidBaseURL):
		accountsdk.ErrInvalidRequest.WithMessage(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		accountsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		accountsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrEmailNotVerified):
		accountsdk.ErrEmailNotVerified.WriteError(w)
	case errors.Is(err, service.ErrInvalidCode):
		accountsdk.ErrInvalidCode.WriteError(w)
	case errors.Is(err, service.ErrAccountNotFound):
		accountsdk.ErrAccountNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("route", r.Pattern),
			slog.Any("error", err),
		)
		accountsdk.ErrServerError.WriteError(w)
	}
}

// writeDecodeError answers a request whose JSON body could not be read.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Warn("invalid request body", slog.Any("error", err))
	accountsdk.ErrInvalidRequest.WithMessage("invalid JSON in request body").WriteError(w)
}
