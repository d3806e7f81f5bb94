package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/pkg/authsdk"
)

// writeServiceError maps service-layer failures onto the wire error
// taxonomy. Policy failures keep their specific code; anything
// unrecognized is infrastructure, logged in full and served opaque.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		// Reads as "username must be at least 2 characters".
		authsdk.NewValidationError(verr.Field + " " + verr.Reason).WriteError(w)
	case errors.Is(err, service.ErrDuplicateAccount):
		authsdk.ErrDuplicateAccount.WriteError(w)
	case errors.Is(err, service.ErrUnauthorized):
		authsdk.ErrUnauthorized.WriteError(w)
	case errors.Is(err, service.ErrInvalidCode):
		authsdk.ErrInvalidCode.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		authsdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrInvalidRefresh):
		authsdk.ErrUnauthorized.WriteError(w)
	default:
		log.Error("request failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}
