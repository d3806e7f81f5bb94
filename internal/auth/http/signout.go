package http

import (
	"net/http"

	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/pkg/authsdk"
	"github.com/powoftech/relic-chat/pkg/httpx"
	"github.com/powoftech/relic-chat/pkg/slogx"
)

type SignOutHandler struct {
	Sessions *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Sign-Out Endpoint
//	@Description	Revoke the current session and clear both credential cookies
//	@Description	Requires the refreshToken cookie; revoking a token with no live session still succeeds
//	@Tags			Authentication
//	@Produce		json
//	@Success		200	"session revoked, cookies cleared"
//	@Failure		401	{object}	authsdk.ErrorResponse	"refreshToken cookie missing"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/auth/signout [post].
func (h *SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	if err := h.Sessions.Revoke(ctx, cookie.Value); err != nil {
		writeServiceError(w, log, err)
		return
	}

	clearSessionCookies(w)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
}
