package http

import (
	"net/http"

	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/pkg/authsdk"
	"github.com/powoftech/relic-chat/pkg/httpx"
	"github.com/powoftech/relic-chat/pkg/slogx"
)

type RefreshHandler struct {
	Sessions *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Session Refresh Endpoint
//	@Description	Rotate the session using the refreshToken cookie
//	@Description	The presented refresh token is single-use; both cookies are replaced on success
//	@Tags			Authentication
//	@Produce		json
//	@Success		200	"session rotated, cookies replaced"
//	@Failure		401	{object}	authsdk.ErrorResponse	"missing, unknown, expired or already-used refresh token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	pair, err := h.Sessions.Refresh(ctx, cookie.Value)
	if err != nil {
		// A rejected token is dead either way; stop the client
		// presenting it again.
		clearSessionCookies(w)
		writeServiceError(w, log, err)
		return
	}

	setSessionCookies(w, pair)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
}
