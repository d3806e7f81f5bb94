package http

import (
	"encoding/json"
	"net/http"

	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/pkg/authsdk"
	"github.com/powoftech/relic-chat/pkg/httpx"
	"github.com/powoftech/relic-chat/pkg/slogx"
)

type VerifyHandler struct {
	Verification *service.VerificationService
}

// ServeHTTP godoc
//
//	@Summary		Verification Endpoint
//	@Description	Exchange a verification token and mailed 6-digit code for a session
//	@Description	On success the accessToken and refreshToken cookies are set; the code is single-use and a replay fails
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			token	query		string					true	"verification token from signup or signin"
//	@Param			request	body		authsdk.VerifyRequest	true	"otp"
//	@Success		200		"session established, cookies set"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid_code or invalid_token"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/auth/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := r.URL.Query().Get("token")

	var req authsdk.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.Verification.Confirm(ctx, token, req.OTP)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	setSessionCookies(w, pair)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
}
