package http

import (
	"encoding/json"
	"net/http"

	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/pkg/authsdk"
	"github.com/powoftech/relic-chat/pkg/httpx"
	"github.com/powoftech/relic-chat/pkg/slogx"
)

type SignUpHandler struct {
	Verification *service.VerificationService
}

// ServeHTTP godoc
//
//	@Summary		Sign-Up Endpoint
//	@Description	Create a new account and start a verification attempt
//	@Description	A 6-digit code is mailed to the given address; relay the returned verificationToken plus that code to the verify endpoint
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignUpRequest	true	"email, username, displayName, password"
//	@Success		200		{object}	authsdk.AttemptResponse	"verificationToken"
//	@Failure		400		{object}	authsdk.ErrorResponse	"validation failure or duplicate account"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/auth/signup [post].
func (h *SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	attempt, err := h.Verification.BeginSignup(ctx, req.Email, req.Username, req.DisplayName, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AttemptResponse{
		VerificationToken: attempt.Token,
	})
}
