package http

import (
	"encoding/json"
	"net/http"

	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/pkg/authsdk"
	"github.com/powoftech/relic-chat/pkg/httpx"
	"github.com/powoftech/relic-chat/pkg/slogx"
)

type SignInHandler struct {
	Verification *service.VerificationService
}

// ServeHTTP godoc
//
//	@Summary		Sign-In Endpoint
//	@Description	Verify email and password and start a verification attempt
//	@Description	Unknown account and wrong password are indistinguishable from the outside
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignInRequest	true	"email and password"
//	@Success		200		{object}	authsdk.AttemptResponse	"verificationToken"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid credentials"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/auth/signin [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	attempt, err := h.Verification.BeginSignin(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AttemptResponse{
		VerificationToken: attempt.Token,
	})
}
