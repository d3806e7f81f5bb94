package http

import (
	"encoding/json"
	"net/http"

	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/pkg/authsdk"
	"github.com/powoftech/relic-chat/pkg/httpx"
	"github.com/powoftech/relic-chat/pkg/slogx"
)

type AvailabilityHandler struct {
	Directory *service.DirectoryService
}

// ServeHTTP godoc
//
//	@Summary		Availability Check Endpoint
//	@Description	Check whether an email and username are still available, for live signup form feedback
//	@Description	This endpoint deliberately reports per-field availability; signup itself reports collisions generically
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.AvailabilityRequest		true	"email and username to check"
//	@Success		200		{object}	authsdk.AvailabilityResponse	"emailAvailable, usernameAvailable"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/api/auth/attempt [post].
func (h *AvailabilityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" && req.Username == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	emailFree, usernameFree, err := h.Directory.Availability(ctx, req.Email, req.Username)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AvailabilityResponse{
		EmailAvailable:    emailFree,
		UsernameAvailable: usernameFree,
	})
}
