package http

import (
	"errors"
	"net/http"

	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/internal/auth/store"
	"github.com/powoftech/relic-chat/pkg/authsdk"
	"github.com/powoftech/relic-chat/pkg/httpx"
	"github.com/powoftech/relic-chat/pkg/slogx"
)

type MeHandler struct {
	Directory *service.DirectoryService
}

// ServeHTTP godoc
//
//	@Summary		Current User Endpoint
//	@Description	Return the signed-in user's profile, resolved from the accessToken cookie
//	@Tags			Authentication
//	@Produce		json
//	@Success		200	{object}	authsdk.ProfileResponse	"id, username, displayName, email, avatarUrl"
//	@Failure		401	{object}	authsdk.ErrorResponse	"missing or invalid access token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// The authn middleware put the token subject (normalized email)
	// into the context.
	subject := httpx.SubjectFromContext(ctx)
	if subject == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	user, err := h.Directory.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Valid token for a deleted account.
			authsdk.ErrUnauthorized.WriteError(w)
			return
		}
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ProfileResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		AvatarURL:   user.AvatarURL,
	})
}
