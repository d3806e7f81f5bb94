package httpx

import (
	"net/http"

	"github.com/powoftech/relic-chat/pkg/slogx"
	"github.com/powoftech/relic-chat/pkg/tokenx"
)

// AccessTokenCookie is the cookie carrying the short-lived access token.
const AccessTokenCookie = "accessToken"

// AuthnMiddleware authenticates requests from the access-token cookie and
// injects the subject into the request context. Requests without a valid,
// unexpired access token get a 401 with no detail about why.
func AuthnMiddleware(codec *tokenx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				writeUnauthorized(w)
				return
			}

			subject, err := codec.DecodeSubject(cookie.Value, tokenx.PurposeAccess)
			if err != nil {
				log.Warn("access token rejected", "err", err)
				writeUnauthorized(w)
				return
			}

			ctx = ContextWithSubject(ctx, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "unauthorized",
		"error_description": "authentication required",
	})
}
