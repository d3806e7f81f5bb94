package http

import (
	"net/http"
	"time"

	"github.com/powoftech/relic-chat/internal/auth/domain"
	"github.com/powoftech/relic-chat/pkg/httpx"
)

// RefreshTokenCookie carries the opaque refresh token. The access token
// cookie name lives in httpx because the authn middleware reads it.
const RefreshTokenCookie = "refreshToken"

// setSessionCookies delivers a token pair as HttpOnly cookies. Max-Age
// tracks each token's own expiry, so the browser drops them in step
// with the server.
func setSessionCookies(w http.ResponseWriter, pair *domain.TokenPair) {
	now := time.Now()

	http.SetCookie(w, &http.Cookie{
		Name:     httpx.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(pair.AccessExpiresAt.Sub(now).Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(pair.RefreshExpiresAt.Sub(now).Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearSessionCookies expires both credential cookies.
func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{httpx.AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}
}
