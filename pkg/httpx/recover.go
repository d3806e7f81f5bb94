package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/powoftech/relic-chat/pkg/slogx"
)

// RecoverMiddleware converts handler panics into an opaque 500. The
// panic value and stack are logged server-side and never leak into the
// response body.
func RecoverMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slogx.FromContext(r.Context()).Error("handler panic",
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"server_error","error_description":"unexpected error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
