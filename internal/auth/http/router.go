package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/powoftech/relic-chat/internal/auth/otp"
	"github.com/powoftech/relic-chat/internal/auth/service"
	"github.com/powoftech/relic-chat/internal/auth/store"
	"github.com/powoftech/relic-chat/pkg/httpx"
	"github.com/powoftech/relic-chat/pkg/slogx"
	"github.com/powoftech/relic-chat/pkg/tokenx"

	_ "github.com/powoftech/relic-chat/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *tokenx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	devMode      bool

	store store.Store
	otp   otp.Store

	Directory    *service.DirectoryService
	Verification *service.VerificationService
	Sessions     *service.SessionService
}

func NewRouter(
	codec *tokenx.Codec,
	buildVersion string,
	devMode bool,
	st store.Store,
	otpStore otp.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		otp:          otpStore,
		logger:       logger,
		devMode:      devMode,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.RecoverMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()

	if r.devMode {
		r.Mux.Handle("/swagger/", httpSwagger.Handler())
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Relic Authentication Service API
//	@version		0.1.0
//	@description	Email/password authentication with a mandatory one-time-code
//	@description	verification step. Successful verification sets the accessToken
//	@description	and refreshToken cookies; authenticated endpoints read the
//	@description	accessToken cookie.
//
//	@contact.name	Relic Team
//	@contact.url	https://github.com/powoftech/relic-chat
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Wrap(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /attempt - availability probe for live form feedback
	availabilityHandler := &AvailabilityHandler{Directory: r.Directory}
	r.Mux.Handle("POST /api/auth/attempt",
		httpx.Wrap(availabilityHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /signup and /signin - strict rate limit by IP (credential endpoints)
	signUpHandler := &SignUpHandler{Verification: r.Verification}
	r.Mux.Handle("POST /api/auth/signup",
		httpx.Wrap(signUpHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	signInHandler := &SignInHandler{Verification: r.Verification}
	r.Mux.Handle("POST /api/auth/signin",
		httpx.Wrap(signInHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /verify - strict rate limit by IP (6-digit codes brute-force fast)
	verifyHandler := &VerifyHandler{Verification: r.Verification}
	r.Mux.Handle("POST /api/auth/verify",
		httpx.Wrap(verifyHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh and /signout - moderate rate limit by IP
	refreshHandler := &RefreshHandler{Sessions: r.Sessions}
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Wrap(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	signOutHandler := &SignOutHandler{Sessions: r.Sessions}
	r.Mux.Handle("POST /api/auth/signout",
		httpx.Wrap(signOutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /me - authenticated, lenient rate limit by subject
	meHandler := &MeHandler{Directory: r.Directory}
	r.Mux.Handle("GET /api/auth/me",
		httpx.Wrap(meHandler,
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Wrap(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Wrap(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.otp),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
