package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/service"
	"github.com/vibespace/vibespace/internal/gateway/store"
	"github.com/vibespace/vibespace/pkg/httpx"
	"github.com/vibespace/vibespace/pkg/slogx"

	_ "github.com/vibespace/vibespace/api/gateway" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	baseURL      string
	accessTTL    time.Duration
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	TokenService        *service.TokenService
	SessionService      *service.SessionService
	PasskeyService      *service.PasskeyService
	RegistrationService *service.RegistrationService
}

func NewRouter(
	buildVersion, baseURL string,
	accessTTL time.Duration,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		baseURL:      baseURL,
		accessTTL:    accessTTL,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		httpx.Recover,
		httpx.SecurityHeaders,
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCeremonies()
	r.registerSessions()
	r.registerPages()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Vibespace Auth Gateway API
//	@version		0.1.0
//	@description	Stateless passkey authentication gateway for a single-operator deployment.
//	@description
//	@description				Sessions are HMAC-signed tokens carried in a cookie or bearer header; WebAuthn
//	@description				ceremony state travels in short-lived signed state tokens instead of server memory.
//
//	@contact.name				Vibespace
//	@contact.url				https://github.com/vibespace/vibespace
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerCeremonies() {
	// Ceremony endpoints carry strict rate limits: they do cryptography and
	// are the unauthenticated surface of the service.
	r.Mux.Handle("POST /auth/passkey/login/options",
		httpx.Chain(&LoginOptionsHandler{PasskeyService: r.PasskeyService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /auth/passkey/login/verify",
		httpx.Chain(&LoginVerifyHandler{PasskeyService: r.PasskeyService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/passkey/register/options",
		httpx.Chain(&RegisterOptionsHandler{PasskeyService: r.PasskeyService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /auth/passkey/register/verify",
		httpx.Chain(&RegisterVerifyHandler{PasskeyService: r.PasskeyService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSessions() {
	r.Mux.Handle("GET /auth/token",
		httpx.Chain(&TokenHandler{TokenService: r.TokenService, AccessTTL: r.accessTTL},
			RequireInteractiveSession(r.SessionService),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /auth/logout",
		httpx.Chain(LogoutHandler(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /auth/registration-tokens",
		httpx.Chain(&RegistrationTokenMintHandler{
			RegistrationService: r.RegistrationService,
			BaseURL:             r.baseURL,
		},
			RequireAPISession(r.SessionService),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPages() {
	r.Mux.Handle("GET /auth/login",
		httpx.Chain(LoginPageHandler(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /auth/register/{token}",
		httpx.Chain(&RegisterPageHandler{RegistrationService: r.RegistrationService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
