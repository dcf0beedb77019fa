package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/hearthhq/hearth/api/home" // Swagger docs
	"github.com/hearthhq/hearth/internal/home/relay"
	"github.com/hearthhq/hearth/internal/home/service"
	"github.com/hearthhq/hearth/internal/home/store"
	"github.com/hearthhq/hearth/pkg/httpx"
	"github.com/hearthhq/hearth/pkg/jwtx"
	"github.com/hearthhq/hearth/pkg/metricsx"
	"github.com/hearthhq/hearth/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	metrics      *metricsx.Metrics

	TokenService    *service.TokenService
	UserService     *service.UserService
	BuildingService *service.BuildingService
	RoomService     *service.RoomService
	Relay           *relay.Relay
	RateLimits      httpx.RateLimitProfiles
	// TrustProxyHeaders keys IP limits on X-Forwarded-For/X-Real-IP.
	TrustProxyHeaders bool
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	metrics *metricsx.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		metrics:      metrics,
		RateLimits:   httpx.DefaultRateLimitProfiles(),
	}

	// Metrics wraps the mux directly so the matched pattern is visible.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.metrics.Middleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerBuildings()
	r.registerRooms()
	r.registerRelay()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Hearth API
//	@version					0.1.0
//	@description				Smart-home core: accounts, buildings, invitations and the camera frame relay.
//	@description
//	@description				Access tokens are HS256 JWTs sent as "Authorization: Bearer {token}".
//	@description				The relay endpoints /send and /receive are WebSocket upgrades whose first message is a JSON handshake.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authenticated(h http.Handler, limit httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{
		Authenticate(r.TokenService),
		httpx.RateLimitByUser(limit, r.TrustProxyHeaders),
	}
	return httpx.Chain(h, append(mws, extra...)...)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}

	// Credential endpoints - strict rate limit by IP (brute force)
	r.Mux.Handle("POST /users/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.RateLimits.Strict, r.TrustProxyHeaders),
		),
	)
	r.Mux.Handle("POST /users/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.RateLimits.Strict, r.TrustProxyHeaders),
		),
	)

	r.Mux.Handle("GET /users/refresh", r.authenticated(http.HandlerFunc(h.HandleRefresh), r.RateLimits.Moderate))
	r.Mux.Handle("GET /users/me", r.authenticated(http.HandlerFunc(h.HandleMe), r.RateLimits.Lenient))
}

func (r *Router) registerBuildings() {
	h := &BuildingsHandler{BuildingService: r.BuildingService}

	r.Mux.Handle("POST /buildings", r.authenticated(http.HandlerFunc(h.HandleCreate), r.RateLimits.Moderate))
	r.Mux.Handle("GET /buildings", r.authenticated(http.HandlerFunc(h.HandleList), r.RateLimits.Lenient))
	r.Mux.Handle("POST /buildings/{id}/invitations",
		r.authenticated(http.HandlerFunc(h.HandleInvite), r.RateLimits.Moderate,
			RequireBuildingMember("id"),
		),
	)

	// Unauthenticated: the invitation itself is the credential
	r.Mux.Handle("POST /invitations/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAcceptInvitation),
			httpx.RateLimitByIP(r.RateLimits.Strict, r.TrustProxyHeaders),
		),
	)
}

func (r *Router) registerRooms() {
	h := &RoomsHandler{RoomService: r.RoomService}
	member := RequireBuildingMember("id")
	read := func(fn http.HandlerFunc) http.Handler {
		return r.authenticated(fn, r.RateLimits.Lenient, member)
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return r.authenticated(fn, r.RateLimits.Moderate, member)
	}

	const room = "/buildings/{id}/rooms/{roomId}"
	const device = room + "/devices/{deviceId}"

	r.Mux.Handle("POST /buildings/{id}/rooms", write(h.HandleCreateRoom))
	r.Mux.Handle("GET /buildings/{id}/rooms", read(h.HandleListRooms))
	r.Mux.Handle("GET "+room, read(h.HandleGetRoom))
	r.Mux.Handle("POST "+room+"/devices", write(h.HandleCreateDevice))
	r.Mux.Handle("GET "+room+"/devices", read(h.HandleListDevices))
	r.Mux.Handle("GET "+device, read(h.HandleGetDevice))
	r.Mux.Handle("POST "+device+"/readings", write(h.HandleRecordReading))
	r.Mux.Handle("GET "+device+"/readings", read(h.HandleListReadings))
	r.Mux.Handle("GET "+device+"/readings/latest", read(h.HandleLatestReading))
}

func (r *Router) registerRelay() {
	// Credentials travel in the handshake, so only connection attempts are limited.
	r.Mux.Handle("GET /send",
		httpx.Chain(http.HandlerFunc(r.Relay.ServeProducer),
			httpx.RateLimitByIP(r.RateLimits.Lenient, r.TrustProxyHeaders),
		),
	)
	r.Mux.Handle("GET /receive",
		httpx.Chain(http.HandlerFunc(r.Relay.ServeConsumer),
			httpx.RateLimitByIP(r.RateLimits.Lenient, r.TrustProxyHeaders),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
