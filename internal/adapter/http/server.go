package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elaa0505/AzuraCast/internal/adapter/http/middleware"
	"github.com/elaa0505/AzuraCast/internal/adapter/http/ratelimit"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
	"github.com/elaa0505/AzuraCast/internal/service"
)

type ServerOptions struct {
	BehindProxy bool
	// RateLimit is the sustained number of batch requests per second and
	// station; zero disables limiting.
	RateLimit      float64
	RateBurst      int
	SerializeBatch bool
}

type Server struct {
	mux         *http.ServeMux
	handlers    *Handlers
	sseHandler  *SSEHandler
	auth        Authenticator
	failures    *ratelimit.FailureLimiter
	behindProxy bool
	logger      *log.Logger
}

func NewServer(
	stations StationDirectory,
	batch BatchService,
	reconciler ReconcileService,
	eventBus *service.EventBus,
	auth Authenticator,
	opts ServerOptions,
	l *log.Logger,
) *Server {
	if l == nil {
		l = logger.Default()
	}

	var locks *ratelimit.TenantLock
	if opts.SerializeBatch {
		locks = ratelimit.NewTenantLock()
	}

	handlers := NewHandlers(stations, batch, reconciler, ratelimit.NewTenantLimiter(opts.RateLimit, opts.RateBurst), locks, l)

	s := &Server{
		mux:         http.NewServeMux(),
		handlers:    handlers,
		sseHandler:  NewSSEHandler(handlers, eventBus),
		auth:        auth,
		failures:    ratelimit.NewFailureLimiter(5, 15*time.Minute, 30*time.Minute),
		behindProxy: opts.BehindProxy,
		logger:      l,
	}

	s.registerRoutes()

	return s
}

func (s *Server) protected(next http.HandlerFunc) http.HandlerFunc {
	return AuthMiddleware(s.auth, s.failures, s.behindProxy, next)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handlers.Health())

	s.mux.HandleFunc("GET /api/stations", s.protected(s.handlers.Stations()))
	s.mux.HandleFunc("POST /api/stations/{station}/files/batch", s.protected(s.handlers.Batch()))
	s.mux.HandleFunc("GET /api/stations/{station}/files/verify", s.protected(s.handlers.Verify()))
	s.mux.HandleFunc("GET /api/stations/{station}/events", s.protected(s.sseHandler.Events()))
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.failures.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.RequestLogger(s.logger, middleware.SecurityHeaders(s.mux)).ServeHTTP(w, r)
}
