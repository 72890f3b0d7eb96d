package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/soldal/booking-platform/internal/api/handler"
	mw "github.com/soldal/booking-platform/internal/api/middleware"
	"github.com/soldal/booking-platform/internal/config"
	"github.com/soldal/booking-platform/internal/core"
	"github.com/soldal/booking-platform/internal/routing"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	corePool *pgxpool.Pool
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, coreDB *pgxpool.Pool, cache core.TenantCache, checker core.CNAMEChecker, cfg *config.Config) *Server {
	services := core.NewServices(coreDB, cache, checker, cfg.PlatformDomain, cfg.VerificationTTL)

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		corePool: coreDB,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(routing.NewEdgeRouter(s.cfg).Middleware)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	health := handler.NewHealth(s.corePool)
	s.router.Get("/api/health", health.Get)
	s.router.Head("/api/health", health.Head)

	routeInfo := handler.NewRouteInfo()
	s.router.Get("/_internal/route-info", routeInfo.Get)

	tenant := handler.NewTenant(s.services)
	session := handler.NewSession(s.services)
	s.router.Group(func(r chi.Router) {
		r.Use(mw.Session(s.corePool))
		r.Post("/api/tenants", tenant.Create)
		r.Get("/api/tenants/{tenantID}", tenant.Get)
		r.Delete("/api/session", session.Delete)
	})

	domain := handler.NewDomain(s.services)
	s.router.Route("/api/domains", func(r chi.Router) {
		// Certificate issuer and activation-page endpoints; no session.
		r.Get("/verify-ssl", domain.VerifySSL)
		r.Head("/verify-ssl", domain.VerifySSLProbe)
		r.Get("/activate/{tenantID}", domain.ActivationStatus)
		r.Post("/activate/{tenantID}", domain.Activate)
		r.Get("/cname/{tenantID}", domain.CNAMEInstructions)

		// Tenant-admin pipeline endpoints.
		r.Group(func(r chi.Router) {
			r.Use(mw.Session(s.corePool))
			r.Post("/verify", domain.Initiate)
			r.Get("/verify/{tenantID}", domain.VerificationStatus)
			r.Post("/retry/{tenantID}", domain.Retry)
			r.Delete("/{tenantID}", domain.Remove)
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
