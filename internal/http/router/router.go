package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/http/handlers"
	"paquexpress-service/internal/http/middleware"
	"paquexpress-service/internal/logx"
	"paquexpress-service/internal/metrics"
)

// Authorizer resolves a bearer token to the acting user.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*domain.User, error)
}

// Params are the router dependencies.
type Params struct {
	dig.In

	Logger   logx.Logger
	Metrics  *metrics.HTTP
	Registry *prometheus.Registry `optional:"true"`
	Auth     Authorizer

	Base     *handlers.Handlers
	Login    *handlers.AuthHandler
	Packages *handlers.PackageHandler
	Delivery *handlers.DeliveryHandler

	// DebugEndpoints mounts POST /util/hash-password.
	DebugEndpoints bool `name:"debug_endpoints"`
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(p Params) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observability(p.Logger, p.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/", p.Base.Root)
	r.Get("/ping", p.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(p.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", metricsHandler(p.Registry))

	r.Post("/login", p.Login.Login)
	if p.DebugEndpoints {
		r.Post("/util/hash-password", p.Login.HashPassword)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(p.Auth, p.Logger))
		r.Get("/packages/assigned/{userId}", p.Packages.ListAssigned)
		r.Post("/deliveries", p.Delivery.Register)
	})

	r.NotFound(http.HandlerFunc(p.Base.NotFound))
	r.MethodNotAllowed(http.HandlerFunc(p.Base.MethodNotAllowed))

	return r
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(
		prometheus.Gatherers{prometheus.DefaultGatherer, reg},
		promhttp.HandlerOpts{},
	)
}
