// Package httpserver serves GraphQL and the operational endpoints over HTTP.
//
// Routes:
//
//	POST /graphql  → GraphQL schema (bearer credential in Authorization)
//	GET  /healthz  → liveness probe
//	GET  /metrics  → Prometheus exposition
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/identity"
	"github.com/dmitrijs2005/taskflow/internal/server/metrics"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// IdentityResolver turns the Authorization header into a user, or nil.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) *models.User
}

// RouterDeps collects the handlers and collaborators mounted by NewRouter.
type RouterDeps struct {
	GraphQL        http.Handler
	Resolver       IdentityResolver
	Metrics        *metrics.Metrics
	Logger         logging.Logger
	AllowedOrigins []string
}

// NewRouter builds the chi router.
//
// Middleware chain (applied in order):
//  1. RequestID   : tags each request for log correlation
//  2. RealIP      : honours X-Forwarded-For from a proxy
//  3. requestLog  : logs method, route, status and latency; records metrics
//  4. Recoverer   : turns handler panics into 500s
//  5. CORS        : lets browser clients call /graphql
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLog(d.Logger, d.Metrics))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handleHealth)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.With(withIdentity(d.Resolver)).Post("/graphql", d.GraphQL.ServeHTTP)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// withIdentity resolves the caller once per request. Resolution never
// fails; a bad or missing credential leaves the request anonymous.
func withIdentity(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			user := resolver.Resolve(ctx, r.Header.Get(common.AuthorizationHeaderName))
			next.ServeHTTP(w, r.WithContext(identity.WithUser(ctx, user)))
		})
	}
}

func requestLog(log logging.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			// downstream log lines (resolvers, services) carry the id too
			r = r.WithContext(logging.WithRequestID(r.Context(), chiMiddleware.GetReqID(r.Context())))

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			elapsed := time.Since(start)

			if m != nil {
				m.ObserveHTTP(r.Method, route, status, elapsed)
			}
			log.Info(r.Context(), "http request",
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", elapsed.Milliseconds(),
			)
		})
	}
}
