// Package http exposes the finance API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finanzas/internal/services"
)

type Server struct {
	http.Server
	svc          *services.FinanceService
	rateLimiter  *rateLimiter
	guard        authGuard
	shutdownOnce sync.Once
}

// Options configures the optional server knobs.
type Options struct {
	// AllowedEmail enables the identity-header guard when non-empty.
	AllowedEmail string
	// IdentityHeader is the header the auth proxy sets. Defaults to
	// X-Auth-Request-Email.
	IdentityHeader string
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc *services.FinanceService, opts Options) *Server {
	if opts.IdentityHeader == "" {
		opts.IdentityHeader = "X-Auth-Request-Email"
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		svc:         svc,
		rateLimiter: newRateLimiter(),
		guard:       newAuthGuard(opts.IdentityHeader, opts.AllowedEmail),
	}

	// Probes stay outside the auth guard.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/dashboard", s.handleGetDashboard)
	api.HandleFunc("PUT /api/dashboard/settings", s.handleUpdateSettings)
	api.HandleFunc("GET /api/transactions", s.handleListTransactions)
	api.HandleFunc("POST /api/transactions", s.handleAddTransaction)
	api.HandleFunc("GET /api/networth", s.handleNetWorthHistory)
	api.HandleFunc("PUT /api/networth", s.handleSaveNetWorth)
	api.HandleFunc("POST /api/networth", s.handleSaveNetWorth)
	api.HandleFunc("GET /api/overview", s.handleOverview)

	mux.Handle("/api/", s.guard.wrap(api))

	s.Server.Handler = s.withMiddleware(mux)

	return s
}

// withMiddleware wraps the mux with request IDs, logging, security headers
// and write rate limiting.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		w.Header().Set("X-Request-ID", requestID)
		securityHeaders(w)

		if isMutating(r.Method) {
			clientIP := extractClientIP(r)
			if !s.rateLimiter.allow(clientIP) {
				slog.WarnContext(r.Context(), "límite de peticiones superado",
					"client_ip", clientIP,
					"request_id", requestID)
				writeError(w, http.StatusTooManyRequests, "Demasiadas peticiones", nil)
				return
			}
		}

		next.ServeHTTP(w, r)

		slog.InfoContext(r.Context(), "petición atendida",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// Shutdown stops background goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
