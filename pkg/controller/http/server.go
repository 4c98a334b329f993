package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lexops-lab/dealdesk/pkg/usecase"
	"github.com/lexops-lab/dealdesk/pkg/utils/apperr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// IdentityHeader carries the requesting identity used to partition the
// dashboard response cache. Authentication itself lives upstream.
const IdentityHeader = "X-Dealdesk-User"

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server exposing the dashboard API
func NewServer(ctx context.Context, addr string, dashboardUC *usecase.Dashboard) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(MetricsMiddleware())
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", handleDashboard(dashboardUC))
	})

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		router: router,
	}
}

// handleHealth responds to health checks
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleDashboard serves the aggregated dashboard payload. The days
// parameter is corrected rather than rejected: unparsable values fall back
// to the default window and out-of-range values are clamped downstream.
func handleDashboard(dashboardUC *usecase.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := usecase.DefaultWindowDays
		if raw := r.URL.Query().Get("days"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				days = parsed
			}
		}

		identity := r.Header.Get(IdentityHeader)

		stats, err := dashboardUC.GetDashboard(r.Context(), identity, days)
		if err != nil {
			apperr.Handle(r.Context(), err)
			http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			apperr.Handle(r.Context(), err)
		}
	}
}
