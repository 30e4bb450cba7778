package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/unclebandit/recommend-gateway/internal/controller"
	"github.com/unclebandit/recommend-gateway/internal/middleware"
)

// NewRouter wires every route the gateway serves.
func NewRouter(rc *controller.RecommendController, health *HealthHandler, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID(logger))

	r.Post("/recommend_by_customer_id", rc.RecommendByCustomerID)
	r.Get("/healthz", health.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
