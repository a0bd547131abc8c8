package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes. A nil gatherer leaves /metrics unmounted.
func SetupRoutes(handler *Handler, gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/dmi", handler.ComputeDMI).Methods(http.MethodPost)
	api.HandleFunc("/dmi/{symbol}", handler.GetDMI).Methods(http.MethodGet)
	api.HandleFunc("/history/{symbol}", handler.GetHistory).Methods(http.MethodGet)
	api.HandleFunc("/watchlist", handler.GetWatchlist).Methods(http.MethodGet)
	api.HandleFunc("/watchlist", handler.AddSymbol).Methods(http.MethodPost)
	api.HandleFunc("/watchlist/{symbol}", handler.RemoveSymbol).Methods(http.MethodDelete)

	return r
}
