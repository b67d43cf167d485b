package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tropicaldog17/oraclewatch/internal/metrics"
	"github.com/tropicaldog17/oraclewatch/internal/middleware"
)

// RouterDeps collects what the router serves. Metrics and RateLimiter are optional.
type RouterDeps struct {
	Web4        *Web4Handler
	Registry    *RegistryHandler
	Health      *HealthHandler
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	r.HandleFunc("/health", d.Health.HandleHealth).Methods(http.MethodGet)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}

	limited := r.NewRoute().Subrouter()
	if d.RateLimiter != nil {
		limited.Use(d.RateLimiter.Handler)
	}
	limited.HandleFunc("/web4", d.Web4.HandleWeb4).Methods(http.MethodPost)

	api := limited.PathPrefix("/api").Subrouter()
	api.HandleFunc("/config", d.Registry.HandleGetConfig).Methods(http.MethodPost)
	api.HandleFunc("/admin/token-config", d.Registry.HandlePutConfig).Methods(http.MethodPost)
	api.HandleFunc("/admin/token-configs", d.Registry.HandlePutConfigs).Methods(http.MethodPost)

	return middleware.CORS(r)
}
