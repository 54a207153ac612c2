package routes

import (
	"net/http"

	"github.com/zatekoja/hpv-prevention/backend/internal/api/handlers"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/middleware"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	facilityHandler    *handlers.FacilityHandler
	geolocationHandler *handlers.GeolocationHandler
	finderPageHandler  *handlers.FinderPageHandler
	contentHandler     *handlers.ContentHandler

	cacheMiddleware *middleware.CacheMiddleware
	allowedOrigins  []string
	metrics         *observability.Metrics
}

// Options carries the cross-cutting dependencies of the router
type Options struct {
	CacheMiddleware *middleware.CacheMiddleware
	AllowedOrigins  []string
	Metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	facilityHandler *handlers.FacilityHandler,
	geolocationHandler *handlers.GeolocationHandler,
	finderPageHandler *handlers.FinderPageHandler,
	contentHandler *handlers.ContentHandler,
	opts Options,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		facilityHandler:    facilityHandler,
		geolocationHandler: geolocationHandler,
		finderPageHandler:  finderPageHandler,
		contentHandler:     contentHandler,

		cacheMiddleware: opts.CacheMiddleware,
		allowedOrigins:  opts.AllowedOrigins,
		metrics:         opts.Metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Vaccination finder
	r.mux.HandleFunc("GET /api/facilities/nearby", r.facilityHandler.FindNearby)
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
	r.mux.HandleFunc("GET /finder/results", r.finderPageHandler.Results)
	r.mux.HandleFunc("GET /finder/loading", r.finderPageHandler.Loading)

	// Educational content
	r.mux.HandleFunc("GET /api/content/myths-facts", r.contentHandler.MythsFacts)
	r.mux.HandleFunc("GET /api/content/faq", r.contentHandler.FAQ)
	r.mux.HandleFunc("GET /api/content/timeline", r.contentHandler.Timeline)
	r.mux.HandleFunc("GET /api/content/checklist", r.contentHandler.Checklist)

	// Self-assessment tools
	r.mux.HandleFunc("POST /api/risk-assessment", r.contentHandler.AssessRisk)
	r.mux.HandleFunc("POST /api/checklist/progress", r.contentHandler.ChecklistProgress)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

// DefaultCacheRoutes returns the response cache configuration for the
// content and geocode endpoints
func DefaultCacheRoutes(contentTTLSeconds, geocodeTTLSeconds int) map[string]middleware.CacheConfig {
	return map[string]middleware.CacheConfig{
		"/api/content/": {TTLSeconds: contentTTLSeconds, Enabled: contentTTLSeconds > 0},
		"/api/geocode":  {TTLSeconds: geocodeTTLSeconds, Enabled: geocodeTTLSeconds > 0},
	}
}
