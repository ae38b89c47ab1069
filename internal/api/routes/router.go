package routes

import (
	"net/http"

	"github.com/rxradar/backend/internal/api/handlers"
	"github.com/rxradar/backend/internal/api/middleware"
	"github.com/rxradar/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	analysisHandler    *handlers.AnalysisHandler
	interactionHandler *handlers.InteractionHandler
	resolutionHandler  *handlers.ResolutionHandler
	authHandler        *handlers.AuthHandler
	medicationHandler  *handlers.MedicationHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	analysisHandler *handlers.AnalysisHandler,
	interactionHandler *handlers.InteractionHandler,
	resolutionHandler *handlers.ResolutionHandler,
	authHandler *handlers.AuthHandler,
	medicationHandler *handlers.MedicationHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		analysisHandler:    analysisHandler,
		interactionHandler: interactionHandler,
		resolutionHandler:  resolutionHandler,
		authHandler:        authHandler,
		medicationHandler:  medicationHandler,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Resolution and analysis endpoints
	r.mux.HandleFunc("POST /api/resolve", r.resolutionHandler.Resolve)
	r.mux.HandleFunc("POST /api/analyze", r.analysisHandler.Analyze)
	r.mux.HandleFunc("POST /api/interactions/check", r.interactionHandler.Check)

	// Account endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)

	// Saved medication list endpoints
	r.mux.HandleFunc("POST /api/users/{username}/medications", r.medicationHandler.Save)
	r.mux.HandleFunc("GET /api/users/{username}/medications", r.medicationHandler.Load)

	// Apply middleware chain
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.CORSMiddleware(handler)

	return handler
}
