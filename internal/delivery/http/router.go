package http

import (
	"net/http"

	"outpatient-planner/internal/delivery/http/handler"
	"outpatient-planner/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	sessionHandler    *handler.SessionHandler
	planningHandler   *handler.PlanningHandler
	chartHandler      *handler.ChartHandler
	pageHandler       *handler.PageHandler
	auditLogHandler   *handler.AuditLogHandler
	sessionMiddleware *middleware.SessionMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	sessionHandler *handler.SessionHandler,
	planningHandler *handler.PlanningHandler,
	chartHandler *handler.ChartHandler,
	pageHandler *handler.PageHandler,
	auditLogHandler *handler.AuditLogHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		sessionHandler:    sessionHandler,
		planningHandler:   planningHandler,
		chartHandler:      chartHandler,
		pageHandler:       pageHandler,
		auditLogHandler:   auditLogHandler,
		sessionMiddleware: sessionMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Session routes
	api.HandleFunc("/sessions", r.sessionHandler.StartSession).Methods(http.MethodPost)
	api.Handle("/sessions", r.sessionMiddleware.Authenticate(http.HandlerFunc(r.sessionHandler.EndSession))).Methods(http.MethodDelete)
	api.HandleFunc("/pages", r.pageHandler.GetPages).Methods(http.MethodGet)

	// Session-scoped routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.sessionMiddleware.Authenticate)

	protected.HandleFunc("/uploads", r.planningHandler.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/specialties", r.planningHandler.GetSpecialties).Methods(http.MethodGet)
	protected.HandleFunc("/predictions", r.planningHandler.Predict).Methods(http.MethodGet)
	protected.HandleFunc("/plans", r.planningHandler.Plan).Methods(http.MethodGet)
	protected.HandleFunc("/plans/export", r.planningHandler.Export).Methods(http.MethodGet)
	protected.HandleFunc("/visualizations", r.planningHandler.Visualize).Methods(http.MethodGet)

	protected.HandleFunc("/charts/{chart}", r.chartHandler.GetChart).Methods(http.MethodGet)
	protected.HandleFunc("/pages/{page}", r.pageHandler.GetPage).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs", r.auditLogHandler.GetSessionAuditLogs).Methods(http.MethodGet)

	// CORS and request logging wrap the router so they also see requests
	// no route matches, such as preflight OPTIONS.
	return r.corsMiddleware.Handle(r.loggingMiddleware.Handle(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
