package server

import (
	"log/slog"
	"net/http"

	"gamevault-dashboard/internal/handlers"
	"gamevault-dashboard/internal/services"
)

type Server struct {
	analytics   *services.Analytics
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		analytics:   analytics,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, logger),
		sseHandlers: handlers.NewSSEHandlers(analytics, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints. All aggregate endpoints accept the shared
	// start/end/game filter params.
	s.mux.HandleFunc("GET /api/kpis", s.apiHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /api/games", s.apiHandlers.HandleGames)
	s.mux.HandleFunc("GET /api/game-popularity", s.apiHandlers.HandleGamePopularity)
	s.mux.HandleFunc("GET /api/top-customers", s.apiHandlers.HandleTopCustomers)
	s.mux.HandleFunc("GET /api/expense-breakdown", s.apiHandlers.HandleExpenseBreakdown)
	s.mux.HandleFunc("GET /api/snack-popularity", s.apiHandlers.HandleSnackPopularity)
	s.mux.HandleFunc("GET /api/daily-revenue", s.apiHandlers.HandleDailyRevenue)
	s.mux.HandleFunc("GET /api/rating-distribution", s.apiHandlers.HandleRatingDistribution)
	s.mux.HandleFunc("GET /api/age-distribution", s.apiHandlers.HandleAgeDistribution)

	// Datastar SSE endpoints driving the dashboard
	s.mux.HandleFunc("GET /sse/kpis", s.sseHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /sse/charts", s.sseHandlers.HandleCharts)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
