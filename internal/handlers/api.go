package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"gamevault-dashboard/internal/errors"
	"gamevault-dashboard/internal/models"
	"gamevault-dashboard/internal/observability"
	"gamevault-dashboard/internal/services"
)

const (
	queryDateLayout = "2006-01-02"
	cacheMaxAge     = "public, max-age=60"
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// parseQuery reads the shared filter params: start and end (YYYY-MM-DD,
// either side may be omitted) plus an optional game selector.
func parseQuery(r *http.Request) (services.Query, error) {
	params := r.URL.Query()
	q := services.Query{Game: params.Get("game")}

	if raw := params.Get("start"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return services.Query{}, errors.BadRequestWrap(err, "start must be a YYYY-MM-DD date")
		}
		q.Start = t
	}

	if raw := params.Get("end"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return services.Query{}, errors.BadRequestWrap(err, "end must be a YYYY-MM-DD date")
		}
		q.End = t
	}

	return q, nil
}

// serveAggregate runs the filter+aggregate pipeline for the request's
// params and writes the projection chosen by pick.
func (h *APIHandlers) serveAggregate(w http.ResponseWriter, r *http.Request, pick func(*models.Report) any) {
	requestID := observability.GetRequestID(r.Context())

	q, err := parseQuery(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	report, err := h.analytics.Report(q)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	headers := map[string]string{
		"Cache-Control": cacheMaxAge,
	}
	errors.WriteSuccessWithHeaders(w, pick(report), headers)
}

func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r, func(rep *models.Report) any { return rep.KPIs })
}

func (h *APIHandlers) HandleGamePopularity(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r, func(rep *models.Report) any { return rep.GamePopularity })
}

func (h *APIHandlers) HandleTopCustomers(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r, func(rep *models.Report) any { return rep.TopCustomers })
}

func (h *APIHandlers) HandleExpenseBreakdown(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r, func(rep *models.Report) any { return rep.ExpenseBreakdown })
}

func (h *APIHandlers) HandleSnackPopularity(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r, func(rep *models.Report) any { return rep.SnackPopularity })
}

func (h *APIHandlers) HandleDailyRevenue(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r, func(rep *models.Report) any { return rep.DailyRevenue })
}

func (h *APIHandlers) HandleRatingDistribution(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r, func(rep *models.Report) any { return rep.RatingDistribution })
}

func (h *APIHandlers) HandleAgeDistribution(w http.ResponseWriter, r *http.Request) {
	h.serveAggregate(w, r, func(rep *models.Report) any { return rep.AgeDistribution })
}

// HandleGames feeds the filter sidebar: the distinct game list plus the
// date bounds of the loaded visits.
func (h *APIHandlers) HandleGames(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"games": h.analytics.Games(),
	}
	if min, max, ok := h.analytics.DateBounds(); ok {
		data["min_date"] = min.Format(queryDateLayout)
		data["max_date"] = max.Format(queryDateLayout)
	}

	errors.WriteSuccess(w, data)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.analytics.Stats()

	errors.WriteSuccess(w, stats)
}
