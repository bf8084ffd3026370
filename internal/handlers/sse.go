package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"gamevault-dashboard/internal/errors"
	"gamevault-dashboard/internal/models"
	"gamevault-dashboard/internal/observability"
	"gamevault-dashboard/internal/services"
	"github.com/starfederation/datastar-go/datastar"
)

var kpiCardsTemplate = template.Must(template.New("kpiCards").Parse(`
<div id="kpi-content" class="kpi-grid">
<div class="kpi-card"><div class="kpi-label">💸 Net Profit</div><div class="kpi-value">P{{printf "%.2f" .NetProfit}}</div></div>
<div class="kpi-card"><div class="kpi-label">🎮 Gameplay Revenue</div><div class="kpi-value">P{{printf "%.2f" .GameplayRevenue}}</div></div>
<div class="kpi-card"><div class="kpi-label">🍔 Snack Revenue</div><div class="kpi-value">P{{printf "%.2f" .SnackRevenue}}</div></div>
<div class="kpi-card"><div class="kpi-label">🚶 Total Visits</div><div class="kpi-value">{{.TotalVisits}}</div></div>
<div class="kpi-card"><div class="kpi-label">🧑 Unique Customers</div><div class="kpi-value">{{.UniqueCustomers}}</div></div>
<div class="kpi-card"><div class="kpi-label">🏆 Tournament Revenue</div><div class="kpi-value">P{{printf "%.2f" .TournamentRevenue}}</div></div>
<div class="kpi-card"><div class="kpi-label">🎱 Snooker Revenue</div><div class="kpi-value">P{{printf "%.2f" .SnookerRevenue}}</div></div>
<div class="kpi-card"><div class="kpi-label">⚽ Table Football Revenue</div><div class="kpi-value">P{{printf "%.2f" .TableFootballRevenue}}</div></div>
<div class="kpi-card"><div class="kpi-label">📉 Total Expenses</div><div class="kpi-value">P{{printf "%.2f" .TotalExpenses}}</div></div>
<div class="kpi-card"><div class="kpi-label">⏱️ Avg. Visit Duration</div><div class="kpi-value">{{printf "%.0f" .AvgVisitDuration}} mins</div></div>
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *SSEHandlers) report(w http.ResponseWriter, r *http.Request) (*models.Report, bool) {
	requestID := observability.GetRequestID(r.Context())

	q, err := parseQuery(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return nil, false
	}

	rep, err := h.analytics.Report(q)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return nil, false
	}
	return rep, true
}

func renderKPICards(kpis models.KPISet) (string, error) {
	var buf strings.Builder
	err := kpiCardsTemplate.Execute(&buf, kpis)
	return buf.String(), err
}

func chartSignals(rep *models.Report) (json.RawMessage, error) {
	return json.Marshal(map[string]any{
		"gamesData":        rep.GamePopularity,
		"topCustomersData": rep.TopCustomers,
		"expenseData":      rep.ExpenseBreakdown,
		"snackData":        rep.SnackPopularity,
		"dailyRevenueData": rep.DailyRevenue,
		"ratingData":       rep.RatingDistribution,
		"ageData":          rep.AgeDistribution,
	})
}

func (h *SSEHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.report(w, r)
	if !ok {
		return
	}

	sse := datastar.NewSSE(w, r)

	html, err := renderKPICards(rep.KPIs)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.report(w, r)
	if !ok {
		return
	}

	sse := datastar.NewSSE(w, r)

	signals, err := chartSignals(rep)
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	sse.PatchElements(`<div id="charts-status">Charts updated</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.report(w, r)
	if !ok {
		return
	}

	sse := datastar.NewSSE(w, r)

	html, err := renderKPICards(rep.KPIs)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := chartSignals(rep)
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
