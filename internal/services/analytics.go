package services

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"gamevault-dashboard/internal/config"
	"gamevault-dashboard/internal/ingest"
	"gamevault-dashboard/internal/models"
)

const (
	defaultTournamentDayRate = 1100
	defaultTopCustomerLimit  = 10
	defaultAgeHistogramBins  = 10
)

// Analytics owns the loaded dataset and answers report queries over it.
// The dataset is an immutable snapshot: a reload swaps the pointer under
// the lock, it never mutates records in place.
type Analytics struct {
	mu      sync.RWMutex
	dataset *models.Dataset
	cfg     config.AnalyticsConfig
	logger  *slog.Logger
}

func NewAnalytics(cfg config.AnalyticsConfig) *Analytics {
	if cfg.TournamentDayRate <= 0 {
		cfg.TournamentDayRate = defaultTournamentDayRate
	}
	if cfg.TopCustomerLimit <= 0 {
		cfg.TopCustomerLimit = defaultTopCustomerLimit
	}
	if cfg.AgeHistogramBins <= 0 {
		cfg.AgeHistogramBins = defaultAgeHistogramBins
	}

	return &Analytics{
		dataset: &models.Dataset{},
		cfg:     cfg,
		logger:  slog.Default(),
	}
}

// SetData publishes a dataset directly, bypassing the file loader.
func (a *Analytics) SetData(ds *models.Dataset) {
	if ds.LoadedAt.IsZero() {
		ds.LoadedAt = time.Now()
	}
	a.mu.Lock()
	a.dataset = ds
	a.mu.Unlock()
}

// LoadFromDir reads the six CSV exports and publishes the resulting
// snapshot. Safe to call again to pick up fresh exports.
func (a *Analytics) LoadFromDir(ctx context.Context, dir string) error {
	start := time.Now()
	a.logger.Info("loading data directory", "dir", dir)

	ds, err := ingest.LoadDataset(ctx, dir)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.dataset = ds
	a.mu.Unlock()

	a.logger.Info("data load complete",
		"records", ds.RecordCount(),
		"visits", len(ds.Visits),
		"duration", time.Since(start),
	)
	return nil
}

func (a *Analytics) snapshot() *models.Dataset {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dataset
}

// Report filters the current snapshot with q and computes the full KPI and
// chart aggregate set over the filtered view.
func (a *Analytics) Report(q Query) (*models.Report, error) {
	filtered, err := filterDataset(a.snapshot(), q)
	if err != nil {
		return nil, err
	}
	return buildReport(filtered, a.cfg), nil
}

// Games lists the distinct games played, sorted, for the UI filter
// selector. The list comes from the unfiltered snapshot so the selector
// stays stable while the user narrows the range.
func (a *Analytics) Games() []string {
	ds := a.snapshot()

	seen := make(map[string]struct{})
	games := make([]string, 0)
	for _, v := range ds.Visits {
		if v.Game == "" {
			continue
		}
		if _, ok := seen[v.Game]; ok {
			continue
		}
		seen[v.Game] = struct{}{}
		games = append(games, v.Game)
	}
	slices.Sort(games)
	return games
}

// DateBounds reports the earliest and latest visit dates, for seeding the
// UI date picker. ok is false when no visits are loaded.
func (a *Analytics) DateBounds() (min, max time.Time, ok bool) {
	ds := a.snapshot()
	if len(ds.Visits) == 0 {
		return time.Time{}, time.Time{}, false
	}

	min, max = ds.Visits[0].Date, ds.Visits[0].Date
	for _, v := range ds.Visits[1:] {
		if v.Date.Before(min) {
			min = v.Date
		}
		if v.Date.After(max) {
			max = v.Date
		}
	}
	return min, max, true
}

// Stats summarizes the loaded snapshot for the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	ds := a.snapshot()

	return map[string]any{
		"record_count":   ds.RecordCount(),
		"loaded_at":      ds.LoadedAt,
		"visits":         len(ds.Visits),
		"snack_sales":    len(ds.Snacks),
		"snooker":        len(ds.Snooker),
		"table_football": len(ds.TableFootball),
		"tournaments":    len(ds.Tournaments),
		"expenses":       len(ds.Expenses),
	}
}
