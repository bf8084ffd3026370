package services

import (
	"time"

	"gamevault-dashboard/internal/errors"
	"gamevault-dashboard/internal/models"
)

// Query restricts a report to a date range and optionally to one game.
// A zero Start or End leaves that side of the range open; an empty Game
// keeps all games. The game filter applies to visits only.
type Query struct {
	Start time.Time
	End   time.Time
	Game  string
}

func (q Query) inRange(d time.Time) bool {
	if !q.Start.IsZero() && d.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && d.After(q.End) {
		return false
	}
	return true
}

// filterDataset projects ds down to the rows matching q. It never mutates
// ds; single-day ranges and ranges matching nothing are both valid.
func filterDataset(ds *models.Dataset, q Query) (*models.Dataset, error) {
	if !q.Start.IsZero() && !q.End.IsZero() && q.End.Before(q.Start) {
		return nil, errors.InvalidRange("start date must not be after end date")
	}

	out := &models.Dataset{LoadedAt: ds.LoadedAt}

	for _, v := range ds.Visits {
		if !q.inRange(v.Date) {
			continue
		}
		if q.Game != "" && v.Game != q.Game {
			continue
		}
		out.Visits = append(out.Visits, v)
	}

	for _, s := range ds.Snacks {
		if q.inRange(s.Date) {
			out.Snacks = append(out.Snacks, s)
		}
	}

	for _, s := range ds.Snooker {
		if q.inRange(s.Date) {
			out.Snooker = append(out.Snooker, s)
		}
	}

	for _, s := range ds.TableFootball {
		if q.inRange(s.Date) {
			out.TableFootball = append(out.TableFootball, s)
		}
	}

	for _, t := range ds.Tournaments {
		if q.inRange(t.Date) {
			out.Tournaments = append(out.Tournaments, t)
		}
	}

	for _, e := range ds.Expenses {
		if q.inRange(e.Date) {
			out.Expenses = append(out.Expenses, e)
		}
	}

	return out, nil
}
