package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gamevault-dashboard/internal/errors"
	"gamevault-dashboard/internal/models"
)

// Date layouts accepted by the normalizer, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
}

// Start-time layouts in priority order: 12-hour with seconds, 24-hour with
// seconds, 12-hour without seconds, 24-hour without seconds. The first
// layout that parses wins; none matching is not an error, since malformed
// time strings are routine in these manually entered logs.
var clockLayouts = []string{
	"03:04:05 PM",
	"15:04:05",
	"03:04 PM",
	"15:04",
}

// dateColumn tracks row-level date parsing for one source so the table can
// be rejected when the whole column is unparseable.
type dateColumn struct {
	attempted int
	parsed    int
}

func (c *dateColumn) parse(raw string) (time.Time, bool) {
	c.attempted++
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			c.parsed++
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func (c *dateColumn) validate(source string) error {
	if c.attempted > 0 && c.parsed == 0 {
		return errors.InvalidDate(fmt.Sprintf("source file %s has no parseable dates", source))
	}
	return nil
}

// parseClockHour tries each clock layout in turn and returns the hour of
// the first successful parse.
func parseClockHour(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), true
		}
	}
	return 0, false
}

func timeOfDay(hour int) string {
	switch {
	case hour >= 7 && hour < 12:
		return models.TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return models.TimeOfDayAfternoon
	default:
		return models.TimeOfDayEvening
	}
}

// coerceFloat turns a raw cell into a non-negative number. Malformed,
// missing, and negative values all coerce to 0 rather than failing the row.
func coerceFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func coerceInt(raw string) int {
	return int(coerceFloat(raw))
}

func loadVisits(path string) ([]models.Visit, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idx, err := t.cols("CustomerID", "Name", "Date", "Start Time", "Duration",
		"Amount Paid (P)", "Game Played", "Rating (1-5)", "Age")
	if err != nil {
		return nil, err
	}

	var dates dateColumn
	visits := make([]models.Visit, 0, len(t.rows))
	for _, row := range t.rows {
		date, ok := dates.parse(row[idx[2]])
		if !ok {
			continue
		}

		v := models.Visit{
			CustomerID:   strings.TrimSpace(row[idx[0]]),
			CustomerName: strings.TrimSpace(row[idx[1]]),
			Date:         date,
			DurationMin:  coerceFloat(row[idx[4]]),
			AmountPaid:   coerceFloat(row[idx[5]]),
			Game:         strings.TrimSpace(row[idx[6]]),
			Rating:       coerceFloat(row[idx[7]]),
			Age:          coerceInt(row[idx[8]]),
			DayOfWeek:    date.Weekday().String(),
			Month:        date.Month().String(),
		}

		if hour, ok := parseClockHour(row[idx[3]]); ok {
			v.StartHour = hour
			v.HasStartTime = true
			v.TimeOfDay = timeOfDay(hour)
		}

		visits = append(visits, v)
	}

	if err := dates.validate(t.source); err != nil {
		return nil, err
	}
	return visits, nil
}

func loadSnacks(path string) ([]models.SnackSale, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idx, err := t.cols("Date", "Snack Type", "Unit Price", "Quantity", "Total Price")
	if err != nil {
		return nil, err
	}

	var dates dateColumn
	snacks := make([]models.SnackSale, 0, len(t.rows))
	for _, row := range t.rows {
		date, ok := dates.parse(row[idx[0]])
		if !ok {
			continue
		}
		snacks = append(snacks, models.SnackSale{
			Date:      date,
			Snack:     strings.TrimSpace(row[idx[1]]),
			UnitPrice: coerceFloat(row[idx[2]]),
			Quantity:  coerceFloat(row[idx[3]]),
			TotalSale: coerceFloat(row[idx[4]]),
		})
	}

	if err := dates.validate(t.source); err != nil {
		return nil, err
	}
	return snacks, nil
}

func loadSnooker(path string) ([]models.SnookerSession, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idx, err := t.cols("Date", "Amount Paid (P)")
	if err != nil {
		return nil, err
	}

	var dates dateColumn
	sessions := make([]models.SnookerSession, 0, len(t.rows))
	for _, row := range t.rows {
		date, ok := dates.parse(row[idx[0]])
		if !ok {
			continue
		}
		sessions = append(sessions, models.SnookerSession{
			Date:       date,
			AmountPaid: coerceFloat(row[idx[1]]),
		})
	}

	if err := dates.validate(t.source); err != nil {
		return nil, err
	}
	return sessions, nil
}

func loadTableFootball(path string) ([]models.TableFootballSession, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idx, err := t.cols("Date", "Amount Paid (P)")
	if err != nil {
		return nil, err
	}

	var dates dateColumn
	sessions := make([]models.TableFootballSession, 0, len(t.rows))
	for _, row := range t.rows {
		date, ok := dates.parse(row[idx[0]])
		if !ok {
			continue
		}
		sessions = append(sessions, models.TableFootballSession{
			Date:       date,
			AmountPaid: coerceFloat(row[idx[1]]),
		})
	}

	if err := dates.validate(t.source); err != nil {
		return nil, err
	}
	return sessions, nil
}

func loadTournaments(path string) ([]models.TournamentEntry, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idx, err := t.cols("Date", "Name", "Entry Fee (P)")
	if err != nil {
		return nil, err
	}

	var dates dateColumn
	entries := make([]models.TournamentEntry, 0, len(t.rows))
	for _, row := range t.rows {
		date, ok := dates.parse(row[idx[0]])
		if !ok {
			continue
		}
		entries = append(entries, models.TournamentEntry{
			Date:        date,
			Participant: strings.TrimSpace(row[idx[1]]),
			EntryFee:    coerceFloat(row[idx[2]]),
		})
	}

	if err := dates.validate(t.source); err != nil {
		return nil, err
	}
	return entries, nil
}

func loadExpenses(path string) ([]models.ExpenseRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idx, err := t.cols("Date", "Expense Category", "Amount (P)")
	if err != nil {
		return nil, err
	}

	var dates dateColumn
	expenses := make([]models.ExpenseRecord, 0, len(t.rows))
	for _, row := range t.rows {
		date, ok := dates.parse(row[idx[0]])
		if !ok {
			continue
		}
		expenses = append(expenses, models.ExpenseRecord{
			Date:     date,
			Category: strings.TrimSpace(row[idx[1]]),
			Amount:   coerceFloat(row[idx[2]]),
		})
	}

	if err := dates.validate(t.source); err != nil {
		return nil, err
	}
	return expenses, nil
}
