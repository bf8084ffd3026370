package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"gamevault-dashboard/internal/errors"
	"gamevault-dashboard/internal/models"
)

// File names of the six exports expected inside the data directory.
const (
	VisitsFile        = "Visits_2027.csv"
	SnacksFile        = "Snacks_2027.csv"
	SnookerFile       = "Snooker_2027.csv"
	TableFootballFile = "TableFootball_2027.csv"
	TournamentsFile   = "Tournaments_2027.csv"
	ExpensesFile      = "Expenses_2027.csv"
)

const maxLoaders = 6

// LoadDataset reads and normalizes all six sources. The load is
// all-or-nothing: if any source is missing or malformed the whole call
// fails and no dataset is returned.
func LoadDataset(ctx context.Context, dir string) (*models.Dataset, error) {
	ds := &models.Dataset{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLoaders)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		visits, err := loadVisits(filepath.Join(dir, VisitsFile))
		if err != nil {
			return err
		}
		ds.Visits = visits
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		snacks, err := loadSnacks(filepath.Join(dir, SnacksFile))
		if err != nil {
			return err
		}
		ds.Snacks = snacks
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		snooker, err := loadSnooker(filepath.Join(dir, SnookerFile))
		if err != nil {
			return err
		}
		ds.Snooker = snooker
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tableFootball, err := loadTableFootball(filepath.Join(dir, TableFootballFile))
		if err != nil {
			return err
		}
		ds.TableFootball = tableFootball
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tournaments, err := loadTournaments(filepath.Join(dir, TournamentsFile))
		if err != nil {
			return err
		}
		ds.Tournaments = tournaments
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		expenses, err := loadExpenses(filepath.Join(dir, ExpensesFile))
		if err != nil {
			return err
		}
		ds.Expenses = expenses
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds.LoadedAt = time.Now()
	return ds, nil
}

// table is one parsed CSV source: a header index plus the data rows.
type table struct {
	source string
	header map[string]int
	rows   [][]string
}

func readTable(path string) (*table, error) {
	source := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.SourceNotFoundWrap(err, fmt.Sprintf("source file %s not found", source))
	}
	defer f.Close()

	// The reader enforces a consistent column count across rows, which is
	// exactly the malformed-source condition the contract names.
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.MalformedSourceWrap(err, fmt.Sprintf("source file %s is not valid CSV", source))
	}

	if len(records) == 0 {
		return nil, errors.MalformedSource(fmt.Sprintf("source file %s has no header row", source))
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[name] = i
	}

	return &table{
		source: source,
		header: header,
		rows:   records[1:],
	}, nil
}

// cols resolves the given header names to column indexes, failing with
// MalformedSource when any is absent.
func (t *table) cols(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		pos, ok := t.header[name]
		if !ok {
			return nil, errors.MalformedSource(
				fmt.Sprintf("source file %s is missing column %q", t.source, name))
		}
		idx[i] = pos
	}
	return idx, nil
}
