package services

import (
	"slices"

	"gamevault-dashboard/internal/config"
	"gamevault-dashboard/internal/models"
)

const dateKeyLayout = "2006-01-02"

// buildReport computes the KPI set and every chart-ready aggregate over an
// already-filtered dataset. All outputs are deterministic: groups are
// ordered by their measure, with ties broken by first encounter order in
// the source rows, never by map iteration order.
func buildReport(ds *models.Dataset, cfg config.AnalyticsConfig) *models.Report {
	report := &models.Report{
		KPIs:               models.KPISet{MostPopularGame: "N/A", MostPopularSnack: "N/A"},
		GamePopularity:     []models.GameCount{},
		TopCustomers:       []models.CustomerSpend{},
		ExpenseBreakdown:   []models.CategoryAmount{},
		SnackPopularity:    []models.SnackQuantity{},
		DailyRevenue:       []models.DailyRevenue{},
		RatingDistribution: []models.RatingCount{},
		AgeDistribution:    []models.AgeBucket{},
	}

	daily := make(map[string]*models.DailyRevenue)
	dailyRow := func(key string) *models.DailyRevenue {
		row, ok := daily[key]
		if !ok {
			row = &models.DailyRevenue{Date: key}
			daily[key] = row
		}
		return row
	}

	// Visits: gameplay revenue, operational KPIs, game/customer/rating/age
	// aggregates, all in one pass.
	games := newGrouping()
	customers := newGrouping()
	customerIDs := make(map[string]struct{})
	ratingCounts := make(map[int]int)
	ages := make([]int, 0, len(ds.Visits))

	var durationSum, ratingSum float64
	for _, v := range ds.Visits {
		report.KPIs.GameplayRevenue += v.AmountPaid
		durationSum += v.DurationMin
		ratingSum += v.Rating
		customerIDs[v.CustomerID] = struct{}{}

		games.add(v.Game, 1)
		customers.add(v.CustomerName, v.AmountPaid)

		if r := int(v.Rating); r >= 1 && r <= 5 {
			ratingCounts[r]++
		}
		ages = append(ages, v.Age)

		dailyRow(v.Date.Format(dateKeyLayout)).Gameplay += v.AmountPaid
	}

	report.KPIs.TotalVisits = len(ds.Visits)
	report.KPIs.UniqueCustomers = len(customerIDs)
	if len(ds.Visits) > 0 {
		report.KPIs.AvgVisitDuration = durationSum / float64(len(ds.Visits))
		report.KPIs.AvgRating = ratingSum / float64(len(ds.Visits))
	}
	if top, ok := games.top(); ok {
		report.KPIs.MostPopularGame = top
	}

	// Snacks.
	snacks := newGrouping()
	for _, s := range ds.Snacks {
		report.KPIs.SnackRevenue += s.TotalSale
		snacks.add(s.Snack, s.Quantity)
		dailyRow(s.Date.Format(dateKeyLayout)).Snack += s.TotalSale
	}
	if top, ok := snacks.top(); ok {
		report.KPIs.MostPopularSnack = top
	}

	// Snooker and table football.
	for _, s := range ds.Snooker {
		report.KPIs.SnookerRevenue += s.AmountPaid
		dailyRow(s.Date.Format(dateKeyLayout)).Snooker += s.AmountPaid
	}
	for _, s := range ds.TableFootball {
		report.KPIs.TableFootballRevenue += s.AmountPaid
		dailyRow(s.Date.Format(dateKeyLayout)).TableFootball += s.AmountPaid
	}

	// Tournaments bill a flat rate per distinct tournament day. Entry fees
	// recorded on the rows are intentionally ignored.
	tournamentDays := make(map[string]struct{})
	for _, t := range ds.Tournaments {
		tournamentDays[t.Date.Format(dateKeyLayout)] = struct{}{}
	}
	report.KPIs.TournamentRevenue = float64(len(tournamentDays)) * cfg.TournamentDayRate
	for day := range tournamentDays {
		dailyRow(day).Tournament += cfg.TournamentDayRate
	}

	// Expenses.
	expenses := newGrouping()
	for _, e := range ds.Expenses {
		report.KPIs.TotalExpenses += e.Amount
		expenses.add(e.Category, e.Amount)
	}

	report.KPIs.OverallRevenue = report.KPIs.GameplayRevenue +
		report.KPIs.SnackRevenue +
		report.KPIs.SnookerRevenue +
		report.KPIs.TableFootballRevenue +
		report.KPIs.TournamentRevenue
	report.KPIs.NetProfit = report.KPIs.OverallRevenue - report.KPIs.TotalExpenses
	if report.KPIs.OverallRevenue != 0 {
		report.KPIs.ProfitMargin = report.KPIs.NetProfit / report.KPIs.OverallRevenue * 100
	}

	for _, g := range games.sorted() {
		report.GamePopularity = append(report.GamePopularity, models.GameCount{
			Game:  g.key,
			Plays: int(g.value),
		})
	}

	topCustomers := customers.sorted()
	if len(topCustomers) > cfg.TopCustomerLimit {
		topCustomers = topCustomers[:cfg.TopCustomerLimit]
	}
	for _, c := range topCustomers {
		report.TopCustomers = append(report.TopCustomers, models.CustomerSpend{
			CustomerName: c.key,
			TotalPaid:    c.value,
		})
	}

	for _, e := range expenses.sorted() {
		report.ExpenseBreakdown = append(report.ExpenseBreakdown, models.CategoryAmount{
			Category: e.key,
			Amount:   e.value,
		})
	}

	for _, s := range snacks.sorted() {
		report.SnackPopularity = append(report.SnackPopularity, models.SnackQuantity{
			Snack:    s.key,
			Quantity: s.value,
		})
	}

	for _, row := range daily {
		row.Total = row.Gameplay + row.Snack + row.Snooker + row.TableFootball + row.Tournament
		report.DailyRevenue = append(report.DailyRevenue, *row)
	}
	slices.SortFunc(report.DailyRevenue, func(a, b models.DailyRevenue) int {
		if a.Date < b.Date {
			return -1
		}
		if a.Date > b.Date {
			return 1
		}
		return 0
	})

	for rating := 1; rating <= 5; rating++ {
		report.RatingDistribution = append(report.RatingDistribution, models.RatingCount{
			Rating: rating,
			Count:  ratingCounts[rating],
		})
	}

	report.AgeDistribution = ageHistogram(ages, cfg.AgeHistogramBins)

	return report
}

// grouping accumulates a float measure per key while remembering the order
// keys were first seen, so sorts can break ties deterministically.
type grouping struct {
	values map[string]float64
	order  []string
}

func newGrouping() *grouping {
	return &grouping{values: make(map[string]float64)}
}

func (g *grouping) add(key string, delta float64) {
	if _, ok := g.values[key]; !ok {
		g.order = append(g.order, key)
	}
	g.values[key] += delta
}

type groupEntry struct {
	key   string
	value float64
}

// sorted returns the groups by descending value, ties in first-seen order.
func (g *grouping) sorted() []groupEntry {
	entries := make([]groupEntry, 0, len(g.order))
	for _, key := range g.order {
		entries = append(entries, groupEntry{key: key, value: g.values[key]})
	}
	slices.SortStableFunc(entries, func(a, b groupEntry) int {
		if a.value > b.value {
			return -1
		}
		if a.value < b.value {
			return 1
		}
		return 0
	})
	return entries
}

// top returns the key with the largest value, the first seen on ties.
func (g *grouping) top() (string, bool) {
	if len(g.order) == 0 {
		return "", false
	}
	return g.sorted()[0].key, true
}

// ageHistogram buckets ages into at most bins equal-width ranges spanning
// the observed min..max.
func ageHistogram(ages []int, bins int) []models.AgeBucket {
	if len(ages) == 0 {
		return []models.AgeBucket{}
	}

	min, max := ages[0], ages[0]
	for _, age := range ages[1:] {
		if age < min {
			min = age
		}
		if age > max {
			max = age
		}
	}

	span := max - min + 1
	width := (span + bins - 1) / bins
	numBuckets := (span + width - 1) / width

	buckets := make([]models.AgeBucket, numBuckets)
	for i := range buckets {
		low := min + i*width
		buckets[i] = models.AgeBucket{Low: low, High: low + width - 1}
	}
	for _, age := range ages {
		buckets[(age-min)/width].Count++
	}
	return buckets
}
