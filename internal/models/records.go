package models

import "time"

// Time-of-day labels derived from a visit's start hour.
const (
	TimeOfDayMorning   = "Morning"
	TimeOfDayAfternoon = "Afternoon"
	TimeOfDayEvening   = "Evening"
)

type Visit struct {
	CustomerID   string
	CustomerName string
	Date         time.Time
	StartHour    int
	HasStartTime bool
	DurationMin  float64
	AmountPaid   float64
	Game         string
	Rating       float64
	Age          int

	// Derived at normalization time.
	DayOfWeek string
	Month     string
	TimeOfDay string
}

type SnackSale struct {
	Date      time.Time
	Snack     string
	UnitPrice float64
	Quantity  float64
	TotalSale float64
}

type SnookerSession struct {
	Date       time.Time
	AmountPaid float64
}

type TableFootballSession struct {
	Date       time.Time
	AmountPaid float64
}

type TournamentEntry struct {
	Date        time.Time
	Participant string
	EntryFee    float64
}

type ExpenseRecord struct {
	Date     time.Time
	Category string
	Amount   float64
}

// Dataset holds the six normalized collections. It is immutable after
// construction; a reload publishes a fresh Dataset.
type Dataset struct {
	Visits        []Visit
	Snacks        []SnackSale
	Snooker       []SnookerSession
	TableFootball []TableFootballSession
	Tournaments   []TournamentEntry
	Expenses      []ExpenseRecord

	LoadedAt time.Time
}

func (d *Dataset) RecordCount() int64 {
	return int64(len(d.Visits) + len(d.Snacks) + len(d.Snooker) +
		len(d.TableFootball) + len(d.Tournaments) + len(d.Expenses))
}
