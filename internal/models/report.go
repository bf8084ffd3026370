package models

// KPISet is the scalar summary block shown as cards on the dashboard.
type KPISet struct {
	GameplayRevenue      float64 `json:"gameplay_revenue"`
	SnackRevenue         float64 `json:"snack_revenue"`
	SnookerRevenue       float64 `json:"snooker_revenue"`
	TableFootballRevenue float64 `json:"table_football_revenue"`
	TournamentRevenue    float64 `json:"tournament_revenue"`
	OverallRevenue       float64 `json:"overall_revenue"`
	TotalExpenses        float64 `json:"total_expenses"`
	NetProfit            float64 `json:"net_profit"`
	ProfitMargin         float64 `json:"profit_margin"`

	TotalVisits      int     `json:"total_visits"`
	UniqueCustomers  int     `json:"unique_customers"`
	AvgVisitDuration float64 `json:"avg_visit_duration"`
	MostPopularGame  string  `json:"most_popular_game"`
	MostPopularSnack string  `json:"most_popular_snack"`
	AvgRating        float64 `json:"avg_rating"`
}

type GameCount struct {
	Game  string `json:"game"`
	Plays int    `json:"plays"`
}

type CustomerSpend struct {
	CustomerName string  `json:"customer_name"`
	TotalPaid    float64 `json:"total_paid"`
}

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type SnackQuantity struct {
	Snack    string  `json:"snack"`
	Quantity float64 `json:"quantity"`
}

// DailyRevenue is one row of the merged daily revenue series. Date uses the
// YYYY-MM-DD form the charts plot on the x axis.
type DailyRevenue struct {
	Date          string  `json:"date"`
	Gameplay      float64 `json:"gameplay"`
	Snack         float64 `json:"snack"`
	Snooker       float64 `json:"snooker"`
	TableFootball float64 `json:"table_football"`
	Tournament    float64 `json:"tournament"`
	Total         float64 `json:"total"`
}

type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type AgeBucket struct {
	Low   int `json:"low"`
	High  int `json:"high"`
	Count int `json:"count"`
}

// Report bundles the KPI set with every chart-ready aggregate for one
// filtered view of the dataset.
type Report struct {
	KPIs               KPISet           `json:"kpis"`
	GamePopularity     []GameCount      `json:"game_popularity"`
	TopCustomers       []CustomerSpend  `json:"top_customers"`
	ExpenseBreakdown   []CategoryAmount `json:"expense_breakdown"`
	SnackPopularity    []SnackQuantity  `json:"snack_popularity"`
	DailyRevenue       []DailyRevenue   `json:"daily_revenue"`
	RatingDistribution []RatingCount    `json:"rating_distribution"`
	AgeDistribution    []AgeBucket      `json:"age_distribution"`
}
