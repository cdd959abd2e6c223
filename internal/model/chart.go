package model

// Chart payloads are parallel arrays: index i of every slice in a payload
// describes the same bar, slice or point.  They are consumed as-is by the
// dashboard's chart scripts.

// RentalBarChart holds the ten most rented films.
type RentalBarChart struct {
	Titles        []string  `json:"titles"`
	RentalCounts  []int64   `json:"rental_counts"`
	TotalRevenues []float64 `json:"total_revenues"`
}

// RevenuePieChart holds the ten highest grossing films and their share of
// all payments.  Percentages are preformatted as "N.NN%".
type RevenuePieChart struct {
	Titles        []string  `json:"titles"`
	TotalRevenues []float64 `json:"total_revenues"`
	Percentages   []string  `json:"percentages"`
}

// RevenueLineChart holds revenue per calendar month, oldest first.
type RevenueLineChart struct {
	Months        []string  `json:"months"`
	TotalRevenues []float64 `json:"total_revenues"`
}

// FilmMatrixChart counts films per (category, language).  Data has one row per
// category and one column per language; missing pairs are zero.
type FilmMatrixChart struct {
	Categories []string  `json:"categories"`
	Languages  []string  `json:"languages"`
	Data       [][]int64 `json:"data"`
}

// CustomerDonutChart counts distinct renting customers per category.
type CustomerDonutChart struct {
	Categories     []string  `json:"categories"`
	CustomerCounts []int64   `json:"customer_counts"`
	Percentages    []float64 `json:"percentages"`
}

// CategoryScatterChart compares revenue and rentals per category.
type CategoryScatterChart struct {
	Categories           []string  `json:"categories"`
	RentalCounts         []int64   `json:"rental_counts"`
	TotalRevenues        []float64 `json:"total_revenues"`
	AvgRevenuePerRentals []float64 `json:"avg_revenue_per_rentals"`
}

// Dashboard bundles the six chart payloads rendered on the films dashboard.
type Dashboard struct {
	BarChart       RentalBarChart       `json:"bar_chart_data"`
	PieChart       RevenuePieChart      `json:"pie_chart_data"`
	LineChart      RevenueLineChart     `json:"line_chart_data"`
	ClusteredChart FilmMatrixChart      `json:"clustered_bar_chart_data"`
	DonutChart     CustomerDonutChart   `json:"donut_chart_data"`
	ScatterPlot    CategoryScatterChart `json:"scatter_plot_data"`
}
