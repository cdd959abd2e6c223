package service

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/rental-admin/internal/metrics"
	"github.com/iliyamo/rental-admin/internal/model"
	"github.com/iliyamo/rental-admin/internal/repository"
)

// AnalyticsStore is the slice of repository.AnalyticsRepo behind the
// dashboard.
type AnalyticsStore interface {
	TopRentedFilms(ctx context.Context, limit int) ([]repository.FilmRentals, error)
	TopGrossingFilms(ctx context.Context, limit int) ([]repository.FilmRevenue, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	MonthlyRevenue(ctx context.Context) ([]repository.MonthRevenue, error)
	FilmsByCategoryLanguage(ctx context.Context) ([]repository.CategoryLanguageFilms, error)
	CustomersByCategory(ctx context.Context) ([]repository.CategoryCustomers, error)
	CustomerCount(ctx context.Context) (int64, error)
	RevenueByCategory(ctx context.Context) ([]repository.CategoryRevenue, error)
}

// AnalyticsService shapes aggregate query results into chart payloads.
// Currency sums are rounded to cents after summing, never before.
type AnalyticsService struct {
	store AnalyticsStore
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

var hundred = decimal.NewFromInt(100)

// Dashboard runs every chart in turn.  The first failing chart aborts the
// whole dashboard; there is no partial result.
func (s *AnalyticsService) Dashboard(ctx context.Context) (model.Dashboard, error) {
	var (
		d   model.Dashboard
		err error
	)
	if d.BarChart, err = observe("bar", s.RentalBarChart)(ctx); err != nil {
		return model.Dashboard{}, err
	}
	if d.PieChart, err = observe("pie", s.RevenuePieChart)(ctx); err != nil {
		return model.Dashboard{}, err
	}
	if d.LineChart, err = observe("line", s.RevenueLineChart)(ctx); err != nil {
		return model.Dashboard{}, err
	}
	if d.ClusteredChart, err = observe("clustered_bar", s.FilmMatrixChart)(ctx); err != nil {
		return model.Dashboard{}, err
	}
	if d.DonutChart, err = observe("donut", s.CustomerDonutChart)(ctx); err != nil {
		return model.Dashboard{}, err
	}
	if d.ScatterPlot, err = observe("scatter", s.CategoryScatterChart)(ctx); err != nil {
		return model.Dashboard{}, err
	}
	return d, nil
}

func observe[T any](chart string, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		v, err := fn(ctx)
		metrics.ChartQueries.WithLabelValues(chart, metrics.Outcome(err)).Inc()
		return v, err
	}
}

// RentalBarChart lists the most rented films with their revenue.
func (s *AnalyticsService) RentalBarChart(ctx context.Context) (model.RentalBarChart, error) {
	rows, err := s.store.TopRentedFilms(ctx, repository.TopFilms)
	if err != nil {
		return model.RentalBarChart{}, err
	}
	c := model.RentalBarChart{
		Titles:        make([]string, 0, len(rows)),
		RentalCounts:  make([]int64, 0, len(rows)),
		TotalRevenues: make([]float64, 0, len(rows)),
	}
	for _, r := range rows {
		c.Titles = append(c.Titles, r.Title)
		c.RentalCounts = append(c.RentalCounts, r.Rentals)
		c.TotalRevenues = append(c.TotalRevenues, roundCents(r.Revenue))
	}
	return c, nil
}

// RevenuePieChart lists the highest grossing films and each film's share of
// all payments.
func (s *AnalyticsService) RevenuePieChart(ctx context.Context) (model.RevenuePieChart, error) {
	rows, err := s.store.TopGrossingFilms(ctx, repository.TopFilms)
	if err != nil {
		return model.RevenuePieChart{}, err
	}
	total, err := s.store.TotalRevenue(ctx)
	if err != nil {
		return model.RevenuePieChart{}, err
	}
	c := model.RevenuePieChart{
		Titles:        make([]string, 0, len(rows)),
		TotalRevenues: make([]float64, 0, len(rows)),
		Percentages:   make([]string, 0, len(rows)),
	}
	for _, r := range rows {
		c.Titles = append(c.Titles, r.Title)
		c.TotalRevenues = append(c.TotalRevenues, roundCents(r.Revenue))
		c.Percentages = append(c.Percentages, formatPercent(r.Revenue, total))
	}
	return c, nil
}

// RevenueLineChart lists revenue per month in chronological order.
func (s *AnalyticsService) RevenueLineChart(ctx context.Context) (model.RevenueLineChart, error) {
	rows, err := s.store.MonthlyRevenue(ctx)
	if err != nil {
		return model.RevenueLineChart{}, err
	}
	c := model.RevenueLineChart{
		Months:        make([]string, 0, len(rows)),
		TotalRevenues: make([]float64, 0, len(rows)),
	}
	for _, r := range rows {
		c.Months = append(c.Months, r.Month)
		c.TotalRevenues = append(c.TotalRevenues, roundCents(r.Revenue))
	}
	return c, nil
}

// FilmMatrixChart counts films per category and language.
func (s *AnalyticsService) FilmMatrixChart(ctx context.Context) (model.FilmMatrixChart, error) {
	rows, err := s.store.FilmsByCategoryLanguage(ctx)
	if err != nil {
		return model.FilmMatrixChart{}, err
	}
	return buildFilmMatrix(rows), nil
}

// buildFilmMatrix pivots (category, language, count) rows into a matrix.
// Categories keep the order they are first seen in, languages are sorted,
// and pairs without a row are zero.
func buildFilmMatrix(rows []repository.CategoryLanguageFilms) model.FilmMatrixChart {
	counts := make(map[string]map[string]int64)
	categories := []string{}
	languages := []string{}
	seenLang := make(map[string]bool)

	for _, r := range rows {
		if !seenLang[r.Language] {
			seenLang[r.Language] = true
			languages = append(languages, r.Language)
		}
		byLang, ok := counts[r.Category]
		if !ok {
			byLang = make(map[string]int64)
			counts[r.Category] = byLang
			categories = append(categories, r.Category)
		}
		byLang[r.Language] = r.Films
	}
	slices.Sort(languages)

	data := make([][]int64, 0, len(categories))
	for _, cat := range categories {
		row := make([]int64, len(languages))
		for i, lang := range languages {
			row[i] = counts[cat][lang]
		}
		data = append(data, row)
	}
	return model.FilmMatrixChart{Categories: categories, Languages: languages, Data: data}
}

// CustomerDonutChart counts distinct renting customers per category and
// their share of the whole customer base.
func (s *AnalyticsService) CustomerDonutChart(ctx context.Context) (model.CustomerDonutChart, error) {
	rows, err := s.store.CustomersByCategory(ctx)
	if err != nil {
		return model.CustomerDonutChart{}, err
	}
	total, err := s.store.CustomerCount(ctx)
	if err != nil {
		return model.CustomerDonutChart{}, err
	}
	c := model.CustomerDonutChart{
		Categories:     make([]string, 0, len(rows)),
		CustomerCounts: make([]int64, 0, len(rows)),
		Percentages:    make([]float64, 0, len(rows)),
	}
	for _, r := range rows {
		c.Categories = append(c.Categories, r.Category)
		c.CustomerCounts = append(c.CustomerCounts, r.Customers)
		c.Percentages = append(c.Percentages, customerShare(r.Customers, total))
	}
	return c, nil
}

// CategoryScatterChart compares rentals and revenue per category.
func (s *AnalyticsService) CategoryScatterChart(ctx context.Context) (model.CategoryScatterChart, error) {
	rows, err := s.store.RevenueByCategory(ctx)
	if err != nil {
		return model.CategoryScatterChart{}, err
	}
	c := model.CategoryScatterChart{
		Categories:           make([]string, 0, len(rows)),
		RentalCounts:         make([]int64, 0, len(rows)),
		TotalRevenues:        make([]float64, 0, len(rows)),
		AvgRevenuePerRentals: make([]float64, 0, len(rows)),
	}
	for _, r := range rows {
		c.Categories = append(c.Categories, r.Category)
		c.RentalCounts = append(c.RentalCounts, r.Rentals)
		c.TotalRevenues = append(c.TotalRevenues, roundCents(r.Revenue))
		c.AvgRevenuePerRentals = append(c.AvgRevenuePerRentals, avgPerRental(r.Revenue, r.Rentals))
	}
	return c, nil
}

func roundCents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// formatPercent renders part/total as "N.NN%".  A zero total renders "0.00%".
func formatPercent(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.00%"
	}
	return part.Div(total).Mul(hundred).Round(2).StringFixed(2) + "%"
}

func customerShare(customers, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(customers).Div(decimal.NewFromInt(total)).Mul(hundred).Round(2).InexactFloat64()
}

// avgPerRental divides the cent-rounded revenue by the rental count.
func avgPerRental(revenue decimal.Decimal, rentals int64) float64 {
	if rentals <= 0 {
		return 0
	}
	return revenue.Round(2).Div(decimal.NewFromInt(rentals)).Round(2).InexactFloat64()
}
