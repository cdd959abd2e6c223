package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// TopFilms is how many films the per-film charts show.
const TopFilms = 10

// FilmRentals is one film's rental count and summed payments.
type FilmRentals struct {
	Title   string
	Rentals int64
	Revenue decimal.Decimal
}

// FilmRevenue is one film's summed payments.
type FilmRevenue struct {
	Title   string
	Revenue decimal.Decimal
}

// MonthRevenue is the payments received in one "YYYY-MM" month.
type MonthRevenue struct {
	Month   string
	Revenue decimal.Decimal
}

// CategoryLanguageFilms counts films of one category in one language.
type CategoryLanguageFilms struct {
	Category string
	Language string
	Films    int64
}

// CategoryCustomers counts distinct customers who rented a category.
type CategoryCustomers struct {
	Category  string
	Customers int64
}

// CategoryRevenue is rentals and summed payments for one category.
type CategoryRevenue struct {
	Category string
	Rentals  int64
	Revenue  decimal.Decimal
}

// AnalyticsRepo runs the read-only aggregate queries behind the films
// dashboard.  Sums are returned unrounded; callers round after summing.
// Secondary ORDER BY keys only make ties deterministic.
type AnalyticsRepo struct {
	db *sql.DB
}

func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

const qTopRentedFilms = `SELECT film.title,
       COUNT(rental.rental_id) AS rental_count,
       COALESCE(SUM(payment.amount), 0) AS total_revenue
FROM rental
INNER JOIN inventory ON rental.inventory_id = inventory.inventory_id
INNER JOIN film ON inventory.film_id = film.film_id
INNER JOIN payment ON rental.rental_id = payment.rental_id
GROUP BY film.title
ORDER BY rental_count DESC, film.title ASC
LIMIT ?`

// TopRentedFilms returns the most rented films by rental count.
func (r *AnalyticsRepo) TopRentedFilms(ctx context.Context, limit int) ([]FilmRentals, error) {
	rows, err := r.db.QueryContext(ctx, qTopRentedFilms, limit)
	if err != nil {
		return nil, fmt.Errorf("top rented films: %w", err)
	}
	defer rows.Close()

	var out []FilmRentals
	for rows.Next() {
		var f FilmRentals
		if err := rows.Scan(&f.Title, &f.Rentals, &f.Revenue); err != nil {
			return nil, fmt.Errorf("top rented films: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

const qTopGrossingFilms = `SELECT film.title,
       SUM(payment.amount) AS total_revenue
FROM payment
INNER JOIN rental ON payment.rental_id = rental.rental_id
INNER JOIN inventory ON rental.inventory_id = inventory.inventory_id
INNER JOIN film ON inventory.film_id = film.film_id
GROUP BY film.title
ORDER BY ROUND(SUM(payment.amount), 2) DESC, film.title ASC
LIMIT ?`

// TopGrossingFilms returns the films with the highest summed payments.  Films
// are ranked by their sum rounded to cents, so sums equal at cent precision
// tie and fall back to title order.
func (r *AnalyticsRepo) TopGrossingFilms(ctx context.Context, limit int) ([]FilmRevenue, error) {
	rows, err := r.db.QueryContext(ctx, qTopGrossingFilms, limit)
	if err != nil {
		return nil, fmt.Errorf("top grossing films: %w", err)
	}
	defer rows.Close()

	var out []FilmRevenue
	for rows.Next() {
		var f FilmRevenue
		if err := rows.Scan(&f.Title, &f.Revenue); err != nil {
			return nil, fmt.Errorf("top grossing films: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// TotalRevenue sums every payment.  An empty payment table yields zero.
func (r *AnalyticsRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(amount), 0) FROM payment").Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total revenue: %w", err)
	}
	return total, nil
}

const qMonthlyRevenue = `SELECT DATE_FORMAT(payment.payment_date, '%Y-%m') AS month,
       SUM(payment.amount) AS total_revenue
FROM payment
GROUP BY month
ORDER BY month`

// MonthlyRevenue returns payments grouped by calendar month, oldest first.
func (r *AnalyticsRepo) MonthlyRevenue(ctx context.Context) ([]MonthRevenue, error) {
	rows, err := r.db.QueryContext(ctx, qMonthlyRevenue)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	var out []MonthRevenue
	for rows.Next() {
		var m MonthRevenue
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			return nil, fmt.Errorf("monthly revenue: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

const qFilmsByCategoryLanguage = `SELECT category.name AS category_name,
       language.name AS language_name,
       COUNT(film.film_id) AS film_count
FROM film
INNER JOIN film_category ON film.film_id = film_category.film_id
INNER JOIN category ON film_category.category_id = category.category_id
INNER JOIN language ON film.language_id = language.language_id
GROUP BY category.name, language.name
ORDER BY film_count DESC, category_name ASC, language_name ASC`

// FilmsByCategoryLanguage counts films per (category, language) pair,
// largest groups first.
func (r *AnalyticsRepo) FilmsByCategoryLanguage(ctx context.Context) ([]CategoryLanguageFilms, error) {
	rows, err := r.db.QueryContext(ctx, qFilmsByCategoryLanguage)
	if err != nil {
		return nil, fmt.Errorf("films by category and language: %w", err)
	}
	defer rows.Close()

	var out []CategoryLanguageFilms
	for rows.Next() {
		var c CategoryLanguageFilms
		if err := rows.Scan(&c.Category, &c.Language, &c.Films); err != nil {
			return nil, fmt.Errorf("films by category and language: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const qCustomersByCategory = `SELECT category.name AS category_name,
       COUNT(DISTINCT customer.customer_id) AS customer_count
FROM customer
INNER JOIN rental ON customer.customer_id = rental.customer_id
INNER JOIN inventory ON rental.inventory_id = inventory.inventory_id
INNER JOIN film ON inventory.film_id = film.film_id
INNER JOIN film_category ON film.film_id = film_category.film_id
INNER JOIN category ON film_category.category_id = category.category_id
GROUP BY category.name
ORDER BY customer_count DESC, category_name ASC`

// CustomersByCategory counts distinct renting customers per category.
func (r *AnalyticsRepo) CustomersByCategory(ctx context.Context) ([]CategoryCustomers, error) {
	rows, err := r.db.QueryContext(ctx, qCustomersByCategory)
	if err != nil {
		return nil, fmt.Errorf("customers by category: %w", err)
	}
	defer rows.Close()

	var out []CategoryCustomers
	for rows.Next() {
		var c CategoryCustomers
		if err := rows.Scan(&c.Category, &c.Customers); err != nil {
			return nil, fmt.Errorf("customers by category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CustomerCount counts the whole customer base.
func (r *AnalyticsRepo) CustomerCount(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT customer_id) FROM customer").Scan(&n); err != nil {
		return 0, fmt.Errorf("customer count: %w", err)
	}
	return n, nil
}

const qRevenueByCategory = `SELECT category.name AS category_name,
       COUNT(rental.rental_id) AS rental_count,
       SUM(payment.amount) AS total_revenue
FROM category
INNER JOIN film_category ON category.category_id = film_category.category_id
INNER JOIN film ON film_category.film_id = film.film_id
INNER JOIN inventory ON film.film_id = inventory.film_id
INNER JOIN rental ON inventory.inventory_id = rental.inventory_id
INNER JOIN payment ON rental.rental_id = payment.rental_id
GROUP BY category.name
ORDER BY total_revenue DESC, category_name ASC`

// RevenueByCategory returns rentals and summed payments per category,
// highest revenue first.
func (r *AnalyticsRepo) RevenueByCategory(ctx context.Context) ([]CategoryRevenue, error) {
	rows, err := r.db.QueryContext(ctx, qRevenueByCategory)
	if err != nil {
		return nil, fmt.Errorf("revenue by category: %w", err)
	}
	defer rows.Close()

	var out []CategoryRevenue
	for rows.Next() {
		var c CategoryRevenue
		if err := rows.Scan(&c.Category, &c.Rentals, &c.Revenue); err != nil {
			return nil, fmt.Errorf("revenue by category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
