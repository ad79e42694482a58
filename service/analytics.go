package service

import (
	"database/sql"
	"fmt"
	"time"
)

// AnalyticsService is read-only reporting over the bills table. It never
// writes and holds no state besides the pool.
type AnalyticsService struct {
	db *sql.DB
}

func NewAnalyticsService(db *sql.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type SalesBucket struct {
	Label      string  `json:"label"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	TotalSales float64 `json:"totalSales"`
}

type PaymentSplit struct {
	PaymentMethod string  `json:"paymentMethod"`
	TotalAmount   float64 `json:"totalAmount"`
}

type PaymentCollection struct {
	TotalDeposit     float64        `json:"totalDeposit"`
	PaymentBreakdown []PaymentSplit `json:"paymentBreakdown"`
}

type ItemCount struct {
	ItemName string `json:"itemName"`
	Week     *int   `json:"week,omitempty"`
	Month    *int   `json:"month,omitempty"`
	TotalQty int    `json:"totalQty"`
}

type CategorySales struct {
	Category   string  `json:"category"`
	TotalSales float64 `json:"totalSales"`
}

type TodayStats struct {
	Sales     float64 `json:"sales"`
	Bills     int     `json:"bills"`
	Customers int     `json:"customers"`
}

type DashboardStats struct {
	TotalSales     float64            `json:"totalSales"`
	Today          TodayStats         `json:"today"`
	PaymentMethods map[string]float64 `json:"paymentMethods"`
	TopItems       []ItemCount        `json:"topItems"`
	MonthlySales   []SalesBucket      `json:"monthlySales"`
	CategorySales  []CategorySales    `json:"categorySales"`
}

// PeriodicSales buckets bill totals by ISO week or calendar month. Week
// numbering (including week 53 around year boundaries) follows ISO 8601,
// which is what Postgres EXTRACT(WEEK) implements.
func (s *AnalyticsService) PeriodicSales(period string) ([]SalesBucket, error) {
	weekly := period != "monthly"

	query := `
		SELECT EXTRACT(ISOYEAR FROM created_at)::int AS year,
		       EXTRACT(WEEK FROM created_at)::int AS bucket,
		       SUM(total_amount),
		       MIN(created_at), MAX(created_at)
		FROM bills
		GROUP BY 1, 2
		ORDER BY 1, 2`
	if !weekly {
		query = `
		SELECT EXTRACT(YEAR FROM created_at)::int AS year,
		       EXTRACT(MONTH FROM created_at)::int AS bucket,
		       SUM(total_amount),
		       MIN(created_at), MAX(created_at)
		FROM bills
		GROUP BY 1, 2
		ORDER BY 1, 2`
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []SalesBucket
	for rows.Next() {
		var year, bucket int
		var total float64
		var start, end time.Time
		if err := rows.Scan(&year, &bucket, &total, &start, &end); err != nil {
			return nil, err
		}

		label := fmt.Sprintf("%d-W%02d", year, bucket)
		if !weekly {
			label = fmt.Sprintf("%s %d", time.Month(bucket).String(), year)
		}

		buckets = append(buckets, SalesBucket{
			Label:      label,
			StartDate:  start.Format("2006-01-02"),
			EndDate:    end.Format("2006-01-02"),
			TotalSales: total,
		})
	}
	return buckets, rows.Err()
}

// PaymentBreakdown sums bills per payment method and returns the grand total
// so callers can compute percentages.
func (s *AnalyticsService) PaymentBreakdown() (*PaymentCollection, error) {
	rows, err := s.db.Query(`
		SELECT payment_method, SUM(total_amount)
		FROM bills
		GROUP BY payment_method
		ORDER BY payment_method`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collection := &PaymentCollection{PaymentBreakdown: []PaymentSplit{}}
	for rows.Next() {
		var split PaymentSplit
		if err := rows.Scan(&split.PaymentMethod, &split.TotalAmount); err != nil {
			return nil, err
		}
		collection.PaymentBreakdown = append(collection.PaymentBreakdown, split)
		collection.TotalDeposit += split.TotalAmount
	}
	return collection, rows.Err()
}

type TopItemsQuery struct {
	Period    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// TopItems flattens bill line items and ranks them by quantity sold. Ties are
// broken by item name ascending so results are deterministic.
func (s *AnalyticsService) TopItems(q TopItemsQuery) ([]ItemCount, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	if q.StartDate != nil && q.EndDate != nil {
		rows, err := s.db.Query(`
			SELECT item->>'name' AS item_name,
			       SUM(COALESCE((item->>'qty')::int, 1)) AS total_qty
			FROM bills, jsonb_array_elements(items) AS item
			WHERE created_at >= $1 AND created_at <= $2
			GROUP BY 1
			ORDER BY total_qty DESC, item_name ASC
			LIMIT $3`, *q.StartDate, *q.EndDate, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var items []ItemCount
		for rows.Next() {
			var item ItemCount
			if err := rows.Scan(&item.ItemName, &item.TotalQty); err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, rows.Err()
	}

	bucketExpr := `EXTRACT(WEEK FROM created_at)::int`
	if q.Period == "monthly" {
		bucketExpr = `EXTRACT(MONTH FROM created_at)::int`
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT item->>'name' AS item_name,
		       %s AS bucket,
		       SUM(COALESCE((item->>'qty')::int, 1)) AS total_qty
		FROM bills, jsonb_array_elements(items) AS item
		GROUP BY 1, 2
		ORDER BY total_qty DESC, item_name ASC
		LIMIT $1`, bucketExpr), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemCount
	for rows.Next() {
		var item ItemCount
		var bucket int
		if err := rows.Scan(&item.ItemName, &bucket, &item.TotalQty); err != nil {
			return nil, err
		}
		if q.Period == "monthly" {
			item.Month = &bucket
		} else {
			item.Week = &bucket
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *AnalyticsService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{PaymentMethods: map[string]float64{}}

	if err := s.db.QueryRow(`SELECT COALESCE(SUM(total_amount), 0) FROM bills`).
		Scan(&stats.TotalSales); err != nil {
		return nil, err
	}

	if err := s.db.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0),
		       COUNT(*),
		       COUNT(DISTINCT NULLIF(customer_phone, ''))
		FROM bills
		WHERE created_at >= date_trunc('day', now())
		  AND created_at < date_trunc('day', now()) + interval '1 day'`).
		Scan(&stats.Today.Sales, &stats.Today.Bills, &stats.Today.Customers); err != nil {
		return nil, err
	}

	split, err := s.PaymentBreakdown()
	if err != nil {
		return nil, err
	}
	for _, p := range split.PaymentBreakdown {
		stats.PaymentMethods[p.PaymentMethod] = p.TotalAmount
	}

	stats.TopItems, err = s.topItemsCurrentWeek(5)
	if err != nil {
		return nil, err
	}

	stats.MonthlySales, err = s.monthlySalesTrend(12)
	if err != nil {
		return nil, err
	}

	stats.CategorySales, err = s.categorySales()
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AnalyticsService) topItemsCurrentWeek(limit int) ([]ItemCount, error) {
	rows, err := s.db.Query(`
		SELECT item->>'name' AS item_name,
		       EXTRACT(WEEK FROM created_at)::int AS bucket,
		       SUM(COALESCE((item->>'qty')::int, 1)) AS total_qty
		FROM bills, jsonb_array_elements(items) AS item
		WHERE EXTRACT(ISOYEAR FROM created_at) = EXTRACT(ISOYEAR FROM now())
		  AND EXTRACT(WEEK FROM created_at) = EXTRACT(WEEK FROM now())
		GROUP BY 1, 2
		ORDER BY total_qty DESC, item_name ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemCount
	for rows.Next() {
		var item ItemCount
		var bucket int
		if err := rows.Scan(&item.ItemName, &bucket, &item.TotalQty); err != nil {
			return nil, err
		}
		item.Week = &bucket
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *AnalyticsService) monthlySalesTrend(months int) ([]SalesBucket, error) {
	rows, err := s.db.Query(`
		SELECT EXTRACT(YEAR FROM created_at)::int AS year,
		       EXTRACT(MONTH FROM created_at)::int AS month,
		       SUM(total_amount),
		       MIN(created_at), MAX(created_at)
		FROM bills
		WHERE created_at >= date_trunc('month', now()) - ($1 - 1) * interval '1 month'
		GROUP BY 1, 2
		ORDER BY 1, 2`, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []SalesBucket
	for rows.Next() {
		var year, month int
		var total float64
		var start, end time.Time
		if err := rows.Scan(&year, &month, &total, &start, &end); err != nil {
			return nil, err
		}
		buckets = append(buckets, SalesBucket{
			Label:      fmt.Sprintf("%s %d", time.Month(month).String(), year),
			StartDate:  start.Format("2006-01-02"),
			EndDate:    end.Format("2006-01-02"),
			TotalSales: total,
		})
	}
	return buckets, rows.Err()
}

func (s *AnalyticsService) categorySales() ([]CategorySales, error) {
	rows, err := s.db.Query(`
		SELECT COALESCE(NULLIF(item->>'category', ''), 'Uncategorized') AS category,
		       SUM((item->>'price')::numeric * COALESCE((item->>'qty')::int, 1))
		FROM bills, jsonb_array_elements(items) AS item
		GROUP BY 1
		ORDER BY 2 DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []CategorySales
	for rows.Next() {
		var c CategorySales
		if err := rows.Scan(&c.Category, &c.TotalSales); err != nil {
			return nil, err
		}
		sales = append(sales, c)
	}
	return sales, rows.Err()
}
