package repository

import (
	"database/sql"
	"fmt"

	"campusccms/models"
)

// ReportPeriod selects the bucketing for complaint-volume reports
type ReportPeriod string

const (
	PeriodWeekly    ReportPeriod = "weekly"
	PeriodMonthly   ReportPeriod = "monthly"
	PeriodQuarterly ReportPeriod = "quarterly"
)

// ReportRepository handles aggregate queries for admin reports. It only
// projects counts; file export formatting is out of scope.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// CountByCategory returns complaint counts per category including empty
// categories, highest count first.
func (r *ReportRepository) CountByCategory() ([]models.CategoryCount, error) {
	rows, err := r.db.Query(`
		SELECT cc.name, COUNT(c.complaint_id)
		FROM complaint_categories cc
		LEFT JOIN complaints c ON cc.category_id = c.category_id
		GROUP BY cc.category_id, cc.name
		ORDER BY COUNT(c.complaint_id) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	var counts []models.CategoryCount
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}
	return counts, nil
}

// CountByPeriod returns complaint counts bucketed by week, month, or
// quarter, most recent 12 buckets first. Unknown periods fall back to
// monthly.
func (r *ReportRepository) CountByPeriod(period ReportPeriod) ([]models.PeriodCount, error) {
	var bucket string
	switch period {
	case PeriodWeekly:
		bucket = "WEEK(created_at)"
	case PeriodQuarterly:
		bucket = "QUARTER(created_at)"
	default:
		bucket = "MONTH(created_at)"
	}

	query := fmt.Sprintf(`
		SELECT YEAR(created_at), %s, COUNT(*)
		FROM complaints
		GROUP BY YEAR(created_at), %s
		ORDER BY YEAR(created_at) DESC, %s DESC
		LIMIT 12
	`, bucket, bucket, bucket)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query period counts: %w", err)
	}
	defer rows.Close()

	var counts []models.PeriodCount
	for rows.Next() {
		var c models.PeriodCount
		if err := rows.Scan(&c.Year, &c.Period, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan period count: %w", err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period counts: %w", err)
	}
	return counts, nil
}
