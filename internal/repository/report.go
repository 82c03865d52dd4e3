package repository

import (
	"context"
	"database/sql"

	"github.com/civicreport/civicreport-go/internal/model"
)

// ReportRepository handles report persistence operations.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new report. The creation timestamp is assigned by the
// store; the generated ID is set on the report struct.
func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	query := `INSERT INTO reports (photo_path, location, description) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, report.PhotoPath, report.Location, report.Description)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	report.ID = id
	return nil
}

// ListNewestFirst retrieves all reports ordered by creation time descending.
// The id tiebreaker keeps same-second inserts in insertion order.
func (r *ReportRepository) ListNewestFirst(ctx context.Context) ([]model.Report, error) {
	query := `SELECT id, photo_path, location, description, created_at
		FROM reports ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(
			&rep.ID, &rep.PhotoPath, &rep.Location, &rep.Description, &rep.CreatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, rows.Err()
}
