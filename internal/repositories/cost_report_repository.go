package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ops-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CostReportRepository struct {
	DB *pgxpool.Pool
}

func NewCostReportRepository(db *pgxpool.Pool) *CostReportRepository {
	return &CostReportRepository{DB: db}
}

const reportColumns = `id, report_number, project_id, project_name, revenue, categories,
	estimated_cost, actual_cost, variance, variance_percent, profit, profit_margin,
	status, remarks, created_at, updated_at`

func scanReport(row pgx.Row) (*models.CostReport, error) {
	var report models.CostReport
	var blob []byte
	err := row.Scan(&report.ID, &report.ReportNumber, &report.ProjectID,
		&report.ProjectName, &report.Revenue, &blob, &report.EstimatedCost,
		&report.ActualCost, &report.Variance, &report.VariancePercent,
		&report.Profit, &report.ProfitMargin, &report.Status, &report.Remarks,
		&report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	report.Categories, err = models.ParseCategories(blob)
	if err != nil {
		return nil, fmt.Errorf("cost report %d: malformed categories blob: %w", report.ID, err)
	}
	return &report, nil
}

// Get retrieves a cost report by id, normalizing the categories blob.
func (r *CostReportRepository) Get(ctx context.Context, id int) (*models.CostReport, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+reportColumns+` FROM cost_reports WHERE id = $1`, id)
	return scanReport(row)
}

// List returns all cost reports, newest first.
func (r *CostReportRepository) List(ctx context.Context) ([]*models.CostReport, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+reportColumns+` FROM cost_reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.CostReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// UpdateSnapshot writes the categories blob and every derived scalar in one
// transaction, all-or-nothing.
func (r *CostReportRepository) UpdateSnapshot(ctx context.Context, report *models.CostReport) error {
	blob, err := json.Marshal(report.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE cost_reports
		 SET revenue = $2, categories = $3, estimated_cost = $4, actual_cost = $5,
		     variance = $6, variance_percent = $7, profit = $8, profit_margin = $9,
		     status = $10, remarks = $11, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		report.ID, report.Revenue, blob, report.EstimatedCost, report.ActualCost,
		report.Variance, report.VariancePercent, report.Profit,
		report.ProfitMargin, report.Status, report.Remarks,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return tx.Commit(ctx)
}
