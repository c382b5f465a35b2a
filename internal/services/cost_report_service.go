package services

import (
	"context"
	"encoding/json"

	"ops-backend/internal/cache"
	"ops-backend/internal/calc"
	"ops-backend/internal/metrics"
	"ops-backend/internal/models"
)

// CostReportStore is what the cost report service needs from persistence.
type CostReportStore interface {
	Get(ctx context.Context, id int) (*models.CostReport, error)
	List(ctx context.Context) ([]*models.CostReport, error)
	UpdateSnapshot(ctx context.Context, report *models.CostReport) error
}

// ProjectSourceStore provides the authoritative project records that feed the
// estimated side of a recalculation.
type ProjectSourceStore interface {
	Source(ctx context.Context, projectID int) (*models.ProjectSource, error)
}

type CostReportService struct {
	Repo     CostReportStore
	Projects ProjectSourceStore
}

func NewCostReportService(repo CostReportStore, projects ProjectSourceStore) *CostReportService {
	return &CostReportService{Repo: repo, Projects: projects}
}

// GetReport serves a cost report, cache first.
func (s *CostReportService) GetReport(ctx context.Context, id int) (*models.CostReport, error) {
	if data, ok := cache.GetSnapshot(ctx, cache.ReportKey(id)); ok {
		var report models.CostReport
		if err := json.Unmarshal(data, &report); err == nil {
			decorateReport(&report)
			return &report, nil
		}
	}

	report, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheReport(ctx, report)
	decorateReport(report)
	return report, nil
}

// ListReports returns all cost reports with display classifications attached.
func (s *CostReportService) ListReports(ctx context.Context) ([]*models.CostReport, error) {
	reports, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, report := range reports {
		decorateReport(report)
	}
	return reports, nil
}

// UpdateReport applies a manual edit of actual costs. Only actuals, status and
// remarks are writable here; estimated values never change on this path. All
// derived fields are recomputed server-side before the snapshot is persisted.
func (s *CostReportService) UpdateReport(ctx context.Context, id int, req *models.UpdateCostReportRequest) (*models.CostReport, error) {
	report, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for i, c := range report.Categories {
		if actual, ok := req.Actuals[c.Name]; ok {
			report.Categories[i].Actual = actual
		}
	}
	if req.Status != "" {
		report.Status = req.Status
	}
	if req.Remarks != "" {
		report.Remarks = req.Remarks
	}

	applyReportTotals(report)

	if err := s.Repo.UpdateSnapshot(ctx, report); err != nil {
		return nil, err
	}

	cacheReport(ctx, report)
	decorateReport(report)
	return report, nil
}

// Recalculate re-derives every category estimate from the current project
// records. User-entered actuals are carried forward unchanged unless the
// caller explicitly asks for a reset, in which case actuals are refreshed to
// the new estimates. Nothing is written until the merge and rollup succeed.
func (s *CostReportService) Recalculate(ctx context.Context, id int, resetActuals bool) (*models.CostReport, error) {
	report, err := s.Repo.Get(ctx, id)
	if err != nil {
		metrics.RecalculationsTotal.WithLabelValues("cost_report", "error").Inc()
		return nil, err
	}

	src, err := s.Projects.Source(ctx, report.ProjectID)
	if err != nil {
		metrics.RecalculationsTotal.WithLabelValues("cost_report", "error").Inc()
		return nil, err
	}

	estimates := DeriveEstimates(src)
	previous := make(map[string]models.FlexFloat, len(report.Categories))
	for _, c := range report.Categories {
		previous[c.Name] = c.Actual
	}

	merged := make([]models.CostCategory, 0, len(models.CategoryNames))
	for _, name := range models.CategoryNames {
		estimated := estimates[name]
		actual := previous[name]
		if resetActuals {
			actual = models.FlexFloat(estimated)
		}
		merged = append(merged, models.CostCategory{
			Name:      name,
			Estimated: models.FlexFloat(estimated),
			Actual:    actual,
		})
	}

	report.Categories = merged
	report.Revenue = src.Project.ContractValue
	applyReportTotals(report)

	if err := s.Repo.UpdateSnapshot(ctx, report); err != nil {
		metrics.RecalculationsTotal.WithLabelValues("cost_report", "error").Inc()
		return nil, err
	}

	metrics.RecalculationsTotal.WithLabelValues("cost_report", "ok").Inc()
	cacheReport(ctx, report)
	decorateReport(report)
	return report, nil
}

// DeriveEstimates aggregates the project's crew, transport, material and
// equipment allocations into the six fixed category estimates. Overhead and
// other come straight off the project record.
func DeriveEstimates(src *models.ProjectSource) map[string]float64 {
	estimates := make(map[string]float64, len(models.CategoryNames))

	for _, c := range src.Crew {
		estimates[models.CategoryLabor] += float64(c.Headcount) * c.DayRate * c.Days
	}
	for _, t := range src.Transport {
		estimates[models.CategoryTransport] += float64(t.Trips) * t.RatePerTrip
	}
	for _, m := range src.Materials {
		estimates[models.CategoryMaterial] += m.Quantity * m.UnitCost
	}
	for _, e := range src.Equipment {
		estimates[models.CategoryEquipment] += float64(e.Units) * e.DayRate * e.Days
	}
	estimates[models.CategoryOverhead] = src.Project.OverheadEstimate
	estimates[models.CategoryOther] = src.Project.OtherEstimate

	return estimates
}

func applyReportTotals(report *models.CostReport) {
	report.Categories = calc.ComputeCategories(report.Categories)
	totals := calc.ComputeReportTotals(report.Categories, report.Revenue)
	report.EstimatedCost = totals.EstimatedCost
	report.ActualCost = totals.ActualCost
	report.Variance = totals.Variance
	report.VariancePercent = totals.VariancePercent
	report.Profit = totals.Profit
	report.ProfitMargin = totals.ProfitMargin
}

func cacheReport(ctx context.Context, report *models.CostReport) {
	if data, err := json.Marshal(report); err == nil {
		cache.ReplaceSnapshot(ctx, cache.ReportKey(report.ID), data)
	}
}

func decorateReport(report *models.CostReport) {
	report.BudgetStatus = calc.BudgetStatus(report.Variance)
	report.MarginRating = calc.MarginRating(report.ProfitMargin)
}
