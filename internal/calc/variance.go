package calc

import "ops-backend/internal/models"

// zeroPercentFallback lists the categories that report 0% rather than the
// "N/A" sentinel when their estimate is zero. The asymmetry is inherited from
// the original report design and is kept as an explicit policy table; do not
// unify without a product decision.
var zeroPercentFallback = map[string]bool{
	models.CategoryLabor:     true,
	models.CategoryTransport: true,
}

// CategoryVariance derives one category's variance against its estimate.
func CategoryVariance(name string, estimated, actual float64) (float64, models.VariancePct) {
	variance := actual - estimated

	if estimated > 0 {
		return variance, models.Pct((variance / estimated) * 100)
	}
	if zeroPercentFallback[name] {
		return variance, models.Pct(0)
	}
	return variance, models.PctNA()
}

// ComputeCategories returns a fresh category list with derived fields
// recomputed. The input is never mutated.
func ComputeCategories(categories []models.CostCategory) []models.CostCategory {
	out := make([]models.CostCategory, len(categories))
	for i, c := range categories {
		c.Variance, c.VariancePercent = CategoryVariance(c.Name, c.Estimated.Float64(), c.Actual.Float64())
		out[i] = c
	}
	return out
}

// ReportTotals is the report-level rollup of a cost report.
type ReportTotals struct {
	EstimatedCost   float64
	ActualCost      float64
	Variance        float64
	VariancePercent float64
	Profit          float64
	ProfitMargin    float64
}

// ComputeReportTotals rolls the six categories up against the revenue. Zero
// estimated cost and zero revenue both guard their divisions to 0%.
func ComputeReportTotals(categories []models.CostCategory, revenue float64) ReportTotals {
	var totals ReportTotals
	for _, c := range categories {
		totals.EstimatedCost += c.Estimated.Float64()
		totals.ActualCost += c.Actual.Float64()
	}

	totals.Variance = totals.ActualCost - totals.EstimatedCost
	if totals.EstimatedCost > 0 {
		totals.VariancePercent = (totals.Variance / totals.EstimatedCost) * 100
	}

	totals.Profit = revenue - totals.ActualCost
	if revenue > 0 {
		totals.ProfitMargin = (totals.Profit / revenue) * 100
	}

	return totals
}
