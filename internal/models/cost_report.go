package models

import (
	"encoding/json"
	"time"
)

// Cost report statuses.
const (
	ReportStatusDraft      = "draft"
	ReportStatusInProgress = "in_progress"
	ReportStatusCompleted  = "completed"
)

// The six fixed cost categories. Every report carries exactly these, in this
// order.
const (
	CategoryLabor     = "labor"
	CategoryTransport = "transport"
	CategoryMaterial  = "material"
	CategoryEquipment = "equipment"
	CategoryOverhead  = "overhead"
	CategoryOther     = "other"
)

// CategoryNames is the canonical category order for display and storage.
var CategoryNames = []string{
	CategoryLabor,
	CategoryTransport,
	CategoryMaterial,
	CategoryEquipment,
	CategoryOverhead,
	CategoryOther,
}

// CostCategory pairs an estimated cost (derived from project data) with the
// user-entered actual. Variance and VariancePercent are derived.
type CostCategory struct {
	Name            string      `json:"name"`
	Estimated       FlexFloat   `json:"estimated"`
	Actual          FlexFloat   `json:"actual"`
	Variance        float64     `json:"variance"`
	VariancePercent VariancePct `json:"variance_percent"`
}

// CostReport tracks estimated vs actual spend for a project. The scalar
// rollup fields are a cache of the categories blob's aggregation.
type CostReport struct {
	ID              int            `json:"id"`
	ReportNumber    string         `json:"report_number"`
	ProjectID       int            `json:"project_id"`
	ProjectName     string         `json:"project_name"`
	Revenue         float64        `json:"revenue"`
	Categories      []CostCategory `json:"categories"`
	EstimatedCost   float64        `json:"estimated_cost"`
	ActualCost      float64        `json:"actual_cost"`
	Variance        float64        `json:"variance"`
	VariancePercent float64        `json:"variance_percent"`
	BudgetStatus    string         `json:"budget_status,omitempty"` // derived for display, never persisted
	Profit          float64        `json:"profit"`
	ProfitMargin    float64        `json:"profit_margin"`
	MarginRating    string         `json:"margin_rating,omitempty"` // derived for display, never persisted
	Status          string         `json:"status"`
	Remarks         string         `json:"remarks"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// UpdateCostReportRequest carries a manual edit of actual costs. Estimated
// values are not editable here; they only change through a recalculate.
type UpdateCostReportRequest struct {
	Actuals map[string]FlexFloat `json:"actuals"`
	Status  string               `json:"status"`
	Remarks string               `json:"remarks"`
}

// RecalculateRequest is the optional body of a recalculate call. ResetActuals
// discards user-entered actuals and refreshes them from the new estimates.
type RecalculateRequest struct {
	ResetActuals bool `json:"reset_actuals"`
}

// ParseCategories decodes a categories blob from storage, handling the same
// double-encoded string shape as ParseSections.
func ParseCategories(blob []byte) ([]CostCategory, error) {
	if len(blob) == 0 {
		return []CostCategory{}, nil
	}

	if blob[0] == '"' {
		var inner string
		if err := json.Unmarshal(blob, &inner); err != nil {
			return nil, err
		}
		blob = []byte(inner)
		if len(blob) == 0 {
			return []CostCategory{}, nil
		}
	}

	var categories []CostCategory
	if err := json.Unmarshal(blob, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []CostCategory{}
	}
	return categories, nil
}
