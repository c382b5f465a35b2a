package calc

// Margin rating labels, keyed by profit margin percentage. Purely a display
// classification; recomputed wherever shown and never persisted.
const (
	MarginLow       = "Low"
	MarginFair      = "Fair"
	MarginGood      = "Good"
	MarginExcellent = "Excellent"
)

// MarginRating buckets a profit margin percentage for UI color coding.
func MarginRating(marginPercent float64) string {
	switch {
	case marginPercent >= 30:
		return MarginExcellent
	case marginPercent >= 20:
		return MarginGood
	case marginPercent >= 10:
		return MarginFair
	default:
		return MarginLow
	}
}

// Budget status labels for variance display.
const (
	UnderBudget = "under_budget"
	OverBudget  = "over_budget"
	OnBudget    = "on_budget"
)

// BudgetStatus classifies a variance: negative is favorable (spent less than
// estimated), positive is unfavorable, zero is neutral.
func BudgetStatus(variance float64) string {
	switch {
	case variance < 0:
		return UnderBudget
	case variance > 0:
		return OverBudget
	default:
		return OnBudget
	}
}
