package calc

import "testing"

func TestMarginRating(t *testing.T) {
	tests := []struct {
		margin float64
		expect string
	}{
		{-5, MarginLow},
		{0, MarginLow},
		{9.99, MarginLow},
		{10, MarginFair},
		{19.99, MarginFair},
		{20, MarginGood},
		{29.99, MarginGood},
		{30, MarginExcellent},
		{48.27, MarginExcellent},
	}

	for _, tt := range tests {
		if got := MarginRating(tt.margin); got != tt.expect {
			t.Errorf("MarginRating(%v) = %q, want %q", tt.margin, got, tt.expect)
		}
	}
}

func TestBudgetStatus(t *testing.T) {
	tests := []struct {
		variance float64
		expect   string
	}{
		{-0.01, UnderBudget},
		{-500, UnderBudget},
		{0, OnBudget},
		{0.01, OverBudget},
		{300, OverBudget},
	}

	for _, tt := range tests {
		if got := BudgetStatus(tt.variance); got != tt.expect {
			t.Errorf("BudgetStatus(%v) = %q, want %q", tt.variance, got, tt.expect)
		}
	}
}
