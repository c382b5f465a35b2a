package calc

import (
	"math"
	"testing"

	"ops-backend/internal/models"
)

func TestComputeItem(t *testing.T) {
	tests := []struct {
		name         string
		quantity     float64
		rate         float64
		cost         float64
		expectAmount float64
		expectCost   float64
	}{
		{"basic", 10, 50, 30, 500, 300},
		{"zero quantity", 0, 100, 60, 0, 0},
		{"zero rate", 5, 0, 20, 0, 100},
		{"zero cost", 5, 20, 0, 100, 0},
		{"decimal values", 2.5, 100.50, 60.25, 251.25, 150.625},
		{"all zero", 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeItem(tt.quantity, tt.rate, tt.cost)
			if got.Amount != tt.expectAmount {
				t.Errorf("Amount = %v, want %v", got.Amount, tt.expectAmount)
			}
			if got.CostAmount != tt.expectCost {
				t.Errorf("CostAmount = %v, want %v", got.CostAmount, tt.expectCost)
			}
		})
	}
}

func TestComputeItemIdempotent(t *testing.T) {
	first := ComputeItem(3.7, 142.55, 89.99)
	second := ComputeItem(3.7, 142.55, 89.99)
	if first != second {
		t.Errorf("repeated computation diverged: %+v vs %+v", first, second)
	}
}

func item(qty, rate, cost float64) models.LineItem {
	return models.LineItem{
		Quantity: models.FlexFloat(qty),
		Rate:     models.FlexFloat(rate),
		Cost:     models.FlexFloat(cost),
	}
}

func TestComputeSection(t *testing.T) {
	section := models.Section{
		SectionNo:    "2",
		SectionTitle: "Staging",
		Items: []models.LineItem{
			item(10, 100, 60),
			item(2, 250, 200),
		},
	}

	got := ComputeSection(section)

	if got.Subtotal != 1500 {
		t.Errorf("Subtotal = %v, want 1500", got.Subtotal)
	}
	if got.CostSubtotal != 1000 {
		t.Errorf("CostSubtotal = %v, want 1000", got.CostSubtotal)
	}
	if got.Items[0].ItemNo != "2.1" || got.Items[1].ItemNo != "2.2" {
		t.Errorf("item numbering = %q, %q, want 2.1, 2.2", got.Items[0].ItemNo, got.Items[1].ItemNo)
	}

	// Additivity: the subtotal is exactly the sum of the item amounts.
	var sum, costSum float64
	for _, it := range got.Items {
		sum += it.Amount
		costSum += it.CostAmount
	}
	if got.Subtotal != sum || got.CostSubtotal != costSum {
		t.Errorf("subtotals (%v, %v) do not match item sums (%v, %v)",
			got.Subtotal, got.CostSubtotal, sum, costSum)
	}

	// The input section must not be mutated.
	if section.Items[0].Amount != 0 || section.Subtotal != 0 {
		t.Error("ComputeSection mutated its input")
	}
}

func TestComputeSectionEmpty(t *testing.T) {
	got := ComputeSection(models.Section{SectionNo: "1"})
	if got.Subtotal != 0 || got.CostSubtotal != 0 {
		t.Errorf("empty section subtotals = (%v, %v), want (0, 0)", got.Subtotal, got.CostSubtotal)
	}
	if len(got.Items) != 0 {
		t.Errorf("empty section produced %d items", len(got.Items))
	}
}

func TestSectionRenumberAfterRemoval(t *testing.T) {
	// Items arrive numbered 1.1, 1.2, 1.3; the middle one was removed by the
	// client. Recomputing must renumber the survivors contiguously in their
	// original relative order.
	first := item(1, 10, 5)
	first.ItemNo = "1.1"
	first.Description = "first"
	third := item(1, 30, 15)
	third.ItemNo = "1.3"
	third.Description = "third"

	got := ComputeSection(models.Section{SectionNo: "1", Items: []models.LineItem{first, third}})

	if got.Items[0].ItemNo != "1.1" || got.Items[0].Description != "first" {
		t.Errorf("item 0 = %q %q, want 1.1 first", got.Items[0].ItemNo, got.Items[0].Description)
	}
	if got.Items[1].ItemNo != "1.2" || got.Items[1].Description != "third" {
		t.Errorf("item 1 = %q %q, want 1.2 third", got.Items[1].ItemNo, got.Items[1].Description)
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		sections []models.Section
		discount float64
		expect   Totals
	}{
		{
			name: "round trip without discount",
			sections: []models.Section{
				{SectionNo: "1", Items: []models.LineItem{item(10, 100, 60)}},
			},
			discount: 0,
			expect: Totals{
				Subtotal:     1000,
				VAT:          160,
				Total:        1160,
				InternalCost: 600,
				ProfitAmount: 560,
				ProfitMargin: 560.0 / 1160.0 * 100,
			},
		},
		{
			name: "flat discount before tax",
			sections: []models.Section{
				{SectionNo: "1", Items: []models.LineItem{item(10, 100, 60)}},
			},
			discount: 100,
			expect: Totals{
				Subtotal:     1000,
				Discount:     100,
				VAT:          144,
				Total:        1044,
				InternalCost: 600,
				ProfitAmount: 444,
				ProfitMargin: 444.0 / 1044.0 * 100,
			},
		},
		{
			name:     "empty document",
			sections: nil,
			discount: 0,
			expect:   Totals{},
		},
		{
			name: "negative discount clamps to zero",
			sections: []models.Section{
				{SectionNo: "1", Items: []models.LineItem{item(1, 1000, 0)}},
			},
			discount: -50,
			expect: Totals{
				Subtotal:     1000,
				VAT:          160,
				Total:        1160,
				ProfitAmount: 1160,
				ProfitMargin: 100,
			},
		},
		{
			name: "discount exceeding subtotal clamps to subtotal",
			sections: []models.Section{
				{SectionNo: "1", Items: []models.LineItem{item(1, 500, 300)}},
			},
			discount: 9999,
			expect: Totals{
				Subtotal:     500,
				Discount:     500,
				InternalCost: 300,
				ProfitAmount: -300,
				// total is 0, so margin guards to 0 instead of dividing
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := ComputeTotals(tt.sections, tt.discount)
			checkFloat(t, "Subtotal", got.Subtotal, tt.expect.Subtotal)
			checkFloat(t, "Discount", got.Discount, tt.expect.Discount)
			checkFloat(t, "VAT", got.VAT, tt.expect.VAT)
			checkFloat(t, "Total", got.Total, tt.expect.Total)
			checkFloat(t, "InternalCost", got.InternalCost, tt.expect.InternalCost)
			checkFloat(t, "ProfitAmount", got.ProfitAmount, tt.expect.ProfitAmount)
			checkFloat(t, "ProfitMargin", got.ProfitMargin, tt.expect.ProfitMargin)
		})
	}
}

func TestComputeTotalsDeterministic(t *testing.T) {
	sections := []models.Section{
		{SectionNo: "1", Items: []models.LineItem{item(3.33, 7.77, 1.11), item(9.99, 0.03, 0.07)}},
		{SectionNo: "2", Items: []models.LineItem{item(1234.56, 78.9, 45.6)}},
	}

	_, first := ComputeTotals(sections, 42.5)
	_, second := ComputeTotals(sections, 42.5)
	if first != second {
		t.Errorf("repeated computation diverged: %+v vs %+v", first, second)
	}
}

func checkFloat(t *testing.T, field string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 0.0001 {
		t.Errorf("%s = %v, want %v", field, got, want)
	}
}
