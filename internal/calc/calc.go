// Package calc provides the pure BOQ and cost report calculation functions.
// Everything here is deterministic and side-effect free: the same inputs
// always produce the same derived values, whether invoked from an edit
// preview or a server-side save, so displayed and persisted totals can never
// drift apart.
package calc

import (
	"strconv"

	"ops-backend/internal/models"
)

// VATRate is the fixed tax rate applied after discount.
const VATRate = 0.16

// ItemAmounts holds the derived values of a single line item.
type ItemAmounts struct {
	Amount     float64
	CostAmount float64
}

// ComputeItem derives the selling and cost amounts of one line item.
// No rounding happens here; formatting is a presentation concern.
func ComputeItem(quantity, rate, cost float64) ItemAmounts {
	return ItemAmounts{
		Amount:     quantity * rate,
		CostAmount: quantity * cost,
	}
}

// ComputeSection returns a fresh copy of the section with every item's derived
// amounts recomputed, item numbers renumbered contiguously from 1, and the
// subtotals summed over the current items. The input is never mutated.
func ComputeSection(section models.Section) models.Section {
	out := models.Section{
		SectionNo:    section.SectionNo,
		SectionTitle: section.SectionTitle,
		Items:        make([]models.LineItem, len(section.Items)),
	}

	for i, item := range section.Items {
		amounts := ComputeItem(item.Quantity.Float64(), item.Rate.Float64(), item.Cost.Float64())
		item.ItemNo = section.SectionNo + "." + strconv.Itoa(i+1)
		item.Amount = amounts.Amount
		item.CostAmount = amounts.CostAmount
		out.Items[i] = item

		out.Subtotal += amounts.Amount
		out.CostSubtotal += amounts.CostAmount
	}

	return out
}

// Totals is the document-level snapshot of a BOQ.
type Totals struct {
	Subtotal     float64
	Discount     float64
	VAT          float64
	Total        float64
	InternalCost float64
	ProfitAmount float64
	ProfitMargin float64
}

// ComputeTotals recomputes every section and aggregates the document totals.
// The discount is a flat amount clamped to [0, subtotal]; VAT applies to the
// discounted subtotal. A zero total yields a 0% margin rather than a division
// by zero.
func ComputeTotals(sections []models.Section, discount float64) ([]models.Section, Totals) {
	fresh := make([]models.Section, len(sections))

	var totals Totals
	for i, section := range sections {
		fresh[i] = ComputeSection(section)
		totals.Subtotal += fresh[i].Subtotal
		totals.InternalCost += fresh[i].CostSubtotal
	}

	if discount < 0 {
		discount = 0
	}
	if discount > totals.Subtotal {
		discount = totals.Subtotal
	}
	totals.Discount = discount

	discounted := totals.Subtotal - discount
	totals.VAT = discounted * VATRate
	totals.Total = discounted + totals.VAT
	totals.ProfitAmount = totals.Total - totals.InternalCost
	if totals.Total > 0 {
		totals.ProfitMargin = (totals.ProfitAmount / totals.Total) * 100
	}

	return fresh, totals
}
