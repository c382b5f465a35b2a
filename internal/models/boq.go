package models

import (
	"encoding/json"
	"time"
)

// BOQ statuses. The calculator treats these as opaque; no transition rules.
const (
	BOQStatusDraft     = "draft"
	BOQStatusApproved  = "approved"
	BOQStatusSent      = "sent"
	BOQStatusCompleted = "completed"
)

// LineItem is one row of a BOQ section. Amount and CostAmount are derived from
// quantity/rate/cost and are recomputed before every persist or display - they
// are never authoritative on their own.
type LineItem struct {
	ItemNo      string    `json:"item_no"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	Quantity    FlexFloat `json:"quantity"`
	Rate        FlexFloat `json:"rate"`
	Cost        FlexFloat `json:"cost"`
	Amount      float64   `json:"amount"`
	CostAmount  float64   `json:"cost_amount"`
	Remarks     string    `json:"remarks,omitempty"`
}

// Section is an ordered group of line items. Item order is display and
// numbering order; subtotals are always the sum over the current items.
type Section struct {
	SectionNo    string     `json:"section_no"`
	SectionTitle string     `json:"section_title"`
	Items        []LineItem `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	CostSubtotal float64    `json:"cost_subtotal"`
}

// BOQ is a bill-of-quantities document. The scalar snapshot fields (Subtotal
// through ProfitMargin) are a cache of the sections blob's aggregation and are
// rewritten together with the blob on every save.
type BOQ struct {
	ID            int       `json:"id"`
	BOQNumber     string    `json:"boq_number"`
	ProjectID     int       `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	ClientName    string    `json:"client_name"`
	ClientContact string    `json:"client_contact"`
	Location      string    `json:"location"`
	Sections      []Section `json:"sections"`
	Discount      float64   `json:"discount"`
	Subtotal      float64   `json:"subtotal"`
	VAT           float64   `json:"vat"`
	Total         float64   `json:"total"`
	InternalCost  float64   `json:"internal_cost"`
	ProfitAmount  float64   `json:"profit_amount"`
	ProfitMargin  float64   `json:"profit_margin"`
	MarginRating  string    `json:"margin_rating,omitempty"` // derived for display, never persisted
	Status        string    `json:"status"`
	PaymentTerms  string    `json:"payment_terms"`
	ValidityDays  int       `json:"validity_days"`
	Remarks       string    `json:"remarks"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateBOQRequest carries the editable fields of a save. Submitted amounts and
// totals are ignored - the server recomputes every derived value from the
// quantities, rates, costs and discount it receives.
type UpdateBOQRequest struct {
	ProjectName   string    `json:"project_name"`
	ClientName    string    `json:"client_name"`
	ClientContact string    `json:"client_contact"`
	Location      string    `json:"location"`
	Sections      []Section `json:"sections"`
	Discount      FlexFloat `json:"discount"`
	Status        string    `json:"status"`
	PaymentTerms  string    `json:"payment_terms"`
	ValidityDays  int       `json:"validity_days"`
	Remarks       string    `json:"remarks"`
}

// ParseSections decodes a sections blob from storage. Older rows were written
// double-encoded (a JSON string containing the JSON array), so one level of
// string unwrapping is handled here and nowhere else.
func ParseSections(blob []byte) ([]Section, error) {
	if len(blob) == 0 {
		return []Section{}, nil
	}

	if blob[0] == '"' {
		var inner string
		if err := json.Unmarshal(blob, &inner); err != nil {
			return nil, err
		}
		blob = []byte(inner)
		if len(blob) == 0 {
			return []Section{}, nil
		}
	}

	var sections []Section
	if err := json.Unmarshal(blob, &sections); err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []Section{}
	}
	return sections, nil
}
