// internal/models/quote.go
package models

import "github.com/shopspring/decimal"

// Sentinel class IDs produced by the extraction paths.
const (
	// GreetingClass marks a purely conversational input with no furniture
	// reference. The resolver turns it into the GREETING terminal state.
	GreetingClass = "__greeting__"

	// UnknownClass is the probable_class reported when no catalog class
	// could be matched at all.
	UnknownClass = "unknown"
)

// AttributeUnknown is the explicit "unknown" value an extractor may place in
// an item's attribute map instead of guessing.
const AttributeUnknown = "unknown"

// ExtractedItem is a furniture class + quantity + attributes parsed from
// input, before completeness is verified. Created per extraction call, never
// persisted.
type ExtractedItem struct {
	ClassID           string            `json:"class"`
	Quantity          int               `json:"quantity"`
	Attributes        map[string]string `json:"attributes,omitempty"`
	MissingAttributes []string          `json:"missing_attributes,omitempty"`
}

// Complete reports whether the item can be priced without clarification.
func (i ExtractedItem) Complete() bool {
	return len(i.MissingAttributes) == 0
}

// Attribute returns the attribute value, treating the explicit "unknown"
// marker the same as absence.
func (i ExtractedItem) Attribute(name string) (string, bool) {
	v, ok := i.Attributes[name]
	if !ok || v == "" || v == AttributeUnknown {
		return "", false
	}
	return v, true
}

// ClarificationRequest is the terminal output when resolution fails: the
// engine asks for a specific missing attribute before any price is shown.
type ClarificationRequest struct {
	NeedsClarification bool     `json:"needs_clarification"`
	ProbableClass      string   `json:"probable_class"`
	MissingFields      []string `json:"missing_fields"`
	Message            string   `json:"message"`
}

// LineItem is one priced row of the final breakdown.
type LineItem struct {
	DisplayName       string          `json:"item"`
	ClassID           string          `json:"class"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	RequiresAnchoring bool            `json:"requires_anchoring"`
}

// ExtraDetail itemizes a countable extra (e.g. doors beyond the included
// allowance) separately from the per-unit price.
type ExtraDetail struct {
	ClassID     string          `json:"class"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// QuoteBreakdown is the final priced output of the engine.
type QuoteBreakdown struct {
	QuoteID           string          `json:"quote_id"`
	LineItems         []LineItem      `json:"line_items"`
	ExtraDetails      []ExtraDetail   `json:"extra_details,omitempty"`
	BaseSubtotal      decimal.Decimal `json:"base_subtotal"`
	ExtrasSubtotal    decimal.Decimal `json:"extras_subtotal"`
	TravelCost        decimal.Decimal `json:"travel_cost"`
	DistanceLabel     string          `json:"distance_label,omitempty"`
	AnchoringFee      decimal.Decimal `json:"anchoring_fee"`
	RequiresAnchoring bool            `json:"requires_anchoring"`
	Total             decimal.Decimal `json:"total"`
}

// TravelEstimate is the logistics estimator's output.
type TravelEstimate struct {
	Cost          decimal.Decimal `json:"cost"`
	DistanceLabel string          `json:"distance_label"`
	Tier          string          `json:"tier"`
}

// ImageLabel is advisory metadata from the image-labeling service. It is
// shown to the user and never used for pricing.
type ImageLabel struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}
