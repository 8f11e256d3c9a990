// Package pricing turns resolved items into priced line items by applying
// the catalog's attribute rules. Evaluation is pure and deterministic: the
// same items against the same catalog always produce the same figures.
package pricing

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"quote-engine/internal/catalog"
	apperrors "quote-engine/internal/common/errors"
	"quote-engine/internal/models"
)

// Outcome is the priced item portion of a quote, before travel and the
// anchoring fee are applied.
type Outcome struct {
	LineItems         []models.LineItem
	ExtraDetails      []models.ExtraDetail
	BaseSubtotal      decimal.Decimal
	ExtrasSubtotal    decimal.Decimal
	RequiresAnchoring bool
}

// Evaluator applies the tariff to resolved items.
type Evaluator struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Evaluator {
	return &Evaluator{cat: cat}
}

// Evaluate prices every item. Items must already be complete; an unknown
// class here is a contract violation by the caller, not bad user input.
func (e *Evaluator) Evaluate(items []models.ExtractedItem) (*Outcome, error) {
	out := &Outcome{
		BaseSubtotal:   decimal.Zero,
		ExtrasSubtotal: decimal.Zero,
	}

	for _, item := range items {
		entry, ok := e.cat.Entry(item.ClassID)
		if !ok {
			return nil, apperrors.NewUnknownCatalogClassError(item.ClassID)
		}

		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		unit := e.unitPrice(entry, item)
		subtotal := unit.Mul(decimal.NewFromInt(int64(qty)))

		out.LineItems = append(out.LineItems, models.LineItem{
			DisplayName:       entry.DisplayNameFor("es"),
			ClassID:           entry.ClassID,
			Quantity:          qty,
			UnitPrice:         unit,
			Subtotal:          subtotal,
			RequiresAnchoring: entry.RequiresAnchoring,
		})
		out.BaseSubtotal = out.BaseSubtotal.Add(subtotal)

		if detail, ok := e.countableExtra(entry, item, qty); ok {
			out.ExtraDetails = append(out.ExtraDetails, detail)
			out.ExtrasSubtotal = out.ExtrasSubtotal.Add(detail.Amount)
		}

		if entry.RequiresAnchoring {
			out.RequiresAnchoring = true
		}
	}

	return out, nil
}

// unitPrice is the base price plus the delta of each attribute rule whose
// value matches. An attribute value no pattern recognizes contributes
// nothing, so a surprising answer can only leave the price at its base.
func (e *Evaluator) unitPrice(entry *catalog.Entry, item models.ExtractedItem) decimal.Decimal {
	unit := entry.BasePrice
	for i := range entry.AttributeRules {
		rule := &entry.AttributeRules[i]
		v, ok := item.Attribute(rule.Attribute)
		if !ok {
			continue
		}
		if delta, matched := rule.Match(v); matched {
			unit = unit.Add(delta)
		}
	}
	return unit
}

// countableExtra charges units beyond the included allowance, per piece of
// furniture. A value that does not parse as a count is treated as within the
// allowance.
func (e *Evaluator) countableExtra(entry *catalog.Entry, item models.ExtractedItem, qty int) (models.ExtraDetail, bool) {
	if entry.Extra == nil {
		return models.ExtraDetail{}, false
	}
	v, ok := item.Attribute(entry.Extra.Attribute)
	if !ok {
		return models.ExtraDetail{}, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= entry.Extra.Allowance {
		return models.ExtraDetail{}, false
	}

	over := n - entry.Extra.Allowance
	amount := entry.Extra.PerUnit.
		Mul(decimal.NewFromInt(int64(over))).
		Mul(decimal.NewFromInt(int64(qty)))

	return models.ExtraDetail{
		ClassID: entry.ClassID,
		Description: fmt.Sprintf("%d %s adicionales (incluidas %d)",
			over, extraNoun(entry.Extra.Attribute), entry.Extra.Allowance),
		Amount: amount,
	}, true
}

func extraNoun(attribute string) string {
	if attribute == catalog.AttrDoorCount {
		return "puertas"
	}
	return "unidades"
}
