// Package resolve decides what a request becomes: a priced quote, a
// clarification question, a greeting reply or an unrecognized-input reply.
// Exactly one of those, every time. It owns the all-or-nothing rule: a single
// incomplete item blocks pricing for the whole request.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"quote-engine/internal/catalog"
	apperrors "quote-engine/internal/common/errors"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/metrics"
	"quote-engine/internal/models"
)

// State is the terminal classification of a resolved request.
type State string

const (
	StateGreeting           State = "GREETING"
	StateUnrecognized       State = "UNRECOGNIZED"
	StateNeedsClarification State = "NEEDS_CLARIFICATION"
	StateComplete           State = "COMPLETE"
)

// Extractor is the interpretive extraction path.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]models.ExtractedItem, error)
}

// Fallback is the deterministic lexical path. It cannot fail.
type Fallback interface {
	Match(text string) []models.ExtractedItem
}

// Result is the resolver's output. Items is populated only in the COMPLETE
// state; Clarification is populated in every other state so the caller always
// has something to say.
type Result struct {
	State         State
	Items         []models.ExtractedItem
	Clarification *models.ClarificationRequest
}

// Resolver routes between the extraction paths and classifies the outcome.
type Resolver struct {
	extractor Extractor
	fallback  Fallback
	cat       *catalog.Catalog
	logger    logger.Logger
}

func New(extractor Extractor, fallback Fallback, cat *catalog.Catalog, log logger.Logger) *Resolver {
	return &Resolver{
		extractor: extractor,
		fallback:  fallback,
		cat:       cat,
		logger:    log.With(map[string]interface{}{"component": "resolver"}),
	}
}

// Resolve classifies one request. Confirmed items are the customer answering
// an earlier clarification: they are re-validated for completeness but never
// re-extracted, so answering the same question twice cannot change the
// outcome.
func (r *Resolver) Resolve(ctx context.Context, text string, confirmed []models.ExtractedItem) *Result {
	if len(confirmed) > 0 {
		return r.resolveConfirmed(confirmed)
	}

	items := r.extractItems(ctx, text)
	return r.classify(text, items)
}

func (r *Resolver) resolveConfirmed(confirmed []models.ExtractedItem) *Result {
	valid := make([]models.ExtractedItem, 0, len(confirmed))
	for _, item := range confirmed {
		entry, ok := r.cat.Entry(item.ClassID)
		if !ok {
			r.logger.Warn("confirmed item references unknown class", map[string]interface{}{
				"class": item.ClassID,
			})
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		item.MissingAttributes = nil
		for _, required := range entry.RequiredAttributes() {
			if _, present := item.Attribute(required); !present {
				item.MissingAttributes = append(item.MissingAttributes, required)
			}
		}
		valid = append(valid, item)
	}

	if len(valid) == 0 {
		return unrecognizedResult()
	}
	return r.classifyItems(valid)
}

// extractItems runs the interpretive path and degrades to the lexical matcher
// on any fallback-trigger error. The lexical result is used as-is even when
// empty; an extraction failure never fails the request.
func (r *Resolver) extractItems(ctx context.Context, text string) []models.ExtractedItem {
	if r.extractor == nil {
		metrics.ExtractorFallbackTotal.WithLabelValues("disabled").Inc()
		return r.fallback.Match(text)
	}

	items, err := r.extractor.Extract(ctx, text)
	if err == nil {
		return items
	}

	reason := "error"
	if std, ok := err.(*apperrors.StandardError); ok {
		reason = strings.ToLower(string(std.Code))
	}
	metrics.ExtractorFallbackTotal.WithLabelValues(reason).Inc()

	if !apperrors.IsFallbackTrigger(err) {
		r.logger.WithError(err).Error("interpretive extraction failed", nil)
	} else {
		r.logger.WithError(err).Warn("interpretive extraction unavailable, using lexical matcher", nil)
	}
	return r.fallback.Match(text)
}

func (r *Resolver) classify(text string, items []models.ExtractedItem) *Result {
	// The greeting sentinel and an empty result both mean "no furniture";
	// the greeting lexicon decides which reply the customer gets.
	noFurniture := len(items) == 0 ||
		(len(items) == 1 && items[0].ClassID == models.GreetingClass)

	if noFurniture {
		if isGreeting(text) {
			return &Result{
				State: StateGreeting,
				Clarification: &models.ClarificationRequest{
					NeedsClarification: true,
					ProbableClass:      models.GreetingClass,
					Message:            greetingMessage,
				},
			}
		}
		return unrecognizedResult()
	}

	return r.classifyItems(items)
}

func (r *Resolver) classifyItems(items []models.ExtractedItem) *Result {
	for _, item := range items {
		if item.Complete() {
			continue
		}
		for _, field := range item.MissingAttributes {
			metrics.ClarificationsTotal.WithLabelValues(field).Inc()
		}
		return &Result{
			State:         StateNeedsClarification,
			Clarification: r.clarificationFor(item),
		}
	}
	return &Result{State: StateComplete, Items: items}
}

// clarificationFor builds the question for the first incomplete item. One
// question per round keeps the exchange short even when several attributes
// are missing.
func (r *Resolver) clarificationFor(item models.ExtractedItem) *models.ClarificationRequest {
	display := item.ClassID
	if entry, ok := r.cat.Entry(item.ClassID); ok {
		display = strings.ToLower(entry.DisplayNameFor("es"))
	}

	labels := make([]string, 0, len(item.MissingAttributes))
	for _, field := range item.MissingAttributes {
		labels = append(labels, attributeLabel(field))
	}

	return &models.ClarificationRequest{
		NeedsClarification: true,
		ProbableClass:      item.ClassID,
		MissingFields:      item.MissingAttributes,
		Message: fmt.Sprintf(
			"Para darte un precio exacto de %s necesito saber: %s.",
			display, joinSpanish(labels)),
	}
}

func unrecognizedResult() *Result {
	return &Result{
		State: StateUnrecognized,
		Clarification: &models.ClarificationRequest{
			NeedsClarification: true,
			ProbableClass:      models.UnknownClass,
			Message:            unrecognizedMessage,
		},
	}
}

func joinSpanish(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " y " + parts[len(parts)-1]
	}
}
