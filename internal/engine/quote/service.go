// Package quote orchestrates the full pipeline: resolution, pricing, travel,
// the anchoring fee, the price floor and the optional quote email. Exactly
// one of Clarification or Breakdown is set on every response.
package quote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quote-engine/internal/catalog"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/metrics"
	"quote-engine/internal/common/observability"
	"quote-engine/internal/engine/pricing"
	"quote-engine/internal/engine/resolve"
	"quote-engine/internal/models"
)

// Request is one quote request as received from the transport layer.
type Request struct {
	Text           string                 `json:"text"`
	Address        string                 `json:"address,omitempty"`
	ConfirmedItems []models.ExtractedItem `json:"confirmed_items,omitempty"`
	ImageURLs      []string               `json:"image_urls,omitempty"`
	Email          string                 `json:"email,omitempty"`
}

// Response carries either a clarification or a priced breakdown, plus any
// advisory image labels.
type Response struct {
	Clarification *models.ClarificationRequest `json:"clarification,omitempty"`
	Breakdown     *models.QuoteBreakdown       `json:"quote,omitempty"`
	ImageLabels   []models.ImageLabel          `json:"image_labels,omitempty"`
}

// Resolver classifies a request into a terminal state.
type Resolver interface {
	Resolve(ctx context.Context, text string, confirmed []models.ExtractedItem) *resolve.Result
}

// TravelEstimator resolves an address to a travel cost.
type TravelEstimator interface {
	Estimate(ctx context.Context, address string) models.TravelEstimate
}

// ImageLabeler fetches advisory labels for a photo URL.
type ImageLabeler interface {
	Label(ctx context.Context, imageURL string) []models.ImageLabel
}

// Notifier delivers the quote summary to the customer.
type Notifier interface {
	SendQuote(ctx context.Context, to string, breakdown *models.QuoteBreakdown) error
}

// Service is the quote pipeline.
type Service struct {
	resolver Resolver
	pricer   *pricing.Evaluator
	travel   TravelEstimator
	labeler  ImageLabeler
	notifier Notifier
	obs      *observability.Observability
	logger   logger.Logger
}

// New wires the pipeline. labeler and notifier may be nil; obs may not.
func New(
	resolver Resolver,
	pricer *pricing.Evaluator,
	travel TravelEstimator,
	labeler ImageLabeler,
	notifier Notifier,
	obs *observability.Observability,
	log logger.Logger,
) *Service {
	return &Service{
		resolver: resolver,
		pricer:   pricer,
		travel:   travel,
		labeler:  labeler,
		notifier: notifier,
		obs:      obs,
		logger:   log.With(map[string]interface{}{"component": "quote"}),
	}
}

// Quote processes one request end to end. An error return means an internal
// contract violation, never bad user input.
func (s *Service) Quote(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()

	res := s.resolver.Resolve(ctx, req.Text, req.ConfirmedItems)

	outcome := outcomeLabel(res.State)
	defer func() {
		metrics.QuoteRequestsTotal.WithLabelValues(outcome).Inc()
		metrics.QuoteDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
		s.obs.RecordQuoteProcessed(ctx, outcome)
		s.obs.RecordQuoteDuration(ctx, time.Since(started), outcome)
	}()

	resp := &Response{ImageLabels: s.labelImages(ctx, req.ImageURLs)}

	if res.State != resolve.StateComplete {
		resp.Clarification = res.Clarification
		return resp, nil
	}

	breakdown, err := s.buildBreakdown(ctx, res.Items, req.Address)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	resp.Breakdown = breakdown

	s.logger.Info("quote issued", map[string]interface{}{
		"quote_id": breakdown.QuoteID,
		"items":    len(breakdown.LineItems),
		"total":    breakdown.Total.String(),
	})

	s.sendEmail(ctx, req.Email, breakdown)
	return resp, nil
}

func (s *Service) buildBreakdown(ctx context.Context, items []models.ExtractedItem, address string) (*models.QuoteBreakdown, error) {
	priced, err := s.pricer.Evaluate(items)
	if err != nil {
		s.logger.WithError(err).Error("pricing failed on resolved items", nil)
		return nil, err
	}

	estimate := s.travel.Estimate(ctx, address)

	anchoringFee := decimal.Zero
	if priced.RequiresAnchoring {
		anchoringFee = catalog.AnchoringFee
	}

	total := priced.BaseSubtotal.
		Add(priced.ExtrasSubtotal).
		Add(estimate.Cost).
		Add(anchoringFee)
	if total.LessThan(catalog.PriceFloor) {
		total = catalog.PriceFloor
	}

	return &models.QuoteBreakdown{
		QuoteID:           uuid.NewString(),
		LineItems:         priced.LineItems,
		ExtraDetails:      priced.ExtraDetails,
		BaseSubtotal:      priced.BaseSubtotal,
		ExtrasSubtotal:    priced.ExtrasSubtotal,
		TravelCost:        estimate.Cost,
		DistanceLabel:     estimate.DistanceLabel,
		AnchoringFee:      anchoringFee,
		RequiresAnchoring: priced.RequiresAnchoring,
		Total:             total,
	}, nil
}

func (s *Service) labelImages(ctx context.Context, urls []string) []models.ImageLabel {
	if s.labeler == nil {
		return nil
	}
	var labels []models.ImageLabel
	for _, u := range urls {
		labels = append(labels, s.labeler.Label(ctx, u)...)
	}
	return labels
}

// sendEmail is best effort: a notification failure is logged and the quote
// is returned normally.
func (s *Service) sendEmail(ctx context.Context, to string, breakdown *models.QuoteBreakdown) {
	if s.notifier == nil || to == "" {
		return
	}
	if err := s.notifier.SendQuote(ctx, to, breakdown); err != nil {
		s.logger.WithError(err).Warn("quote email failed", map[string]interface{}{
			"quote_id": breakdown.QuoteID,
		})
	}
}

func outcomeLabel(state resolve.State) string {
	switch state {
	case resolve.StateComplete:
		return "quoted"
	case resolve.StateNeedsClarification:
		return "clarification"
	case resolve.StateGreeting:
		return "greeting"
	default:
		return "unrecognized"
	}
}
