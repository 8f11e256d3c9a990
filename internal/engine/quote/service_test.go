package quote

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-engine/internal/catalog"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/observability"
	"quote-engine/internal/engine/pricing"
	"quote-engine/internal/engine/resolve"
	"quote-engine/internal/engine/travel"
	"quote-engine/internal/models"
)

type stubResolver struct {
	result *resolve.Result
}

func (s *stubResolver) Resolve(_ context.Context, _ string, _ []models.ExtractedItem) *resolve.Result {
	return s.result
}

type stubTravel struct {
	estimate models.TravelEstimate
}

func (s *stubTravel) Estimate(_ context.Context, _ string) models.TravelEstimate {
	return s.estimate
}

type stubNotifier struct {
	sent []string
	err  error
}

func (s *stubNotifier) SendQuote(_ context.Context, to string, _ *models.QuoteBreakdown) error {
	s.sent = append(s.sent, to)
	return s.err
}

func noTravel() *stubTravel {
	return &stubTravel{estimate: models.TravelEstimate{
		Cost: decimal.Zero, DistanceLabel: "sin dirección", Tier: travel.TierNone,
	}}
}

func newService(t *testing.T, r Resolver, tr TravelEstimator, n Notifier) *Service {
	t.Helper()
	return New(r, pricing.New(catalog.Default()), tr, nil, n,
		&observability.Observability{}, logger.NewTestLogger(t))
}

func completeResult(items ...models.ExtractedItem) *resolve.Result {
	return &resolve.Result{State: resolve.StateComplete, Items: items}
}

func TestService_PriceFloorApplies(t *testing.T) {
	// One chair is 10, below the 30 minimum visit charge.
	svc := newService(t, &stubResolver{result: completeResult(
		models.ExtractedItem{ClassID: "silla", Quantity: 1},
	)}, noTravel(), nil)

	resp, err := svc.Quote(context.Background(), Request{Text: "una silla"})
	require.NoError(t, err)
	require.NotNil(t, resp.Breakdown)

	assert.True(t, decimal.NewFromInt(10).Equal(resp.Breakdown.BaseSubtotal))
	assert.True(t, decimal.NewFromInt(30).Equal(resp.Breakdown.Total))
}

func TestService_FullBreakdown(t *testing.T) {
	// Sliding 4-door wardrobe 30 km away:
	// 90+20 base, 2x30 extra doors, 25 travel, 15 anchoring = 210.
	svc := newService(t, &stubResolver{result: completeResult(
		models.ExtractedItem{
			ClassID:  "armario",
			Quantity: 1,
			Attributes: map[string]string{
				catalog.AttrDoorMechanism: "sliding",
				catalog.AttrDoorCount:     "4",
			},
		},
	)}, &stubTravel{estimate: models.TravelEstimate{
		Cost: decimal.NewFromInt(25), DistanceLabel: "30.0 km", Tier: travel.TierMedium,
	}}, nil)

	resp, err := svc.Quote(context.Background(), Request{
		Text:    "armario de 4 puertas correderas",
		Address: "Calle Falsa 123, Getafe",
	})
	require.NoError(t, err)
	b := resp.Breakdown
	require.NotNil(t, b)

	assert.NotEmpty(t, b.QuoteID)
	assert.True(t, decimal.NewFromInt(110).Equal(b.BaseSubtotal))
	assert.True(t, decimal.NewFromInt(60).Equal(b.ExtrasSubtotal))
	assert.True(t, decimal.NewFromInt(25).Equal(b.TravelCost))
	assert.True(t, decimal.NewFromInt(15).Equal(b.AnchoringFee))
	assert.True(t, b.RequiresAnchoring)
	assert.True(t, decimal.NewFromInt(210).Equal(b.Total))
	assert.Equal(t, "30.0 km", b.DistanceLabel)
}

func TestService_AnchoringChargedOnce(t *testing.T) {
	// Two anchored classes, one 15 fee.
	svc := newService(t, &stubResolver{result: completeResult(
		models.ExtractedItem{ClassID: "comoda", Quantity: 1},
		models.ExtractedItem{ClassID: "estanteria", Quantity: 2},
	)}, noTravel(), nil)

	resp, err := svc.Quote(context.Background(), Request{Text: "comoda y dos estanterias"})
	require.NoError(t, err)

	// 50 + 90 + 15 anchoring.
	assert.True(t, decimal.NewFromInt(15).Equal(resp.Breakdown.AnchoringFee))
	assert.True(t, decimal.NewFromInt(155).Equal(resp.Breakdown.Total))
}

func TestService_TravelFallbackStillQuotes(t *testing.T) {
	svc := newService(t, &stubResolver{result: completeResult(
		models.ExtractedItem{ClassID: "sofa", Quantity: 1},
	)}, &stubTravel{estimate: models.TravelEstimate{
		Cost: decimal.NewFromInt(15), DistanceLabel: "distancia no disponible", Tier: travel.TierFallback,
	}}, nil)

	resp, err := svc.Quote(context.Background(), Request{Text: "un sofa", Address: "??"})
	require.NoError(t, err)
	require.NotNil(t, resp.Breakdown)
	assert.True(t, decimal.NewFromInt(80).Equal(resp.Breakdown.Total))
}

func TestService_ClarificationPassesThrough(t *testing.T) {
	clar := &models.ClarificationRequest{
		NeedsClarification: true,
		ProbableClass:      "armario",
		MissingFields:      []string{catalog.AttrDoorCount},
		Message:            "¿Cuántas puertas tiene el armario?",
	}
	svc := newService(t, &stubResolver{result: &resolve.Result{
		State: resolve.StateNeedsClarification, Clarification: clar,
	}}, noTravel(), nil)

	resp, err := svc.Quote(context.Background(), Request{Text: "un armario"})
	require.NoError(t, err)
	assert.Nil(t, resp.Breakdown)
	assert.Equal(t, clar, resp.Clarification)
}

func TestService_ExactlyOneOutput(t *testing.T) {
	cases := []struct {
		name   string
		result *resolve.Result
	}{
		{"quoted", completeResult(models.ExtractedItem{ClassID: "silla", Quantity: 1})},
		{"greeting", &resolve.Result{
			State:         resolve.StateGreeting,
			Clarification: &models.ClarificationRequest{NeedsClarification: true, Message: "hola"},
		}},
		{"unrecognized", &resolve.Result{
			State:         resolve.StateUnrecognized,
			Clarification: &models.ClarificationRequest{NeedsClarification: true, Message: "?"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(t, &stubResolver{result: tc.result}, noTravel(), nil)
			resp, err := svc.Quote(context.Background(), Request{Text: "x"})
			require.NoError(t, err)
			assert.NotEqual(t, resp.Breakdown != nil, resp.Clarification != nil)
		})
	}
}

func TestService_EmailSentOnQuote(t *testing.T) {
	n := &stubNotifier{}
	svc := newService(t, &stubResolver{result: completeResult(
		models.ExtractedItem{ClassID: "silla", Quantity: 1},
	)}, noTravel(), n)

	_, err := svc.Quote(context.Background(), Request{Text: "una silla", Email: "cliente@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cliente@example.com"}, n.sent)
}

func TestService_EmailFailureDoesNotFailQuote(t *testing.T) {
	n := &stubNotifier{err: assert.AnError}
	svc := newService(t, &stubResolver{result: completeResult(
		models.ExtractedItem{ClassID: "silla", Quantity: 1},
	)}, noTravel(), n)

	resp, err := svc.Quote(context.Background(), Request{Text: "una silla", Email: "cliente@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Breakdown)
}

func TestService_NoEmailOnClarification(t *testing.T) {
	n := &stubNotifier{}
	svc := newService(t, &stubResolver{result: &resolve.Result{
		State:         resolve.StateNeedsClarification,
		Clarification: &models.ClarificationRequest{NeedsClarification: true},
	}}, noTravel(), n)

	_, err := svc.Quote(context.Background(), Request{Text: "un armario", Email: "cliente@example.com"})
	require.NoError(t, err)
	assert.Empty(t, n.sent)
}
