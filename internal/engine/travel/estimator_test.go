package travel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"quote-engine/internal/common/database"
	"quote-engine/internal/common/logger"
)

func distanceMatrixHandler(t *testing.T, meters int, calls *int) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, "/maps/api/distancematrix/json", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("origins"))
		assert.NotEmpty(t, r.URL.Query().Get("destinations"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"rows": []map[string]interface{}{
				{"elements": []map[string]interface{}{
					{
						"status":   "OK",
						"distance": map[string]interface{}{"value": meters},
					},
				}},
			},
		})
	}
}

func newEstimator(t *testing.T, baseURL string, cache *database.RedisClient) *Estimator {
	t.Helper()
	return New(Config{
		BaseURL:       baseURL,
		APIKey:        "test-key",
		OriginAddress: "Calle Mayor 1, Madrid",
		Timeout:       2 * time.Second,
		CacheTTL:      time.Hour,
	}, cache, logger.NewTestLogger(t))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		km   float64
		cost int64
		tier string
	}{
		{0.5, 15, TierShort},
		{20, 15, TierShort},
		{20.1, 25, TierMedium},
		{40, 25, TierMedium},
		{40.1, 35, TierLong},
		{120, 35, TierLong},
	}
	for _, tt := range tests {
		cost, tier := tierFor(tt.km)
		assert.True(t, decimal.NewFromInt(tt.cost).Equal(cost), "km=%v", tt.km)
		assert.Equal(t, tt.tier, tier, "km=%v", tt.km)
	}
}

func TestEstimator_EmptyAddressMeansNoTravelCharge(t *testing.T) {
	e := newEstimator(t, "http://unused", nil)

	est := e.Estimate(context.Background(), "   ")
	assert.True(t, est.Cost.IsZero())
	assert.Equal(t, TierNone, est.Tier)
}

func TestEstimator_LookupSuccess(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(distanceMatrixHandler(t, 31500, &calls))
	defer srv.Close()

	est := newEstimator(t, srv.URL, nil).Estimate(context.Background(), "Calle Falsa 123, Getafe")

	assert.True(t, decimal.NewFromInt(25).Equal(est.Cost))
	assert.Equal(t, TierMedium, est.Tier)
	assert.Equal(t, "31.5 km", est.DistanceLabel)
}

func TestEstimator_UpstreamFailureUsesSafeDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	est := newEstimator(t, srv.URL, nil).Estimate(context.Background(), "Calle Falsa 123")

	assert.True(t, decimal.NewFromInt(15).Equal(est.Cost))
	assert.Equal(t, TierFallback, est.Tier)
	assert.Equal(t, fallbackLabel, est.DistanceLabel)
}

func TestEstimator_ElementNotFoundUsesSafeDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"rows": []map[string]interface{}{
				{"elements": []map[string]interface{}{
					{"status": "NOT_FOUND"},
				}},
			},
		})
	}))
	defer srv.Close()

	est := newEstimator(t, srv.URL, nil).Estimate(context.Background(), "dirección inexistente")

	assert.Equal(t, TierFallback, est.Tier)
}

func TestEstimator_NotConfiguredUsesSafeDefault(t *testing.T) {
	e := New(Config{Timeout: time.Second}, nil, logger.NewNoOpLogger())

	est := e.Estimate(context.Background(), "Calle Falsa 123")
	assert.Equal(t, TierFallback, est.Tier)
	assert.True(t, decimal.NewFromInt(15).Equal(est.Cost))
}

func TestEstimator_CacheAvoidsSecondLookup(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(distanceMatrixHandler(t, 12000, &calls))
	defer srv.Close()

	mr := miniredis.RunT(t)
	cache := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	e := newEstimator(t, srv.URL, cache)
	ctx := context.Background()

	first := e.Estimate(ctx, "Calle Falsa 123, Madrid")
	// Same address, different spacing and case: same cache entry.
	second := e.Estimate(ctx, "  calle falsa 123,   MADRID ")

	assert.Equal(t, 1, calls)
	assert.True(t, first.Cost.Equal(second.Cost))
	assert.Equal(t, first.DistanceLabel, second.DistanceLabel)

	mr.FastForward(2 * time.Hour)
	e.Estimate(ctx, "Calle Falsa 123, Madrid")
	assert.Equal(t, 2, calls, "expired cache entry should trigger a fresh lookup")
}

func TestEstimator_CacheDownFallsThroughToAPI(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(distanceMatrixHandler(t, 5000, &calls))
	defer srv.Close()

	cache := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})}

	est := newEstimator(t, srv.URL, cache).Estimate(context.Background(), "Calle Falsa 123")

	assert.Equal(t, 1, calls)
	assert.Equal(t, TierShort, est.Tier)
}
