// Package travel estimates the displacement cost for a customer address via
// the distance-matrix service, with a Redis cache in front and a safe default
// behind. Estimation never fails a quote: every error path yields a usable
// cost.
package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quote-engine/internal/common/config"
	"quote-engine/internal/common/database"
	"quote-engine/internal/common/httpclient"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/metrics"
	"quote-engine/internal/models"
)

const cacheKeyPrefix = "distance:"

// fallbackLabel is shown when the real distance could not be determined.
const fallbackLabel = "distancia no disponible"

// Config holds the distance-matrix service settings.
type Config struct {
	BaseURL       string
	APIKey        string
	OriginAddress string
	Timeout       time.Duration
	CacheTTL      time.Duration
}

func FromAppConfig(cfg *config.Config) Config {
	return Config{
		BaseURL:       cfg.Maps.BaseURL,
		APIKey:        cfg.Maps.APIKey,
		OriginAddress: cfg.Maps.OriginAddress,
		Timeout:       time.Duration(cfg.Maps.Timeout) * time.Millisecond,
		CacheTTL:      time.Duration(cfg.Maps.CacheTTL) * time.Second,
	}
}

// Enabled reports whether distance lookups can be attempted at all.
func (c Config) Enabled() bool {
	return c.APIKey != "" && c.OriginAddress != ""
}

// Estimator resolves addresses to travel costs.
type Estimator struct {
	cfg    Config
	client *httpclient.Client
	cache  *database.RedisClient
	logger logger.Logger
}

// New builds an Estimator. cache may be nil; lookups then always hit the API.
func New(cfg Config, cache *database.RedisClient, log logger.Logger) *Estimator {
	return &Estimator{
		cfg:    cfg,
		client: httpclient.NewClient(cfg.Timeout),
		cache:  cache,
		logger: log.With(map[string]interface{}{"component": "travel"}),
	}
}

// Estimate returns the travel cost for an address. No address means no
// travel charge; any lookup failure charges the lowest tier rather than
// blocking the quote.
func (e *Estimator) Estimate(ctx context.Context, address string) models.TravelEstimate {
	address = strings.TrimSpace(address)
	if address == "" {
		metrics.DistanceLookupsTotal.WithLabelValues("skipped").Inc()
		return models.TravelEstimate{
			Cost:          decimal.Zero,
			DistanceLabel: "sin dirección",
			Tier:          TierNone,
		}
	}

	if !e.cfg.Enabled() {
		e.logger.Warn("distance service not configured, using safe default", nil)
		metrics.DistanceLookupsTotal.WithLabelValues("fallback").Inc()
		return safeDefault()
	}

	if km, ok := e.cachedDistance(ctx, address); ok {
		metrics.DistanceLookupsTotal.WithLabelValues("cache_hit").Inc()
		return fromDistance(km)
	}

	km, err := e.lookupDistance(ctx, address)
	if err != nil {
		e.logger.WithError(err).Warn("distance lookup failed, using safe default", map[string]interface{}{
			"address": address,
		})
		metrics.DistanceLookupsTotal.WithLabelValues("fallback").Inc()
		return safeDefault()
	}

	e.storeDistance(ctx, address, km)
	metrics.DistanceLookupsTotal.WithLabelValues("ok").Inc()
	return fromDistance(km)
}

func fromDistance(km float64) models.TravelEstimate {
	cost, tier := tierFor(km)
	return models.TravelEstimate{
		Cost:          cost,
		DistanceLabel: fmt.Sprintf("%.1f km", km),
		Tier:          tier,
	}
}

// safeDefault is the lowest tier: the customer is never overcharged because
// an upstream service was down.
func safeDefault() models.TravelEstimate {
	return models.TravelEstimate{
		Cost:          tierShort,
		DistanceLabel: fallbackLabel,
		Tier:          TierFallback,
	}
}

func cacheKey(address string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(address), " "))
	return cacheKeyPrefix + normalized
}

func (e *Estimator) cachedDistance(ctx context.Context, address string) (float64, bool) {
	if e.cache == nil {
		return 0, false
	}
	raw, err := e.cache.Get(ctx, cacheKey(address))
	if err != nil {
		return 0, false
	}
	km, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return km, true
}

func (e *Estimator) storeDistance(ctx context.Context, address string, km float64) {
	if e.cache == nil {
		return
	}
	value := strconv.FormatFloat(km, 'f', 3, 64)
	if err := e.cache.Set(ctx, cacheKey(address), value, e.cfg.CacheTTL); err != nil {
		e.logger.WithError(err).Warn("distance cache write failed", nil)
	}
}

// distanceMatrixResponse is the subset of the distance-matrix payload we
// read. Both the envelope status and the element status must be OK.
type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

func (e *Estimator) lookupDistance(ctx context.Context, address string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("origins", e.cfg.OriginAddress)
	q.Set("destinations", address)
	q.Set("key", e.cfg.APIKey)

	endpoint := strings.TrimSuffix(e.cfg.BaseURL, "/") +
		"/maps/api/distancematrix/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("distance matrix status %d", resp.StatusCode)
	}

	var dm distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&dm); err != nil {
		return 0, err
	}
	if dm.Status != "OK" {
		return 0, fmt.Errorf("distance matrix payload status %q", dm.Status)
	}
	if len(dm.Rows) == 0 || len(dm.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("distance matrix payload has no elements")
	}
	element := dm.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("distance matrix element status %q", element.Status)
	}

	return float64(element.Distance.Value) / 1000.0, nil
}
