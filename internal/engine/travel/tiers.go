// internal/engine/travel/tiers.go
package travel

import "github.com/shopspring/decimal"

// Flat travel tiers in EUR by road distance from the workshop.
var (
	tierShort  = decimal.NewFromInt(15) // up to 20 km
	tierMedium = decimal.NewFromInt(25) // 20 to 40 km
	tierLong   = decimal.NewFromInt(35) // beyond 40 km
)

const (
	TierNone     = "none"
	TierShort    = "short"
	TierMedium   = "medium"
	TierLong     = "long"
	TierFallback = "fallback"
)

// tierFor maps a distance in km to its travel cost. Boundary distances fall
// into the cheaper tier.
func tierFor(km float64) (decimal.Decimal, string) {
	switch {
	case km <= 20:
		return tierShort, TierShort
	case km <= 40:
		return tierMedium, TierMedium
	default:
		return tierLong, TierLong
	}
}
