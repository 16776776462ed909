package entitlement

import "github.com/KovD3v/entitlements/pkg/usage"

// DenialReason is an enumerable denial cause. The constant values are the
// exact reason strings surfaced to callers, so they can branch on the
// constant instead of matching prose.
type DenialReason string

const (
	ReasonRequestLimit     DenialReason = "Daily request limit reached"
	ReasonInputTokenLimit  DenialReason = "Daily input token limit reached"
	ReasonOutputTokenLimit DenialReason = "Daily output token limit reached"
	ReasonCostLimit        DenialReason = "Daily spending limit reached"
)

// LimitType maps the denial cause to the advisor's message category.
func (r DenialReason) LimitType() LimitType {
	switch r {
	case ReasonRequestLimit:
		return LimitTypeRequests
	case ReasonInputTokenLimit, ReasonOutputTokenLimit:
		return LimitTypeTokens
	case ReasonCostLimit:
		return LimitTypeCost
	default:
		return LimitTypeGeneral
	}
}

// PercentUsed reports consumption as a percentage of the limit for each
// quota dimension, on every check regardless of outcome, so callers can show
// proactive warnings before the hard limit. Unlimited dimensions report 0.
// Values can exceed 100 when the admitted-but-not-yet-counted race overshoots.
type PercentUsed struct {
	Requests     float64 `json:"requests"`
	InputTokens  float64 `json:"input_tokens"`
	OutputTokens float64 `json:"output_tokens"`
	Cost         float64 `json:"cost"`
}

// RateLimitResult is the admission decision for one request.
type RateLimitResult struct {
	Allowed      bool                  `json:"allowed"`
	Reason       DenialReason          `json:"reason,omitempty"`
	Entitlements EffectiveEntitlements `json:"entitlements"`
	Usage        usage.DailyUsage      `json:"usage"`
	PercentUsed  PercentUsed           `json:"percent_used"`
	Upgrade      *UpgradeInfo          `json:"upgrade,omitempty"`
}

// evaluate applies the fixed priority order: requests, input tokens, output
// tokens, cost. A request can violate several dimensions at once; only the
// first in priority order is reported.
func evaluate(limits QuotaVector, u usage.DailyUsage) (DenialReason, bool) {
	if limitReached(u.RequestCount, limits.MaxRequestsPerDay) {
		return ReasonRequestLimit, true
	}
	if limitReached(u.InputTokens, limits.MaxInputTokensPerDay) {
		return ReasonInputTokenLimit, true
	}
	if limitReached(u.OutputTokens, limits.MaxOutputTokensPerDay) {
		return ReasonOutputTokenLimit, true
	}
	if costReached(u.TotalCostUSD, limits.MaxCostPerDayUSD) {
		return ReasonCostLimit, true
	}
	return "", false
}

func limitReached(current, limit int64) bool {
	if limit == Unlimited {
		return false
	}
	return current >= limit
}

func costReached(current, limit float64) bool {
	if limit == UnlimitedUSD {
		return false
	}
	return current >= limit
}

func percentUsed(limits QuotaVector, u usage.DailyUsage) PercentUsed {
	return PercentUsed{
		Requests:     percentOf(float64(u.RequestCount), float64(limits.MaxRequestsPerDay)),
		InputTokens:  percentOf(float64(u.InputTokens), float64(limits.MaxInputTokensPerDay)),
		OutputTokens: percentOf(float64(u.OutputTokens), float64(limits.MaxOutputTokensPerDay)),
		Cost:         percentOf(u.TotalCostUSD, limits.MaxCostPerDayUSD),
	}
}

func percentOf(current, limit float64) float64 {
	if limit < 0 {
		return 0 // unlimited never warns
	}
	if limit == 0 {
		return 100
	}
	return current / limit * 100
}
