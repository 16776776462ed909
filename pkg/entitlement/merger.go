package entitlement

import "strings"

// SourceType tags the provenance of an entitlement source.
type SourceType string

const (
	SourcePersonal     SourceType = "personal"
	SourceOrganization SourceType = "organization"
)

// EntitlementSource is one candidate policy considered by the merger: the
// user's personal plan or one organization's contract, tagged with
// provenance for auditability.
type EntitlementSource struct {
	Type   SourceType  `json:"type"`
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Plan   PlanKey     `json:"plan"`
	Tier   ModelTier   `json:"tier"`
	Limits QuotaVector `json:"limits"`
}

// EffectiveEntitlements is the single winning policy enforced for a request.
// Sources records the provenance of the winner; entitlements are replaced,
// never additively merged, so it holds exactly one entry. The value is
// recomputed per request and never persisted.
type EffectiveEntitlements struct {
	Limits  QuotaVector         `json:"limits"`
	Tier    ModelTier           `json:"tier"`
	Sources []EntitlementSource `json:"sources"`
}

// Source returns the winning entitlement source.
func (e EffectiveEntitlements) Source() EntitlementSource {
	if len(e.Sources) == 0 {
		return EntitlementSource{}
	}
	return e.Sources[0]
}

// CompareSources is the total-order comparator used to pick the best
// entitlement source. It returns a positive value when a is better than b,
// negative when worse, and never zero for sources with distinct IDs.
//
// Comparison keys, in order:
//  1. Model tier (higher wins).
//  2. Quota fields in declared order: requests, input tokens, output tokens,
//     cost, context messages (larger wins, Unlimited beats any finite value).
//  3. Lexicographic source ID, smaller ID wins, purely for determinism.
//
// The field-by-field walk assumes real contracts are monotonic with model
// tier, so step 2 rarely decides; a non-monotonic contract still yields a
// deterministic result (first differing field wins) even though it may not
// match intuitive "best plan" semantics.
func CompareSources(a, b EntitlementSource) int {
	if a.Tier != b.Tier {
		if a.Tier > b.Tier {
			return 1
		}
		return -1
	}

	if c := cmpLimit(a.Limits.MaxRequestsPerDay, b.Limits.MaxRequestsPerDay); c != 0 {
		return c
	}
	if c := cmpLimit(a.Limits.MaxInputTokensPerDay, b.Limits.MaxInputTokensPerDay); c != 0 {
		return c
	}
	if c := cmpLimit(a.Limits.MaxOutputTokensPerDay, b.Limits.MaxOutputTokensPerDay); c != 0 {
		return c
	}
	if c := cmpCost(a.Limits.MaxCostPerDayUSD, b.Limits.MaxCostPerDayUSD); c != 0 {
		return c
	}
	if c := cmpLimit(a.Limits.MaxContextMessages, b.Limits.MaxContextMessages); c != 0 {
		return c
	}

	return strings.Compare(b.ID, a.ID)
}

func cmpLimit(a, b int64) int {
	if a == b {
		return 0
	}
	if a == Unlimited {
		return 1
	}
	if b == Unlimited {
		return -1
	}
	if a > b {
		return 1
	}
	return -1
}

func cmpCost(a, b float64) int {
	if a == b {
		return 0
	}
	if a == UnlimitedUSD {
		return 1
	}
	if b == UnlimitedUSD {
		return -1
	}
	if a > b {
		return 1
	}
	return -1
}

// bestSource returns the maximum of sources under CompareSources.
// Callers guarantee sources is non-empty.
func bestSource(sources []EntitlementSource) EntitlementSource {
	best := sources[0]
	for _, s := range sources[1:] {
		if CompareSources(s, best) > 0 {
			best = s
		}
	}
	return best
}

func entitlementsFrom(src EntitlementSource) EffectiveEntitlements {
	return EffectiveEntitlements{
		Limits:  src.Limits,
		Tier:    src.Tier,
		Sources: []EntitlementSource{src},
	}
}
