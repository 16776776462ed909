package entitlement

import "strings"

// planIDRule maps a plan identifier pattern to its canonical plan key.
// Rules are evaluated top to bottom; the first match wins.
type planIDRule struct {
	match func(planID string) bool
	plan  PlanKey
}

func containsRule(substr string, plan PlanKey) planIDRule {
	return planIDRule{
		match: func(planID string) bool { return strings.Contains(planID, substr) },
		plan:  plan,
	}
}

// planIDRules maps provider plan identifiers (price IDs, SKU-ish strings) to
// canonical plan keys by case-insensitive substring.
//
// Invariant: more specific patterns come before less specific ones.
// "basic_plus" contains "basic", so it must be checked first or every
// basic_plus subscriber would resolve to basic.
var planIDRules = []planIDRule{
	containsRule("pro", PlanPro),
	containsRule("basic_plus", PlanBasicPlus),
	containsRule("basic", PlanBasic),
}

// ResolvePersonalPlan maps a user's identity inputs to a canonical plan key.
//
// Precedence, first match wins:
//  1. Admin roles resolve to admin, ignoring every other input.
//  2. Guests resolve to guest.
//  3. An active subscription with a recognizable plan ID resolves through
//     planIDRules.
//  4. An active subscription with an unrecognized or empty plan ID resolves
//     to basic (active-but-unidentified fallback; malformed IDs never error).
//  5. Everything else resolves to trial.
//
// The function is pure: no I/O, identical inputs always yield the same key.
func ResolvePersonalPlan(status SubscriptionStatus, role Role, planID string, isGuest bool) PlanKey {
	if role.IsAdmin() {
		return PlanAdmin
	}
	if isGuest {
		return PlanGuest
	}

	if status == StatusActive {
		id := strings.ToLower(planID)
		for _, rule := range planIDRules {
			if rule.match(id) {
				return rule.plan
			}
		}
		return PlanBasic
	}

	return PlanTrial
}
