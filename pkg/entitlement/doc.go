// Package entitlement decides, for every inbound request, what quota a user
// may consume today and whether to admit the request.
//
// Two independent policy sources exist for a user: the personal subscription
// plan and zero or more organization contracts. The engine resolves both,
// selects a single winner with a deterministic total-order comparison over
// (model tier, quota vector), and enforces four per-day quotas (requests,
// input tokens, output tokens, spend) against atomic counters from the
// usage package.
//
// The pieces:
//
//   - Catalog: immutable plan table (key → quota vector + model tier),
//     validated for cross-plan monotonicity at construction.
//   - ResolvePersonalPlan: pure mapping from (status, role, plan ID, guest
//     flag) to a canonical plan key.
//   - MembershipRepository: the engine's read-only view of organization
//     memberships and contracts.
//   - CompareSources: the documented tie-break order for picking the best
//     entitlement source.
//   - Service: the public surface. ResolveEffectiveEntitlements,
//     CheckRateLimit, IncrementUsage, GetDailyUsage.
//   - Advisor: localized upgrade guidance attached to denials.
//
// Minimal setup:
//
//	catalog := entitlement.DefaultCatalog()
//	svc, err := entitlement.New(catalog,
//		entitlement.WithMembershipRepository(repo),
//		entitlement.WithUsageStore(usage.NewPostgresStore(pool)),
//	)
//
//	result, err := svc.CheckRateLimit(ctx, entitlement.ResolutionContext{
//		UserID:             userID,
//		SubscriptionStatus: entitlement.StatusActive,
//		PlanID:             "price_basic_plus_monthly",
//		Resolved:           true,
//	})
//	if result.Allowed {
//		// serve the request, then record consumption:
//		_, err = svc.IncrementUsage(ctx, userID, in, out, cost)
//	}
//
// Admission and consumption are separate calls, so two concurrent requests
// can both pass the check before either increments. Daily quotas are a soft
// product boundary; the small overshoot is accepted instead of serializing
// requests behind a lock.
package entitlement
