package entitlement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KovD3v/entitlements/pkg/entitlement"
)

func TestResolvePersonalPlan(t *testing.T) {
	t.Parallel()

	t.Run("precedence table", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			status  entitlement.SubscriptionStatus
			role    entitlement.Role
			planID  string
			isGuest bool
			want    entitlement.PlanKey
		}{
			{"admin role wins over everything", entitlement.StatusExpired, entitlement.RoleAdmin, "price_pro_monthly", true, entitlement.PlanAdmin},
			{"super admin role wins over everything", entitlement.StatusExpired, entitlement.RoleSuperAdmin, "", true, entitlement.PlanAdmin},
			{"guest flag beats active subscription", entitlement.StatusActive, entitlement.RoleUser, "price_pro_monthly", true, entitlement.PlanGuest},
			{"active pro plan id", entitlement.StatusActive, entitlement.RoleUser, "price_pro_monthly", false, entitlement.PlanPro},
			{"active basic_plus plan id", entitlement.StatusActive, entitlement.RoleUser, "price_basic_plus_annual", false, entitlement.PlanBasicPlus},
			{"active basic plan id", entitlement.StatusActive, entitlement.RoleUser, "price_basic_monthly", false, entitlement.PlanBasic},
			{"plan id matching is case-insensitive", entitlement.StatusActive, entitlement.RoleUser, "PRICE_PRO_MONTHLY", false, entitlement.PlanPro},
			{"active with unrecognized plan id falls back to basic", entitlement.StatusActive, entitlement.RoleUser, "price_legacy_gold", false, entitlement.PlanBasic},
			{"active with empty plan id falls back to basic", entitlement.StatusActive, entitlement.RoleUser, "", false, entitlement.PlanBasic},
			{"trialing resolves to trial", entitlement.StatusTrialing, entitlement.RoleUser, "", false, entitlement.PlanTrial},
			{"cancelled resolves to trial", entitlement.StatusCancelled, entitlement.RoleUser, "price_pro_monthly", false, entitlement.PlanTrial},
			{"expired resolves to trial", entitlement.StatusExpired, entitlement.RoleUser, "price_basic_monthly", false, entitlement.PlanTrial},
			{"past due resolves to trial", entitlement.StatusPastDue, entitlement.RoleUser, "price_basic_monthly", false, entitlement.PlanTrial},
			{"zero values resolve to trial", "", "", "", false, entitlement.PlanTrial},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				got := entitlement.ResolvePersonalPlan(tt.status, tt.role, tt.planID, tt.isGuest)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("basic_plus is matched before basic", func(t *testing.T) {
		t.Parallel()

		// "basic_plus" contains "basic"; the rule order guarantees the more
		// specific pattern wins.
		got := entitlement.ResolvePersonalPlan(entitlement.StatusActive, entitlement.RoleUser, "basic_plus", false)
		assert.Equal(t, entitlement.PlanBasicPlus, got)
	})

	t.Run("referentially transparent", func(t *testing.T) {
		t.Parallel()

		first := entitlement.ResolvePersonalPlan(entitlement.StatusActive, entitlement.RoleUser, "price_pro", false)
		for i := 0; i < 100; i++ {
			again := entitlement.ResolvePersonalPlan(entitlement.StatusActive, entitlement.RoleUser, "price_pro", false)
			assert.Equal(t, first, again)
		}
	})

	t.Run("admin override ignores guest flag and status", func(t *testing.T) {
		t.Parallel()

		for _, status := range []entitlement.SubscriptionStatus{
			entitlement.StatusTrialing,
			entitlement.StatusActive,
			entitlement.StatusPastDue,
			entitlement.StatusCancelled,
			entitlement.StatusExpired,
		} {
			for _, guest := range []bool{true, false} {
				got := entitlement.ResolvePersonalPlan(status, entitlement.RoleAdmin, "anything", guest)
				assert.Equal(t, entitlement.PlanAdmin, got)
			}
		}
	})
}
