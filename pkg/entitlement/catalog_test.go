package entitlement_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KovD3v/entitlements/pkg/entitlement"
)

func testPlans() map[entitlement.PlanKey]entitlement.PlanSpec {
	plans := make(map[entitlement.PlanKey]entitlement.PlanSpec)
	cat := entitlement.DefaultCatalog()
	for _, key := range cat.Keys() {
		spec, err := cat.Plan(key)
		if err != nil {
			panic(err)
		}
		plans[key] = spec
	}
	return plans
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("accepts the default plan table", func(t *testing.T) {
		t.Parallel()

		cat, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(testPlans()))

		require.NoError(t, err)
		assert.NotNil(t, cat)
	})

	t.Run("rejects a missing canonical plan", func(t *testing.T) {
		t.Parallel()

		plans := testPlans()
		delete(plans, entitlement.PlanBasicPlus)

		_, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(plans))

		assert.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
	})

	t.Run("rejects negative quota values", func(t *testing.T) {
		t.Parallel()

		plans := testPlans()
		spec := plans[entitlement.PlanBasic]
		spec.Limits.MaxRequestsPerDay = -5
		plans[entitlement.PlanBasic] = spec

		_, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(plans))

		assert.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
	})

	t.Run("rejects a non-monotonic ladder", func(t *testing.T) {
		t.Parallel()

		// basic_plus with fewer daily requests than basic breaks the
		// better-plan-is-never-worse invariant.
		plans := testPlans()
		spec := plans[entitlement.PlanBasicPlus]
		spec.Limits.MaxRequestsPerDay = 50
		plans[entitlement.PlanBasicPlus] = spec

		_, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(plans))

		assert.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
	})

	t.Run("rejects a tier inversion", func(t *testing.T) {
		t.Parallel()

		plans := testPlans()
		spec := plans[entitlement.PlanPro]
		spec.Tier = entitlement.TierBasic
		plans[entitlement.PlanPro] = spec

		_, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(plans))

		assert.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
	})

	t.Run("unlimited satisfies monotonicity at the top", func(t *testing.T) {
		t.Parallel()

		// The default admin plan is all-unlimited; constructing the catalog
		// proves Unlimited compares above every finite pro value.
		_, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(testPlans()))
		require.NoError(t, err)
	})
}

func TestDefaultCatalog_Monotonicity(t *testing.T) {
	t.Parallel()

	cat := entitlement.DefaultCatalog()
	keys := cat.Keys()

	gte := func(a, b int64) bool {
		if a == entitlement.Unlimited {
			return true
		}
		if b == entitlement.Unlimited {
			return false
		}
		return a >= b
	}

	for i := 1; i < len(keys); i++ {
		lower, err := cat.Plan(keys[i-1])
		require.NoError(t, err)
		higher, err := cat.Plan(keys[i])
		require.NoError(t, err)

		assert.GreaterOrEqual(t, higher.Tier, lower.Tier, "%s vs %s", higher.Key, lower.Key)
		assert.True(t, gte(higher.Limits.MaxRequestsPerDay, lower.Limits.MaxRequestsPerDay), "%s requests", higher.Key)
		assert.True(t, gte(higher.Limits.MaxInputTokensPerDay, lower.Limits.MaxInputTokensPerDay), "%s input tokens", higher.Key)
		assert.True(t, gte(higher.Limits.MaxOutputTokensPerDay, lower.Limits.MaxOutputTokensPerDay), "%s output tokens", higher.Key)
		assert.True(t, gte(higher.Limits.MaxContextMessages, lower.Limits.MaxContextMessages), "%s context messages", higher.Key)
		if higher.Limits.MaxCostPerDayUSD != entitlement.UnlimitedUSD {
			assert.GreaterOrEqual(t, higher.Limits.MaxCostPerDayUSD, lower.Limits.MaxCostPerDayUSD, "%s cost", higher.Key)
		}
	}
}

func TestYAMLSource(t *testing.T) {
	t.Parallel()

	t.Run("parses a catalog document", func(t *testing.T) {
		t.Parallel()

		doc := `
plans:
  basic:
    name: Basic
    tier: basic
    limits:
      max_requests_per_day: 100
      max_input_tokens_per_day: 200000
      max_output_tokens_per_day: 100000
      max_cost_per_day_usd: 5
      max_context_messages: 20
  admin:
    name: Admin
    tier: admin
    limits:
      max_requests_per_day: -1
      max_input_tokens_per_day: -1
      max_output_tokens_per_day: -1
      max_cost_per_day_usd: -1
      max_context_messages: -1
`
		src, err := entitlement.NewYAMLSource(strings.NewReader(doc))
		require.NoError(t, err)

		plans, err := src.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, plans, 2)

		basic := plans[entitlement.PlanBasic]
		assert.Equal(t, "Basic", basic.Name)
		assert.Equal(t, entitlement.TierBasic, basic.Tier)
		assert.Equal(t, int64(100), basic.Limits.MaxRequestsPerDay)

		admin := plans[entitlement.PlanAdmin]
		assert.Equal(t, entitlement.Unlimited, admin.Limits.MaxRequestsPerDay)
		assert.Equal(t, entitlement.UnlimitedUSD, admin.Limits.MaxCostPerDayUSD)
	})

	t.Run("rejects unknown tiers", func(t *testing.T) {
		t.Parallel()

		doc := `
plans:
  basic:
    name: Basic
    tier: platinum
`
		src, err := entitlement.NewYAMLSource(strings.NewReader(doc))
		require.NoError(t, err)

		_, err = src.Load(context.Background())
		assert.ErrorIs(t, err, entitlement.ErrFailedToLoadPlans)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		src, err := entitlement.NewYAMLSource(strings.NewReader("plans: ["))
		require.NoError(t, err)

		_, err = src.Load(context.Background())
		assert.ErrorIs(t, err, entitlement.ErrFailedToLoadPlans)
	})
}
