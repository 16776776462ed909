package entitlement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/KovD3v/entitlements/pkg/entitlement"
)

func TestAdvisor_Suggest(t *testing.T) {
	t.Parallel()

	advisor := entitlement.NewAdvisor(entitlement.DefaultCatalog())

	t.Run("nil exactly for pro and admin", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, advisor.Suggest(entitlement.PlanPro, entitlement.LimitTypeRequests, "en"))
		assert.Nil(t, advisor.Suggest(entitlement.PlanAdmin, entitlement.LimitTypeRequests, "en"))

		for _, plan := range []entitlement.PlanKey{
			entitlement.PlanGuest,
			entitlement.PlanTrial,
			entitlement.PlanBasic,
			entitlement.PlanBasicPlus,
		} {
			assert.NotNil(t, advisor.Suggest(plan, entitlement.LimitTypeRequests, "en"), "plan %s", plan)
		}
	})

	t.Run("ladder steps", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			current, suggested entitlement.PlanKey
		}{
			// Guests skip trial: it is granted, not purchasable.
			{entitlement.PlanGuest, entitlement.PlanBasic},
			{entitlement.PlanTrial, entitlement.PlanBasic},
			{entitlement.PlanBasic, entitlement.PlanBasicPlus},
			{entitlement.PlanBasicPlus, entitlement.PlanPro},
		}

		for _, tt := range tests {
			info := advisor.Suggest(tt.current, entitlement.LimitTypeGeneral, "en")
			require.NotNil(t, info, "plan %s", tt.current)
			assert.Equal(t, tt.current, info.CurrentPlan)
			assert.Equal(t, tt.suggested, info.SuggestedPlan)
		}
	})

	t.Run("plan key matching is case-insensitive", func(t *testing.T) {
		t.Parallel()

		info := advisor.Suggest("BASIC", entitlement.LimitTypeRequests, "en")
		require.NotNil(t, info)
		assert.Equal(t, entitlement.PlanBasic, info.CurrentPlan)
	})

	t.Run("unknown plan keys get no suggestion", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, advisor.Suggest("enterprise_legacy", entitlement.LimitTypeRequests, "en"))
	})

	t.Run("messages interpolate plan display names", func(t *testing.T) {
		t.Parallel()

		info := advisor.Suggest(entitlement.PlanBasic, entitlement.LimitTypeRequests, "en")
		require.NotNil(t, info)

		assert.Equal(t, "Basic", info.CurrentPlanName)
		assert.Equal(t, "Basic Plus", info.SuggestedPlanName)
		assert.Contains(t, info.CTAMessage, "Basic")
		assert.Contains(t, info.CTAMessage, "Basic Plus")
		assert.Contains(t, info.CTAMessage, "request")
	})

	t.Run("message template follows limit type", func(t *testing.T) {
		t.Parallel()

		requests := advisor.Suggest(entitlement.PlanBasic, entitlement.LimitTypeRequests, "en")
		tokens := advisor.Suggest(entitlement.PlanBasic, entitlement.LimitTypeTokens, "en")
		cost := advisor.Suggest(entitlement.PlanBasic, entitlement.LimitTypeCost, "en")

		require.NotNil(t, requests)
		require.NotNil(t, tokens)
		require.NotNil(t, cost)
		assert.NotEqual(t, requests.CTAMessage, tokens.CTAMessage)
		assert.NotEqual(t, tokens.CTAMessage, cost.CTAMessage)
	})

	t.Run("upgrade url carries the suggested plan", func(t *testing.T) {
		t.Parallel()

		custom := entitlement.NewAdvisor(entitlement.DefaultCatalog(),
			entitlement.WithUpgradeURL("https://app.example.com/billing"))

		info := custom.Suggest(entitlement.PlanBasicPlus, entitlement.LimitTypeCost, "en")
		require.NotNil(t, info)
		assert.Equal(t, "https://app.example.com/billing?plan=pro", info.UpgradeURL)
	})
}

func TestAdvisor_Localization(t *testing.T) {
	t.Parallel()

	german := map[entitlement.LimitType]string{
		entitlement.LimitTypeRequests: "Tageslimit für Anfragen im Tarif %s erreicht. Upgrade auf %s für mehr Anfragen.",
		entitlement.LimitTypeGeneral:  "Tageslimit im Tarif %s erreicht. Upgrade auf %s.",
	}

	advisor := entitlement.NewAdvisor(entitlement.DefaultCatalog(),
		entitlement.WithMessages(language.German, german))

	t.Run("matches registered language", func(t *testing.T) {
		t.Parallel()

		info := advisor.Suggest(entitlement.PlanBasic, entitlement.LimitTypeRequests, "de-AT")
		require.NotNil(t, info)
		assert.Contains(t, info.CTAMessage, "Tageslimit")
		assert.Contains(t, info.CTAMessage, "Basic Plus")
	})

	t.Run("falls back to english for unknown languages", func(t *testing.T) {
		t.Parallel()

		info := advisor.Suggest(entitlement.PlanBasic, entitlement.LimitTypeRequests, "ja")
		require.NotNil(t, info)
		assert.Contains(t, info.CTAMessage, "Upgrade to")
	})

	t.Run("partial catalogs fall back per template", func(t *testing.T) {
		t.Parallel()

		// German has no cost template; the general one stands in.
		info := advisor.Suggest(entitlement.PlanBasic, entitlement.LimitTypeCost, "de")
		require.NotNil(t, info)
		assert.Contains(t, info.CTAMessage, "Tageslimit")
	})

	t.Run("empty language uses the fallback", func(t *testing.T) {
		t.Parallel()

		info := advisor.Suggest(entitlement.PlanBasic, entitlement.LimitTypeRequests, "")
		require.NotNil(t, info)
		assert.NotEmpty(t, info.CTAMessage)
	})
}
