package entitlement

import (
	"context"
	"errors"
	"fmt"
)

// PlanSpec is one immutable catalog entry: the quota vector and model tier
// attached to a canonical plan key.
type PlanSpec struct {
	Key    PlanKey     `yaml:"key"`
	Name   string      `yaml:"name"`
	Tier   ModelTier   `yaml:"-"`
	Limits QuotaVector `yaml:"limits"`
}

// Source loads the plan catalog from a backing location (memory, YAML file,
// database). Implementations return a fresh copy on every call.
type Source interface {
	Load(ctx context.Context) (map[PlanKey]PlanSpec, error)
}

// Catalog is the static table mapping plan keys to quota vectors and model
// tiers. It is an immutable, injected value: construct once at startup and
// share freely across goroutines.
type Catalog struct {
	plans map[PlanKey]PlanSpec
}

// NewCatalog loads plans from the source and validates them: every canonical
// plan key must be present, all quota fields must be non-negative or
// Unlimited, and quota vectors must grow monotonically along the catalog
// ordering (a strictly better plan is at least as generous in every field).
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	if err := validateCatalog(plans); err != nil {
		return nil, err
	}

	return &Catalog{plans: plans}, nil
}

// Plan returns the catalog entry for the given key.
func (c *Catalog) Plan(key PlanKey) (PlanSpec, error) {
	spec, ok := c.plans[key]
	if !ok {
		return PlanSpec{}, fmt.Errorf("%w: %s", ErrPlanNotInCatalog, key)
	}
	return spec, nil
}

// Keys returns the canonical plan keys from worst to best.
func (c *Catalog) Keys() []PlanKey {
	keys := make([]PlanKey, len(catalogOrder))
	copy(keys, catalogOrder)
	return keys
}

func validateCatalog(plans map[PlanKey]PlanSpec) error {
	for _, key := range catalogOrder {
		spec, ok := plans[key]
		if !ok {
			return errors.Join(ErrInvalidCatalog, fmt.Errorf("missing plan %q", key))
		}
		if err := validateLimits(spec.Limits); err != nil {
			return errors.Join(ErrInvalidCatalog, fmt.Errorf("plan %q: %w", key, err))
		}
	}

	// Monotonicity invariant: walking the ladder upward, every quota field
	// and the model tier must be non-decreasing.
	for i := 1; i < len(catalogOrder); i++ {
		lower := plans[catalogOrder[i-1]]
		higher := plans[catalogOrder[i]]

		if higher.Tier < lower.Tier {
			return errors.Join(ErrInvalidCatalog,
				fmt.Errorf("plan %q has lower model tier than %q", higher.Key, lower.Key))
		}
		if !covers(higher.Limits, lower.Limits) {
			return errors.Join(ErrInvalidCatalog,
				fmt.Errorf("plan %q has a quota field below %q", higher.Key, lower.Key))
		}
	}

	return nil
}

func validateLimits(q QuotaVector) error {
	for _, v := range []int64{q.MaxRequestsPerDay, q.MaxInputTokensPerDay, q.MaxOutputTokensPerDay, q.MaxContextMessages} {
		if v < 0 && v != Unlimited {
			return fmt.Errorf("negative quota value %d", v)
		}
	}
	if q.MaxCostPerDayUSD < 0 && q.MaxCostPerDayUSD != UnlimitedUSD {
		return fmt.Errorf("negative cost limit %f", q.MaxCostPerDayUSD)
	}
	return nil
}

// covers reports whether every field of a is >= the corresponding field of b,
// treating Unlimited as greater than any finite value.
func covers(a, b QuotaVector) bool {
	return limitGTE(a.MaxRequestsPerDay, b.MaxRequestsPerDay) &&
		limitGTE(a.MaxInputTokensPerDay, b.MaxInputTokensPerDay) &&
		limitGTE(a.MaxOutputTokensPerDay, b.MaxOutputTokensPerDay) &&
		costGTE(a.MaxCostPerDayUSD, b.MaxCostPerDayUSD) &&
		limitGTE(a.MaxContextMessages, b.MaxContextMessages)
}

func limitGTE(a, b int64) bool {
	if a == Unlimited {
		return true
	}
	if b == Unlimited {
		return false
	}
	return a >= b
}

func costGTE(a, b float64) bool {
	if a == UnlimitedUSD {
		return true
	}
	if b == UnlimitedUSD {
		return false
	}
	return a >= b
}

// DefaultCatalog returns the production plan ladder. Tests that need
// alternate quota tables construct their own catalog through NewCatalog
// instead of mutating this one.
func DefaultCatalog() *Catalog {
	return &Catalog{plans: defaultPlans()}
}

func defaultPlans() map[PlanKey]PlanSpec {
	return map[PlanKey]PlanSpec{
		PlanGuest: {
			Key:  PlanGuest,
			Name: "Guest",
			Tier: TierTrial,
			Limits: QuotaVector{
				MaxRequestsPerDay:     10,
				MaxInputTokensPerDay:  10_000,
				MaxOutputTokensPerDay: 5_000,
				MaxCostPerDayUSD:      0.50,
				MaxContextMessages:    5,
			},
		},
		PlanTrial: {
			Key:  PlanTrial,
			Name: "Trial",
			Tier: TierTrial,
			Limits: QuotaVector{
				MaxRequestsPerDay:     30,
				MaxInputTokensPerDay:  40_000,
				MaxOutputTokensPerDay: 20_000,
				MaxCostPerDayUSD:      1.50,
				MaxContextMessages:    10,
			},
		},
		PlanBasic: {
			Key:  PlanBasic,
			Name: "Basic",
			Tier: TierBasic,
			Limits: QuotaVector{
				MaxRequestsPerDay:     100,
				MaxInputTokensPerDay:  200_000,
				MaxOutputTokensPerDay: 100_000,
				MaxCostPerDayUSD:      5,
				MaxContextMessages:    20,
			},
		},
		PlanBasicPlus: {
			Key:  PlanBasicPlus,
			Name: "Basic Plus",
			Tier: TierBasicPlus,
			Limits: QuotaVector{
				MaxRequestsPerDay:     300,
				MaxInputTokensPerDay:  600_000,
				MaxOutputTokensPerDay: 300_000,
				MaxCostPerDayUSD:      15,
				MaxContextMessages:    30,
			},
		},
		PlanPro: {
			Key:  PlanPro,
			Name: "Pro",
			Tier: TierPro,
			Limits: QuotaVector{
				MaxRequestsPerDay:     1_000,
				MaxInputTokensPerDay:  2_000_000,
				MaxOutputTokensPerDay: 1_000_000,
				MaxCostPerDayUSD:      50,
				MaxContextMessages:    50,
			},
		},
		PlanAdmin: {
			Key:  PlanAdmin,
			Name: "Admin",
			Tier: TierAdmin,
			Limits: QuotaVector{
				MaxRequestsPerDay:     Unlimited,
				MaxInputTokensPerDay:  Unlimited,
				MaxOutputTokensPerDay: Unlimited,
				MaxCostPerDayUSD:      UnlimitedUSD,
				MaxContextMessages:    Unlimited,
			},
		},
	}
}
