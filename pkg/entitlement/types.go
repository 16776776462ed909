package entitlement

// PlanKey is the canonical internal identifier of a pricing tier.
type PlanKey string

const (
	PlanGuest     PlanKey = "guest"
	PlanTrial     PlanKey = "trial"
	PlanBasic     PlanKey = "basic"
	PlanBasicPlus PlanKey = "basic_plus"
	PlanPro       PlanKey = "pro"
	PlanAdmin     PlanKey = "admin"
)

// catalogOrder lists plan keys from worst to best. It drives both the
// monotonicity validation of quota vectors and the upgrade ladder.
var catalogOrder = []PlanKey{
	PlanGuest,
	PlanTrial,
	PlanBasic,
	PlanBasicPlus,
	PlanPro,
	PlanAdmin,
}

// ModelTier classifies which model quality a plan unlocks. It is a total
// order, separate from PlanKey, and serves as the primary comparison key
// when merging entitlement sources.
type ModelTier int

const (
	TierTrial ModelTier = iota
	TierBasic
	TierBasicPlus
	TierPro
	TierEnterprise
	TierAdmin
)

var tierNames = map[ModelTier]string{
	TierTrial:      "trial",
	TierBasic:      "basic",
	TierBasicPlus:  "basic_plus",
	TierPro:        "pro",
	TierEnterprise: "enterprise",
	TierAdmin:      "admin",
}

func (t ModelTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseModelTier converts the wire/storage representation of a tier back to
// its ordered value.
func ParseModelTier(s string) (ModelTier, bool) {
	for tier, name := range tierNames {
		if name == s {
			return tier, true
		}
	}
	return 0, false
}

// Unlimited marks a quota field with no limit (-1 chosen for SQL compatibility).
// It compares greater than any finite value.
const Unlimited int64 = -1

// UnlimitedUSD is the Unlimited sentinel for the cost dimension.
const UnlimitedUSD float64 = -1

// QuotaVector is the 5-tuple of daily limits enforced per user.
// All fields are non-negative or the Unlimited sentinel.
type QuotaVector struct {
	MaxRequestsPerDay     int64   `json:"max_requests_per_day" yaml:"max_requests_per_day"`
	MaxInputTokensPerDay  int64   `json:"max_input_tokens_per_day" yaml:"max_input_tokens_per_day"`
	MaxOutputTokensPerDay int64   `json:"max_output_tokens_per_day" yaml:"max_output_tokens_per_day"`
	MaxCostPerDayUSD      float64 `json:"max_cost_per_day_usd" yaml:"max_cost_per_day_usd"`
	MaxContextMessages    int64   `json:"max_context_messages" yaml:"max_context_messages"`
}

// SubscriptionStatus is the lifecycle state of a personal subscription.
type SubscriptionStatus string

const (
	StatusTrialing  SubscriptionStatus = "trialing"
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

// Role is the user's system-wide role, resolved by the identity collaborator.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsAdmin reports whether the role grants the absolute admin override.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
