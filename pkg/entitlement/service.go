package entitlement

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KovD3v/entitlements/pkg/logger"
	"github.com/KovD3v/entitlements/pkg/usage"
)

// ResolutionContext carries the identity inputs for one request.
//
// Callers that already resolved the user's subscription state (for example
// middleware that loaded the session) set the fields and Resolved; otherwise
// the service fills them from the configured UserDirectory.
type ResolutionContext struct {
	UserID             uuid.UUID
	SubscriptionStatus SubscriptionStatus
	Role               Role
	PlanID             string
	IsGuest            bool

	// Resolved marks the identity fields above as authoritative,
	// skipping the directory lookup.
	Resolved bool
}

// Service is the entitlement resolution and rate-limiting engine.
//
// All resolution logic is pure in-memory computation over data fetched
// through the injected collaborators; the only shared mutable state is the
// usage counter store. CheckRateLimit and IncrementUsage are deliberately
// separate calls: two concurrent requests can both pass the check before
// either increments, transiently exceeding a limit by a small margin. Daily
// quotas are a soft product boundary, not a security one, and cross-request
// locking would cost more latency than the overshoot is worth.
type Service struct {
	catalog     *Catalog
	memberships MembershipRepository
	users       UserDirectory
	store       usage.Store
	advisor     *Advisor
	log         *slog.Logger
	now         func() time.Time
	defaultLang string
	upgradeURL  string
}

// New creates the engine around an immutable plan catalog.
//
// Without options the service uses an in-memory usage store, no membership
// repository (personal entitlements only), no user directory (callers must
// pass resolved identity), and a silent logger.
func New(catalog *Catalog, opts ...Option) (*Service, error) {
	if catalog == nil {
		return nil, ErrInvalidCatalog
	}

	s := &Service{
		catalog: catalog,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = usage.NewMemoryStore()
	}
	if s.advisor == nil {
		var advOpts []AdvisorOption
		if s.upgradeURL != "" {
			advOpts = append(advOpts, WithUpgradeURL(s.upgradeURL))
		}
		s.advisor = NewAdvisor(catalog, advOpts...)
	}

	return s, nil
}

// ResolveEffectiveEntitlements computes the single policy enforced for the
// user right now: the personal plan and every usable organization contract
// are considered, and exactly one wins. The result is recomputed per request
// and never persisted.
func (s *Service) ResolveEffectiveEntitlements(ctx context.Context, rctx ResolutionContext) (*EffectiveEntitlements, error) {
	rctx, err := s.resolveIdentity(ctx, rctx)
	if err != nil {
		return nil, err
	}

	plan := ResolvePersonalPlan(rctx.SubscriptionStatus, rctx.Role, rctx.PlanID, rctx.IsGuest)
	spec, err := s.catalog.Plan(plan)
	if err != nil {
		return nil, err
	}

	personal := EntitlementSource{
		Type:   SourcePersonal,
		ID:     "personal:" + string(plan),
		Label:  "personal:" + string(plan),
		Plan:   plan,
		Tier:   spec.Tier,
		Limits: spec.Limits,
	}

	// Guests and admins bypass organizational policy entirely.
	if plan == PlanGuest || plan == PlanAdmin || s.memberships == nil {
		ents := entitlementsFrom(personal)
		return &ents, nil
	}

	memberships, err := s.memberships.ListActiveMemberships(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}

	orgSources, err := s.organizationSources(ctx, memberships)
	if err != nil {
		return nil, err
	}

	if len(orgSources) == 0 {
		if len(memberships) > 0 {
			// Memberships existed but none had a usable contract. Tag the
			// personal source distinctly so the gap shows up in audits.
			personal.ID += ":fallback"
			s.log.DebugContext(ctx, "organization memberships yielded no usable contract, falling back to personal plan",
				logger.UserID(rctx.UserID),
				slog.Int("memberships", len(memberships)),
			)
		}
		ents := entitlementsFrom(personal)
		return &ents, nil
	}

	ents := entitlementsFrom(bestSource(orgSources))
	return &ents, nil
}

// organizationSources turns memberships into candidate sources, skipping
// organizations without a contract.
func (s *Service) organizationSources(ctx context.Context, memberships []Membership) ([]EntitlementSource, error) {
	sources := make([]EntitlementSource, 0, len(memberships))
	for _, m := range memberships {
		contract, err := s.memberships.GetContract(ctx, m.OrganizationID)
		if err != nil {
			return nil, err
		}
		if contract == nil {
			continue
		}

		limits, err := contract.EffectiveLimits(s.catalog)
		if err != nil {
			// Contract references a base plan the catalog doesn't know.
			// Treat it like a missing contract rather than failing the user.
			s.log.WarnContext(ctx, "skipping contract with unknown base plan",
				logger.OrganizationID(m.OrganizationID),
				logger.Plan(contract.BasePlan),
				logger.Error(err),
			)
			continue
		}

		sources = append(sources, EntitlementSource{
			Type:   SourceOrganization,
			ID:     "organization:" + m.OrganizationID.String(),
			Label:  m.Label(contract.BasePlan),
			Plan:   contract.BasePlan,
			Tier:   contract.Tier,
			Limits: limits,
		})
	}
	return sources, nil
}

// CheckRateLimit decides whether to admit the request against today's
// usage. It reads counters but never increments them: admission and
// consumption are separate calls by design (see the Service doc).
func (s *Service) CheckRateLimit(ctx context.Context, rctx ResolutionContext) (*RateLimitResult, error) {
	ents, err := s.ResolveEffectiveEntitlements(ctx, rctx)
	if err != nil {
		return nil, err
	}

	today, err := s.store.Get(ctx, rctx.UserID, usage.DayOf(s.now()))
	if err != nil {
		return nil, err
	}

	result := &RateLimitResult{
		Allowed:      true,
		Entitlements: *ents,
		Usage:        today,
		PercentUsed:  percentUsed(ents.Limits, today),
	}

	if reason, denied := evaluate(ents.Limits, today); denied {
		result.Allowed = false
		result.Reason = reason
		result.Upgrade = s.advisor.Suggest(ents.Source().Plan, reason.LimitType(), s.language(ctx))

		s.log.InfoContext(ctx, "request denied by daily quota",
			logger.UserID(rctx.UserID),
			logger.Plan(ents.Source().Plan),
			slog.String("reason", string(reason)),
			slog.String("source", ents.Source().ID),
		)
	}

	return result, nil
}

// IncrementUsage records the consumption of one admitted request on today's
// UTC counter row. The underlying store applies the whole update atomically.
func (s *Service) IncrementUsage(ctx context.Context, userID uuid.UUID, inputTokens, outputTokens int64, costUSD float64) (usage.DailyUsage, error) {
	if userID == uuid.Nil {
		return usage.DailyUsage{}, ErrMissingUserID
	}
	return s.store.Increment(ctx, userID, usage.DayOf(s.now()), usage.Delta{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		CostUSD:      costUSD,
	})
}

// GetDailyUsage returns today's counter row for the user, zero-valued if the
// user has not consumed anything yet. The read never creates rows.
func (s *Service) GetDailyUsage(ctx context.Context, userID uuid.UUID) (usage.DailyUsage, error) {
	if userID == uuid.Nil {
		return usage.DailyUsage{}, ErrMissingUserID
	}
	return s.store.Get(ctx, userID, usage.DayOf(s.now()))
}

func (s *Service) resolveIdentity(ctx context.Context, rctx ResolutionContext) (ResolutionContext, error) {
	if rctx.UserID == uuid.Nil {
		return rctx, ErrMissingUserID
	}
	if rctx.Resolved {
		return rctx, nil
	}
	if s.users == nil {
		// Zero-value identity fields would silently resolve to trial.
		return rctx, ErrNoUserDirectory
	}

	u, err := s.users.GetUser(ctx, rctx.UserID)
	if err != nil {
		return rctx, err
	}

	rctx.Role = u.Role
	rctx.IsGuest = u.IsGuest
	if u.Subscription != nil {
		rctx.SubscriptionStatus = u.Subscription.Status
		rctx.PlanID = u.Subscription.PlanID
	}
	rctx.Resolved = true
	return rctx, nil
}

func (s *Service) language(ctx context.Context) string {
	if lang, ok := GetLanguageFromContext(ctx); ok {
		return lang
	}
	return s.defaultLang
}
