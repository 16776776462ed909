package entitlement

import (
	"log/slog"
	"time"

	"github.com/KovD3v/entitlements/pkg/usage"
)

// Option configures the Service.
type Option func(*Service)

// WithMembershipRepository wires the organization data source. Without it
// the service resolves personal entitlements only.
func WithMembershipRepository(repo MembershipRepository) Option {
	return func(s *Service) { s.memberships = repo }
}

// WithUserDirectory wires the identity lookup used when callers pass an
// unresolved ResolutionContext.
func WithUserDirectory(dir UserDirectory) Option {
	return func(s *Service) { s.users = dir }
}

// WithUsageStore replaces the default in-memory counter store.
func WithUsageStore(store usage.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithAdvisor replaces the default upgrade advisor.
func WithAdvisor(a *Advisor) Option {
	return func(s *Service) { s.advisor = a }
}

// WithLogger sets the structured logger. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source. Tests use this to pin the UTC day.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithConfig applies the env-driven settings.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.defaultLang = cfg.DefaultLanguage
		s.upgradeURL = cfg.UpgradeURL
	}
}
