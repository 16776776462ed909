package entitlement

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// OrganizationStatus is the lifecycle state of an organization.
type OrganizationStatus string

const (
	OrgActive    OrganizationStatus = "active"
	OrgSuspended OrganizationStatus = "suspended"
	OrgDeleted   OrganizationStatus = "deleted"
)

// MembershipStatus is the state of a user's membership in an organization.
type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipRemoved MembershipStatus = "removed"
	MembershipBlocked MembershipStatus = "blocked"
)

// OrgRole is the user's role inside an organization.
type OrgRole string

const (
	OrgOwner  OrgRole = "owner"
	OrgMember OrgRole = "member"
)

// Membership links a user to an organization. Only active memberships in
// active organizations contribute entitlement sources.
type Membership struct {
	UserID             uuid.UUID
	OrganizationID     uuid.UUID
	OrganizationName   string
	OrganizationStatus OrganizationStatus
	Status             MembershipStatus
	Role               OrgRole
}

// Contract is an organization's negotiated entitlement policy. The quota
// vector is stored fully resolved at write time (base plan defaults plus any
// per-field overrides already applied), so readers never blend values.
//
// A contract may be absent for an organization; that is a data integrity gap
// the merger handles as a first-class case, not an error.
type Contract struct {
	OrganizationID uuid.UUID
	BasePlan       PlanKey
	SeatLimit      int
	PlanLabel      string
	Tier           ModelTier
	Limits         QuotaVector
	Version        int
}

// EffectiveLimits returns the contract's quota vector floored at the base
// plan's catalog defaults. The override mechanism must never produce a
// contract worse than its declared base plan; flooring enforces that
// invariant at read time even if a bad contract slipped into storage.
func (c Contract) EffectiveLimits(cat *Catalog) (QuotaVector, error) {
	base, err := cat.Plan(c.BasePlan)
	if err != nil {
		return QuotaVector{}, err
	}

	limits := c.Limits
	if !limitGTE(limits.MaxRequestsPerDay, base.Limits.MaxRequestsPerDay) {
		limits.MaxRequestsPerDay = base.Limits.MaxRequestsPerDay
	}
	if !limitGTE(limits.MaxInputTokensPerDay, base.Limits.MaxInputTokensPerDay) {
		limits.MaxInputTokensPerDay = base.Limits.MaxInputTokensPerDay
	}
	if !limitGTE(limits.MaxOutputTokensPerDay, base.Limits.MaxOutputTokensPerDay) {
		limits.MaxOutputTokensPerDay = base.Limits.MaxOutputTokensPerDay
	}
	if !costGTE(limits.MaxCostPerDayUSD, base.Limits.MaxCostPerDayUSD) {
		limits.MaxCostPerDayUSD = base.Limits.MaxCostPerDayUSD
	}
	if !limitGTE(limits.MaxContextMessages, base.Limits.MaxContextMessages) {
		limits.MaxContextMessages = base.Limits.MaxContextMessages
	}
	return limits, nil
}

// Validate reports whether the stored quota vector already satisfies the
// base-plan floor, for write-side enforcement by contract admin tooling.
func (c Contract) Validate(cat *Catalog) error {
	base, err := cat.Plan(c.BasePlan)
	if err != nil {
		return err
	}
	if !covers(c.Limits, base.Limits) {
		return fmt.Errorf("%w: organization %s base plan %s", ErrContractBelowBase, c.OrganizationID, c.BasePlan)
	}
	return nil
}

// Label is the human-readable provenance tag carried on organization
// entitlement sources.
func (m Membership) Label(basePlan PlanKey) string {
	return fmt.Sprintf("organization:%s:%s", m.OrganizationName, basePlan)
}

// MembershipRepository is the engine's view of organization data. The
// resolution logic depends only on this interface, so tests substitute the
// in-memory implementation and production wires the Postgres one.
type MembershipRepository interface {
	// ListActiveMemberships returns the user's active memberships in active
	// organizations. Memberships in suspended or deleted organizations are
	// filtered out by the implementation.
	ListActiveMemberships(ctx context.Context, userID uuid.UUID) ([]Membership, error)

	// GetContract returns the organization's contract, or (nil, nil) when
	// the organization has none.
	GetContract(ctx context.Context, orgID uuid.UUID) (*Contract, error)
}

// MemoryRepository is an in-memory MembershipRepository for tests and local
// development.
type MemoryRepository struct {
	mu          sync.RWMutex
	memberships map[uuid.UUID][]Membership
	contracts   map[uuid.UUID]Contract
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		memberships: make(map[uuid.UUID][]Membership),
		contracts:   make(map[uuid.UUID]Contract),
	}
}

// AddMembership registers a membership row.
func (r *MemoryRepository) AddMembership(m Membership) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memberships[m.UserID] = append(r.memberships[m.UserID], m)
}

// SetContract registers or replaces an organization's contract.
func (r *MemoryRepository) SetContract(c Contract) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts[c.OrganizationID] = c
}

// ListActiveMemberships returns active memberships in active organizations.
func (r *MemoryRepository) ListActiveMemberships(ctx context.Context, userID uuid.UUID) ([]Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []Membership
	for _, m := range r.memberships[userID] {
		if m.Status == MembershipActive && m.OrganizationStatus == OrgActive {
			active = append(active, m)
		}
	}
	return active, nil
}

// GetContract returns the organization's contract, or (nil, nil) when absent.
func (r *MemoryRepository) GetContract(ctx context.Context, orgID uuid.UUID) (*Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contracts[orgID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
