package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository reads organization memberships, contracts, and user
// records from the application's Postgres database. It implements both
// MembershipRepository and UserDirectory.
//
// The tables it reads (users, subscriptions, organizations,
// organization_members, organization_contracts) are owned and written by the
// identity and billing subsystems; this repository is strictly read-only.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a repository over the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const listMembershipsQuery = `
SELECT om.user_id, om.organization_id, o.name, o.status, om.status, om.role
FROM organization_members om
JOIN organizations o ON o.id = om.organization_id
WHERE om.user_id = $1
  AND om.status = 'active'
  AND o.status = 'active'
ORDER BY om.organization_id`

// ListActiveMemberships returns the user's active memberships in active
// organizations.
func (r *PostgresRepository) ListActiveMemberships(ctx context.Context, userID uuid.UUID) ([]Membership, error) {
	rows, err := r.pool.Query(ctx, listMembershipsQuery, userID)
	if err != nil {
		return nil, errors.Join(ErrRepositoryFailure, err)
	}
	defer rows.Close()

	var memberships []Membership
	for rows.Next() {
		var (
			m                             Membership
			orgStatus, memStatus, memRole string
		)
		if err := rows.Scan(&m.UserID, &m.OrganizationID, &m.OrganizationName, &orgStatus, &memStatus, &memRole); err != nil {
			return nil, errors.Join(ErrRepositoryFailure, err)
		}
		m.OrganizationStatus = OrganizationStatus(orgStatus)
		m.Status = MembershipStatus(memStatus)
		m.Role = OrgRole(memRole)
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrRepositoryFailure, err)
	}
	return memberships, nil
}

const getContractQuery = `
SELECT organization_id, base_plan, seat_limit, plan_label, model_tier,
       max_requests_per_day, max_input_tokens_per_day, max_output_tokens_per_day,
       max_cost_per_day_usd, max_context_messages, version
FROM organization_contracts
WHERE organization_id = $1`

// GetContract returns the organization's contract, or (nil, nil) when the
// organization has none.
func (r *PostgresRepository) GetContract(ctx context.Context, orgID uuid.UUID) (*Contract, error) {
	var (
		c                  Contract
		basePlan, tierName string
	)
	err := r.pool.QueryRow(ctx, getContractQuery, orgID).Scan(
		&c.OrganizationID,
		&basePlan,
		&c.SeatLimit,
		&c.PlanLabel,
		&tierName,
		&c.Limits.MaxRequestsPerDay,
		&c.Limits.MaxInputTokensPerDay,
		&c.Limits.MaxOutputTokensPerDay,
		&c.Limits.MaxCostPerDayUSD,
		&c.Limits.MaxContextMessages,
		&c.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Join(ErrRepositoryFailure, err)
	}

	c.BasePlan = PlanKey(basePlan)
	tier, ok := ParseModelTier(tierName)
	if !ok {
		return nil, errors.Join(ErrRepositoryFailure,
			fmt.Errorf("contract for organization %s carries unknown model tier %q", orgID, tierName))
	}
	c.Tier = tier
	return &c, nil
}

const getUserQuery = `
SELECT u.id, u.role, u.is_guest, s.status, s.plan_id
FROM users u
LEFT JOIN subscriptions s ON s.user_id = u.id
WHERE u.id = $1`

// GetUser returns the user's identity and subscription state, or
// ErrUserNotFound.
func (r *PostgresRepository) GetUser(ctx context.Context, userID uuid.UUID) (*UserRecord, error) {
	var (
		u              UserRecord
		role           string
		status, planID *string
	)
	err := r.pool.QueryRow(ctx, getUserQuery, userID).Scan(&u.ID, &role, &u.IsGuest, &status, &planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Join(ErrRepositoryFailure, err)
	}

	u.Role = Role(role)
	if status != nil {
		sub := &SubscriptionInfo{Status: SubscriptionStatus(*status)}
		if planID != nil {
			sub.PlanID = *planID
		}
		u.Subscription = sub
	}
	return &u, nil
}
