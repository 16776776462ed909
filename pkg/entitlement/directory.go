package entitlement

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// SubscriptionInfo is the slice of a subscription record the engine needs.
type SubscriptionInfo struct {
	Status SubscriptionStatus
	PlanID string
}

// UserRecord is the identity collaborator's answer for one user. A nil
// Subscription means the user has never hit a billing event.
type UserRecord struct {
	ID           uuid.UUID
	Role         Role
	IsGuest      bool
	Subscription *SubscriptionInfo
}

// UserDirectory looks up users and their subscription state. It is consumed
// only when the caller has not already resolved identity before invoking the
// engine.
type UserDirectory interface {
	// GetUser returns the user record, or ErrUserNotFound.
	GetUser(ctx context.Context, userID uuid.UUID) (*UserRecord, error)
}

// MemoryDirectory is an in-memory UserDirectory for tests and local
// development.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]UserRecord
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[uuid.UUID]UserRecord)}
}

// SetUser registers or replaces a user record.
func (d *MemoryDirectory) SetUser(u UserRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID] = u
}

// GetUser returns the user record, or ErrUserNotFound.
func (d *MemoryDirectory) GetUser(ctx context.Context, userID uuid.UUID) (*UserRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}
