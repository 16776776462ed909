package entitlement

import (
	"context"
	"maps"
	"sync"
)

// inMemSource implements Source over an in-memory plan map.
type inMemSource struct {
	mu    sync.RWMutex
	plans map[PlanKey]PlanSpec
}

// NewInMemSource returns a Source serving a copy of the given plans.
// Copying on both write and read keeps the source immutable from the
// caller's point of view.
func NewInMemSource(plans map[PlanKey]PlanSpec) Source {
	return &inMemSource{plans: maps.Clone(plans)}
}

// Load returns a copy of all plans.
func (s *inMemSource) Load(ctx context.Context) (map[PlanKey]PlanSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.plans), nil
}
