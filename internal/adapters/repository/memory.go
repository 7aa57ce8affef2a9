package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/okian/mergington/internal/domain/model"
)

// InMemoryRegistry is a process-local Registry.
//
// Rosters are plain slices: membership checks are linear, which is fine for
// the handful of students an activity holds. Capacity is informational and
// never enforced.
type InMemoryRegistry struct {
	mu         sync.RWMutex
	activities map[string]*model.Activity
	seed       model.Catalog
}

var _ Registry = (*InMemoryRegistry)(nil)

// NewInMemoryRegistry builds a registry seeded from the configured catalog.
// The catalog is copied; later changes to it do not leak into the registry.
func NewInMemoryRegistry(_ context.Context, opts ...Option) (*InMemoryRegistry, error) {
	r := &InMemoryRegistry{
		seed: model.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := ValidateCatalog(r.seed); err != nil {
		return nil, err
	}

	r.activities = make(map[string]*model.Activity, len(r.seed))
	for name, a := range r.seed {
		c := a.Clone()
		r.activities[name] = &c
	}
	r.seed = nil
	return r, nil
}

// ValidateCatalog checks names, capacities and roster uniqueness.
func ValidateCatalog(catalog model.Catalog) error {
	for name, a := range catalog {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty activity name", ErrInvalidCatalog)
		}
		if a.MaxParticipants <= 0 {
			return fmt.Errorf("%w: %q has non-positive max_participants %d", ErrInvalidCatalog, name, a.MaxParticipants)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if _, dup := seen[email]; dup {
				return fmt.Errorf("%w: %q lists %s twice", ErrInvalidCatalog, name, email)
			}
			seen[email] = struct{}{}
		}
	}
	return nil
}

// List returns a deep-copied snapshot of the registry.
func (r *InMemoryRegistry) List(_ context.Context) map[string]model.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]model.Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.Clone()
	}
	return out
}

// Exists reports whether name is registered.
func (r *InMemoryRegistry) Exists(_ context.Context, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.activities[name]
	return ok
}

// Get returns a copy of the named activity.
func (r *InMemoryRegistry) Get(_ context.Context, name string) (model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return model.Activity{}, ErrNotFound
	}
	return a.Clone(), nil
}

// AddParticipant appends email to the roster of name.
func (r *InMemoryRegistry) AddParticipant(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return ErrNotFound
	}
	if a.HasParticipant(email) {
		return ErrAlreadyRegistered
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// RemoveParticipant deletes the single roster entry for email.
func (r *InMemoryRegistry) RemoveParticipant(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return ErrNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return ErrNotRegistered
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	return nil
}

// Count returns the number of activities.
func (r *InMemoryRegistry) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.activities)
}

// ParticipantCount returns the total number of roster entries.
func (r *InMemoryRegistry) ParticipantCount(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, a := range r.activities {
		total += len(a.Participants)
	}
	return total
}
