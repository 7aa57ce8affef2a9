// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/model"
)

// Registry provides read/write access to activities and their rosters.
type Registry interface {
	// List returns a deep-copied snapshot of every activity keyed by name.
	List(ctx context.Context) map[string]model.Activity

	// Exists reports whether an activity with name is registered.
	Exists(ctx context.Context, name string) bool

	// Get returns a copy of one activity.
	// Returns ErrNotFound if the activity is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// AddParticipant appends email to the activity roster.
	// Returns ErrNotFound or ErrAlreadyRegistered.
	AddParticipant(ctx context.Context, name, email string) error

	// RemoveParticipant deletes email from the activity roster, keeping the
	// order of the remaining participants.
	// Returns ErrNotFound or ErrNotRegistered.
	RemoveParticipant(ctx context.Context, name, email string) error

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// ParticipantCount returns the number of roster entries across all activities.
	ParticipantCount(ctx context.Context) int
}
