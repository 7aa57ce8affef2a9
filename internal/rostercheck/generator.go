package rostercheck

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/okian/mergington/pkg/logger"
)

// selectTargets returns the activity names the run will touch, sorted.
func selectTargets(config *Config, activities Activities) ([]string, error) {
	if config.Activity != "" {
		if _, ok := activities[config.Activity]; !ok {
			return nil, ErrNoActivities
		}
		return []string{config.Activity}, nil
	}
	if len(activities) == 0 {
		return nil, ErrNoActivities
	}
	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// generateEnrollments creates unique students and spreads them round-robin
// over targets.
func generateEnrollments(ctx context.Context, config *Config, targets []string) []Enrollment {
	logger.Get().Info(ctx, "generating students", logger.Int("students", config.Students))

	out := make([]Enrollment, config.Students)
	for i := range out {
		out[i] = Enrollment{
			Activity: targets[i%len(targets)],
			Email:    "student-" + uuid.NewString() + "@" + config.Domain,
		}
	}
	return out
}
