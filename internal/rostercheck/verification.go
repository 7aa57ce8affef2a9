package rostercheck

import (
	"context"
	"fmt"
	"slices"

	"github.com/okian/mergington/pkg/logger"
)

// verifyEnrolled checks every enrollment is present on its roster.
func verifyEnrolled(ctx context.Context, snapshot Activities, enrollments []Enrollment) error {
	logger.Get().Info(ctx, "verifying enrollments")

	var missing int
	for _, e := range enrollments {
		if !snapshot[e.Activity].HasParticipant(e.Email) {
			missing++
			logger.Get().Warn(ctx, "student missing from roster",
				logger.String("activity", e.Activity),
				logger.String("email", e.Email))
		}
	}
	if missing > 0 {
		return fmt.Errorf("%w: %d of %d students missing", ErrVerification, missing, len(enrollments))
	}
	return nil
}

// verifyRestored checks each target roster matches its pre-run order exactly.
func verifyRestored(ctx context.Context, before, after Activities, targets []string) error {
	logger.Get().Info(ctx, "verifying rosters were restored")

	for _, name := range targets {
		if !slices.Equal(before[name].Participants, after[name].Participants) {
			return fmt.Errorf("%w: %s roster changed: before=%v after=%v",
				ErrVerification, name, before[name].Participants, after[name].Participants)
		}
	}
	return nil
}
