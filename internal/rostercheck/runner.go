package rostercheck

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/mergington/pkg/logger"
)

// Run executes the complete roster check and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	config.normalize()
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(config.BaseURL, config.Timeout)

	logger.Get().Info(ctx, "starting roster check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("students", config.Students),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.String("activity", config.Activity))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, err
	}

	// Step 2: Snapshot rosters and pick targets
	before, err := fetchActivities(ctx, client)
	if err != nil {
		return stats, err
	}
	targets, err := selectTargets(config, before)
	if err != nil {
		return stats, err
	}

	// Step 3: Sign everyone up concurrently
	enrollments := generateEnrollments(ctx, config, targets)
	stats.StudentsGenerated = len(enrollments)
	signups := submitAll(ctx, config, client, "signup", enrollments)
	stats.SignupsSucceeded = int(signups.succeeded)
	stats.SignupsRejected = int(signups.rejected)
	stats.SignupsFailed = int(signups.failed)

	// Step 4: Verify enrollments
	during, err := fetchActivities(ctx, client)
	if err != nil {
		return stats, err
	}
	if err := verifyEnrolled(ctx, during, enrollments); err != nil {
		return stats, err
	}

	// Step 5: Duplicate signups must be rejected
	if err := checkDuplicates(ctx, client, enrollments, stats); err != nil {
		return stats, err
	}

	// Step 6: Remove everyone concurrently
	removals := submitAll(ctx, config, client, "remove", enrollments)
	stats.RemovalsSucceeded = int(removals.succeeded)
	stats.RemovalsRejected = int(removals.rejected)
	stats.RemovalsFailed = int(removals.failed)

	// Step 7: Rosters are back where they started
	after, err := fetchActivities(ctx, client)
	if err != nil {
		return stats, err
	}
	if err := verifyRestored(ctx, before, after, targets); err != nil {
		return stats, err
	}
	stats.ActivitiesVerified = len(targets)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.SignupsSucceeded != stats.StudentsGenerated || stats.RemovalsSucceeded != stats.StudentsGenerated {
		return stats, fmt.Errorf("%w: %d signups and %d removals succeeded for %d students",
			ErrVerification, stats.SignupsSucceeded, stats.RemovalsSucceeded, stats.StudentsGenerated)
	}

	logger.Get().Info(ctx, "roster check completed successfully")
	return stats, nil
}

func (c *Config) normalize() {
	if c.Students <= 0 {
		c.Students = DefaultStudents
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Domain == "" {
		c.Domain = DefaultDomain
	}
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_, _ = readResponseBody(resp)

	// The service returns Prometheus metrics; any 200 is healthy.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// checkDuplicates re-submits a sample of signups and expects a 400 for each.
func checkDuplicates(ctx context.Context, client *HTTPClient, enrollments []Enrollment, stats *Stats) error {
	sample := enrollments[:min(duplicateSample, len(enrollments))]
	for _, e := range sample {
		outcome, detail := changeRoster(ctx, client, "signup", e)
		if outcome != outcomeRejected {
			return fmt.Errorf("%w: duplicate signup of %s for %s was %s", ErrVerification, e.Email, e.Activity, outcome)
		}
		logger.Get().Debug(ctx, "duplicate rejected", logger.String("detail", detail))
		stats.DuplicatesChecked++
	}
	return nil
}

// displayFinalStats logs the final statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var requestsPerSecond float64
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.SignupsSucceeded+stats.RemovalsSucceeded) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("studentsGenerated", stats.StudentsGenerated),
		logger.Int("signupsSucceeded", stats.SignupsSucceeded),
		logger.Int("signupsRejected", stats.SignupsRejected),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("duplicatesChecked", stats.DuplicatesChecked),
		logger.Int("removalsSucceeded", stats.RemovalsSucceeded),
		logger.Int("removalsRejected", stats.RemovalsRejected),
		logger.Int("removalsFailed", stats.RemovalsFailed),
		logger.Int("activitiesVerified", stats.ActivitiesVerified),
		logger.Duration("duration", stats.Duration),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
