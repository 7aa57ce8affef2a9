package rostercheck

import "errors"

// Sentinel errors returned by Run.
var (
	ErrUnhealthy     = errors.New("service unhealthy")
	ErrNoActivities  = errors.New("no target activities")
	ErrVerification  = errors.New("roster verification failed")
	ErrUnexpectedAPI = errors.New("unexpected api response")
)
