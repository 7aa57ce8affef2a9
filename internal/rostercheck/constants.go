package rostercheck

import "time"

// Defaults applied by Config.normalize.
const (
	DefaultStudents = 100
	DefaultWorkers  = 8
	DefaultTimeout  = 10 * time.Second
	DefaultDomain   = "mergington.edu"
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// duplicateSample caps how many generated students are re-submitted to
// confirm the duplicate rejection.
const duplicateSample = 5

// Outcome of a single roster call.
const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)
