package rostercheck

import (
	"time"

	"github.com/okian/mergington/internal/domain/model"
)

// Config holds configuration for the roster check
type Config struct {
	BaseURL  string        // Base URL of the service
	Students int           // Number of students to generate
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Activity string        // Single target activity; empty means all
	Domain   string        // Email domain for generated students
	Verbose  bool          // Enable verbose logging
}

// Enrollment pairs a generated student with the activity they join.
type Enrollment struct {
	Activity string
	Email    string
}

// Activities mirrors the GET /activities payload.
type Activities map[string]model.Activity

// messageResponse and errorResponse mirror the API bodies.
type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Stats holds run statistics
type Stats struct {
	StudentsGenerated  int
	SignupsSucceeded   int
	SignupsRejected    int
	SignupsFailed      int
	DuplicatesChecked  int
	RemovalsSucceeded  int
	RemovalsRejected   int
	RemovalsFailed     int
	ActivitiesVerified int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
