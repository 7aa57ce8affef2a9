// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// ErrNotStarted is returned by roster operations before Start.
var ErrNotStarted = errors.New("service not started")

// Operation names used in metrics and logs.
const (
	opSignup = "signup"
	opRemove = "remove"
)

// Service owns the activity registry and implements the API dependencies.
type Service struct {
	mu sync.RWMutex

	registry repository.Registry
	catalog  model.Catalog

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog seeds the registry built by Start. Ignored when a registry is injected.
func WithCatalog(catalog model.Catalog) Option {
	return func(s *Service) {
		s.catalog = catalog
	}
}

// WithRegistry injects a ready registry instead of building one on Start.
func WithRegistry(r repository.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// New constructs a new Service. Call Start before serving requests.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the registry and publishes the initial gauges.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.registry == nil {
		r, err := repository.NewInMemoryRegistry(ctx, repository.WithCatalog(s.catalog))
		if err != nil {
			return fmt.Errorf("service.start: %w", err)
		}
		s.registry = r
	}

	s.started = true
	s.refreshGauges(ctx)
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", s.registry.Count(ctx)),
		logger.Int("participants", s.registry.ParticipantCount(ctx)),
	)
	return nil
}

// Stop marks the service stopped. The registry is discarded with the process.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "activities service stopped")
}

func (s *Service) reg() (repository.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.registry, nil
}

// Activities returns a snapshot of every activity keyed by name.
func (s *Service) Activities(ctx context.Context) (map[string]model.Activity, error) {
	r, err := s.reg()
	if err != nil {
		return nil, err
	}
	return r.List(ctx), nil
}

// Signup adds email to the roster of activity.
// Returns repository.ErrNotFound or repository.ErrAlreadyRegistered.
func (s *Service) Signup(ctx context.Context, activity, email string) error {
	r, err := s.reg()
	if err != nil {
		return err
	}
	if err := r.AddParticipant(ctx, activity, email); err != nil {
		s.reject(ctx, opSignup, activity, email, err)
		return fmt.Errorf("service.%s: %w", opSignup, err)
	}

	metrics.RecordSignup()
	s.refreshActivityGauges(ctx, r, activity)
	s.logger.Info(ctx, "participant signed up",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return nil
}

// Remove deletes email from the roster of activity.
// Returns repository.ErrNotFound or repository.ErrNotRegistered.
func (s *Service) Remove(ctx context.Context, activity, email string) error {
	r, err := s.reg()
	if err != nil {
		return err
	}
	if err := r.RemoveParticipant(ctx, activity, email); err != nil {
		s.reject(ctx, opRemove, activity, email, err)
		return fmt.Errorf("service.%s: %w", opRemove, err)
	}

	metrics.RecordRemoval()
	s.refreshActivityGauges(ctx, r, activity)
	s.logger.Info(ctx, "participant removed",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return nil
}

func (s *Service) reject(ctx context.Context, op, activity, email string, err error) {
	metrics.RecordRejection(op, rejectionReason(err))
	s.logger.Debug(ctx, "roster change rejected",
		logger.String("operation", op),
		logger.String("activity", activity),
		logger.String("email", email),
		logger.Error(err),
	)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, repository.ErrNotRegistered):
		return "not_registered"
	default:
		return "unknown"
	}
}

// refreshGauges must be called with s.mu held.
func (s *Service) refreshGauges(ctx context.Context) {
	for name, a := range s.registry.List(ctx) {
		metrics.UpdateActivityParticipants(name, len(a.Participants))
	}
	metrics.UpdateActivities(s.registry.Count(ctx))
	metrics.UpdateParticipants(s.registry.ParticipantCount(ctx))
}

func (s *Service) refreshActivityGauges(ctx context.Context, r repository.Registry, activity string) {
	if a, err := r.Get(ctx, activity); err == nil {
		metrics.UpdateActivityParticipants(activity, len(a.Participants))
	}
	metrics.UpdateParticipants(r.ParticipantCount(ctx))
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		ctx := context.Background()
		stats["activities"] = s.registry.Count(ctx)
		stats["participants"] = s.registry.ParticipantCount(ctx)
	}
	return stats
}
