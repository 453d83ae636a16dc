package source

import (
	"context"
	"errors"
	"time"

	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/internal/resilience"
	"github.com/OldStager01/battery-health/pkg/models"
)

type ResilientSource struct {
	source         Source
	circuitBreaker *resilience.CircuitBreaker
	retryAttempts  int
	retryDelay     time.Duration
}

type ResilientSourceConfig struct {
	Source        Source
	MaxFailures   int
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	OnStateChange func(name string, from, to resilience.State)
}

func NewResilientSource(cfg ResilientSourceConfig) *ResilientSource {
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}

	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:          "trajectory_source",
		MaxFailures:   cfg.MaxFailures,
		Timeout:       cfg.Timeout,
		OnStateChange: cfg.OnStateChange,
	})

	return &ResilientSource{
		source:         cfg.Source,
		circuitBreaker: cb,
		retryAttempts:  cfg.RetryAttempts,
		retryDelay:     cfg.RetryDelay,
	}
}

// retryable reports whether another attempt could succeed. A missing cell will stay missing.
func retryable(err error) bool {
	return !errors.Is(err, ErrCellNotFound) && !errors.Is(err, context.Canceled)
}

func (s *ResilientSource) Trajectory(ctx context.Context, cellID string) (models.Trajectory, error) {
	var trajectory models.Trajectory
	var notFound error

	err := s.circuitBreaker.ExecuteContext(ctx, func(ctx context.Context) error {
		var lastErr error
		for attempt := 1; attempt <= s.retryAttempts; attempt++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			var err error
			trajectory, err = s.source.Trajectory(ctx, cellID)
			if err == nil {
				return nil
			}
			lastErr = err
			if errors.Is(err, ErrCellNotFound) {
				// the source answered; an unknown cell says nothing about its health
				notFound = err
				return nil
			}
			if !retryable(err) {
				return err
			}

			logger.WithCell(cellID).Warnf("Trajectory attempt %d/%d failed: %v", attempt, s.retryAttempts, err)

			if attempt < s.retryAttempts {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(s.retryDelay):
				}
			}
		}
		return lastErr
	})

	if err != nil {
		return nil, err
	}
	if notFound != nil {
		return nil, notFound
	}
	return trajectory, nil
}

func (s *ResilientSource) HealthCheck(ctx context.Context) error {
	if s.circuitBreaker.State() == resilience.StateOpen {
		return resilience.ErrCircuitOpen
	}
	return s.source.HealthCheck(ctx)
}

func (s *ResilientSource) Close() error {
	return s.source.Close()
}

func (s *ResilientSource) CircuitStats() resilience.Stats {
	return s.circuitBreaker.Stats()
}

func (s *ResilientSource) ResetCircuit() {
	s.circuitBreaker.Reset()
}
