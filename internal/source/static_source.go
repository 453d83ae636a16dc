package source

import (
	"context"
	"errors"
	"sync"

	"github.com/OldStager01/battery-health/pkg/models"
)

// StaticSource serves fixed trajectories per cell. It can be told to fail,
// which is how tests drive the resilient wrapper.
type StaticSource struct {
	trajectories map[string]models.Trajectory
	shouldFail   bool
	failError    error
	calls        int
	mu           sync.Mutex
}

func NewStaticSource() *StaticSource {
	return &StaticSource{trajectories: make(map[string]models.Trajectory)}
}

func (s *StaticSource) Set(cellID string, trajectory models.Trajectory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trajectories[cellID] = trajectory
}

func (s *StaticSource) SetShouldFail(fail bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shouldFail = fail
	if err == nil {
		err = errors.New("simulated source failure")
	}
	s.failError = err
}

func (s *StaticSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *StaticSource) Trajectory(ctx context.Context, cellID string) (models.Trajectory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.shouldFail {
		return nil, s.failError
	}
	trajectory, ok := s.trajectories[cellID]
	if !ok {
		return nil, ErrCellNotFound
	}
	return append(models.Trajectory(nil), trajectory...), nil
}

func (s *StaticSource) HealthCheck(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shouldFail {
		return s.failError
	}
	return nil
}

func (s *StaticSource) Close() error {
	return nil
}
