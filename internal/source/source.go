package source

import (
	"context"
	"errors"

	"github.com/OldStager01/battery-health/pkg/models"
)

var (
	ErrSourceFailed    = errors.New("trajectory fetch failed")
	ErrTimeout         = errors.New("trajectory fetch timeout")
	ErrCellNotFound    = errors.New("cell not found")
	ErrInvalidResponse = errors.New("invalid response from trajectory source")
)

// Source supplies SOH trajectories. It makes no promise about how they were
// produced: a synthetic curve, a sensor log or a model's inference output.
type Source interface {
	// Trajectory returns the ordered SOH series for a cell
	Trajectory(ctx context.Context, cellID string) (models.Trajectory, error)

	// HealthCheck verifies the source can reach its data
	HealthCheck(ctx context.Context) error

	// Close releases any resources held by the source
	Close() error
}
