package models

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidTrajectory = errors.New("invalid trajectory")

// CyclePoint is one observation of state of health at a charge/discharge cycle.
type CyclePoint struct {
	Cycle int     `json:"cycle"`
	SOH   float64 `json:"soh"`
}

// Trajectory is a time-ordered SOH series, one point per cycle.
type Trajectory []CyclePoint

// Validate checks that cycles start at 0, increase by exactly one and carry finite values.
func (t Trajectory) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no points", ErrInvalidTrajectory)
	}
	for i, p := range t {
		if p.Cycle != i {
			return fmt.Errorf("%w: point %d has cycle %d, want %d", ErrInvalidTrajectory, i, p.Cycle, i)
		}
		if math.IsNaN(p.SOH) || math.IsInf(p.SOH, 0) {
			return fmt.Errorf("%w: point %d has non-finite value", ErrInvalidTrajectory, i)
		}
	}
	return nil
}

// Last returns the final point. Callers must ensure the trajectory is non-empty.
func (t Trajectory) Last() CyclePoint {
	return t[len(t)-1]
}

// Values returns the SOH series without cycle indices.
func (t Trajectory) Values() []float64 {
	values := make([]float64, len(t))
	for i, p := range t {
		values[i] = p.SOH
	}
	return values
}

// TrajectoryFromValues builds a contiguous trajectory starting at cycle 0.
func TrajectoryFromValues(values []float64) Trajectory {
	t := make(Trajectory, len(values))
	for i, v := range values {
		t[i] = CyclePoint{Cycle: i, SOH: v}
	}
	return t
}
