package analyzer

import (
	"errors"
	"fmt"
	"math"

	"github.com/OldStager01/battery-health/pkg/models"
)

// ErrInvalidInput is returned for an empty trajectory or a non-finite threshold.
var ErrInvalidInput = errors.New("invalid input")

// FindEOL returns the first point whose value is strictly below thresholdValue.
//
// thresholdValue must be in the trajectory's own units. If no point crosses,
// the result is clamped to the last index with Reached set to false; that
// index is the observed horizon and says nothing about when failure occurs.
func FindEOL(trajectory models.Trajectory, thresholdValue float64) (models.AnalysisResult, error) {
	if len(trajectory) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("%w: trajectory is empty", ErrInvalidInput)
	}
	if math.IsNaN(thresholdValue) || math.IsInf(thresholdValue, 0) {
		return models.AnalysisResult{}, fmt.Errorf("%w: threshold %v is not finite", ErrInvalidInput, thresholdValue)
	}

	for i, p := range trajectory {
		if p.SOH < thresholdValue {
			return models.AnalysisResult{
				CrossingIndex: i,
				CrossingCycle: p.Cycle,
				CrossingValue: p.SOH,
				Reached:       true,
			}, nil
		}
	}

	last := len(trajectory) - 1
	return models.AnalysisResult{
		CrossingIndex: last,
		CrossingCycle: trajectory[last].Cycle,
		CrossingValue: trajectory[last].SOH,
		Reached:       false,
	}, nil
}

// ThresholdValue converts a slider percentage into trajectory units.
// The value is not renormalized against the trajectory's first point.
func ThresholdValue(percent, scale float64) float64 {
	return percent / 100.0 * scale
}
