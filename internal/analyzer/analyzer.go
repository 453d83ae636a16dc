package analyzer

import (
	"fmt"

	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/pkg/models"
)

type Config struct {
	// Scale is the trajectory value that corresponds to 100% health.
	Scale  float64
	Bounds models.ThresholdBounds
}

// Analyzer turns a threshold selection and a trajectory into a dashboard prediction.
// It holds configuration only and is safe for concurrent use.
type Analyzer struct {
	config Config
}

func New(cfg Config) *Analyzer {
	if cfg.Scale == 0 {
		cfg.Scale = 100.0
	}
	if cfg.Bounds == (models.ThresholdBounds{}) {
		cfg.Bounds = models.DefaultThresholdBounds()
	}
	return &Analyzer{config: cfg}
}

func (a *Analyzer) Bounds() models.ThresholdBounds {
	return a.config.Bounds
}

// Predict validates percent against the configured bounds and scans the trajectory.
func (a *Analyzer) Predict(cellID string, trajectory models.Trajectory, percent float64) (*models.Prediction, error) {
	if err := a.config.Bounds.Check(percent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	value := ThresholdValue(percent, a.config.Scale)
	result, err := FindEOL(trajectory, value)
	if err != nil {
		return nil, err
	}

	prediction := models.NewPrediction(cellID, percent, value, trajectory, result)
	prediction.Message = describe(prediction)

	logger.WithCell(cellID).Debugf(
		"EOL scan: threshold=%.1f%% index=%d value=%.2f reached=%v",
		percent, result.CrossingIndex, result.CrossingValue, result.Reached,
	)

	return prediction, nil
}

func describe(p *models.Prediction) string {
	if p.Result.Reached {
		return fmt.Sprintf("Predicted RUL: %d cycles (SOH %.2f%% falls below the %.0f%% EOL threshold)",
			p.Result.CrossingCycle, p.Result.CrossingValue, p.ThresholdPercent)
	}
	return fmt.Sprintf("No EOL detected within the %d-cycle horizon; SOH is still %.2f%% at cycle %d",
		p.HorizonCycles, p.Result.CrossingValue, p.Result.CrossingCycle)
}
