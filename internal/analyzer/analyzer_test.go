package analyzer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/internal/analyzer"
	"github.com/OldStager01/battery-health/pkg/models"
)

func referenceCurve(n int) models.Trajectory {
	values := make([]float64, n)
	for i := range values {
		values[i] = 100 * math.Exp(-0.001*float64(i))
	}
	return models.TrajectoryFromValues(values)
}

func TestAnalyzer_Predict_ReferenceCurve(t *testing.T) {
	a := analyzer.New(analyzer.Config{})

	prediction, err := a.Predict("cell-1", referenceCurve(500), 80)

	require.NoError(t, err)
	assert.True(t, prediction.Result.Reached)
	assert.Equal(t, 224, prediction.Result.CrossingIndex)
	require.NotNil(t, prediction.RULCycles)
	assert.Equal(t, 224, *prediction.RULCycles)
	assert.Equal(t, 500, prediction.HorizonCycles)
	assert.InDelta(t, 80.0, prediction.ThresholdValue, 1e-9)
	assert.Contains(t, prediction.Message, "Predicted RUL: 224 cycles")
}

func TestAnalyzer_Predict_NotReachedIsQualified(t *testing.T) {
	a := analyzer.New(analyzer.Config{})

	prediction, err := a.Predict("cell-1", referenceCurve(100), 50)

	require.NoError(t, err)
	assert.False(t, prediction.IsPredictive())
	assert.Nil(t, prediction.RULCycles)
	assert.Equal(t, 99, prediction.Result.CrossingIndex)
	assert.Contains(t, prediction.Message, "No EOL detected")
}

func TestAnalyzer_Predict_ThresholdBounds(t *testing.T) {
	a := analyzer.New(analyzer.Config{})

	tests := []struct {
		name    string
		percent float64
		wantErr bool
	}{
		{name: "lower bound", percent: 50},
		{name: "upper bound", percent: 90},
		{name: "below range", percent: 49, wantErr: true},
		{name: "above range", percent: 91, wantErr: true},
		{name: "NaN", percent: math.NaN(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Predict("cell-1", referenceCurve(10), tt.percent)
			if tt.wantErr {
				assert.ErrorIs(t, err, analyzer.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyzer_Predict_FractionalScale(t *testing.T) {
	a := analyzer.New(analyzer.Config{Scale: 1.0})
	trajectory := models.TrajectoryFromValues([]float64{1.0, 0.9, 0.79})

	prediction, err := a.Predict("cell-1", trajectory, 80)

	require.NoError(t, err)
	assert.Equal(t, 2, prediction.Result.CrossingIndex)
}

func TestAnalyzer_Predict_EmptyTrajectory(t *testing.T) {
	a := analyzer.New(analyzer.Config{})

	_, err := a.Predict("cell-1", nil, 80)

	assert.ErrorIs(t, err, analyzer.ErrInvalidInput)
}
