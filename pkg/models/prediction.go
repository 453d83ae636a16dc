package models

import "time"

// Prediction is the dashboard view of an EOL analysis over one cell's trajectory.
type Prediction struct {
	ID               string         `json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	CellID           string         `json:"cell_id"`
	ThresholdPercent float64        `json:"threshold_percent"`
	ThresholdValue   float64        `json:"threshold_value"`
	Result           AnalysisResult `json:"result"`
	RULCycles        *int           `json:"rul_cycles,omitempty"`
	HorizonCycles    int            `json:"horizon_cycles"`
	Message          string         `json:"message"`
	Trajectory       Trajectory     `json:"trajectory,omitempty"`
}

func NewPrediction(cellID string, percent, value float64, trajectory Trajectory, result AnalysisResult) *Prediction {
	p := &Prediction{
		ID:               NewUUID(),
		CreatedAt:        time.Now(),
		CellID:           cellID,
		ThresholdPercent: percent,
		ThresholdValue:   value,
		Result:           result,
		HorizonCycles:    len(trajectory),
		Trajectory:       trajectory,
	}
	if result.Reached {
		rul := result.CrossingCycle
		p.RULCycles = &rul
	}
	return p
}

// IsPredictive reports whether the result carries an actual EOL crossing.
func (p *Prediction) IsPredictive() bool {
	return p.Result.Reached
}

// WithoutTrajectory returns a shallow copy with the series dropped, for compact payloads.
func (p *Prediction) WithoutTrajectory() *Prediction {
	cp := *p
	cp.Trajectory = nil
	return &cp
}
