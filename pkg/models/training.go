package models

import "time"

type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

func (s RunStatus) IsTerminal() bool {
	return s == RunStatusCompleted || s == RunStatusFailed || s == RunStatusCancelled
}

// EvaluationMetrics are the regression scores reported after a training run.
type EvaluationMetrics struct {
	R2   float64 `json:"r2"`
	MAE  float64 `json:"mae"`
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
}

// TrainingRun tracks one (simulated) model training request.
type TrainingRun struct {
	ID          string             `json:"id"`
	ModelType   ModelType          `json:"model_type"`
	Status      RunStatus          `json:"status"`
	StartedAt   time.Time          `json:"started_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	Metrics     *EvaluationMetrics `json:"metrics,omitempty"`
	Error       string             `json:"error,omitempty"`
}

func NewTrainingRun(modelType ModelType) *TrainingRun {
	return &TrainingRun{
		ID:        NewShortID("run"),
		ModelType: modelType,
		Status:    RunStatusPending,
		StartedAt: time.Now(),
	}
}

func (r *TrainingRun) Duration() time.Duration {
	if r.CompletedAt == nil {
		return time.Since(r.StartedAt)
	}
	return r.CompletedAt.Sub(r.StartedAt)
}
