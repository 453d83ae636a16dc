package trainer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/OldStager01/battery-health/internal/events"
	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/internal/metrics"
	"github.com/OldStager01/battery-health/pkg/models"
)

var (
	ErrRunNotFound    = errors.New("training run not found")
	ErrTooManyRuns    = errors.New("too many concurrent training runs")
	ErrTrainerStopped = errors.New("trainer stopped")
)

// FixedMetrics are reported by every completed run.
var FixedMetrics = models.EvaluationMetrics{
	R2:   0.9542,
	MAE:  0.0124,
	MSE:  0.0003,
	RMSE: 0.0173,
}

type Config struct {
	Delay         time.Duration
	MaxConcurrent int
	HistorySize   int
}

// Trainer simulates model training: each run sleeps for the configured delay and then
// reports FixedMetrics. No model is fitted.
type Trainer struct {
	config    Config
	publisher *events.Publisher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	runs    map[string]*models.TrainingRun
	order   []string
	cancels map[string]context.CancelFunc
	stopped bool
}

func New(cfg Config, publisher *events.Publisher) *Trainer {
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Trainer{
		config:    cfg,
		publisher: publisher,
		ctx:       ctx,
		cancel:    cancel,
		runs:      make(map[string]*models.TrainingRun),
		cancels:   make(map[string]context.CancelFunc),
	}
}

// Start registers a run and returns a snapshot of it in running state.
func (t *Trainer) Start(modelType models.ModelType) (*models.TrainingRun, error) {
	if _, err := models.ParseModelType(string(modelType)); err != nil {
		return nil, err
	}

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return nil, ErrTrainerStopped
	}
	if t.config.MaxConcurrent > 0 && len(t.cancels) >= t.config.MaxConcurrent {
		t.mu.Unlock()
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyRuns, t.config.MaxConcurrent)
	}

	run := models.NewTrainingRun(modelType)
	run.Status = models.RunStatusRunning
	ctx, cancel := context.WithCancel(t.ctx)
	t.runs[run.ID] = run
	t.order = append(t.order, run.ID)
	t.cancels[run.ID] = cancel
	t.evictLocked()
	snapshot := *run
	t.wg.Add(1)
	t.mu.Unlock()

	logger.WithRun(run.ID).WithField("model_type", modelType).Info("Training run started")
	t.publisher.TrainingStarted(&snapshot)

	go t.execute(ctx, run.ID)

	return &snapshot, nil
}

func (t *Trainer) execute(ctx context.Context, runID string) {
	defer t.wg.Done()

	timer := time.NewTimer(t.config.Delay)
	defer timer.Stop()

	status := models.RunStatusCompleted
	select {
	case <-timer.C:
	case <-ctx.Done():
		status = models.RunStatusCancelled
	}

	t.finish(runID, status)
}

func (t *Trainer) finish(runID string, status models.RunStatus) {
	t.mu.Lock()
	run, ok := t.runs[runID]
	if cancel, exists := t.cancels[runID]; exists {
		cancel()
		delete(t.cancels, runID)
	}
	if !ok {
		t.mu.Unlock()
		return
	}

	now := time.Now()
	run.Status = status
	run.CompletedAt = &now
	switch status {
	case models.RunStatusCompleted:
		m := FixedMetrics
		run.Metrics = &m
	case models.RunStatusCancelled:
		run.Error = "training cancelled before completion"
	}
	snapshot := *run
	t.mu.Unlock()

	metrics.ObserveTrainingRun(string(snapshot.ModelType), string(status))
	entry := logger.WithRun(runID).WithField("duration", snapshot.Duration())
	if status == models.RunStatusCompleted {
		entry.Info("Training run completed")
		t.publisher.TrainingCompleted(&snapshot)
		return
	}
	entry.Warnf("Training run %s", status)
	t.publisher.TrainingFailed(&snapshot)
}

// evictLocked drops the oldest terminal runs beyond the history size.
func (t *Trainer) evictLocked() {
	for len(t.order) > t.config.HistorySize {
		evicted := false
		for i, id := range t.order {
			if run := t.runs[id]; run != nil && run.Status.IsTerminal() {
				delete(t.runs, id)
				t.order = append(t.order[:i], t.order[i+1:]...)
				evicted = true
				break
			}
		}
		if !evicted {
			return
		}
	}
}

func (t *Trainer) Get(id string) (*models.TrainingRun, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	run, ok := t.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	snapshot := *run
	return &snapshot, nil
}

// List returns snapshots of all known runs, newest first.
func (t *Trainer) List() []*models.TrainingRun {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*models.TrainingRun, 0, len(t.order))
	for i := len(t.order) - 1; i >= 0; i-- {
		snapshot := *t.runs[t.order[i]]
		out = append(out, &snapshot)
	}
	return out
}

// Cancel stops a single running run.
func (t *Trainer) Cancel(id string) error {
	t.mu.RLock()
	cancel, running := t.cancels[id]
	_, known := t.runs[id]
	t.mu.RUnlock()

	if !known {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if running {
		cancel()
	}
	return nil
}

func (t *Trainer) Running() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.cancels)
}

// Stop cancels all running runs and waits for them to settle.
func (t *Trainer) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()
	logger.Info("Trainer stopped")
}
