package trainer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/internal/events"
	"github.com/OldStager01/battery-health/internal/trainer"
	"github.com/OldStager01/battery-health/pkg/models"
)

func waitForStatus(t *testing.T, tr *trainer.Trainer, id string, want models.RunStatus) *models.TrainingRun {
	t.Helper()
	var run *models.TrainingRun
	require.Eventually(t, func() bool {
		var err error
		run, err = tr.Get(id)
		return err == nil && run.Status == want
	}, 2*time.Second, 5*time.Millisecond)
	return run
}

func TestStart_CompletesWithFixedMetrics(t *testing.T) {
	tr := trainer.New(trainer.Config{Delay: 20 * time.Millisecond}, nil)
	defer tr.Stop()

	run, err := tr.Start(models.ModelXGBoost)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusRunning, run.Status)
	assert.Nil(t, run.Metrics)

	done := waitForStatus(t, tr, run.ID, models.RunStatusCompleted)
	require.NotNil(t, done.Metrics)
	assert.Equal(t, 0.9542, done.Metrics.R2)
	assert.Equal(t, 0.0124, done.Metrics.MAE)
	assert.Equal(t, 0.0003, done.Metrics.MSE)
	assert.Equal(t, 0.0173, done.Metrics.RMSE)
	require.NotNil(t, done.CompletedAt)
	assert.GreaterOrEqual(t, done.Duration(), 20*time.Millisecond)
	assert.Equal(t, 0, tr.Running())
}

func TestStart_UnknownModelType(t *testing.T) {
	tr := trainer.New(trainer.Config{}, nil)
	defer tr.Stop()

	_, err := tr.Start(models.ModelType("gpt"))
	assert.ErrorIs(t, err, models.ErrUnknownModelType)
	assert.Empty(t, tr.List())
}

func TestStart_MaxConcurrent(t *testing.T) {
	tr := trainer.New(trainer.Config{Delay: time.Hour, MaxConcurrent: 1}, nil)
	defer tr.Stop()

	_, err := tr.Start(models.ModelSVR)
	require.NoError(t, err)

	_, err = tr.Start(models.ModelSVR)
	assert.ErrorIs(t, err, trainer.ErrTooManyRuns)
}

func TestCancel(t *testing.T) {
	tr := trainer.New(trainer.Config{Delay: time.Hour}, nil)
	defer tr.Stop()

	run, err := tr.Start(models.ModelLSTM)
	require.NoError(t, err)
	require.NoError(t, tr.Cancel(run.ID))

	cancelled := waitForStatus(t, tr, run.ID, models.RunStatusCancelled)
	assert.Nil(t, cancelled.Metrics)
	assert.NotEmpty(t, cancelled.Error)

	assert.ErrorIs(t, tr.Cancel("run_missing"), trainer.ErrRunNotFound)
}

func TestStop_CancelsRunningRuns(t *testing.T) {
	tr := trainer.New(trainer.Config{Delay: time.Hour}, nil)

	a, err := tr.Start(models.ModelRandomForest)
	require.NoError(t, err)
	b, err := tr.Start(models.ModelSVR)
	require.NoError(t, err)

	tr.Stop()

	for _, id := range []string{a.ID, b.ID} {
		run, err := tr.Get(id)
		require.NoError(t, err)
		assert.Equal(t, models.RunStatusCancelled, run.Status)
	}

	_, err = tr.Start(models.ModelSVR)
	assert.ErrorIs(t, err, trainer.ErrTrainerStopped)
}

func TestGet_NotFound(t *testing.T) {
	tr := trainer.New(trainer.Config{}, nil)
	defer tr.Stop()

	_, err := tr.Get("run_nope")
	assert.ErrorIs(t, err, trainer.ErrRunNotFound)
}

func TestList_NewestFirstWithHistoryBound(t *testing.T) {
	tr := trainer.New(trainer.Config{HistorySize: 2}, nil)
	defer tr.Stop()

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := tr.Start(models.ModelSVR)
		require.NoError(t, err)
		waitForStatus(t, tr, run.ID, models.RunStatusCompleted)
		ids = append(ids, run.ID)
	}

	runs := tr.List()
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestStart_PublishesLifecycleEvents(t *testing.T) {
	bus := events.NewEventBus(10)
	defer bus.Close()
	ch := bus.Subscribe(models.EventTypeTrainingStarted, models.EventTypeTrainingCompleted)

	tr := trainer.New(trainer.Config{}, events.NewPublisher(bus))
	defer tr.Stop()

	run, err := tr.Start(models.ModelLSTM)
	require.NoError(t, err)

	var seen []models.EventType
	for len(seen) < 2 {
		select {
		case event := <-ch:
			assert.Equal(t, run.ID, event.Subject)
			seen = append(seen, event.Type)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, saw %v", seen)
		}
	}
	assert.Equal(t, []models.EventType{models.EventTypeTrainingStarted, models.EventTypeTrainingCompleted}, seen)
}
