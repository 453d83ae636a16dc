package events_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/internal/events"
	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/pkg/models"
)

func receive(t *testing.T, ch <-chan *models.Event) *models.Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
		return nil
	}
}

func TestEventBus_SubscribeByType(t *testing.T) {
	bus := events.NewEventBus(10)
	defer bus.Close()

	training := bus.Subscribe(models.EventTypeTrainingStarted, models.EventTypeTrainingCompleted)
	uploads := bus.Subscribe(models.EventTypeUploadReceived)
	publisher := events.NewPublisher(bus).WithTraceID("trace-1")

	run := models.NewTrainingRun(models.ModelLSTM)
	publisher.TrainingStarted(run)

	event := receive(t, training)
	assert.Equal(t, models.EventTypeTrainingStarted, event.Type)
	assert.Equal(t, run.ID, event.Subject)
	assert.Equal(t, "trace-1", event.TraceID)
	assert.Equal(t, models.TopicTraining, event.Topic())
	assert.Empty(t, uploads)
}

func TestEventBus_PredictionDropsTrajectory(t *testing.T) {
	bus := events.NewEventBus(10)
	defer bus.Close()

	all := bus.SubscribeAll()
	trajectory := models.TrajectoryFromValues([]float64{100, 79})
	prediction := models.NewPrediction("cell-1", 80, 80, trajectory,
		models.AnalysisResult{CrossingIndex: 1, CrossingCycle: 1, CrossingValue: 79, Reached: true})

	events.NewPublisher(bus).PredictionComputed(prediction)

	event := receive(t, all)
	data, ok := event.Data.(*models.Prediction)
	require.True(t, ok)
	assert.Nil(t, data.Trajectory)
	assert.Len(t, prediction.Trajectory, 2, "original prediction keeps its trajectory")
}

func TestEventBus_FullChannelDropsInsteadOfBlocking(t *testing.T) {
	bus := events.NewEventBus(1)
	defer bus.Close()

	ch := bus.Subscribe(models.EventTypeError)
	publisher := events.NewPublisher(bus)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			publisher.Error("system", "boom", errors.New("x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full channel")
	}
	assert.Len(t, ch, 1)
}

func TestEventBus_CloseClosesSubscribers(t *testing.T) {
	bus := events.NewEventBus(1)
	ch := bus.SubscribeAll()

	bus.Close()
	bus.Close()

	_, ok := <-ch
	assert.False(t, ok)

	late := bus.Subscribe(models.EventTypeError)
	_, ok = <-late
	assert.False(t, ok)
}

func TestEventLogger_WritesEvents(t *testing.T) {
	buf := &syncBuffer{}
	logger.SetOutput(buf)
	defer logger.SetOutput(nopWriter{})

	bus := events.NewEventBus(10)
	l := events.NewEventLogger(bus.SubscribeAll())
	l.Start()

	events.NewPublisher(bus).SourceStateChanged("trajectory_source", "closed", "open")

	var entry map[string]interface{}
	require.Eventually(t, func() bool {
		line, ok := buf.firstLine()
		return ok && json.Unmarshal(line, &entry) == nil
	}, time.Second, 5*time.Millisecond)

	bus.Close()
	l.Stop()

	assert.Equal(t, "Circuit trajectory_source: closed -> open", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "source_state_changed", entry["event_type"])
	assert.Equal(t, "trajectory_source", entry["subject"])
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) firstLine() ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	line, _, found := bytes.Cut(b.buf.Bytes(), []byte("\n"))
	return append([]byte(nil), line...), found
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
