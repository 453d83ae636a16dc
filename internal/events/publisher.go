package events

import (
	"fmt"

	"github.com/OldStager01/battery-health/pkg/models"
)

type Publisher struct {
	bus     *EventBus
	traceID string
}

func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) WithTraceID(traceID string) *Publisher {
	if p == nil {
		return nil
	}
	return &Publisher{
		bus:     p.bus,
		traceID: traceID,
	}
}

func (p *Publisher) publish(event *models.Event) {
	if p == nil || p.bus == nil {
		return
	}
	if p.traceID != "" {
		event.TraceID = p.traceID
	}
	p.bus.Publish(event)
}

func (p *Publisher) TrainingStarted(run *models.TrainingRun) {
	msg := fmt.Sprintf("Training %s model", run.ModelType.DisplayName())
	p.publish(models.NewEvent(models.EventTypeTrainingStarted, run.ID, msg).WithData(run))
}

func (p *Publisher) TrainingCompleted(run *models.TrainingRun) {
	msg := fmt.Sprintf("%s model training completed", run.ModelType.DisplayName())
	p.publish(models.NewEvent(models.EventTypeTrainingCompleted, run.ID, msg).WithData(run))
}

func (p *Publisher) TrainingFailed(run *models.TrainingRun) {
	msg := fmt.Sprintf("%s model training %s", run.ModelType.DisplayName(), run.Status)
	event := models.NewEvent(models.EventTypeTrainingFailed, run.ID, msg).WithData(run)
	if run.Status == models.RunStatusFailed {
		event.WithSeverity(models.SeverityWarning)
	}
	p.publish(event)
}

func (p *Publisher) UploadReceived(receipt *models.UploadReceipt) {
	p.publish(models.NewEvent(models.EventTypeUploadReceived, receipt.ID, receipt.Message).WithData(receipt))
}

func (p *Publisher) PredictionComputed(prediction *models.Prediction) {
	event := models.NewEvent(models.EventTypePredictionComputed, prediction.CellID, prediction.Message).
		WithData(prediction.WithoutTrajectory())
	if prediction.Result.Reached && prediction.Result.CrossingIndex == 0 {
		event.WithSeverity(models.SeverityWarning)
	}
	p.publish(event)
}

func (p *Publisher) SourceStateChanged(name, from, to string) {
	msg := fmt.Sprintf("Circuit %s: %s -> %s", name, from, to)
	event := models.NewEvent(models.EventTypeSourceStateChanged, name, msg).
		WithData(map[string]string{"from": from, "to": to})
	if to == "open" {
		event.WithSeverity(models.SeverityCritical)
	}
	p.publish(event)
}

func (p *Publisher) Error(subject, message string, err error) {
	event := models.NewEvent(models.EventTypeError, subject, message).
		WithSeverity(models.SeverityCritical).
		WithData(map[string]interface{}{
			"error": err.Error(),
		})
	p.publish(event)
}
