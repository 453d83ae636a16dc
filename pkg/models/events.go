package models

import "time"

type EventType string

const (
	EventTypeTrainingStarted    EventType = "training_started"
	EventTypeTrainingCompleted  EventType = "training_completed"
	EventTypeTrainingFailed     EventType = "training_failed"
	EventTypeUploadReceived     EventType = "upload_received"
	EventTypePredictionComputed EventType = "prediction_computed"
	EventTypeSourceStateChanged EventType = "source_state_changed"
	EventTypeError              EventType = "error"
)

type EventSeverity string

const (
	SeverityInfo     EventSeverity = "info"
	SeverityWarning  EventSeverity = "warning"
	SeverityCritical EventSeverity = "critical"
)

// Topics group event types for websocket subscribers.
const (
	TopicTraining    = "training"
	TopicUploads     = "uploads"
	TopicPredictions = "predictions"
	TopicSystem      = "system"
)

// Event represents an internal system event
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Severity  EventSeverity `json:"severity"`
	Subject   string        `json:"subject,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Message   string        `json:"message"`
	Data      interface{}   `json:"data,omitempty"`
	TraceID   string        `json:"trace_id,omitempty"`
}

func NewEvent(eventType EventType, subject, message string) *Event {
	return &Event{
		ID:        NewUUID(),
		Type:      eventType,
		Severity:  SeverityInfo,
		Subject:   subject,
		Timestamp: time.Now(),
		Message:   message,
	}
}

func (e *Event) WithSeverity(severity EventSeverity) *Event {
	e.Severity = severity
	return e
}

func (e *Event) WithData(data interface{}) *Event {
	e.Data = data
	return e
}

func (e *Event) WithTraceID(traceID string) *Event {
	e.TraceID = traceID
	return e
}

// Topic maps the event to the websocket topic it is broadcast on.
func (e *Event) Topic() string {
	switch e.Type {
	case EventTypeTrainingStarted, EventTypeTrainingCompleted, EventTypeTrainingFailed:
		return TopicTraining
	case EventTypeUploadReceived:
		return TopicUploads
	case EventTypePredictionComputed:
		return TopicPredictions
	default:
		return TopicSystem
	}
}
