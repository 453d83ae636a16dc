package websocket

import (
	"encoding/json"
	"time"

	"github.com/OldStager01/battery-health/pkg/models"
)

type MessageType string

const (
	MessageTypeEvent              MessageType = "event"
	MessageTypeSubscriptionUpdate MessageType = "subscription_update"
	MessageTypeWelcome            MessageType = "welcome"
)

// OutgoingMessage is the envelope for everything the server writes to a socket.
type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Topic     string      `json:"topic,omitempty"`
	Event     string      `json:"event,omitempty"`
	Subject   string      `json:"subject,omitempty"`
	Severity  string      `json:"severity,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

type IncomingMessage struct {
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`
}

func NewMessage(msgType MessageType, topic string, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		Topic:     topic,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func EventMessage(event *models.Event) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      MessageTypeEvent,
		Topic:     event.Topic(),
		Event:     string(event.Type),
		Subject:   event.Subject,
		Severity:  string(event.Severity),
		Message:   event.Message,
		Timestamp: event.Timestamp,
		Data:      event.Data,
	}
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

// Topics lists what a client may subscribe to.
func Topics() []string {
	return []string{models.TopicTraining, models.TopicUploads, models.TopicPredictions, models.TopicSystem}
}

func validTopic(topic string) bool {
	for _, t := range Topics() {
		if t == topic {
			return true
		}
	}
	return false
}
