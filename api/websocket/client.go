package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	mu     sync.RWMutex
	topics map[string]bool
}

// NewClient subscribes to the given topics; none means every topic.
func NewClient(hub *Hub, conn *websocket.Conn, topics ...string) *Client {
	c := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, hub.settings.ClientBuffer),
		topics: make(map[string]bool),
	}
	for _, t := range topics {
		if validTopic(t) {
			c.topics[t] = true
		}
	}
	return c
}

func (c *Client) wants(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.topics) == 0 || c.topics[topic]
}

func (c *Client) Topics() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.topics))
	for _, t := range Topics() {
		if c.topics[t] {
			out = append(out, t)
		}
	}
	return out
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	settings := c.hub.settings
	c.conn.SetReadLimit(settings.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(settings.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(settings.PongTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("WebSocket error: %v", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			c.handleMessage(&msg)
		}
	}
}

func (c *Client) WritePump() {
	settings := c.hub.settings
	ticker := time.NewTicker(settings.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(settings.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One JSON document per frame so browsers can JSON.parse each message.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(settings.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *IncomingMessage) {
	switch msg.Type {
	case "subscribe":
		if !validTopic(msg.Topic) {
			c.queue(NewMessage(MessageTypeSubscriptionUpdate, msg.Topic, map[string]string{"error": "unknown topic"}))
			return
		}
		c.mu.Lock()
		c.topics[msg.Topic] = true
		c.mu.Unlock()
		logger.Debugf("Client subscribed to topic: %s", msg.Topic)
		c.queue(NewMessage(MessageTypeSubscriptionUpdate, msg.Topic, map[string]interface{}{"action": "subscribed", "topics": c.Topics()}))
	case "unsubscribe":
		c.mu.Lock()
		delete(c.topics, msg.Topic)
		c.mu.Unlock()
		logger.Debugf("Client unsubscribed from topic: %s", msg.Topic)
		c.queue(NewMessage(MessageTypeSubscriptionUpdate, msg.Topic, map[string]interface{}{"action": "unsubscribed", "topics": c.Topics()}))
	}
}

// queue never blocks. send may already be closed if the hub dropped this client.
func (c *Client) queue(msg *OutgoingMessage) {
	defer func() { _ = recover() }()
	select {
	case c.send <- msg.JSON():
	default:
		logger.Warn("Client send channel full, dropping message")
	}
}

func ServeWebSocket(hub *Hub) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  hub.settings.ReadBufferSize,
		WriteBufferSize: hub.settings.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(c *gin.Context) {
		if hub.ClientCount() >= hub.settings.MaxConnections {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many websocket connections"})
			return
		}

		topic := c.Query("topic")
		if topic != "" && !validTopic(topic) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown topic", "topics": Topics()})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("WebSocket upgrade failed: %v", err)
			return
		}

		var topics []string
		if topic != "" {
			topics = append(topics, topic)
		}
		client := NewClient(hub, conn, topics...)
		if !hub.Register(client) {
			conn.Close()
			return
		}
		client.queue(NewMessage(MessageTypeWelcome, topic, map[string]interface{}{"topics": Topics()}))

		go client.WritePump()
		go client.ReadPump()
	}
}
