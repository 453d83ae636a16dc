package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/internal/events"
	"github.com/OldStager01/battery-health/pkg/config"
	"github.com/OldStager01/battery-health/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startHub(t *testing.T, cfg *config.WebSocketConfig) (*Hub, string) {
	t.Helper()
	hub := NewHub(cfg)
	go hub.Run()

	r := gin.New()
	r.GET("/ws", ServeWebSocket(hub))
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *gws.Conn {
	t.Helper()
	conn, resp, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *gws.Conn) OutgoingMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg OutgoingMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestBridge_DeliversByTopic(t *testing.T) {
	hub, url := startHub(t, nil)

	training := dial(t, url+"?topic=training")
	all := dial(t, url)
	assert.Equal(t, MessageTypeWelcome, read(t, training).Type)
	assert.Equal(t, MessageTypeWelcome, read(t, all).Type)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	bus := events.NewEventBus(10)
	bridge := NewEventBridge(hub, bus.SubscribeAll())
	bridge.Start()
	defer bridge.Stop()

	publisher := events.NewPublisher(bus)
	publisher.UploadReceived(&models.UploadReceipt{ID: "upl_1", Message: "ok"})
	publisher.TrainingStarted(models.NewTrainingRun(models.ModelLSTM))

	first := read(t, all)
	assert.Equal(t, models.TopicUploads, first.Topic)
	assert.Equal(t, "upload_received", first.Event)
	second := read(t, all)
	assert.Equal(t, models.TopicTraining, second.Topic)

	msg := read(t, training)
	assert.Equal(t, MessageTypeEvent, msg.Type)
	assert.Equal(t, "training_started", msg.Event)
}

func TestClient_SubscribeMessages(t *testing.T) {
	hub, url := startHub(t, nil)
	conn := dial(t, url)
	read(t, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteJSON(IncomingMessage{Type: "subscribe", Topic: "predictions"}))
	msg := read(t, conn)
	assert.Equal(t, MessageTypeSubscriptionUpdate, msg.Type)
	assert.Equal(t, "predictions", msg.Topic)

	hub.BroadcastToTopic(models.TopicUploads, NewMessage(MessageTypeEvent, models.TopicUploads, nil).JSON())
	hub.BroadcastToTopic(models.TopicPredictions, NewMessage(MessageTypeEvent, models.TopicPredictions, nil).JSON())
	assert.Equal(t, models.TopicPredictions, read(t, conn).Topic)

	require.NoError(t, conn.WriteJSON(IncomingMessage{Type: "subscribe", Topic: "bogus"}))
	assert.Equal(t, MessageTypeSubscriptionUpdate, read(t, conn).Type)
}

func TestServeWebSocket_Rejections(t *testing.T) {
	hub, url := startHub(t, &config.WebSocketConfig{MaxConnections: 1})

	httpURL := "http" + strings.TrimPrefix(url, "ws")
	resp, err := http.Get(httpURL + "?topic=bogus")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	_, resp, err = gws.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHub_StopDisconnectsClients(t *testing.T) {
	hub, url := startHub(t, nil)
	conn := dial(t, url)
	read(t, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.False(t, hub.Register(&Client{}))
}

func TestNewSettings(t *testing.T) {
	s := NewSettings(&config.WebSocketConfig{PongTimeout: 10 * time.Second, PingInterval: 20 * time.Second})
	assert.Equal(t, 9*time.Second, s.PingInterval, "ping interval must stay below pong timeout")

	d := NewSettings(nil)
	assert.Equal(t, 256, d.ClientBuffer)
}
