package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/internal/metrics"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			key := family.GetName()
			for _, label := range m.GetLabel() {
				key += "," + label.GetName() + "=" + label.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				values[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				values[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return values
}

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))
	require.NoError(t, metrics.Register(reg))
}

func TestObservers(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))

	before := gather(t, reg)

	metrics.ObservePrediction(5*time.Millisecond, true)
	metrics.ObservePrediction(-time.Second, false)
	metrics.ObserveTrainingRun("lstm", "completed")
	metrics.ObserveUpload(false)
	metrics.ObserveHTTPRequest("GET", "", 404, time.Millisecond)
	metrics.SetCircuitState("trajectory_source", "half-open")

	after := gather(t, reg)

	delta := func(key string) float64 { return after[key] - before[key] }
	assert.Equal(t, 1.0, delta("battery_dashboard_predictions_total,reached=true"))
	assert.Equal(t, 1.0, delta("battery_dashboard_predictions_total,reached=false"))
	assert.Equal(t, 2.0, delta("battery_dashboard_prediction_seconds"))
	assert.Equal(t, 1.0, delta("battery_dashboard_training_runs_total,model_type=lstm,status=completed"))
	assert.Equal(t, 1.0, delta("battery_dashboard_uploads_total,outcome=rejected"))
	assert.Equal(t, 1.0, delta("battery_dashboard_http_requests_total,method=GET,route=unmatched,status=404"))
	assert.Equal(t, 2.0, after["battery_dashboard_source_circuit_state,name=trajectory_source"])
}

func TestWebSocketClientsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))

	before := gather(t, reg)["battery_dashboard_websocket_clients"]
	metrics.IncWebSocketClients()
	metrics.IncWebSocketClients()
	metrics.DecWebSocketClients()
	after := gather(t, reg)["battery_dashboard_websocket_clients"]

	assert.Equal(t, 1.0, after-before)
}
