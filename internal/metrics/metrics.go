package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "battery_dashboard"

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Total number of EOL predictions, partitioned by whether a crossing was found.",
		},
		[]string{"reached"},
	)

	predictionSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_seconds",
			Help:      "Latency of fetching a trajectory and locating its EOL crossing.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
	)

	trainingRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_runs_total",
			Help:      "Training runs that reached a terminal status.",
		},
		[]string{"model_type", "status"},
	)

	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploaded files, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	sourceCircuitState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_circuit_state",
			Help:      "Trajectory source circuit breaker state (0=closed, 1=open, 2=half-open).",
		},
		[]string{"name"},
	)

	websocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Connected websocket clients.",
		},
	)
)

// Register attaches the dashboard collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		predictionsTotal,
		predictionSeconds,
		trainingRunsTotal,
		uploadsTotal,
		httpRequestsTotal,
		httpRequestSeconds,
		sourceCircuitState,
		websocketClients,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func ObservePrediction(duration time.Duration, reached bool) {
	predictionsTotal.WithLabelValues(strconv.FormatBool(reached)).Inc()
	if duration < 0 {
		duration = 0
	}
	predictionSeconds.Observe(duration.Seconds())
}

func ObserveTrainingRun(modelType, status string) {
	trainingRunsTotal.WithLabelValues(modelType, status).Inc()
}

func ObserveUpload(accepted bool) {
	label := OutcomeRejected
	if accepted {
		label = OutcomeAccepted
	}
	uploadsTotal.WithLabelValues(label).Inc()
}

func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestSeconds.WithLabelValues(route).Observe(duration.Seconds())
}

// SetCircuitState maps a breaker state name onto the gauge encoding.
func SetCircuitState(name, state string) {
	var value float64
	switch state {
	case "open":
		value = 1
	case "half-open":
		value = 2
	}
	sourceCircuitState.WithLabelValues(name).Set(value)
}

func IncWebSocketClients() {
	websocketClients.Inc()
}

func DecWebSocketClients() {
	websocketClients.Dec()
}
