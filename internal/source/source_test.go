package source_test

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/internal/resilience"
	"github.com/OldStager01/battery-health/internal/simulator"
	"github.com/OldStager01/battery-health/internal/source"
	"github.com/OldStager01/battery-health/pkg/config"
	"github.com/OldStager01/battery-health/pkg/models"
)

func TestSyntheticSource_ReferenceCurve(t *testing.T) {
	src := source.NewSyntheticSource(source.SyntheticConfig{})

	trajectory, err := src.Trajectory(context.Background(), "any")

	require.NoError(t, err)
	require.Len(t, trajectory, 500)
	require.NoError(t, trajectory.Validate())
	assert.Equal(t, 100.0, trajectory[0].SOH)
	assert.InDelta(t, 100*math.Exp(-0.499), trajectory[499].SOH, 1e-9)
	assert.Equal(t, "exponential", src.ModelName())
}

func TestSyntheticSource_CustomRate(t *testing.T) {
	src := source.NewSyntheticSource(source.SyntheticConfig{Cycles: 10, InitialSOH: 95, DecayRate: 0.01})

	trajectory, err := src.Trajectory(context.Background(), "any")

	require.NoError(t, err)
	assert.Len(t, trajectory, 10)
	assert.InDelta(t, 95*math.Exp(-0.09), trajectory[9].SOH, 1e-9)
	// the package-level reference model must not be mutated
	assert.InDelta(t, 100*math.Exp(-0.009), simulator.ModelExponential.SOH(9), 1e-9)
}

func TestHTTPSource_AgainstSimulator(t *testing.T) {
	sim := simulator.New(simulator.Config{DefaultCycles: 50})
	server := httptest.NewServer(sim.Handler())
	defer server.Close()

	src := source.NewHTTPSource(source.HTTPSourceConfig{Endpoint: server.URL + "/", Timeout: time.Second})
	defer src.Close()

	require.NoError(t, src.HealthCheck(context.Background()))

	trajectory, err := src.Trajectory(context.Background(), "cell-7")
	require.NoError(t, err)
	assert.Len(t, trajectory, 50)
	assert.Equal(t, 49, trajectory.Last().Cycle)
}

func TestHTTPSource_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		expected error
	}{
		{
			name:     "not found",
			handler:  func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			expected: source.ErrCellNotFound,
		},
		{
			name:     "server error",
			handler:  func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			expected: source.ErrSourceFailed,
		},
		{
			name:     "malformed body",
			handler:  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("{not json")) },
			expected: source.ErrInvalidResponse,
		},
		{
			name: "gap in cycles",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"trajectory":[{"cycle":0,"soh":100},{"cycle":2,"soh":99}]}`))
			},
			expected: source.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			src := source.NewHTTPSource(source.HTTPSourceConfig{Endpoint: server.URL})
			_, err := src.Trajectory(context.Background(), "cell-1")

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestResilientSource_RetriesThenSucceeds(t *testing.T) {
	static := source.NewStaticSource()
	static.Set("cell-1", models.TrajectoryFromValues([]float64{100, 90}))

	resilient := source.NewResilientSource(source.ResilientSourceConfig{
		Source:        static,
		MaxFailures:   5,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
	})

	trajectory, err := resilient.Trajectory(context.Background(), "cell-1")

	require.NoError(t, err)
	assert.Len(t, trajectory, 2)
	assert.Equal(t, 1, static.Calls())
}

func TestResilientSource_OpensCircuit(t *testing.T) {
	static := source.NewStaticSource()
	static.SetShouldFail(true, nil)

	resilient := source.NewResilientSource(source.ResilientSourceConfig{
		Source:        static,
		MaxFailures:   3,
		Timeout:       time.Hour,
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = resilient.Trajectory(ctx, "cell-1")
	}

	assert.Equal(t, "open", resilient.CircuitStats().State)

	_, err := resilient.Trajectory(ctx, "cell-1")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.ErrorIs(t, resilient.HealthCheck(ctx), resilience.ErrCircuitOpen)
	assert.Equal(t, 3, static.Calls())

	resilient.ResetCircuit()
	assert.Equal(t, "closed", resilient.CircuitStats().State)
}

func TestResilientSource_DoesNotRetryMissingCell(t *testing.T) {
	static := source.NewStaticSource()

	resilient := source.NewResilientSource(source.ResilientSourceConfig{
		Source:        static,
		MaxFailures:   1,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	})

	for i := 0; i < 2; i++ {
		_, err := resilient.Trajectory(context.Background(), "unknown")
		assert.ErrorIs(t, err, source.ErrCellNotFound)
	}

	assert.Equal(t, 2, static.Calls())
	assert.Equal(t, "closed", resilient.CircuitStats().State)
}

func TestNew_FromConfig(t *testing.T) {
	synthetic, err := source.New(config.SourceConfig{Type: "synthetic"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &source.SyntheticSource{}, synthetic)

	remote, err := source.New(config.SourceConfig{Type: "http", Endpoint: "http://localhost:1"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &source.ResilientSource{}, remote)

	_, err = source.New(config.SourceConfig{Type: "ftp"}, nil)
	assert.Error(t, err)
}
