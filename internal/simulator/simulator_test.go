package simulator

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/pkg/models"
)

func init() {
	logger.SetOutput(io.Discard)
}

func TestDecayModels(t *testing.T) {
	tests := []struct {
		name  string
		model DecayModel
		cycle int
		want  float64
	}{
		{"exponential start", ModelExponential, 0, 100},
		{"linear", ModelLinear, 100, 95},
		{"knee before knee", ModelKnee, 100, 98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.model.SOH(tt.cycle), 1e-9)
		})
	}
}

func TestKneeDecay_FallsFasterAfterKnee(t *testing.T) {
	before := ModelKnee.SOH(250) - ModelKnee.SOH(251)
	after := ModelKnee.SOH(400) - ModelKnee.SOH(401)
	assert.Greater(t, after, before)
}

func TestNoisyDecay_Deterministic(t *testing.T) {
	a := ParseModel("noisy")
	b := ParseModel("noisy")
	for cycle := 0; cycle < 20; cycle++ {
		assert.Equal(t, a.SOH(cycle), b.SOH(cycle))
		assert.InDelta(t, ModelExponential.SOH(cycle), a.SOH(cycle), 0.3)
	}
}

func TestParseModel_DefaultsToExponential(t *testing.T) {
	assert.Equal(t, "exponential", ParseModel("").Name())
	assert.Equal(t, "exponential", ParseModel("unknown").Name())
	assert.Equal(t, "linear", ParseModel("linear").Name())
}

func TestGenerate(t *testing.T) {
	trajectory := Generate(ModelExponential, 10)
	require.Len(t, trajectory, 10)
	assert.Equal(t, 0, trajectory[0].Cycle)
	assert.Equal(t, 9, trajectory[9].Cycle)
	assert.NoError(t, trajectory.Validate())

	assert.Len(t, Generate(ModelLinear, 0), DefaultCycles)
}

func TestHandler_Trajectory(t *testing.T) {
	sim := New(Config{DefaultCycles: 30})
	srv := httptest.NewServer(sim.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/trajectories/cell-1?cycles=12&model=linear")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		CellID     string              `json:"cell_id"`
		Model      string              `json:"model"`
		Trajectory []models.CyclePoint `json:"trajectory"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "cell-1", body.CellID)
	assert.Equal(t, "linear", body.Model)
	assert.Len(t, body.Trajectory, 12)
}

func TestHandler_Errors(t *testing.T) {
	sim := New(Config{})
	srv := httptest.NewServer(sim.Handler())
	defer srv.Close()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"bad cycles", http.MethodGet, "/trajectories/cell-1?cycles=0", http.StatusBadRequest},
		{"cycles too large", http.MethodGet, "/trajectories/cell-1?cycles=100001", http.StatusBadRequest},
		{"missing cell", http.MethodGet, "/trajectories/", http.StatusBadRequest},
		{"wrong method", http.MethodPost, "/trajectories/cell-1", http.StatusMethodNotAllowed},
		{"preflight", http.MethodOptions, "/trajectories/cell-1", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandler_PinCellModel(t *testing.T) {
	sim := New(Config{DefaultCycles: 5})
	srv := httptest.NewServer(sim.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/cells/cell-9", "application/json", strings.NewReader(`{"model":"knee"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/cells")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Cells []map[string]string `json:"cells"`
		Count int                 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "knee", body.Cells[0]["model"])
	assert.Equal(t, "knee", sim.modelFor("cell-9").Name())
}
