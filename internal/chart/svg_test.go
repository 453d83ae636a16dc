package chart_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/internal/chart"
	"github.com/OldStager01/battery-health/pkg/models"
)

func prediction(values []float64, threshold float64, result models.AnalysisResult) *models.Prediction {
	return models.NewPrediction("cell-1", threshold, threshold, models.TrajectoryFromValues(values), result)
}

func wellFormed(t *testing.T, svg string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := dec.Token()
		if err != nil {
			require.Equal(t, "EOF", err.Error(), "svg must be well-formed XML")
			return
		}
	}
}

func TestRender_WithCrossing(t *testing.T) {
	p := prediction([]float64{100, 90, 80, 70}, 85,
		models.AnalysisResult{CrossingIndex: 2, CrossingCycle: 2, CrossingValue: 80, Reached: true})

	svg, err := chart.Render(p, 640, 400)
	require.NoError(t, err)
	wellFormed(t, svg)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, `class="soh"`)
	assert.Contains(t, svg, `class="threshold"`)
	assert.Contains(t, svg, `class="eol"`)
	assert.Contains(t, svg, "EOL threshold (85%)")
	assert.Equal(t, 4, len(strings.Fields(between(svg, `class="soh" fill="none" stroke="#1f77b4" stroke-width="2" points="`, `"`))))
}

func TestRender_NoCrossingOmitsMarker(t *testing.T) {
	p := prediction([]float64{100, 99}, 50,
		models.AnalysisResult{CrossingIndex: 1, CrossingCycle: 1, CrossingValue: 99, Reached: false})

	svg, err := chart.Render(p, 10, 10)
	require.NoError(t, err)
	wellFormed(t, svg)
	assert.NotContains(t, svg, `class="eol"`)
	assert.Contains(t, svg, `width="200"`)
}

func TestRender_SinglePointAndEscaping(t *testing.T) {
	p := prediction([]float64{75}, 80,
		models.AnalysisResult{CrossingIndex: 0, CrossingCycle: 0, CrossingValue: 75, Reached: true})

	labels := chart.DefaultLabels(80)
	labels.Title = "<SOH & RUL>"
	svg, err := chart.RenderWithLabels(p, 300, 200, labels)
	require.NoError(t, err)
	wellFormed(t, svg)
	assert.Contains(t, svg, "&lt;SOH &amp; RUL&gt;")
	assert.NotContains(t, svg, "NaN")
}

func TestRender_Empty(t *testing.T) {
	_, err := chart.Render(nil, 100, 100)
	assert.ErrorIs(t, err, chart.ErrNothingToPlot)

	p := prediction(nil, 80, models.AnalysisResult{})
	_, err = chart.Render(p, 100, 100)
	assert.ErrorIs(t, err, chart.ErrNothingToPlot)
}

func between(s, start, end string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	s = s[i+len(start):]
	j := strings.Index(s, end)
	if j < 0 {
		return ""
	}
	return s[:j]
}
