package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/OldStager01/battery-health/internal/dashboard"
	"github.com/OldStager01/battery-health/pkg/models"
	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	service *dashboard.Service
	timeout time.Duration
}

func NewPredictionHandler(service *dashboard.Service, timeout time.Duration) *PredictionHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PredictionHandler{service: service, timeout: timeout}
}

type PredictionResponse struct {
	*models.Prediction
	ChartSVG string `json:"chart_svg,omitempty"`
}

type AnalyzeRequest struct {
	Trajectory     models.Trajectory `json:"trajectory"`
	ThresholdValue *float64          `json:"threshold_value" binding:"required" example:"0.8"`
}

// parseThreshold reads ?threshold=, falling back to the configured default.
func parseThreshold(c *gin.Context, fallback float64) (float64, bool) {
	raw := c.Query("threshold")
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Predict godoc
// @Summary Predict EOL for a cell
// @Description Fetches the cell's SOH trajectory and finds the first cycle below the threshold
// @Tags Predictions
// @Produce json
// @Param cell_id query string false "Cell identifier" default(cell-001)
// @Param threshold query number false "EOL threshold in percent" default(80)
// @Param chart query bool false "Include an SVG chart"
// @Param trajectory query bool false "Include the trajectory"
// @Success 200 {object} PredictionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/predictions [get]
func (h *PredictionHandler) Predict(c *gin.Context) {
	percent, ok := parseThreshold(c, h.service.Bounds().Default)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "threshold must be a number"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	prediction, err := h.service.Predict(ctx, c.Query("cell_id"), percent)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := PredictionResponse{Prediction: prediction}
	if c.Query("chart") == "true" {
		svg, err := h.service.Chart(prediction, c.Query("locale"))
		if err != nil {
			respondError(c, err)
			return
		}
		resp.ChartSVG = svg
	}
	if c.Query("trajectory") != "true" {
		resp.Prediction = prediction.WithoutTrajectory()
	}

	c.JSON(http.StatusOK, resp)
}

// Chart godoc
// @Summary Render the prediction chart
// @Tags Predictions
// @Produce image/svg+xml
// @Param cell_id query string false "Cell identifier"
// @Param threshold query number false "EOL threshold in percent" default(80)
// @Success 200 {string} string "SVG document"
// @Failure 400 {object} ErrorResponse
// @Router /api/predictions/chart.svg [get]
func (h *PredictionHandler) Chart(c *gin.Context) {
	percent, ok := parseThreshold(c, h.service.Bounds().Default)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "threshold must be a number"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	prediction, err := h.service.Predict(ctx, c.Query("cell_id"), percent)
	if err != nil {
		respondError(c, err)
		return
	}
	svg, err := h.service.Chart(prediction, c.Query("locale"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(svg))
}

// Analyze godoc
// @Summary Find the EOL crossing in a supplied trajectory
// @Description Returns the first point strictly below threshold_value, or the last point with reached=false
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Trajectory and threshold in trajectory units"
// @Success 200 {object} models.AnalysisResult
// @Failure 400 {object} ErrorResponse
// @Router /api/analyze [post]
func (h *PredictionHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.Analyze(req.Trajectory, *req.ThresholdValue)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
