package handlers

import (
	"net/http"

	"github.com/OldStager01/battery-health/internal/trainer"
	"github.com/OldStager01/battery-health/pkg/models"
	"github.com/gin-gonic/gin"
)

type TrainingHandler struct {
	trainer      *trainer.Trainer
	defaultLimit int
	maxLimit     int
}

func NewTrainingHandler(t *trainer.Trainer, defaultLimit, maxLimit int) *TrainingHandler {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &TrainingHandler{trainer: t, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

type StartTrainingRequest struct {
	ModelType string `json:"model_type" binding:"required" example:"random_forest"`
}

// Start godoc
// @Summary Start a training run
// @Description Runs asynchronously; poll the returned run or listen on the training websocket topic
// @Tags Training
// @Accept json
// @Produce json
// @Param request body StartTrainingRequest true "Model type: random_forest, svr, xgboost or lstm"
// @Success 202 {object} models.TrainingRun
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/training [post]
func (h *TrainingHandler) Start(c *gin.Context) {
	var req StartTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	modelType, err := models.ParseModelType(req.ModelType)
	if err != nil {
		respondError(c, err)
		return
	}

	run, err := h.trainer.Start(modelType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/api/training/"+run.ID)
	c.JSON(http.StatusAccepted, run)
}

// List godoc
// @Summary List training runs
// @Tags Training
// @Produce json
// @Param limit query int false "Maximum runs to return"
// @Success 200 {object} map[string]interface{}
// @Router /api/training [get]
func (h *TrainingHandler) List(c *gin.Context) {
	runs := h.trainer.List()
	if limit := parseLimit(c.Query("limit"), h.defaultLimit, h.maxLimit); len(runs) > limit {
		runs = runs[:limit]
	}
	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

// Get godoc
// @Summary Get a training run
// @Tags Training
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.TrainingRun
// @Failure 404 {object} ErrorResponse
// @Router /api/training/{id} [get]
func (h *TrainingHandler) Get(c *gin.Context) {
	run, err := h.trainer.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// Cancel godoc
// @Summary Cancel a training run
// @Tags Training
// @Produce json
// @Param id path string true "Run ID"
// @Success 202 {object} models.TrainingRun
// @Failure 404 {object} ErrorResponse
// @Router /api/training/{id} [delete]
func (h *TrainingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if err := h.trainer.Cancel(id); err != nil {
		respondError(c, err)
		return
	}
	run, err := h.trainer.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, run)
}
