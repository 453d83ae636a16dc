package handlers

import (
	"errors"
	"net/http"

	"github.com/OldStager01/battery-health/internal/analyzer"
	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/internal/resilience"
	"github.com/OldStager01/battery-health/internal/source"
	"github.com/OldStager01/battery-health/internal/trainer"
	"github.com/OldStager01/battery-health/internal/upload"
	"github.com/OldStager01/battery-health/pkg/models"
	"github.com/OldStager01/battery-health/pkg/validation"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"invalid input: threshold must be finite"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput),
		errors.Is(err, validation.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidTrajectory),
		errors.Is(err, models.ErrThresholdRange),
		errors.Is(err, models.ErrUnknownModelType),
		errors.Is(err, upload.ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnknownPage),
		errors.Is(err, source.ErrCellNotFound),
		errors.Is(err, trainer.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, upload.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, upload.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, trainer.ErrTooManyRuns):
		return http.StatusTooManyRequests
	case errors.Is(err, trainer.ErrTrainerStopped),
		errors.Is(err, resilience.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	case errors.Is(err, source.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, source.ErrSourceFailed),
		errors.Is(err, source.ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.WithTrace(c.Request.Context()).Errorf("Unhandled error on %s: %v", c.FullPath(), err)
		message = "internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
