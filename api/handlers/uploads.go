package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/OldStager01/battery-health/internal/upload"
	"github.com/OldStager01/battery-health/pkg/models"
	"github.com/gin-gonic/gin"
)

const FormFileField = "file"

type UploadHandler struct {
	receiver     *upload.Receiver
	defaultLimit int
	maxLimit     int
}

func NewUploadHandler(receiver *upload.Receiver, defaultLimit, maxLimit int) *UploadHandler {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &UploadHandler{receiver: receiver, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Create godoc
// @Summary Upload a battery data file
// @Description Accepts csv, xlsx or xls files. The content is acknowledged but not parsed.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Battery data file"
// @Success 201 {object} models.UploadReceipt
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /api/uploads [post]
func (h *UploadHandler) Create(c *gin.Context) {
	header, err := c.FormFile(FormFileField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			respondError(c, upload.ErrFileTooLarge)
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "multipart field \"file\" is required"})
		return
	}

	receipt, err := h.receiver.Accept(header.Filename, header.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// List godoc
// @Summary Recent uploads
// @Tags Uploads
// @Produce json
// @Param limit query int false "Maximum receipts to return"
// @Success 200 {object} map[string]interface{}
// @Router /api/uploads [get]
func (h *UploadHandler) List(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), h.defaultLimit, h.maxLimit)
	receipts := h.receiver.Recent(limit)
	if receipts == nil {
		receipts = []*models.UploadReceipt{}
	}
	c.JSON(http.StatusOK, gin.H{
		"uploads":    receipts,
		"count":      len(receipts),
		"extensions": h.receiver.Extensions(),
	})
}

func parseLimit(raw string, def, max int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
